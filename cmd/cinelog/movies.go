package main

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
)

var moviesCmd = &cobra.Command{
	Use:   "movies",
	Short: "List cached movies",
	Long: `List cached movies with optional filters.

Examples:
  cinelog movies
  cinelog movies --genre Action --sort year --order asc
  cinelog movies --search matrix --rating 7.5`,
	Args: cobra.NoArgs,
	RunE: runMoviesCmd,
}

var getCmd = &cobra.Command{
	Use:   "get <imdb-id>",
	Short: "Show one cached movie",
	Long: `Show a single cached movie by IMDb ID.

Example:
  cinelog get tt0133093`,
	Args: cobra.ExactArgs(1),
	RunE: runGetCmd,
}

func init() {
	rootCmd.AddCommand(moviesCmd)
	rootCmd.AddCommand(getCmd)
	moviesCmd.Flags().String("search", "", "Free-text match over title and plot")
	moviesCmd.Flags().String("genre", "", "Filter by genre")
	moviesCmd.Flags().String("year", "", "Filter by year")
	moviesCmd.Flags().String("rating", "", "Minimum rating")
	moviesCmd.Flags().String("sort", "", "Sort field (title, year, rating, imdbVotes, lastUpdated)")
	moviesCmd.Flags().String("order", "", "Sort order (asc or desc)")
}

func runMoviesCmd(cmd *cobra.Command, args []string) error {
	query := url.Values{}
	for _, name := range []string{"search", "genre", "year", "rating", "sort", "order"} {
		if val, _ := cmd.Flags().GetString(name); val != "" {
			query.Set(name, val)
		}
	}

	client := NewClient(serverURL, authToken)
	movies, err := client.Movies(query)
	if err != nil {
		return fmt.Errorf("list failed: %w", err)
	}

	if jsonOutput {
		printJSON(movies)
		return nil
	}

	printMoviesHuman(movies)
	return nil
}

func runGetCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL, authToken)
	movie, err := client.Movie(args[0])
	if err != nil {
		return fmt.Errorf("get failed: %w", err)
	}

	if jsonOutput {
		printJSON(movie)
		return nil
	}

	fmt.Printf("%s (%s)\n", movie.Title, movie.Year)
	fmt.Printf("  IMDb:     %s\n", movie.ImdbID)
	fmt.Printf("  Rating:   %s\n", movie.Rating)
	fmt.Printf("  Runtime:  %s\n", movie.Runtime)
	fmt.Printf("  Genre:    %s\n", strings.Join(movie.Genre, ", "))
	fmt.Printf("  Director: %s\n", movie.Director)
	fmt.Printf("  Actors:   %s\n", strings.Join(movie.Actors, ", "))
	fmt.Printf("  Plot:     %s\n", movie.Plot)
	fmt.Printf("  Cached:   %s\n", movie.LastUpdated.Format("2006-01-02 15:04"))
	return nil
}

func printMoviesHuman(movies []Movie) {
	if len(movies) == 0 {
		fmt.Println("No movies found")
		return
	}

	fmt.Printf("Movies (%d):\n\n", len(movies))
	fmt.Printf("  # │ %-40s │ %-6s │ %-6s │ %s\n", "TITLE", "YEAR", "RATING", "IMDB ID")
	fmt.Println("────┼──────────────────────────────────────────┼────────┼────────┼──────────")

	for i, m := range movies {
		fmt.Printf(" %2d │ %-40s │ %-6s │ %-6s │ %s\n", i+1, truncate(m.Title, 40), m.Year, m.Rating, m.ImdbID)
	}
}

// truncate shortens s to at most max runes, marking the cut with an ellipsis.
// Slicing runes rather than bytes keeps multi-byte titles intact.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
