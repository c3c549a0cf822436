package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <term>...",
	Short: "Search movies, filling the cache from the metadata provider",
	Long: `Search for movies by free-text term.

Fresh cached matches are served directly; on a cache miss the server
queries the metadata provider and caches the results. Requires a
bearer token (--token or CINELOG_TOKEN).

Examples:
  cinelog search "The Matrix"
  cinelog --json search blade runner`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearchCmd,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearchCmd(cmd *cobra.Command, args []string) error {
	term := strings.Join(args, " ")

	client := NewClient(serverURL, authToken)
	movies, err := client.Search(term)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if jsonOutput {
		printJSON(movies)
		return nil
	}

	printMoviesHuman(movies)
	return nil
}
