package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog statistics",
	Args:  cobra.NoArgs,
	RunE:  runStatsCmd,
}

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Clear expired cache entries",
	Long: `Delete cached movies older than the freshness window.

Requires an admin bearer token (--token or CINELOG_TOKEN).`,
	Args: cobra.NoArgs,
	RunE: runPurgeCmd,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(purgeCmd)
}

func runStatsCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL, authToken)
	stats, err := client.Stats()
	if err != nil {
		return fmt.Errorf("stats failed: %w", err)
	}

	if jsonOutput {
		printJSON(stats)
		return nil
	}

	fmt.Printf("Movies:      %d\n", stats.TotalMovies)
	fmt.Printf("Avg rating:  %s\n", stats.AvgRating)
	fmt.Printf("Avg runtime: %d min\n", stats.AvgRuntime)

	if len(stats.GenreDistribution) > 0 {
		fmt.Println("\nTop genres:")
		for _, g := range stats.GenreDistribution {
			fmt.Printf("  %-16s %d\n", g.Genre, g.Count)
		}
	}
	if len(stats.RatingsByYear) > 0 {
		fmt.Println("\nRatings by year:")
		for _, y := range stats.RatingsByYear {
			fmt.Printf("  %-6s %.1f (%d movies)\n", y.Year, y.AvgRating, y.Count)
		}
	}
	return nil
}

func runPurgeCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL, authToken)
	result, err := client.Purge()
	if err != nil {
		return fmt.Errorf("purge failed: %w", err)
	}

	if jsonOutput {
		printJSON(result)
		return nil
	}

	fmt.Println(result.Message)
	return nil
}
