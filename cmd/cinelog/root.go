package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	serverURL  string
	authToken  string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "cinelog",
	Short: "CLI client for the cinelog movie catalog",
	Long: `cinelog - CLI client for the cinelog movie catalog

Browse the cached movie catalog, trigger provider-backed searches,
and run cache maintenance.

Run 'cinelogd' to start the server daemon.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8084", "Server URL")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", os.Getenv("CINELOG_TOKEN"), "Bearer token for authenticated endpoints")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("cinelog {{.Version}}\n")
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
