// Package main provides the cron driver for the external Solr statistics
// collection binary.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "collect_solr_stats <recipient-email> <system-type>",
	Short: "Collect Solr usage statistics and report the outcome by email",
	Long: `Drives the external collect_solr_stats_data binary for one of the krimdok,
relbib or ixtheo deployments. The binary's combined output is appended to the
job log; the outcome (success or failure, including panics) is reported to
the given recipient by email.`,
	Args: cobra.ArbitraryArgs,
	RunE: runCollect,
}

// exitCode is set by runCollect; main passes it to os.Exit after cobra has
// unwound. Failure reporting happens inside the driver, never here.
var exitCode int

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Exit(exitCode)
}
