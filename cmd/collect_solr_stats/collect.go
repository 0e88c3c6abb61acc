package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ubtue/cronjobs/internal/config"
	"github.com/ubtue/cronjobs/internal/driver"
	"github.com/ubtue/cronjobs/internal/notify"
	"github.com/ubtue/cronjobs/internal/solrstats"
)

const scriptName = "collect_solr_stats"

var (
	configPath string
	configDir  string
	sender     string
	admin      string
	binaryPath string
	outputFile string
	logFile    string
)

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "Path to the INI config file (default: <config-dir>/"+scriptName+config.ConfExtension+")")
	rootCmd.Flags().StringVar(&configDir, "config-dir", config.DefaultDir, "Directory holding per-script config files")
	rootCmd.Flags().StringVar(&sender, "sender", "no_reply@localhost", "Sender address for notification emails")
	rootCmd.Flags().StringVar(&admin, "admin", "root@localhost", "Recipient for usage-error reports when no recipient argument was given")
	rootCmd.Flags().StringVar(&binaryPath, "binary", solrstats.DefaultBinaryPath, "Path to the statistics collection binary")
	rootCmd.Flags().StringVar(&outputFile, "output", solrstats.DefaultOutputFile, "CSV output file the binary writes")
	rootCmd.Flags().StringVar(&logFile, "log", solrstats.DefaultLogFile, "Log file receiving the binary's combined output")
}

func runCollect(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// A failed config load must not try to email anyone: the notifier is the
	// only consumer of the config, and notifying about a broken notifier
	// config would loop. Print and exit instead.
	path := configPath
	if path == "" {
		path = config.DefaultPath(configDir, scriptName)
	}
	smtp, err := config.LoadSMTP(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Usage errors past this point are mailed. Until the recipient argument
	// has been validated, reports go to the admin address.
	recipient := admin
	if len(args) >= 1 {
		recipient = args[0]
	}
	notifier := notify.New(smtp, notify.Options{
		DefaultSender:    sender,
		DefaultRecipient: recipient,
	})
	d := driver.New(scriptName, notifier)
	d.Err = os.Stderr

	if len(args) != 2 {
		exitCode = d.Usage(ctx, "this script needs to be called with an email address and the system type")
		return nil
	}

	job := &solrstats.Job{
		SystemType: args[1],
		Recipient:  args[0],
		BinaryPath: binaryPath,
		OutputFile: outputFile,
		LogFile:    logFile,
		Runner:     solrstats.ExecRunner{},
		Notifier:   notifier,
	}
	exitCode = d.Run(ctx, job.Run)
	return nil
}
