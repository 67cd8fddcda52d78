package main

import (
	"log/slog"
	"noteapp/config"
	"noteapp/config/setup"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	verbose bool
	dbPath  string
}

// logLevel resolves LOG_LEVEL, with --verbose forcing debug
func (o *rootOptions) logLevel() slog.Level {
	if o.verbose {
		return slog.LevelDebug
	}
	return setup.ParseLogLevel(config.AppConfig.LogLevel)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "noteapp",
		Short: "A small note keeper backed by SQLite",
		Long: `noteapp stores notes with a title and a description in a local SQLite database.
Run "noteapp serve" for the JSON API, or manage notes directly from the command line.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.Load()
			if opts.dbPath != "" {
				config.AppConfig.DBPath = opts.dbPath
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "Path to the SQLite database (overrides DB_PATH)")

	rootCmd.AddCommand(
		newServeCmd(opts),
		newListCmd(opts),
		newAddCmd(opts),
		newEditCmd(opts),
		newShowCmd(opts),
		newDeleteCmd(opts),
	)

	return rootCmd
}
