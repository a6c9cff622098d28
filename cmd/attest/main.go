package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rlind/attest/internal/app"
)

var version = "0.1.0"

func main() {
	var opts app.Options

	root := &cobra.Command{
		Use:           "attest",
		Short:         "Terminal client for the veritas claim-verification daemon",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.Run(ctx, opts)
		},
	}

	root.Flags().StringVar(&opts.ConfigPath, "config", "", "path to config file")
	root.Flags().StringVar(&opts.SettingsPath, "settings", "", "path to settings file")
	root.Flags().StringVar(&opts.HistoryPath, "history", "", "path to history file")
	root.Flags().IntVar(&opts.PollEvery, "poll", 0, "health poll interval in seconds")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the attest version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("attest " + version)
		},
	})

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
