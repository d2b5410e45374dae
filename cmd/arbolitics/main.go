package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/asadlib11/arbolitics-dashboard/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "arbolitics",
		Short: "Arbolitics dashboard backend",
		Long:  `Backend for the Arbolitics weather dashboard: login and data proxies to the Arbolitics API, session management, and chart-ready analytics.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
