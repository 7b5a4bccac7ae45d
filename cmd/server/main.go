package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// newRootCmd создает корневую команду. Без подкоманды запускается сервер.
func newRootCmd() *cobra.Command {
	var envFile string

	rootCmd := &cobra.Command{
		Use:   "tradedash",
		Short: "Read-only monitoring dashboard for an AI trading bot",
		Long: `tradedash serves a web dashboard and a JSON API over the tables the
trading bot writes: trading_stats, ai_decisions, runtime_info and account_info.

The datastore is selected by environment variables (Supabase REST, Postgres
or SQLite). Without any datastore settings the server still starts and shows
setup instructions.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadEnv(envFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "path to a .env file (default: ./.env if present)")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newStatusCmd())

	return rootCmd
}
