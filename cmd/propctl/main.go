/*
main.go - Operational CLI for the property ledger

PURPOSE:
  Small administrative companion to the API server for tasks that do
  not warrant an HTTP round-trip:

    propctl seed   --db ledger.db
    propctl report --db ledger.db --start 2024-04-01 --end 2024-04-30

  "seed" loads the demo portfolio into the database. "report" writes
  period rent statements as CSV to stdout, suitable for piping into a
  spreadsheet import.
*/
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/warp/property-ledger/api"
	"github.com/warp/property-ledger/engine"
	"github.com/warp/property-ledger/property"
	"github.com/warp/property-ledger/report"
	"github.com/warp/property-ledger/store/sqlite"
)

var dbPath string

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:           "propctl",
		Short:         "Property ledger administration",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dbPath, "db", envOr("DATABASE_PATH", "ledger.db"), "SQLite database path")

	root.AddCommand(seedCmd(), reportCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "propctl:", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func openService() (*property.Service, func(), error) {
	store, err := sqlite.New(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open database %s: %w", dbPath, err)
	}
	return property.NewService(store), func() { store.Close() }, nil
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the demo portfolio into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeStore, err := openService()
			if err != nil {
				return err
			}
			defer closeStore()

			if err := api.LoadDemo(context.Background(), svc); err != nil {
				return fmt.Errorf("seed demo data: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "demo portfolio loaded")
			return nil
		},
	}
}

func reportCmd() *cobra.Command {
	var startStr, endStr string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write period rent statements as CSV to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeStore, err := openService()
			if err != nil {
				return err
			}
			defer closeStore()

			now := svc.Now()
			start := now.StartOfMonth()
			end := now.EndOfMonth()
			if startStr != "" {
				if start, err = engine.ParseDay(startStr); err != nil {
					return fmt.Errorf("invalid --start: %w", err)
				}
			}
			if endStr != "" {
				if end, err = engine.ParseDay(endStr); err != nil {
					return fmt.Errorf("invalid --end: %w", err)
				}
			}

			ctx := context.Background()
			leases, err := svc.Store().ListLeases(ctx)
			if err != nil {
				return err
			}
			payments, err := svc.Store().ListPayments(ctx)
			if err != nil {
				return err
			}

			stmts := report.Statements(leases, payments, start, end)
			return report.WriteCSV(cmd.OutOrStdout(), stmts, start, end)
		},
	}
	cmd.Flags().StringVar(&startStr, "start", "", "period start (YYYY-MM-DD, default: start of current month)")
	cmd.Flags().StringVar(&endStr, "end", "", "period end (YYYY-MM-DD, default: end of current month)")
	return cmd
}
