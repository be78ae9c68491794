package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/marcus/brandsmith/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded runs",
	Long:  "Lists past pipeline runs from the configured PostgreSQL database, newest first. Requires DATABASE_URL or a database_url config entry.",
	RunE:  runHistory,
}

var (
	historyBrand  string
	historyStatus string
	historyLimit  int
	historyConfig string
)

func init() {
	historyCmd.Flags().StringVar(&historyBrand, "brand", "", "Filter by brand name substring")
	historyCmd.Flags().StringVar(&historyStatus, "status", "", "Filter by run status (running, completed)")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum runs to list")
	historyCmd.Flags().StringVar(&historyConfig, "config", "", "Path to JSON config file")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	cfg, err := layeredConfig(historyConfig)
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("run history requires a database: set DATABASE_URL or 'database_url' in the config file")
	}

	ctx := context.Background()
	st, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.ListRuns(ctx, store.RunFilters{
		Brand:  historyBrand,
		Status: historyStatus,
		Limit:  historyLimit,
	})
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		_, _ = fmt.Fprintln(os.Stdout, "No runs recorded.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "RUN ID\tBRAND\tSTATUS\tOUTCOME\tCREATED\tSOURCE")
	for _, run := range runs {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			run.ID, orDash(run.BrandName), run.Status, orDash(run.Outcome),
			run.CreatedAt.Local().Format(time.DateTime), orDash(run.SourceURL))
	}
	return w.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
