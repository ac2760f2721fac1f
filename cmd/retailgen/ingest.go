package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"pkg.jsn.cam/retailgen/internal/config"
	"pkg.jsn.cam/retailgen/internal/landing"
	"pkg.jsn.cam/retailgen/pkg/storage"
)

func newIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Generate a dataset and land it into a bbolt store",
		Long: `ingest generates a dataset and writes every table into a bbolt landing
store, wrapping each row with its ingestion timestamp, source system and
batch id. Order items without an order go to order_items_quarantine.`,
		Args: cobra.NoArgs,
		RunE: runIngest,
	}
	addSizeFlags(cmd)
	cmd.Flags().String("db", "", "landing store path (default from config or "+config.EnvDBPath+")")
	cmd.Flags().String("mode", "", "write mode: append, merge or overwrite (default from config)")
	cmd.Flags().String("source", "", "source system stamped on every row (default from config)")
	cmd.Flags().String("batch-id", "", "batch id (default: random UUID)")
	cmd.Flags().Bool("no-progress", false, "disable the progress bar")
	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	dbPath := flagOr(cmd, "db", cfg.Landing.DBPath)
	source := flagOr(cmd, "source", cfg.Landing.Source)
	mode, err := landing.ParseWriteMode(flagOr(cmd, "mode", cfg.Landing.Mode))
	if err != nil {
		return err
	}
	batchID, _ := cmd.Flags().GetString("batch-id")
	noProgress, _ := cmd.Flags().GetBool("no-progress")

	ds, err := generate(cmd)
	if err != nil {
		return err
	}

	backend, err := storage.NewBboltBackend(dbPath)
	if err != nil {
		return fmt.Errorf("open landing store: %w", err)
	}

	bar := progressbar.NewOptions(ds.Rows(),
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionSetDescription("landing"),
		progressbar.OptionSetVisibility(!noProgress),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
	store := landing.NewStore(backend, source, logger, landing.WithProgress(func(table string, n int) {
		bar.Describe(table)
		_ = bar.Add(n)
	}))
	defer store.Close()

	m, err := store.WriteDataset(ds, landing.WriteOptions{Mode: mode, BatchID: batchID})
	if err != nil {
		return err
	}
	_ = bar.Finish()

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Batch %s landed (%s, seed %d)\n", m.BatchID, m.Mode, m.Seed)
	for _, name := range sortedKeys(m.Tables) {
		st := m.Tables[name]
		fmt.Fprintf(w, "  %-24s %10s written %10s skipped\n", name, humanize.Comma(int64(st.Written)), humanize.Comma(int64(st.Skipped)))
	}
	if fi, err := os.Stat(dbPath); err == nil {
		fmt.Fprintf(w, "Store %s is %s\n", dbPath, humanize.Bytes(uint64(fi.Size())))
	}
	return nil
}

func flagOr(cmd *cobra.Command, name, fallback string) string {
	if v, _ := cmd.Flags().GetString(name); v != "" {
		return v
	}
	return fallback
}
