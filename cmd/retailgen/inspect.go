package main

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"pkg.jsn.cam/retailgen/internal/config"
	"pkg.jsn.cam/retailgen/internal/landing"
	"pkg.jsn.cam/retailgen/pkg/storage"
)

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "List the batches and row counts of a landing store",
		Args:  cobra.NoArgs,
		RunE:  runInspect,
	}
	cmd.Flags().String("db", "", "landing store path (default from config or "+config.EnvDBPath+")")
	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	dbPath := flagOr(cmd, "db", cfg.Landing.DBPath)
	// bbolt would create a missing file
	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("landing store: %w", err)
	}

	backend, err := storage.NewBboltBackend(dbPath)
	if err != nil {
		return fmt.Errorf("open landing store: %w", err)
	}
	store := landing.NewStore(backend, "", logger)
	defer store.Close()

	manifests, err := store.Manifests()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if len(manifests) == 0 {
		fmt.Fprintln(w, "No batches found")
	} else {
		fmt.Fprintf(w, "%-36s %-10s %-8s %-20s %s\n", "BATCH ID", "MODE", "SEED", "STARTED", "ROWS")
		fmt.Fprintln(w, "─────────────────────────────────────────────────────────────────────────────────────────")
		for _, m := range manifests {
			rows := 0
			for _, st := range m.Tables {
				rows += st.Written
			}
			fmt.Fprintf(w, "%-36s %-10s %-8d %-20s %s\n",
				m.BatchID,
				m.Mode,
				m.Seed,
				m.StartedAt.Format("2006-01-02 15:04:05"),
				humanize.Comma(int64(rows)))
		}
	}

	tables, err := store.Tables()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\n%-24s %10s\n", "TABLE", "ROWS")
	for _, name := range tables {
		n, err := store.Count(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%-24s %10s\n", name, humanize.Comma(int64(n)))
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
