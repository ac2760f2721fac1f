package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"pkg.jsn.cam/retailgen/internal/config"
	"pkg.jsn.cam/retailgen/internal/pgload"
	"pkg.jsn.cam/retailgen/pkg/retail"
)

func newLoadPostgresCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load-postgres",
		Short: "Generate a dataset and bulk load it into PostgreSQL",
		Args:  cobra.NoArgs,
		RunE:  runLoadPostgres,
	}
	addSizeFlags(cmd)
	cmd.Flags().String("dsn", "", "connection string (default from config or "+config.EnvDSN+")")
	cmd.Flags().Bool("truncate", false, "empty the tables before loading")
	cmd.Flags().Bool("print-schema", false, "print the DDL and exit")
	return cmd
}

func runLoadPostgres(cmd *cobra.Command, args []string) error {
	if ok, _ := cmd.Flags().GetBool("print-schema"); ok {
		fmt.Fprint(cmd.OutOrStdout(), pgload.Schema())
		return nil
	}

	dsn := flagOr(cmd, "dsn", cfg.Postgres.DSN)
	if dsn == "" {
		return fmt.Errorf("%w: no connection string, set --dsn or %s", retail.ErrInvalidConfiguration, config.EnvDSN)
	}
	truncate, _ := cmd.Flags().GetBool("truncate")

	ds, err := generate(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer pool.Close()

	copied, err := pgload.Load(ctx, pool, ds, pgload.Options{Truncate: truncate, Logger: logger})
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("load interrupted: %w", err)
	}
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Loaded seed %d into PostgreSQL\n", ds.Config.Seed)
	for _, name := range retail.TableNames {
		fmt.Fprintf(w, "  %-14s %12s\n", name, humanize.Comma(copied[name]))
	}
	return nil
}
