package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pkg.jsn.cam/retailgen/internal/config"
	"pkg.jsn.cam/retailgen/internal/logging"
	"pkg.jsn.cam/retailgen/pkg/retail"
)

var (
	// Global flags
	cfgPath  string
	seedFlag string
	asOf     string
	verbose  bool

	cfg    = config.Default()
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "retailgen",
	Short: "Deterministic mock data for a Brazilian retail operation",
	Long: `retailgen generates customers, products, stores, orders and order items
from a seed. The same seed, sizes and --as-of date always produce the same
dataset, which can be written as JSON Lines, landed into a bbolt store or
bulk loaded into PostgreSQL.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(".env"); err != nil {
			return err
		}
		loaded, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		if seedFlag != "" {
			seed, err := retail.ParseSeed(seedFlag)
			if err != nil {
				return err
			}
			loaded.Generator.Seed = seed
		}
		if verbose {
			loaded.Log.Level = "debug"
		}
		cfg = loaded

		logger, err = logging.New(cfg.Log.Level, cfg.Log.Format)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&seedFlag, "seed", "", "random seed (overrides config and "+config.EnvSeed+")")
	rootCmd.PersistentFlags().StringVar(&asOf, "as-of", "", "reference date YYYY-MM-DD that all generated dates are relative to (default: today, UTC)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newIngestCmd())
	rootCmd.AddCommand(newInspectCmd())
	rootCmd.AddCommand(newLoadPostgresCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// addSizeFlags registers the dataset size flags shared by the commands
// that generate.
func addSizeFlags(cmd *cobra.Command) {
	d := retail.DefaultConfig()
	cmd.Flags().Int("customers", d.NumCustomers, "number of customers")
	cmd.Flags().Int("products", d.NumProducts, "number of products")
	cmd.Flags().Int("stores", d.NumStores, "number of stores")
	cmd.Flags().Int("orders", d.NumOrders, "number of orders")
	cmd.Flags().Int("avg-items", d.AvgItemsPerOrder, "average items per order")
}

// generatorConfig starts from the loaded config and applies the size
// flags the user set explicitly.
func generatorConfig(cmd *cobra.Command) (retail.GeneratorConfig, error) {
	gc := cfg.Generator
	for name, dst := range map[string]*int{
		"customers": &gc.NumCustomers,
		"products":  &gc.NumProducts,
		"stores":    &gc.NumStores,
		"orders":    &gc.NumOrders,
		"avg-items": &gc.AvgItemsPerOrder,
	} {
		if !cmd.Flags().Changed(name) {
			continue
		}
		v, err := cmd.Flags().GetInt(name)
		if err != nil {
			return gc, err
		}
		*dst = v
	}
	return gc, gc.Validate()
}

// referenceTime resolves --as-of. Without it the reference is the start of
// the current UTC day, so repeated runs on the same day agree.
func referenceTime() (time.Time, error) {
	if asOf == "" {
		return time.Now().UTC().Truncate(24 * time.Hour), nil
	}
	t, err := time.Parse(time.DateOnly, asOf)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: --as-of %q is not a YYYY-MM-DD date", retail.ErrInvalidConfiguration, asOf)
	}
	return t, nil
}

// generate builds the dataset described by the flags and config.
func generate(cmd *cobra.Command) (*retail.Dataset, error) {
	gc, err := generatorConfig(cmd)
	if err != nil {
		return nil, err
	}
	ref, err := referenceTime()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	ds, err := retail.New(gc.Seed, retail.WithReferenceTime(ref)).GenerateAll(gc)
	if err != nil {
		return nil, err
	}
	logger.Debug("dataset generated",
		zap.Int64("seed", gc.Seed),
		zap.Time("reference_time", ref),
		zap.Int("rows", ds.Rows()),
		zap.Duration("took", time.Since(start)),
	)
	return ds, nil
}
