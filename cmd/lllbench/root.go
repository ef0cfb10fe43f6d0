package main

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lllbench",
		Short:         "Benchmark lattice reduction engines",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var verbose bool
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log the reduction summaries")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
	}

	root.AddCommand(newRunCmd())

	return root
}

func newRunCmd() *cobra.Command {
	var cfg Config

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Reduce random knapsack bases and print statistics",
		Long: `Generate random knapsack bases (e_i | a_i) with a_i uniform below 2^bits,
reduce them with the selected engine and print the mean, median and standard
deviation of the durations, of the number of swaps and of the root Hermite factors.

The bases are derived from the seed, so that two runs with the same flags
reduce the same bases. With an empty seed, a random key is drawn; it is logged
and can be passed back with --key to reduce the same bases again.

Examples:
  lllbench run --engine lll --dim 10 --bits 40
  lllbench run --engine l2 --dim 30 --bits 200 --runs 5 --delta 0.99 --eta 0.51
  lllbench run --seed ""`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := Run(cfg, log.Logger)
			if err != nil {
				return err
			}
			return res.Print(cmd.OutOrStdout())
		},
	}

	addRunFlags(cmd.Flags(), &cfg)

	return cmd
}

func addRunFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.Engine, "engine", EngineL2, fmt.Sprintf("reduction engine (%s|%s)", EngineLLL, EngineL2))
	fs.IntVar(&cfg.Dim, "dim", 10, "number of rows of the bases")
	fs.IntVar(&cfg.Bits, "bits", 40, "bit size of the knapsack weights")
	fs.IntVar(&cfg.Runs, "runs", 5, "number of bases to reduce")
	fs.StringVar(&cfg.Seed, "seed", "lllbench", "seed of the random bases (empty for a random key)")
	fs.StringVar(&cfg.Key, "key", "", "hex key of the random bases, overrides the seed")
	fs.Float64Var(&cfg.Delta, "delta", 0, "Lovász factor (0 for the engine default)")
	fs.Float64Var(&cfg.Eta, "eta", 0, "size-reduction bound (0 for the engine default)")
	fs.UintVar(&cfg.Precision, "prec", 0, "precision in bits of the floating engine (0 for the default)")
}

// printSummary writes one line of statistics.
func printSummary(w io.Writer, name, unit string, values []float64) error {
	s, err := Summarize(values)
	if err != nil {
		return fmt.Errorf("cannot summarize %s: %w", name, err)
	}
	_, err = fmt.Fprintf(w, "%-20s mean %12.4f %s  median %12.4f %s  stddev %12.4f %s\n", name, s.Mean, unit, s.Median, unit, s.StdDev, unit)
	return err
}
