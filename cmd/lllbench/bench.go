package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/rs/zerolog"

	"github.com/tuneinsight/lll/lattice"
	"github.com/tuneinsight/lll/reduction"
	"github.com/tuneinsight/lll/reduction/l2"
	"github.com/tuneinsight/lll/reduction/lll"
	"github.com/tuneinsight/lll/utils/sampling"
)

// Names of the engines accepted by Config.Engine.
const (
	EngineLLL = lll.Name
	EngineL2  = l2.Name
)

// Config is the configuration of a benchmark.
type Config struct {
	Engine    string
	Dim       int
	Bits      int
	Runs      int
	Seed      string
	Key       string
	Delta     float64
	Eta       float64
	Precision uint
}

// Result gathers the per-run measurements of a benchmark.
type Result struct {
	Config             Config
	Durations          []float64
	Swaps              []float64
	Fallbacks          []float64
	RootHermiteFactors []float64
}

// Summary is the summary of a series of measurements.
type Summary struct {
	Mean   float64
	Median float64
	StdDev float64
}

type reduceFunc func(b *lattice.Basis[*big.Int], params reduction.Parameters, opts ...reduction.Option) (reduction.Stats, error)

// Parameters returns the reduction parameters and the reduction function of the configuration.
// Zero values of Delta, Eta and Precision are replaced by the defaults of the engine.
func (cfg Config) Parameters() (params reduction.Parameters, reduce reduceFunc, err error) {
	var pl reduction.ParametersLiteral
	switch cfg.Engine {
	case EngineLLL:
		pl, reduce = lll.DefaultParametersLiteral, lll.Reduce[*big.Int]
	case EngineL2:
		pl, reduce = l2.DefaultParametersLiteral, l2.Reduce[*big.Int]
	default:
		return params, nil, fmt.Errorf("invalid engine %q: must be %s or %s", cfg.Engine, EngineLLL, EngineL2)
	}

	if cfg.Delta != 0 {
		pl.Delta = cfg.Delta
	}
	if cfg.Eta != 0 {
		pl.Eta = cfg.Eta
	}
	if cfg.Precision != 0 {
		pl.Precision = cfg.Precision
	}

	params, err = reduction.NewParametersFromLiteral(pl)
	return
}

// Run executes the benchmark described by cfg.
func Run(cfg Config, logger zerolog.Logger) (*Result, error) {

	if cfg.Runs < 1 {
		return nil, fmt.Errorf("invalid runs=%d: must be positive", cfg.Runs)
	}

	params, reduce, err := cfg.Parameters()
	if err != nil {
		return nil, err
	}

	prng, err := newPRNG(cfg, sampling.SystemPRNG{})
	if err != nil {
		return nil, err
	}

	logger.Info().Hex("key", prng.Key()).Msg("bases keyed")

	res := &Result{Config: cfg}

	for i := 0; i < cfg.Runs; i++ {

		runPRNG, err := prng.Fork()
		if err != nil {
			return nil, err
		}

		b, err := lattice.NewKnapsackBasis(runPRNG, cfg.Dim, cfg.Bits)
		if err != nil {
			return nil, err
		}

		start := time.Now()
		st, err := reduce(b, params, reduction.WithLogger(logger.With().Int("run", i).Logger()))
		if err != nil {
			return nil, fmt.Errorf("run %d: %w", i, err)
		}
		elapsed := time.Since(start)

		q, err := lattice.Quality(b)
		if err != nil {
			return nil, fmt.Errorf("run %d: %w", i, err)
		}

		logger.Info().
			Int("run", i).
			Dur("duration", elapsed).
			Int("swaps", st.Swaps).
			Float64("rhf", q.RootHermiteFactor).
			Msg("reduced")

		res.Durations = append(res.Durations, float64(elapsed.Nanoseconds())/1e6)
		res.Swaps = append(res.Swaps, float64(st.Swaps))
		res.Fallbacks = append(res.Fallbacks, float64(st.Fallbacks))
		res.RootHermiteFactors = append(res.RootHermiteFactors, q.RootHermiteFactor)
	}

	return res, nil
}

// newPRNG returns the source of the random bases. It is keyed with cfg.Key if set,
// derived from cfg.Seed if set, and keyed with KeySize bytes read from entropy otherwise.
func newPRNG(cfg Config, entropy sampling.PRNG) (*sampling.KeyedPRNG, error) {
	switch {
	case cfg.Key != "":
		key, err := hex.DecodeString(cfg.Key)
		if err != nil {
			return nil, fmt.Errorf("invalid key: %w", err)
		}
		return sampling.NewKeyedPRNG(key)
	case cfg.Seed != "":
		return sampling.NewSeededPRNG([]byte(cfg.Seed))
	default:
		key := make([]byte, sampling.KeySize)
		if _, err := io.ReadFull(entropy, key); err != nil {
			return nil, fmt.Errorf("cannot read key: %w", err)
		}
		return sampling.NewKeyedPRNG(key)
	}
}

// Summarize returns the mean, median and standard deviation of values.
func Summarize(values []float64) (s Summary, err error) {
	data := stats.Float64Data(values)
	if s.Mean, err = data.Mean(); err != nil {
		return
	}
	if s.Median, err = data.Median(); err != nil {
		return
	}
	s.StdDev, err = data.StandardDeviation()
	return
}

// Print writes the summaries of the result to w.
func (res *Result) Print(w io.Writer) error {
	cfg := res.Config
	if _, err := fmt.Fprintf(w, "%s: %d runs, dim %d, %d bits\n", cfg.Engine, len(res.Durations), cfg.Dim, cfg.Bits); err != nil {
		return err
	}
	for _, line := range []struct {
		name, unit string
		values     []float64
	}{
		{"duration", "ms", res.Durations},
		{"swaps", "", res.Swaps},
		{"fallbacks", "", res.Fallbacks},
		{"root hermite factor", "", res.RootHermiteFactors},
	} {
		if err := printSummary(w, line.name, line.unit, line.values); err != nil {
			return err
		}
	}
	return nil
}
