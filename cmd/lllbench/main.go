// Command lllbench benchmarks the lattice reduction engines on random knapsack bases.
//
// Example:
//
//	lllbench run --engine l2 --dim 20 --bits 100 --runs 10 --seed bench
package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("lllbench failed")
		os.Exit(1)
	}
}
