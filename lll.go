/*
Package lll is a pure Go implementation of lattice basis reduction.

It provides the classical LLL algorithm with exact Gram-Schmidt arithmetic and the
L² algorithm, which keeps the basis and its Gram matrix exact while computing the
Gram-Schmidt coefficients in floating point arithmetic, falling back to exact
recomputation whenever a precision check fails.

The library is organized as follows:

  - scalar: the numeric domains of the basis entries (big integers, big rationals, float64).
  - lattice: the basis container, the exact and floating Gram-Schmidt engines,
    the standalone orthogonalization, the quality diagnostics and random bases.
  - reduction: the reduction parameters, options, statistics and certification.
  - reduction/lll: the LLL engine.
  - reduction/l2: the L² engine.
  - cmd/lllbench: a command line benchmark of the engines.
*/
package lll
