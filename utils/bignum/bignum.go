// Package bignum implements arbitrary precision arithmetic helpers for integers,
// rationals and floating point numbers.
package bignum
