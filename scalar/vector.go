package scalar

import (
	"fmt"
	"math/big"
)

// Dot returns the inner product <a, b>.
// It panics if a and b do not have the same length.
func Dot[T any](d Domain[T], a, b []T) (r T) {
	if len(a) != len(b) {
		panic(fmt.Errorf("cannot Dot: len(a)=%d != len(b)=%d", len(a), len(b)))
	}
	r = d.Zero()
	for i := range a {
		r = d.Add(r, d.Mul(a[i], b[i]))
	}
	return
}

// SquaredNorm returns <a, a>.
func SquaredNorm[T any](d Domain[T], a []T) T {
	return Dot(d, a, a)
}

// AddVec returns a new vector a + b.
func AddVec[T any](d Domain[T], a, b []T) (r []T) {
	if len(a) != len(b) {
		panic(fmt.Errorf("cannot AddVec: len(a)=%d != len(b)=%d", len(a), len(b)))
	}
	r = make([]T, len(a))
	for i := range a {
		r[i] = d.Add(a[i], b[i])
	}
	return
}

// SubVec returns a new vector a - b.
func SubVec[T any](d Domain[T], a, b []T) (r []T) {
	if len(a) != len(b) {
		panic(fmt.Errorf("cannot SubVec: len(a)=%d != len(b)=%d", len(a), len(b)))
	}
	r = make([]T, len(a))
	for i := range a {
		r[i] = d.Sub(a[i], b[i])
	}
	return
}

// ScaleVec returns a new vector x * a.
func ScaleVec[T any](d Domain[T], x T, a []T) (r []T) {
	r = make([]T, len(a))
	for i := range a {
		r[i] = d.Mul(x, a[i])
	}
	return
}

// SubMulVec sets acc to acc - q * x in place.
func SubMulVec[T any](d Domain[T], acc, x []T, q *big.Int) {
	if len(acc) != len(x) {
		panic(fmt.Errorf("cannot SubMulVec: len(acc)=%d != len(x)=%d", len(acc), len(x)))
	}
	for i := range acc {
		acc[i] = d.SubMul(acc[i], x[i], q)
	}
}
