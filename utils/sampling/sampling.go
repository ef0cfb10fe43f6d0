// Package sampling implements secure sampling of bytes and integers.
package sampling

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// RandIntn returns a uniform random int in [0, n-1].
// It panics if n <= 0.
func RandIntn(reader io.Reader, n int) int {
	if n <= 0 {
		panic(fmt.Errorf("cannot RandIntn: n=%d must be positive", n))
	}
	return int(RandInt(reader, big.NewInt(int64(n))).Int64())
}

// RandSignedInt returns a uniform random int64 in [-bound, bound].
// It panics if bound < 0.
func RandSignedInt(reader io.Reader, bound int64) int64 {
	if bound < 0 {
		panic(fmt.Errorf("cannot RandSignedInt: bound=%d must be non-negative", bound))
	}
	return RandInt(reader, big.NewInt(2*bound+1)).Int64() - bound
}

// RandInt generates a random Int in [0, max-1].
func RandInt(reader io.Reader, max *big.Int) (n *big.Int) {
	var err error
	if n, err = rand.Int(reader, max); err != nil {
		panic(err)
	}
	return
}
