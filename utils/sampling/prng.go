package sampling

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
)

// KeySize is the size in bytes of the keys derived by NewSeededPRNG and Fork.
const KeySize = 32

// PRNG is a source of random bytes.
type PRNG interface {
	io.Reader
}

// SystemPRNG reads from crypto/rand. It is safe for concurrent use.
type SystemPRNG struct{}

// Read fills p with random bytes.
func (SystemPRNG) Read(p []byte) (n int, err error) {
	return rand.Read(p)
}

// KeyedPRNG expands a key into a deterministic stream of bytes with the blake2b XOF.
// Two instances created with the same key produce the same stream, which makes the
// random bases derived from it reproducible.
// The stream is only deterministic if Read is not called concurrently.
type KeyedPRNG struct {
	mu  sync.Mutex
	key []byte
	xof blake2b.XOF
}

// NewKeyedPRNG returns a new KeyedPRNG for the given key of at most 64 bytes.
// A nil key is treated as an empty key.
func NewKeyedPRNG(key []byte) (*KeyedPRNG, error) {
	xof, err := blake2b.NewXOF(blake2b.OutputLengthUnknown, key)
	if err != nil {
		return nil, fmt.Errorf("cannot NewKeyedPRNG: %w", err)
	}
	prng := &KeyedPRNG{key: make([]byte, len(key)), xof: xof}
	copy(prng.key, key)
	return prng, nil
}

// NewSeededPRNG derives a key of KeySize bytes from a seed of arbitrary length
// with blake3 and returns the corresponding KeyedPRNG.
func NewSeededPRNG(seed []byte) (*KeyedPRNG, error) {
	hasher := blake3.New()
	if _, err := hasher.Write(seed); err != nil {
		return nil, fmt.Errorf("cannot NewSeededPRNG: %w", err)
	}
	key := make([]byte, KeySize)
	if _, err := hasher.Digest().Read(key); err != nil {
		return nil, fmt.Errorf("cannot NewSeededPRNG: %w", err)
	}
	return NewKeyedPRNG(key)
}

// Key returns a copy of the key of the PRNG.
func (prng *KeyedPRNG) Key() (key []byte) {
	key = make([]byte, len(prng.key))
	copy(key, prng.key)
	return
}

// Read fills p with the next bytes of the stream.
func (prng *KeyedPRNG) Read(p []byte) (n int, err error) {
	prng.mu.Lock()
	defer prng.mu.Unlock()
	return prng.xof.Read(p)
}

// Reset rewinds the stream to its beginning.
func (prng *KeyedPRNG) Reset() {
	prng.mu.Lock()
	defer prng.mu.Unlock()
	prng.xof.Reset()
}

// Fork returns a new KeyedPRNG keyed with the next KeySize bytes of the stream.
func (prng *KeyedPRNG) Fork() (*KeyedPRNG, error) {
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(prng, key); err != nil {
		return nil, fmt.Errorf("cannot Fork: %w", err)
	}
	return NewKeyedPRNG(key)
}
