package rng

import (
	"crypto/rand"
	"math/big"
)

// Crypto draws from crypto/rand
// This is the generator used for live rooms
type Crypto struct{}

// Intn returns a random number from 0 <= x < n
func (Crypto) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn called with n <= 0")
	}

	b, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}

	return int(b.Int64())
}
