// Package dice rolls the six-sided dice pools used by skill tests.
package dice

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

const (
	// Sides is the number of faces on every die in a pool.
	Sides = 6
	// SuccessThreshold is the lowest face that counts as a success.
	SuccessThreshold = 5
)

// Pool is the outcome of rolling a number of dice.
type Pool struct {
	Rolls     []int
	Successes int
}

// Passed reports whether the pool contains at least one success.
func (p Pool) Passed() bool {
	return p.Successes >= 1
}

// Roll rolls count dice using rng. A count of zero or less rolls nothing and
// therefore cannot pass.
//
// Roll is deterministic with respect to the state of rng: two generators built
// from the same seed produce the same pools in the same order.
func Roll(rng *rand.Rand, count int) Pool {
	if count <= 0 {
		return Pool{Rolls: []int{}}
	}
	pool := Pool{Rolls: make([]int, count)}
	for i := 0; i < count; i++ {
		value := rng.Intn(Sides) + 1
		pool.Rolls[i] = value
		if value >= SuccessThreshold {
			pool.Successes++
		}
	}
	return pool
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// NewRand returns a generator seeded with seed, or with a fresh crypto seed
// when seed is zero.
func NewRand(seed int64) (*rand.Rand, int64, error) {
	if seed == 0 {
		s, err := NewSeed()
		if err != nil {
			return nil, 0, err
		}
		seed = s
	}
	return rand.New(rand.NewSource(seed)), seed, nil
}
