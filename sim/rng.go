package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// SimulationKey is the master seed of a reproducible run. A harness session
// draws from a stream seeded with its key; a scenario fans one key out into
// independent per-experiment keys with Derive.
type SimulationKey int64

// RandomKey returns a fresh key from the process-wide random source. Sessions
// that do not ask for a seed use it, so independent runs are uncorrelated.
func RandomKey() SimulationKey {
	return SimulationKey(rand.Int63())
}

// Derive returns the key of the named child stream: key XOR fnv1a64(name).
// Children of the same key with different names are independent; the same
// name always yields the same child.
func (k SimulationKey) Derive(name string) SimulationKey {
	return k ^ SimulationKey(fnv1a64(name))
}

// Experiment returns the key of experiment i of a scenario.
func (k SimulationKey) Experiment(i int) SimulationKey {
	return k.Derive(fmt.Sprintf("experiment_%d", i))
}

// Seed returns the key as a plain seed value.
func (k SimulationKey) Seed() int64 { return int64(k) }

func (k SimulationKey) newRand() *rand.Rand {
	return rand.New(rand.NewSource(int64(k)))
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
