package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimulationKey_Derive(t *testing.T) {
	key := SimulationKey(42)

	assert.Equal(t, key.Derive("demand"), key.Derive("demand"), "same name gives the same child")
	assert.NotEqual(t, key.Derive("demand"), key.Derive("costs"))
	assert.NotEqual(t, key, key.Derive("demand"), "a child never reuses the master stream")
	assert.NotEqual(t, SimulationKey(43).Derive("demand"), key.Derive("demand"))
}

func TestSimulationKey_ExperimentKeysAreDistinct(t *testing.T) {
	key := SimulationKey(0)
	seen := make(map[SimulationKey]int)
	for i := 0; i < 100; i++ {
		k := key.Experiment(i)
		if prev, ok := seen[k]; ok {
			t.Fatalf("experiments %d and %d share key %d", prev, i, k)
		}
		seen[k] = i
	}
	assert.Equal(t, key.Derive("experiment_3"), key.Experiment(3))
}

func TestSimulationKey_SameKeySameStream(t *testing.T) {
	a, b := SimulationKey(-9).newRand(), SimulationKey(-9).newRand()
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.NormFloat64(), b.NormFloat64(), "draw %d", i)
	}
}

func TestRandomKey_VariesBetweenCalls(t *testing.T) {
	assert.NotEqual(t, RandomKey(), RandomKey())
}
