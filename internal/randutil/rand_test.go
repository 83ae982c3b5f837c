package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)
	for range 100 {
		require.Equal(t, a.Int64(), b.Int64())
	}
}

func TestSattoloHasNoFixedPoints(t *testing.T) {
	rng := New(7)
	for round := range 1000 {
		s := make([]int, 52)
		for i := range s {
			s[i] = i
		}
		Sattolo(rng, s)
		for i, v := range s {
			require.NotEqualf(t, i, v, "round %d: element %d stayed in place", round, v)
		}
	}
}

func TestSattoloProducesSingleCycle(t *testing.T) {
	rng := New(99)
	s := make([]int, 13)
	for i := range s {
		s[i] = i
	}
	Sattolo(rng, s)

	// following the permutation from 0 must visit every index before returning
	seen := 0
	for i := s[0]; ; i = s[i] {
		seen++
		if i == 0 {
			break
		}
	}
	assert.Equal(t, len(s), seen)
}

func TestSattoloSmallSlices(t *testing.T) {
	rng := New(1)

	var empty []int
	Sattolo(rng, empty)

	one := []int{5}
	Sattolo(rng, one)
	assert.Equal(t, []int{5}, one)

	two := []int{0, 1}
	Sattolo(rng, two)
	assert.Equal(t, []int{1, 0}, two)
}
