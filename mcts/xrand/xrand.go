// Package xrand is the seeded pseudo-random source shared by mcts for
// Dirichlet root noise and stochastic move sampling.
package xrand

import (
	"math/rand"

	distrand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distmv"
)

// Source is a process-internal seeded generator, used from one
// goroutine at a time.
type Source struct {
	r      *rand.Rand
	dirSrc distrand.Source
}

// New returns a Source seeded with seed. Tests that need determinism
// should construct one explicitly with a fixed seed.
func New(seed int64) *Source {
	return &Source{
		r:      rand.New(rand.NewSource(seed)),
		dirSrc: distrand.NewSource(uint64(seed)),
	}
}

// Float64 returns a uniform value in [0, 1).
func (s *Source) Float64() float64 {
	return s.r.Float64()
}

// Intn returns a uniform value in [0, n).
func (s *Source) Intn(n int) int {
	return s.r.Intn(n)
}

// Dirichlet draws a length-n sample from a symmetric Dirichlet(alpha)
// distribution, using gonum's distmv implementation over this
// Source's x/exp/rand stream.
func (s *Source) Dirichlet(n int, alpha float64) []float64 {
	alphas := make([]float64, n)
	for i := range alphas {
		alphas[i] = alpha
	}
	d, ok := distmv.NewDirichlet(alphas, s.dirSrc)
	if !ok {
		panic("xrand: invalid Dirichlet parameters")
	}
	return d.Rand(nil)
}

// SampleCategorical samples an index from weights, proportional to
// each weight. weights must sum to a positive value.
func (s *Source) SampleCategorical(weights []float64) int {
	var total float64
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		panic("xrand: SampleCategorical requires a positive weight sum")
	}
	target := s.Float64() * total
	var accum float64
	for i, w := range weights {
		accum += w
		if target < accum {
			return i
		}
	}
	return len(weights) - 1
}
