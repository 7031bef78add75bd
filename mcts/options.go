package mcts

// Options configures an MCTS driver.
type Options struct {
	NumSimulations   int
	CPuct            float32
	DirichletAlpha   float32
	DirichletEpsilon float32
}

// DefaultOptions returns 800 simulations, c_puct=1.5, Dirichlet
// alpha=0.3, epsilon=0.25.
func DefaultOptions() Options {
	return Options{
		NumSimulations:   800,
		CPuct:            1.5,
		DirichletAlpha:   0.3,
		DirichletEpsilon: 0.25,
	}
}

// IsValid reports whether the options are usable.
func (o Options) IsValid() bool {
	return o.NumSimulations > 0 && o.CPuct > 0
}
