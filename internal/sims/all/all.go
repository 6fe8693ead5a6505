// Package all registers every built-in rewrite program with core.Register.
package all

import (
	_ "github.com/marceline-cramer/crabby-markov/internal/sims/backtracker"
	_ "github.com/marceline-cramer/crabby-markov/internal/sims/flood"
	_ "github.com/marceline-cramer/crabby-markov/internal/sims/growth"
	_ "github.com/marceline-cramer/crabby-markov/internal/sims/river"
)
