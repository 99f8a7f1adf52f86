// Package health provides on-demand reachability probes for remote
// dependencies. Unlike a server-side probe loop, checks run only when asked
// (the user invoking a status command), fan out concurrently, and each check
// is bounded by its own timeout.
package health

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// CheckFunc probes a single dependency. It returns nil when the dependency
// is reachable, or an error describing the problem.
type CheckFunc func(ctx context.Context) error

type probe struct {
	name    string
	timeout time.Duration
	check   CheckFunc
}

// Result is the outcome of one probe. Err is nil when the dependency is
// reachable.
type Result struct {
	Name string
	Err  error
}

// Prober holds a set of named reachability checks.
type Prober struct {
	probes []probe
}

// New creates an empty Prober.
func New() *Prober {
	return &Prober{}
}

// Add registers a named check with a per-run timeout. Registration is not
// safe for concurrent use with Run; register everything up front.
func (p *Prober) Add(name string, timeout time.Duration, check CheckFunc) {
	p.probes = append(p.probes, probe{name: name, timeout: timeout, check: check})
}

// Run executes every registered check concurrently and returns one Result
// per check, in registration order. A failing check never aborts the others.
func (p *Prober) Run(ctx context.Context) []Result {
	results := make([]Result, len(p.probes))

	var g errgroup.Group
	for i, pr := range p.probes {
		g.Go(func() error {
			checkCtx, cancel := context.WithTimeout(ctx, pr.timeout)
			defer cancel()

			results[i] = Result{Name: pr.name, Err: pr.check(checkCtx)}
			return nil
		})
	}
	_ = g.Wait()

	return results
}
