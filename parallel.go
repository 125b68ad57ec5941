package timewalk

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// WalkParts runs one independent walk per part, concurrently. The core
// walk stays single-threaded and synchronous; this is the caller-level
// layering of parallelism over disjoint subtrees the engine contract
// allows. Each part gets its own sink from sinkFor, so no sink is shared
// across goroutines. Measure/position bounds of the scope apply to every
// part; the scope must be score-rooted.
//
// The returned outcomes are indexed by part. A failed part walk fails the
// whole call; other walks still run to completion.
func (w *Walker) WalkParts(scope Scope, sinkFor func(part int) Sink) ([]Outcome, error) {
	if len(scope.root) != 0 {
		return nil, fmt.Errorf("%w: WalkParts requires a score-rooted scope, got %s", ErrUnresolvableRoot, scope.root)
	}

	outcomes := make([]Outcome, len(w.score.Parts))
	var g errgroup.Group
	for pi := range w.score.Parts {
		pi := pi
		g.Go(func() error {
			partScope := scope
			partScope.root = Path{{Kind: StepPart, Index: pi}}
			outcome, err := w.Walk(partScope, sinkFor(pi))
			outcomes[pi] = outcome
			if err != nil {
				return fmt.Errorf("part %d: %w", pi, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return outcomes, err
	}
	return outcomes, nil
}
