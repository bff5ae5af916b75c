package recipe

import (
	"sync"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
)

// EvalTimeout is the default limit for a single evaluation.
const EvalTimeout = 5 * time.Second

type evalResult struct {
	recipe *Recipe
	errors []EvalError
	err    error
}

// waitWithTimeout waits for a result from ch, giving up after timeout.
// Results from an evaluation older than the current generation are
// discarded.
//
// On timeout the evaluating goroutine may still be running; the
// generation check drops its result when it eventually completes.
func waitWithTimeout(
	ch <-chan evalResult,
	gen uint64,
	mu *sync.Mutex,
	currentGen *uint64,
	timeout time.Duration,
) (*Recipe, []EvalError, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		mu.Lock()
		current := *currentGen
		mu.Unlock()

		if gen != current {
			return nil, nil, errors.New("evaluation superseded by newer request").
				WithTag("generation", gen).
				WithTag("current", current)
		}
		return res.recipe, res.errors, res.err

	case <-timer.C:
		return nil, nil, errors.Newf("evaluation timed out after %s", timeout)
	}
}
