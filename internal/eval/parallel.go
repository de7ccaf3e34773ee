package eval

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/gammazero/workerpool"
	"golang.org/x/sync/errgroup"

	"github.com/latchlang/latch/internal/ast"
	"github.com/latchlang/latch/internal/value"
)

// execParallel implements `parallel v in iter [workers=N] { body }`.
//
// The iteration snapshot is taken once, up front: the scope chain is
// cloned before any worker starts, and each worker runs on its own
// clone of that snapshot, so a worker's view of enclosing variables is
// insulated from what other workers (or the main body, once this
// statement returns) do to those names afterward. Every
// worker runs to completion regardless of whether an earlier-index
// worker failed — there is no cancel-on-error — and the statement's
// reported error is whichever one belongs to the lowest input index,
// not whichever finished first. This mirrors the original
// implementation's approach of collecting results into a slice indexed
// by input position and scanning it afterward, translated from a
// rayon-backed parallel map into a bounded goroutine pool.
func (in *Interpreter) execParallel(n *ast.ParallelStmt, env *value.Environment) error {
	iterVal, err := in.eval(n.Iter, env)
	if err != nil {
		return err
	}
	items, err := iterableElems(iterVal)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}

	explicitWorkers := false
	workers := in.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if n.Workers != nil {
		wv, err := in.eval(n.Workers, env)
		if err != nil {
			return err
		}
		if wv.Kind != value.KindInt || wv.Int <= 0 {
			return errParallelWorkers
		}
		workers = int(wv.Int)
		explicitWorkers = true
	}
	if workers > len(items) {
		workers = len(items)
	}

	snapshot := env.Clone()
	results := make([]error, len(items))

	run := func(idx int, item value.Value) {
		child := value.NewEnvironment(snapshot.Clone())
		child.Bind(n.Var, item)
		if runErr := in.execBlockInEnv(n.Body, child); runErr != nil {
			// break/continue have no enclosing loop inside a worker body,
			// so they're treated as errors and surfaced by the first-error
			// rule below, same as any other runtime error.
			if _, ok := runErr.(breakSignal); ok {
				results[idx] = fmt.Errorf("break used outside of a loop")
				return
			}
			if _, ok := runErr.(continueSignal); ok {
				results[idx] = fmt.Errorf("continue used outside of a loop")
				return
			}
			results[idx] = runErr
		}
	}

	if explicitWorkers {
		// `workers=N` pins a fixed-size pool: gammazero/workerpool gives
		// an explicit bounded queue rather than a soft concurrency cap.
		pool := workerpool.New(workers)
		var wg sync.WaitGroup
		for idx, item := range items {
			idx, item := idx, item
			wg.Add(1)
			pool.Submit(func() {
				defer wg.Done()
				run(idx, item)
			})
		}
		wg.Wait()
		pool.StopWait()
	} else {
		// Unpinned default: errgroup.SetLimit caps fan-out at the
		// interpreter's Workers setting (GOMAXPROCS when that is unset),
		// never more than the number of items, without sizing a pool.
		var g errgroup.Group
		g.SetLimit(workers)
		for idx, item := range items {
			idx, item := idx, item
			g.Go(func() error {
				run(idx, item)
				return nil
			})
		}
		_ = g.Wait()
	}

	for _, e := range results {
		if e != nil {
			return e
		}
	}
	return nil
}

var errParallelWorkers = &parallelWorkersError{}

type parallelWorkersError struct{}

func (*parallelWorkersError) Error() string { return "workers must be a positive integer" }
