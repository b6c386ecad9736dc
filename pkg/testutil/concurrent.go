package testutil

import (
	"sync"
	"sync/atomic"

	dErrors "examreg/pkg/domain-errors"
)

// ConcurrentResult tracks outcomes of concurrent test operations.
type ConcurrentResult struct {
	Successes int32
	Timeouts  int32
	Errors    int32
}

// Total returns the total number of operations executed.
func (r *ConcurrentResult) Total() int32 {
	return r.Successes + r.Timeouts + r.Errors
}

// RunConcurrent executes fn in parallel goroutines and collects results.
// Errors carrying CodeTimeout are counted separately.
func RunConcurrent(goroutines int, fn func(idx int) error) *ConcurrentResult {
	var wg sync.WaitGroup
	var successes, timeouts, errs atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			err := fn(idx)
			switch {
			case err == nil:
				successes.Add(1)
			case dErrors.HasCode(err, dErrors.CodeTimeout):
				timeouts.Add(1)
			default:
				errs.Add(1)
			}
		}(i)
	}

	wg.Wait()

	return &ConcurrentResult{
		Successes: successes.Load(),
		Timeouts:  timeouts.Load(),
		Errors:    errs.Load(),
	}
}

// RunConcurrentCollect executes fn in parallel and returns every value it
// produced alongside the errors.
func RunConcurrentCollect[T any](goroutines int, fn func(idx int) (T, error)) (values []T, errs []error) {
	var wg sync.WaitGroup
	var mu sync.Mutex

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			v, err := fn(idx)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			values = append(values, v)
		}(i)
	}

	wg.Wait()
	return values, errs
}
