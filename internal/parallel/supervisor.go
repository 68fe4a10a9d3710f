package parallel

import (
	"context"
	"sync"
)

// Job is one unit of supervised work: a function that either produces a
// result or fails, observing ctx cancellation.
type Job func(ctx context.Context) (interface{}, error)

// Result pairs a Job's index (so callers can correlate results back to
// their inputs) with its outcome.
type Result struct {
	Index int
	Value interface{}
	Err   error
}

// Supervisor runs a batch of Jobs over a WorkerPool under a shared
// concurrency cap and an optional deadline, collecting every result
// before returning. It is the adaptation of WorkerPool (pool.go) this
// module needed for running several independent search engines at once
// (pbesynth.SolveBranches runs one restricted-subset engine per
// conditional-learning branch through it), rather than one goal stream
// fanning out miniKanren substitutions.
type Supervisor struct {
	pool *WorkerPool
}

// NewSupervisor builds a Supervisor backed by a worker pool capped at
// maxConcurrent (0 meaning "one worker per CPU", the same default
// NewWorkerPool uses).
func NewSupervisor(maxConcurrent int) *Supervisor {
	return &Supervisor{pool: NewWorkerPool(maxConcurrent)}
}

// RunAll submits every job to the pool and blocks until every submitted
// job has returned. A job whose submission fails (ctx already cancelled,
// or the pool shut down) contributes a Result carrying that submission
// error; submitted jobs run to completion and report their own result,
// observing ctx themselves rather than being force-killed, matching
// WorkerPool's own "finish in-flight work" shutdown discipline.
func (s *Supervisor) RunAll(ctx context.Context, jobs []Job) []Result {
	results := make([]Result, len(jobs))
	var wg sync.WaitGroup
	for i, job := range jobs {
		i, job := i, job
		wg.Add(1)
		err := s.pool.Submit(ctx, func() {
			defer wg.Done()
			v, err := job(ctx)
			results[i] = Result{Index: i, Value: v, Err: err}
		})
		if err != nil {
			wg.Done()
			results[i] = Result{Index: i, Err: err}
		}
	}
	wg.Wait()
	return results
}

// RunFirst behaves like RunAll but returns as soon as one job succeeds
// (Err == nil), cancelling the shared context so the remaining jobs can
// unwind early. It is the cross-engine counterpart of the first-wins race
// pbesynth's raceInto runs within one engine; outside its tests, nothing
// in this module calls it.
func (s *Supervisor) RunFirst(ctx context.Context, jobs []Job) (Result, bool) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	out := make(chan Result, len(jobs))
	var wg sync.WaitGroup
	for i, job := range jobs {
		i, job := i, job
		wg.Add(1)
		err := s.pool.Submit(ctx, func() {
			defer wg.Done()
			v, err := job(ctx)
			out <- Result{Index: i, Value: v, Err: err}
		})
		if err != nil {
			wg.Done()
		}
	}
	go func() {
		wg.Wait()
		close(out)
	}()

	for r := range out {
		if r.Err == nil {
			cancel()
			return r, true
		}
	}
	return Result{}, false
}

// Shutdown releases the underlying worker pool.
func (s *Supervisor) Shutdown() {
	s.pool.Shutdown()
}
