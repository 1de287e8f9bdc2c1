package pipeline

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// runCuts executes every task and fills the outcome arena. Each task owns a
// distinct slot, so parallel workers write without coordination and slot
// order is the sole ordering authority downstream.
func (r *Runner) runCuts(ctx context.Context, tasks []cutTask, opts RunOptions) []cutOutcome {
	outcomes := make([]cutOutcome, len(tasks))
	if len(tasks) == 0 {
		return outcomes
	}
	if opts.Parallel {
		r.runCutsParallel(ctx, tasks, outcomes, opts.Workers)
	} else {
		r.runCutsSequential(ctx, tasks, outcomes)
	}
	return outcomes
}

// runCutsSequential cuts in slot order. The first failure in a file skips
// that file's remaining chapters; other files are unaffected.
func (r *Runner) runCutsSequential(ctx context.Context, tasks []cutTask, outcomes []cutOutcome) {
	failedFiles := make(map[int]bool)
	var done int
	for _, task := range tasks {
		if failedFiles[task.fileIdx] {
			outcomes[task.seq] = cutOutcome{skipped: true}
			continue
		}
		err := r.cutOne(ctx, task)
		outcomes[task.seq] = cutOutcome{err: err}
		if err != nil {
			failedFiles[task.fileIdx] = true
		}
		done++
		r.emit(Event{
			Kind:      EventSegmentExtracted,
			File:      task.input,
			Chapter:   task.chapter,
			Completed: done,
			Total:     len(tasks),
			Failed:    err != nil,
		})
	}
}

// runCutsParallel fans tasks out to a bounded worker pool. Every scheduled
// task is attempted; failures land in their slots and are reconciled with
// per-file results when the arena is collected.
func (r *Runner) runCutsParallel(ctx context.Context, tasks []cutTask, outcomes []cutOutcome, workers int) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(tasks) {
		workers = len(tasks)
	}

	queue := make(chan cutTask)
	var wg sync.WaitGroup
	var done atomic.Int64
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range queue {
				err := r.cutOne(ctx, task)
				outcomes[task.seq] = cutOutcome{err: err}
				r.emit(Event{
					Kind:      EventSegmentExtracted,
					File:      task.input,
					Chapter:   task.chapter,
					Completed: int(done.Add(1)),
					Total:     len(tasks),
					Failed:    err != nil,
				})
			}
		}()
	}
	for _, task := range tasks {
		queue <- task
	}
	close(queue)
	wg.Wait()
}

func (r *Runner) cutOne(ctx context.Context, task cutTask) error {
	r.logger.Debug("extracting segment", "path", task.input,
		"chapter", task.chapter.Title, "output", task.output)
	err := r.backend.Cut(ctx, task.input, task.chapter, task.output)
	if err != nil {
		r.logger.Error("segment extraction failed", "path", task.input,
			"chapter", task.chapter.Title, "error", err)
	}
	return err
}
