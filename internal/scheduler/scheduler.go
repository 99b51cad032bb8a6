// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package scheduler

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/matt-FFFFFF/concur/internal/color"
	"github.com/matt-FFFFFF/concur/internal/ctxlog"
	"github.com/matt-FFFFFF/concur/internal/invoke"
	"github.com/matt-FFFFFF/concur/internal/output"
	"github.com/matt-FFFFFF/concur/internal/procreg"
	"github.com/matt-FFFFFF/concur/internal/progress"
	"github.com/matt-FFFFFF/concur/internal/task"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Config configures a Scheduler.
type Config struct {
	Limit          int                  // Maximum items in flight, at least 1.
	Flags          []string             // Passed to every child after the task name.
	Invoker        invoke.Invoker       // Builds the child process for a task name.
	Registry       *procreg.Registry    // Tracks live children for teardown. Defaults to a private registry.
	Output         *output.Multiplexer  // Child output routing. Defaults to buffered os.Stdout.
	Reporter       progress.Reporter    // Receives lifecycle events. Defaults to a NullReporter.
	ReportOutput   bool                 // Also report the last line of child output as EventOutput.
	OnItemComplete func(result *Result) // Called once per top-level item that ran.
}

// Stats is a snapshot of item accounting. Sequences count as one item.
// Pending + Running + Completed always equals Total.
type Stats struct {
	Total     int
	Pending   int
	Running   int
	Completed int
}

// Scheduler runs task items under a concurrency limit.
type Scheduler struct {
	cfg   Config
	flags []string

	mu    sync.Mutex // guards stats and serialises OnItemComplete
	stats Stats
}

// New validates cfg and returns a Scheduler.
// The colour flag is normalised here, once, for every child of every run.
func New(cfg Config) (*Scheduler, error) {
	if cfg.Limit < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLimit, cfg.Limit)
	}

	if cfg.Invoker == nil {
		return nil, ErrNoInvoker
	}

	if cfg.Registry == nil {
		cfg.Registry = procreg.New()
	}

	if cfg.Output == nil {
		cfg.Output = output.New(output.ModeBuffered, os.Stdout, os.Stderr)
	}

	if cfg.Reporter == nil {
		cfg.Reporter = progress.NullReporter{}
	}

	return &Scheduler{
		cfg:   cfg,
		flags: color.NormalizeFlags(cfg.Flags),
	}, nil
}

// Flags returns the flags passed to every child.
func (s *Scheduler) Flags() []string {
	return s.flags
}

// Stats returns the current item accounting.
func (s *Scheduler) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stats
}

// Run executes items and returns one result per item, in input order, along
// with the first failure recorded. Items not admitted because of a failure or
// a cancelled context are reported as StatusNotStarted.
func (s *Scheduler) Run(ctx context.Context, items []task.Item) (Results, error) {
	results := make(Results, len(items))
	for i, item := range items {
		results[i] = notStarted(item)
	}

	s.mu.Lock()
	s.stats = Stats{Total: len(items), Pending: len(items)}
	s.mu.Unlock()

	if len(items) == 0 {
		return results, nil
	}

	if s.cfg.Limit < len(items) {
		ctxlog.Warn(ctx, "fewer concurrency slots than tasks, some tasks will wait for a free slot",
			"limit", s.cfg.Limit, "tasks", len(items))
	}

	var (
		sem     = semaphore.NewWeighted(int64(s.cfg.Limit))
		g       errgroup.Group
		failed  atomic.Bool
		stopErr error
	)

	for i, item := range items {
		if err := sem.Acquire(ctx, 1); err != nil {
			stopErr = err
			break
		}

		if err := ctx.Err(); err != nil {
			sem.Release(1)

			stopErr = err

			break
		}

		if failed.Load() {
			sem.Release(1)
			ctxlog.Debug(ctx, "not admitting further tasks after failure", "remaining", len(items)-i)

			break
		}

		s.transition(func(st *Stats) { st.Pending--; st.Running++ })

		g.Go(func() error {
			defer sem.Release(1)

			res := s.runNode(ctx, []string{item.Label()}, item)
			results[i] = res

			if res.Status == StatusFailed {
				failed.Store(true)
			}

			s.transition(func(st *Stats) { st.Running--; st.Completed++ })
			s.itemComplete(res)

			return res.Error
		})
	}

	err := g.Wait()

	for _, res := range results {
		if res.Status == StatusNotStarted {
			s.report(progress.EventSkipped, []string{res.Label}, "not started", nil)
		}
	}

	if err == nil && stopErr != nil {
		err = fmt.Errorf("%w: %w", ErrAdmissionStopped, stopErr)
	}

	return results, err
}

func (s *Scheduler) transition(fn func(*Stats)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.stats)
}

func (s *Scheduler) itemComplete(res *Result) {
	if s.cfg.OnItemComplete == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cfg.OnItemComplete(res)
}

func (s *Scheduler) report(typ progress.EventType, path []string, msg string, res *Result) {
	e := progress.Event{
		Path:      path,
		Type:      typ,
		Message:   msg,
		Timestamp: time.Now(),
	}

	if res != nil {
		e.Data = progress.EventData{ExitCode: res.ExitCode, Error: res.Error}
	}

	s.cfg.Reporter.Report(e)
}

func (s *Scheduler) finish(path []string, res *Result) *Result {
	if res.Error != nil {
		res.Status = StatusFailed
		s.report(progress.EventFailed, path, res.Error.Error(), res)

		return res
	}

	res.Status = StatusSuccess
	s.report(progress.EventCompleted, path, "done", res)

	return res
}
