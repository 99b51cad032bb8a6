// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"context"
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matt-FFFFFF/concur/internal/ctxlog"
	"github.com/matt-FFFFFF/concur/internal/progress"
	"github.com/matt-FFFFFF/concur/internal/scheduler"
	"github.com/matt-FFFFFF/concur/internal/task"
)

// ErrInterrupted is returned by Run when the user quits the view before the
// run has finished.
var ErrInterrupted = errors.New("interrupted from the status view")

// RunFunc runs a group, reporting progress to reporter.
type RunFunc func(ctx context.Context, reporter progress.Reporter) (scheduler.Results, error)

// Runner manages the bubbletea program and forwards progress events to it.
type Runner struct {
	model    *Model
	program  *tea.Program
	reporter *Reporter
	mu       sync.Mutex
	exited   chan struct{}
}

// Reporter implements progress.Reporter and forwards events to the program.
type Reporter struct {
	program *tea.Program
	closed  bool
	mu      sync.RWMutex
}

// NewReporter creates a progress reporter that sends to program.
func NewReporter(program *tea.Program) *Reporter {
	return &Reporter{
		program: program,
	}
}

// Report implements progress.Reporter.
func (r *Reporter) Report(event progress.Event) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed || r.program == nil {
		return
	}

	r.program.Send(ProgressEventMsg{Event: event})
}

// Close stops forwarding events.
func (r *Reporter) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
}

// NewRunner creates a runner for the given items. The program renders inline
// and leaves signal handling to the caller. Extra options are appended, which
// is how tests redirect input and output.
func NewRunner(title string, items []task.Item, opts ...tea.ProgramOption) *Runner {
	model := NewModel(title, items)
	opts = append([]tea.ProgramOption{tea.WithoutSignalHandler()}, opts...)
	program := tea.NewProgram(model, opts...)

	return &Runner{
		model:    model,
		program:  program,
		reporter: NewReporter(program),
	}
}

// Reporter returns the progress reporter for this runner.
func (r *Runner) Reporter() progress.Reporter {
	return r.reporter
}

// Run starts the view, runs fn and waits for both to finish. The view quits
// by itself once fn returns. If the user quits the view first, Run returns
// ErrInterrupted without waiting for fn; the caller is expected to tear the
// run down.
func (r *Runner) Run(ctx context.Context, fn RunFunc) (scheduler.Results, error) {
	r.mu.Lock()
	r.exited = make(chan struct{})
	r.mu.Unlock()

	tuiDone := make(chan error, 1)

	go func() {
		defer close(r.exited)

		_, err := r.program.Run()
		tuiDone <- err
	}()

	type outcome struct {
		results scheduler.Results
		err     error
	}

	runDone := make(chan outcome, 1)

	go func() {
		res, err := fn(ctx, r.reporter)
		runDone <- outcome{res, err}
	}()

	select {
	case out := <-runDone:
		r.program.Send(RunFinishedMsg{Results: out.results, Err: out.err})

		if err := <-tuiDone; err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			ctxlog.Warn(ctx, "status view failed", "error", err)
		}

		r.reporter.Close()

		return out.results, out.err

	case err := <-tuiDone:
		r.reporter.Close()

		if r.model.Interrupted() {
			return nil, ErrInterrupted
		}

		if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			ctxlog.Warn(ctx, "status view failed", "error", err)
		}

		out := <-runDone

		return out.results, out.err
	}
}

// Kill stops the view immediately and restores the terminal. It waits for the
// program to exit if Run has started it.
func (r *Runner) Kill() {
	r.program.Kill()

	r.mu.Lock()
	exited := r.exited
	r.mu.Unlock()

	if exited != nil {
		<-exited
	}
}
