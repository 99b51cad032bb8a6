// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package scheduler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/matt-FFFFFF/concur/internal/ctxlog"
	"github.com/matt-FFFFFF/concur/internal/invoke"
	"github.com/matt-FFFFFF/concur/internal/output"
	"github.com/matt-FFFFFF/concur/internal/procreg"
	"github.com/matt-FFFFFF/concur/internal/progress"
	"github.com/matt-FFFFFF/concur/internal/task"
)

func (s *Scheduler) runNode(ctx context.Context, path []string, item task.Item) *Result {
	switch item.Kind {
	case task.KindLeaf:
		return s.runLeaf(ctx, path, item)
	case task.KindSequence:
		return s.runSequence(ctx, path, item)
	default:
		res := notStarted(item)
		res.ExitCode = -1
		res.Error = item.Validate()

		return s.finish(path, res)
	}
}

// runSequence runs the children of item in order and stops at the first failure.
func (s *Scheduler) runSequence(ctx context.Context, path []string, item task.Item) *Result {
	item = item.WithEnv(nil)
	res := notStarted(item)
	res.Status = StatusRunning
	start := time.Now()

	s.report(progress.EventStarted, path, "started", nil)

	for i, child := range item.Children {
		childPath := append(path[:len(path):len(path)], child.Label())

		if err := ctx.Err(); err != nil {
			res.Error = fmt.Errorf("%w before %s: %w", ErrAdmissionStopped, child.Label(), err)
			res.ExitCode = -1

			break
		}

		cr := s.runNode(ctx, childPath, child)
		res.Children[i] = cr

		if cr.Status == StatusFailed {
			ctxlog.Debug(ctx, "sequence stopped", "sequence", res.Label, "failed", cr.Label,
				"skipped", len(item.Children)-i-1)

			res.Error = cr.Error
			res.ExitCode = cr.ExitCode

			break
		}
	}

	for _, cr := range res.Children {
		if cr.Status == StatusNotStarted {
			s.report(progress.EventSkipped, append(path[:len(path):len(path)], cr.Label), "not started", nil)
		}
	}

	res.Duration = time.Since(start)

	return s.finish(path, res)
}

// runLeaf spawns one child, registers it for teardown and waits for it.
func (s *Scheduler) runLeaf(ctx context.Context, path []string, item task.Item) *Result {
	res := &Result{
		Label:  item.Name,
		Kind:   task.KindLeaf,
		Status: StatusRunning,
	}

	if err := item.Validate(); err != nil {
		res.ExitCode = -1
		res.Error = err

		return s.finish(path, res)
	}

	logger := ctxlog.Logger(ctx).With("task", item.Name)
	start := time.Now()

	defer func() { res.Duration = time.Since(start) }()

	cmd, err := s.cfg.Invoker.Command(ctx, item.Name, s.flags)
	if err != nil {
		return s.finish(path, spawnFailed(res, err))
	}

	base := cmd.Env
	if base == nil {
		base = os.Environ()
	}

	cmd.Env = invoke.MergeEnv(base, item.Env)

	sink := s.cfg.Output.Attach(item.Name)
	cmd.Stdout = sink.Stdout()
	cmd.Stderr = sink.Stderr()

	if s.cfg.ReportOutput {
		tap := output.NewLastLine(func(line string) {
			s.report(progress.EventOutput, path, line, nil)
		})
		cmd.Stdout = io.MultiWriter(cmd.Stdout, tap)
		cmd.Stderr = io.MultiWriter(cmd.Stderr, tap)
	}

	procreg.Prepare(cmd)

	logger.Debug("starting process", "path", cmd.Path, "args", cmd.Args[1:])

	if err := cmd.Start(); err != nil {
		_ = sink.Close()
		return s.finish(path, spawnFailed(res, err))
	}

	s.report(progress.EventStarted, path, "started", nil)

	h := procreg.FromProcess(cmd.Process)
	if err := s.cfg.Registry.Register(ctx, h); err != nil {
		// The registry killed the child already; reap it.
		_ = cmd.Wait()
		_ = sink.Close()
		res.ExitCode = -1
		res.Error = &TaskError{Name: item.Name, ExitCode: -1, Err: err}

		return s.finish(path, res)
	}

	logger.Debug("process started", "pid", h.Pid())

	waitErr := cmd.Wait()

	s.cfg.Registry.Unregister(h)

	if err := sink.Close(); err != nil {
		logger.Warn("could not write task output", "error", err)
	}

	res.StdOut = sink.StdOut()
	res.StdErr = sink.StdErr()
	res.ExitCode = cmd.ProcessState.ExitCode()

	logger.Debug("process finished", "exitCode", res.ExitCode)

	if waitErr != nil {
		res.Error = &TaskError{Name: item.Name, ExitCode: res.ExitCode, Err: waitErr}

		var ee *exec.ExitError
		if !errors.As(waitErr, &ee) && res.ExitCode == 0 {
			res.ExitCode = -1
		}
	}

	return s.finish(path, res)
}

func spawnFailed(res *Result, err error) *Result {
	res.ExitCode = -1
	res.Error = &TaskError{
		Name:     res.Label,
		ExitCode: -1,
		Err:      fmt.Errorf("%w: %w", ErrCouldNotStartProcess, err),
	}

	return res
}
