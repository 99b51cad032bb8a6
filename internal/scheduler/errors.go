// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package scheduler

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLimit is returned by New when the limit is less than one.
	ErrInvalidLimit = errors.New("limit must be a positive integer")
	// ErrNoInvoker is returned by New when no Invoker is configured.
	ErrNoInvoker = errors.New("no task invoker configured")
	// ErrCouldNotStartProcess is wrapped by a TaskError when the child could not be spawned.
	ErrCouldNotStartProcess = errors.New("could not start process")
	// ErrAdmissionStopped is returned when the context ended before every item was admitted.
	ErrAdmissionStopped = errors.New("admission stopped")
)

// TaskError is the failure of one leaf task.
type TaskError struct {
	Name     string
	ExitCode int
	Err      error
}

// Error implements the error interface.
func (e *TaskError) Error() string {
	if e.ExitCode > 0 {
		return fmt.Sprintf("task %q failed with exit code %d", e.Name, e.ExitCode)
	}

	return fmt.Sprintf("task %q failed: %v", e.Name, e.Err)
}

// Unwrap returns the underlying error.
func (e *TaskError) Unwrap() error {
	return e.Err
}
