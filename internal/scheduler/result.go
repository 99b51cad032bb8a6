// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package scheduler

import (
	"slices"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/concur/internal/task"
)

// Status is the state of a Result.
type Status int

const (
	// StatusNotStarted means the item was never admitted, or a sequence stopped before it.
	StatusNotStarted Status = iota
	// StatusRunning means the item has been admitted and not finished.
	StatusRunning
	// StatusSuccess means the item finished without error.
	StatusSuccess
	// StatusFailed means the item, or a child of a sequence, failed.
	StatusFailed
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusNotStarted:
		return "not started"
	case StatusRunning:
		return "running"
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the outcome of one item. Sequence results hold one child per member.
type Result struct {
	Label    string
	Kind     task.Kind
	Status   Status
	ExitCode int
	Error    error
	StdOut   []byte
	StdErr   []byte
	Duration time.Duration
	Children Results
}

// Results is a list of item results in input order.
type Results []*Result

func notStarted(item task.Item) *Result {
	res := &Result{
		Label:  item.Label(),
		Kind:   item.Kind,
		Status: StatusNotStarted,
	}

	if item.Kind == task.KindSequence {
		res.Children = make(Results, len(item.Children))
		for i, c := range item.Children {
			res.Children[i] = notStarted(c)
		}
	}

	return res
}

// HasError reports whether any result, at any depth, failed.
func (r Results) HasError() bool {
	for v := range slices.Values(r) {
		if v.Status == StatusFailed || v.Error != nil {
			return true
		}

		if v.Children.HasError() {
			return true
		}
	}

	return false
}

// Failed returns the failed top-level results.
func (r Results) Failed() Results {
	var out Results

	for _, v := range r {
		if v.Status == StatusFailed {
			out = append(out, v)
		}
	}

	return out
}

// NotStarted returns the number of top-level results that were never admitted.
func (r Results) NotStarted() int {
	n := 0

	for _, v := range r {
		if v.Status == StatusNotStarted {
			n++
		}
	}

	return n
}

// Err combines the errors of every failed top-level result, or returns nil.
func (r Results) Err() error {
	var result *multierror.Error

	for _, v := range r.Failed() {
		if v.Error != nil {
			result = multierror.Append(result, v.Error)
		}
	}

	return result.ErrorOrNil()
}
