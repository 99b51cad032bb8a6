// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package task

import (
	"errors"
	"fmt"
	"maps"
	"strings"
)

var (
	// ErrMalformedTask is returned when an item was built from an unrecognised reference.
	ErrMalformedTask = errors.New("malformed task reference")
	// ErrEmptyName is returned for a leaf item without a task name.
	ErrEmptyName = errors.New("task name is empty")
)

// Kind is the shape of an Item.
type Kind int

const (
	// KindLeaf is a single invocable task.
	KindLeaf Kind = iota
	// KindSequence is an ordered list of items run one after another in one slot.
	KindSequence
	// KindInvalid wraps a reference that could not be understood.
	KindInvalid
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindSequence:
		return "sequence"
	default:
		return "invalid"
	}
}

// Item is one schedulable unit of work.
type Item struct {
	Name     string            // Task name, leaf items only.
	Env      map[string]string // Extra environment merged over the ambient one.
	Kind     Kind              // Leaf, sequence or invalid.
	Children []Item            // Sequence members, in execution order.
	Raw      any               // The original reference of an invalid item.
}

// Leaf returns a leaf item for name.
func Leaf(name string) Item {
	return Item{Name: name, Kind: KindLeaf}
}

// Sequence returns a sequence item wrapping children.
func Sequence(children ...Item) Item {
	return Item{Kind: KindSequence, Children: children}
}

// Label is a human readable name for the item.
func (i Item) Label() string {
	switch i.Kind {
	case KindLeaf:
		return i.Name
	case KindSequence:
		labels := make([]string, len(i.Children))
		for n, c := range i.Children {
			labels[n] = c.Label()
		}

		return "[" + strings.Join(labels, " ") + "]"
	default:
		return fmt.Sprintf("<invalid %T>", i.Raw)
	}
}

// Leaves counts the leaf items below and including i.
func (i Item) Leaves() int {
	switch i.Kind {
	case KindLeaf:
		return 1
	case KindSequence:
		n := 0
		for _, c := range i.Children {
			n += c.Leaves()
		}

		return n
	default:
		return 0
	}
}

// Validate reports the first structural problem in the item tree.
func (i Item) Validate() error {
	switch i.Kind {
	case KindLeaf:
		if i.Name == "" {
			return ErrEmptyName
		}
	case KindSequence:
		for _, c := range i.Children {
			if err := c.Validate(); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: %#v", ErrMalformedTask, i.Raw)
	}

	return nil
}

// WithEnv returns a copy of the item whose env is base overlaid by the item's
// own entries. Sequences push the merged env down to their children.
func (i Item) WithEnv(base map[string]string) Item {
	if len(base) == 0 && (len(i.Env) == 0 || i.Kind != KindSequence) {
		return i
	}

	merged := make(map[string]string, len(base)+len(i.Env))
	maps.Copy(merged, base)
	maps.Copy(merged, i.Env)
	i.Env = merged

	if i.Kind == KindSequence {
		children := make([]Item, len(i.Children))
		for n, c := range i.Children {
			children[n] = c.WithEnv(merged)
		}

		i.Children = children
	}

	return i
}
