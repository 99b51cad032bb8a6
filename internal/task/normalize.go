// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package task

import (
	"fmt"
	"maps"
	"slices"
)

const (
	keyTasks = "tasks"
	keyName  = "name"
	keyEnv   = "env"
)

// Normalize converts a task-group description into canonical items.
// spec may be a list of references, an object with a "tasks" list, or
// already-normalized items, in which case the result is structurally identical.
func Normalize(spec any) []Item {
	switch v := spec.(type) {
	case nil:
		return nil
	case []Item:
		if v == nil {
			return nil
		}

		out := make([]Item, len(v))
		for n, it := range v {
			out[n] = NormalizeRef(it)
		}

		return out
	case []any:
		return normalizeList(v)
	case []string:
		out := make([]Item, len(v))
		for n, name := range v {
			out[n] = Leaf(name)
		}

		return out
	case map[string]any:
		if tasks, ok := v[keyTasks]; ok {
			return Normalize(tasks)
		}
	}

	return []Item{NormalizeRef(spec)}
}

// NormalizeRef converts one task reference into an Item.
func NormalizeRef(ref any) Item {
	switch v := ref.(type) {
	case Item:
		if v.Kind == KindSequence {
			v.Children = Normalize(v.Children)
		}

		return v
	case string:
		return Leaf(v)
	case []any:
		return Sequence(normalizeList(v)...)
	case []string:
		return Sequence(Normalize(v)...)
	case []Item:
		return Sequence(Normalize(v)...)
	case map[string]any:
		if item, ok := fromObject(v); ok {
			return item
		}
	case map[string]string:
		if name, ok := v[keyName]; ok {
			return Leaf(name)
		}
	}

	return Item{Kind: KindInvalid, Raw: ref}
}

func normalizeList(refs []any) []Item {
	out := make([]Item, 0, len(refs))
	for ref := range slices.Values(refs) {
		out = append(out, NormalizeRef(ref))
	}

	return out
}

// fromObject reads the {name, env} form. Objects without a string name are
// not task references.
func fromObject(obj map[string]any) (Item, bool) {
	name, ok := obj[keyName].(string)
	if !ok {
		return Item{}, false
	}

	item := Leaf(name)

	switch env := obj[keyEnv].(type) {
	case nil:
	case map[string]string:
		if len(env) > 0 {
			item.Env = maps.Clone(env)
		}
	case map[string]any:
		if len(env) > 0 {
			item.Env = make(map[string]string, len(env))
			for k, v := range env {
				item.Env[k] = stringify(v)
			}
		}
	default:
		return Item{}, false
	}

	return item, true
}

func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		return fmt.Sprint(s)
	}
}
