// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package task

import (
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name string
		spec any
		want []Item
	}{
		{
			name: "nil spec",
			spec: nil,
			want: nil,
		},
		{
			name: "flat list of names",
			spec: []any{"lint", "test"},
			want: []Item{Leaf("lint"), Leaf("test")},
		},
		{
			name: "string slice",
			spec: []string{"a", "b"},
			want: []Item{Leaf("a"), Leaf("b")},
		},
		{
			name: "object with tasks field",
			spec: map[string]any{"tasks": []any{"a"}},
			want: []Item{Leaf("a")},
		},
		{
			name: "object reference with env",
			spec: []any{map[string]any{"name": "deploy", "env": map[string]any{"STAGE": "prod", "RETRIES": 3}}},
			want: []Item{{Name: "deploy", Kind: KindLeaf, Env: map[string]string{"STAGE": "prod", "RETRIES": "3"}}},
		},
		{
			name: "object reference without env",
			spec: []any{map[string]any{"name": "deploy"}},
			want: []Item{Leaf("deploy")},
		},
		{
			name: "nested list becomes a sequence",
			spec: []any{"lint", []any{"build", "test"}, "deploy"},
			want: []Item{
				Leaf("lint"),
				Sequence(Leaf("build"), Leaf("test")),
				Leaf("deploy"),
			},
		},
		{
			name: "deeply nested sequence",
			spec: []any{[]any{"a", []any{"b", "c"}}},
			want: []Item{Sequence(Leaf("a"), Sequence(Leaf("b"), Leaf("c")))},
		},
		{
			name: "malformed reference is passed through",
			spec: []any{"a", 42},
			want: []Item{Leaf("a"), {Kind: KindInvalid, Raw: 42}},
		},
		{
			name: "object without a name is malformed",
			spec: []any{map[string]any{"env": map[string]any{"A": "1"}}},
			want: []Item{{Kind: KindInvalid, Raw: map[string]any{"env": map[string]any{"A": "1"}}}},
		},
		{
			name: "single bare name",
			spec: "solo",
			want: []Item{Leaf("solo")},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.spec))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	specs := []any{
		[]any{"lint", []any{"build", "test"}, "deploy"},
		[]any{map[string]any{"name": "x", "env": map[string]any{"K": "V"}}, []any{}},
		[]any{"a", true, []any{"b", []any{"c"}}},
		map[string]any{"tasks": []any{"only"}},
	}

	for _, spec := range specs {
		once := Normalize(spec)
		twice := Normalize(once)
		assert.Equal(t, once, twice)
	}
}

func TestNormalize_FromYAML(t *testing.T) {
	doc := `
tasks:
  - lint
  - [build, test]
  - name: deploy
    env:
      STAGE: prod
      REPLICAS: 2
`

	var spec any
	require.NoError(t, yaml.Unmarshal([]byte(doc), &spec))

	items := Normalize(spec)
	require.Len(t, items, 3)

	assert.Equal(t, Leaf("lint"), items[0])
	assert.Equal(t, Sequence(Leaf("build"), Leaf("test")), items[1])
	assert.Equal(t, "deploy", items[2].Name)
	assert.Equal(t, map[string]string{"STAGE": "prod", "REPLICAS": "2"}, items[2].Env)
}

func TestItem_Label(t *testing.T) {
	assert.Equal(t, "lint", Leaf("lint").Label())
	assert.Equal(t, "[build test]", Sequence(Leaf("build"), Leaf("test")).Label())
	assert.Equal(t, "[a [b c]]", Sequence(Leaf("a"), Sequence(Leaf("b"), Leaf("c"))).Label())
	assert.Equal(t, "<invalid int>", Item{Kind: KindInvalid, Raw: 1}.Label())
}

func TestItem_Leaves(t *testing.T) {
	item := Sequence(Leaf("a"), Sequence(Leaf("b"), Leaf("c")), Item{Kind: KindInvalid})
	assert.Equal(t, 3, item.Leaves())
}

func TestItem_Validate(t *testing.T) {
	require.NoError(t, Leaf("ok").Validate())
	require.ErrorIs(t, Leaf("").Validate(), ErrEmptyName)
	require.ErrorIs(t, Item{Kind: KindInvalid, Raw: 3.5}.Validate(), ErrMalformedTask)
	require.ErrorIs(t, Sequence(Leaf("a"), Item{Kind: KindInvalid}).Validate(), ErrMalformedTask)
}

func TestItem_WithEnv(t *testing.T) {
	item := Sequence(
		Item{Name: "a", Kind: KindLeaf, Env: map[string]string{"X": "child"}},
		Leaf("b"),
	)
	item.Env = map[string]string{"Y": "seq"}

	got := item.WithEnv(map[string]string{"X": "parent", "Z": "parent"})

	assert.Equal(t, map[string]string{"X": "parent", "Y": "seq", "Z": "parent"}, got.Env)
	assert.Equal(t, map[string]string{"X": "child", "Y": "seq", "Z": "parent"}, got.Children[0].Env)
	assert.Equal(t, map[string]string{"X": "parent", "Y": "seq", "Z": "parent"}, got.Children[1].Env)
	assert.Equal(t, map[string]string{"X": "child"}, item.Children[0].Env, "input must not be mutated")
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "leaf", KindLeaf.String())
	assert.Equal(t, "sequence", KindSequence.String())
	assert.Equal(t, "invalid", KindInvalid.String())
}
