// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/matt-FFFFFF/concur/internal/color"
	"github.com/matt-FFFFFF/concur/internal/progress"
	"github.com/matt-FFFFFF/concur/internal/scheduler"
	"github.com/matt-FFFFFF/concur/internal/task"
)

// NodeStatus represents the current state of an item in the view.
type NodeStatus int

const (
	StatusPending NodeStatus = iota
	StatusRunning
	StatusSuccess
	StatusFailed
	StatusSkipped
)

// String returns a string representation of the node status.
func (s NodeStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusRunning:
		return "running"
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Node is one line of the status tree.
type Node struct {
	Path      []string // Item label, then the child label for sequence children.
	Name      string   // Display name.
	Status    NodeStatus
	StartTime  time.Time
	EndTime    time.Time
	LastOutput string // Last line of output while running.
	ErrorMsg   string
	Children   []*Node
}

// NewNode creates a pending node.
func NewNode(path []string, name string) *Node {
	pathCopy := make([]string, len(path))
	copy(pathCopy, path)

	return &Node{
		Path:   pathCopy,
		Name:   name,
		Status: StatusPending,
	}
}

// UpdateStatus moves the node to status, stamping start and end times.
func (n *Node) UpdateStatus(status NodeStatus, at time.Time) {
	n.Status = status

	switch status {
	case StatusRunning:
		if n.StartTime.IsZero() {
			n.StartTime = at
		}
	case StatusSuccess, StatusFailed:
		if n.EndTime.IsZero() {
			n.EndTime = at
		}
	}
}

// UpdateOutput keeps the last line of output, without colour codes.
func (n *Node) UpdateOutput(line string) {
	if line = strings.TrimSpace(color.Strip(line)); line != "" {
		n.LastOutput = line
	}
}

// Elapsed is the running time of the node, or zero if it never started.
func (n *Node) Elapsed(now time.Time) time.Duration {
	switch {
	case n.StartTime.IsZero():
		return 0
	case n.EndTime.IsZero():
		return now.Sub(n.StartTime)
	default:
		return n.EndTime.Sub(n.StartTime)
	}
}

// Model is the bubbletea model for a run.
type Model struct {
	title       string
	root        *Node
	nodeMap     map[string]*Node
	spinner     spinner.Model
	width       int
	completed   bool
	interrupted bool
	results     scheduler.Results
	runErr      error
	now         func() time.Time
	styles      *Styles
}

// Styles contains all the styling for the view.
type Styles struct {
	Title      lipgloss.Style
	Pending    lipgloss.Style
	Running    lipgloss.Style
	Success    lipgloss.Style
	Failed     lipgloss.Style
	Skipped    lipgloss.Style
	Duration   lipgloss.Style
	Output     lipgloss.Style
	Error      lipgloss.Style
	TreeBranch lipgloss.Style
}

// NewStyles creates the default styling for the view.
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")),
		Pending: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")),
		Running: lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Bold(true),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")),
		Failed: lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")),
		Skipped: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			Strikethrough(true),
		Duration: lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")).
			Italic(true),
		Output: lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Italic(true),
		TreeBranch: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")),
	}
}

// NewModel creates a model with one pending node per item. Sequence children
// are added below their sequence.
func NewModel(title string, items []task.Item) *Model {
	m := &Model{
		title:   title,
		root:    NewNode(nil, ""),
		nodeMap: make(map[string]*Node),
		spinner: spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		now:     time.Now,
		styles:  NewStyles(),
	}

	for _, item := range items {
		m.addItem(nil, item)
	}

	return m
}

func (m *Model) addItem(parent []string, item task.Item) {
	path := append(parent[:len(parent):len(parent)], item.Label())
	m.getOrCreateNode(path, item.Label())

	for _, child := range item.Children {
		m.addItem(path, child)
	}
}

// Interrupted reports whether the user asked to stop the run from the view.
func (m *Model) Interrupted() bool {
	return m.interrupted
}

// pathToString converts an item path to a string key.
func pathToString(path []string) string {
	return strings.Join(path, "/")
}

// getOrCreateNode gets or creates a node, creating any missing parents.
// Items with the same label share a node.
func (m *Model) getOrCreateNode(path []string, name string) *Node {
	key := pathToString(path)
	if node, ok := m.nodeMap[key]; ok {
		return node
	}

	parent := m.root
	if len(path) > 1 {
		parentPath := path[:len(path)-1]
		parent = m.getOrCreateNode(parentPath, parentPath[len(parentPath)-1])
	}

	node := NewNode(path, name)
	m.nodeMap[key] = node
	parent.Children = append(parent.Children, node)

	return node
}

// processProgressEvent applies a scheduler event to the tree.
func (m *Model) processProgressEvent(event progress.Event) {
	if len(event.Path) == 0 {
		return
	}

	at := event.Timestamp
	if at.IsZero() {
		at = m.now()
	}

	node := m.getOrCreateNode(event.Path, event.Path[len(event.Path)-1])

	switch event.Type {
	case progress.EventStarted:
		node.UpdateStatus(StatusRunning, at)
	case progress.EventCompleted:
		node.UpdateStatus(StatusSuccess, at)
	case progress.EventFailed:
		node.UpdateStatus(StatusFailed, at)

		switch {
		case event.Data.Error != nil:
			node.ErrorMsg = event.Data.Error.Error()
		case event.Message != "":
			node.ErrorMsg = event.Message
		}
	case progress.EventSkipped:
		node.UpdateStatus(StatusSkipped, at)
	case progress.EventOutput:
		node.UpdateOutput(event.Message)
	}
}
