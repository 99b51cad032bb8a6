// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/matt-FFFFFF/concur/internal/progress"
	"github.com/matt-FFFFFF/concur/internal/scheduler"
)

const (
	durationRounding = 100 * time.Millisecond
	maxOutputWidth   = 60
	ellipsis         = "..."
)

// ProgressEventMsg wraps a progress event for the tea framework.
type ProgressEventMsg struct {
	Event progress.Event
}

// RunFinishedMsg indicates that the scheduler has returned.
type RunFinishedMsg struct {
	Results scheduler.Results
	Err     error
}

// Init implements bubbletea.Model.Init.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements bubbletea.Model.Update.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.interrupted = true
			return m, tea.Quit
		}

		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if m.completed {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case ProgressEventMsg:
		m.processProgressEvent(msg.Event)
		return m, nil

	case RunFinishedMsg:
		m.completed = true
		m.results = msg.Results
		m.runErr = msg.Err

		return m, tea.Quit
	}

	return m, nil
}

// View implements bubbletea.Model.View.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(m.title))
	b.WriteString("\n")

	now := m.now()
	for i, child := range m.root.Children {
		m.renderTree(&b, child, "", i == len(m.root.Children)-1, now)
	}

	switch {
	case m.interrupted:
		b.WriteString(m.styles.Failed.Render("Interrupted"))
		b.WriteString("\n")
	case m.completed && (m.runErr != nil || m.results.HasError()):
		b.WriteString(m.styles.Failed.Render("Finished with errors"))
		b.WriteString("\n")
	case m.completed:
		b.WriteString(m.styles.Success.Render("Finished"))
		b.WriteString("\n")
	}

	return b.String()
}

// renderTree recursively renders a node and its children.
func (m *Model) renderTree(b *strings.Builder, node *Node, prefix string, isLast bool, now time.Time) {
	m.renderNode(b, node, prefix, isLast, now)

	childPrefix := prefix + "│   "
	if isLast {
		childPrefix = prefix + "    "
	}

	for i, child := range node.Children {
		m.renderTree(b, child, childPrefix, i == len(node.Children)-1, now)
	}
}

// renderNode renders a single line, plus an error line for failed leaves.
func (m *Model) renderNode(b *strings.Builder, node *Node, prefix string, isLast bool, now time.Time) {
	connector := "├── "
	if isLast {
		connector = "└── "
	}

	var icon, name string

	switch node.Status {
	case StatusRunning:
		icon = m.spinner.View()
		name = m.styles.Running.Render(node.Name)
	case StatusSuccess:
		icon = m.styles.Success.Render("✓")
		name = m.styles.Success.Render(node.Name)
	case StatusFailed:
		icon = m.styles.Failed.Render("✗")
		name = m.styles.Failed.Render(node.Name)
	case StatusSkipped:
		icon = m.styles.Pending.Render("~")
		name = m.styles.Skipped.Render(node.Name)
	default:
		icon = m.styles.Pending.Render("·")
		name = m.styles.Pending.Render(node.Name)
	}

	line := fmt.Sprintf("%s%s %s", m.styles.TreeBranch.Render(prefix+connector), icon, name)

	if elapsed := node.Elapsed(now); elapsed > 0 {
		line += m.styles.Duration.Render(fmt.Sprintf(" (%v)", elapsed.Round(durationRounding)))
	}

	if node.Status == StatusRunning && node.LastOutput != "" {
		line += "  " + m.styles.Output.Render(truncate(node.LastOutput, maxOutputWidth))
	}

	if m.width > 0 {
		line = lipgloss.NewStyle().MaxWidth(m.width).Render(line)
	}

	b.WriteString(line)
	b.WriteString("\n")

	if node.Status == StatusFailed && node.ErrorMsg != "" && len(node.Children) == 0 {
		errPrefix := prefix + "│   "
		if isLast {
			errPrefix = prefix + "    "
		}

		errLine := m.styles.TreeBranch.Render(errPrefix) + m.styles.Error.Render("➜ "+node.ErrorMsg)
		if m.width > 0 {
			errLine = lipgloss.NewStyle().MaxWidth(m.width).Render(errLine)
		}

		b.WriteString(errLine)
		b.WriteString("\n")
	}
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	if n <= len(ellipsis) {
		return string(r[:n])
	}

	return string(r[:n-len(ellipsis)]) + ellipsis
}
