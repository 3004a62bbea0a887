package ui

import (
	"chronos/internal/keeper"
	"chronos/internal/models"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#BD93F9"))
	userStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BE9FD"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F8F8F2")).Background(lipgloss.Color("#44475A"))
	runningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B"))
	pausedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4"))
	alertStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5555"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F1FA8C"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4"))
	modalStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#BD93F9")).
			Padding(1, 2)
)

func (m Model) View() string {
	var b strings.Builder

	header := titleStyle.Render("Chronos")
	if m.user != "" {
		header += "  " + userStyle.Render("☁ "+m.user)
	}
	b.WriteString(header + "\n\n")

	if len(m.views) == 0 {
		b.WriteString(pausedStyle.Render("No widgets. Press n or t to add one.") + "\n")
	}
	for i, v := range m.views {
		line := m.renderRow(v)
		if i == m.selected {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	if m.mode != modeNone {
		b.WriteString(m.inputLabel() + m.input.View() + "\n")
	} else if m.status != "" {
		b.WriteString(statusStyle.Render(m.status) + "\n")
	}
	b.WriteString(helpStyle.Render(m.helpLine()))

	if m.confirm != nil {
		box := modalStyle.Render(m.confirm.prompt + "\n\n[y]es / [n]o")
		if m.width > 0 {
			box = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, box)
		}
		return b.String() + "\n\n" + box
	}
	return b.String()
}

func (m Model) renderRow(v keeper.View) string {
	display := v.Display.String()
	if v.Kind == models.KindTimer && !v.Configured && v.State != keeper.Running {
		if v.Input.IsZero() {
			display = "--:--:--"
		} else {
			display = "[" + v.Input.String() + "]"
		}
	}

	var state string
	switch {
	case m.alerts[v.ID]:
		display = alertStyle.Render(display)
		state = alertStyle.Render("done")
	case v.State == keeper.Running:
		state = runningStyle.Render(v.State.String())
	default:
		state = pausedStyle.Render(v.State.String())
	}

	icon := "⏱"
	if v.Kind == models.KindTimer {
		icon = "⏲"
	}
	return fmt.Sprintf(" %s %-20s %16s  %s ", icon, truncate(v.Title, 20), display, state)
}

func (m Model) inputLabel() string {
	switch m.mode {
	case modeRename:
		return "Title: "
	case modeDuration:
		return "Duration: "
	case modeSignIn:
		return "Sign in as: "
	}
	return ""
}

func (m Model) helpLine() string {
	parts := make([]string, 0, len(m.keys.help()))
	for _, k := range m.keys.help() {
		h := k.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
