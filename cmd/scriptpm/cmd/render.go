package cmd

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bianoble/scriptpm/pkg/scriptpm"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)

	stateStyles = map[string]lipgloss.Style{
		scriptpm.StateCurrent:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		scriptpm.StateOutdated: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		scriptpm.StateOrphaned: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		scriptpm.StateMissing:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		scriptpm.StateModified: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}

	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// styled renders s with style unless --no-color is set.
func styled(style lipgloss.Style, s string) string {
	if noColor {
		return s
	}
	return style.Render(s)
}

// renderState colours a script state for the status table.
func renderState(state string) string {
	style, ok := stateStyles[state]
	if !ok {
		return state
	}
	return styled(style, state)
}
