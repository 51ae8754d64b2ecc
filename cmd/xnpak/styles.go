package main

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	successColor = lipgloss.AdaptiveColor{Light: "#02BA84", Dark: "#02BF87"}
	errorColor   = lipgloss.AdaptiveColor{Light: "#FE5F86", Dark: "#FE5F86"}
	mutedColor   = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
)

// styles renders CLI messages for a specific writer. Writers that are not
// terminals get plain text.
type styles struct {
	Success lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		Success: r.NewStyle().Bold(true).Foreground(successColor),
		Error:   r.NewStyle().Foreground(errorColor),
		Muted:   r.NewStyle().Foreground(mutedColor),
	}
}
