package main

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "5", Dark: "5"}
	colorAccent  = lipgloss.AdaptiveColor{Light: "4", Dark: "4"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "8", Dark: "8"}
	colorError   = lipgloss.AdaptiveColor{Light: "1", Dark: "1"}

	styleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	styleLabel = lipgloss.NewStyle().Foreground(colorAccent).Width(12)
	styleMuted = lipgloss.NewStyle().Foreground(colorMuted)
	styleError = lipgloss.NewStyle().Foreground(colorError)
	styleBlock = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)
)
