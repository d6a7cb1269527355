package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent  = lipgloss.Color("205")
	colorDim     = lipgloss.Color("241")
	colorSurface = lipgloss.Color("236")
	colorOK      = lipgloss.Color("78")
	colorErr     = lipgloss.Color("203")

	headerStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true).
			PaddingLeft(1)

	headerMetaStyle = lipgloss.NewStyle().Foreground(colorDim)

	cardTitleStyle         = lipgloss.NewStyle().Bold(true)
	cardTitleSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	cardMetaStyle          = lipgloss.NewStyle().Foreground(colorDim)
	cardExcerptStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))

	tabActiveStyle    = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	tabInactiveStyle  = lipgloss.NewStyle().Foreground(colorDim)
	tabSeparatorStyle = lipgloss.NewStyle().Foreground(colorSurface)

	statusStyle     = lipgloss.NewStyle().Foreground(colorDim).PaddingLeft(1)
	statusOKStyle   = lipgloss.NewStyle().Foreground(colorOK)
	errorStyle      = lipgloss.NewStyle().Foreground(colorErr).PaddingLeft(1)
	emptyStyle      = lipgloss.NewStyle().Foreground(colorDim).Italic(true)
	suggestionStyle = lipgloss.NewStyle().Foreground(colorAccent)

	searchPromptStyle = lipgloss.NewStyle().Foreground(colorAccent)
	spinnerStyle      = lipgloss.NewStyle().Foreground(colorAccent)
)
