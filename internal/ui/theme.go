package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Pending, Tag lipgloss.Style
	Selected, Done                                     lipgloss.Style
	Border                                             lipgloss.Border
	BorderColor                                        lipgloss.TerminalColor

	BoxUnchecked, BoxChecked string
	SymDone, SymPending      string
}

var current = themeFor("light")

// SetTheme switches the active theme; unknown names fall back to light.
func SetTheme(name string) { current = themeFor(name) }

// Current exposes what renderers need.
func Current() Theme { return current }

// Toggle flips between light and dark and returns the new theme name.
// Mono toggles to light.
func Toggle() string {
	if current.Name == "light" {
		SetTheme("dark")
	} else {
		SetTheme("light")
	}
	return current.Name
}

func themeFor(name string) Theme {
	switch strings.ToLower(name) {
	case "dark":
		return Theme{
			Name:         "dark",
			Title:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213")),
			Muted:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Accent:       lipgloss.NewStyle().Foreground(lipgloss.Color("117")),
			Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("84")),
			Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
			Pending:      lipgloss.NewStyle().Foreground(lipgloss.Color("221")),
			Tag:          lipgloss.NewStyle().Foreground(lipgloss.Color("183")),
			Selected:     lipgloss.NewStyle().Bold(true).Reverse(true),
			Done:         lipgloss.NewStyle().Faint(true).Strikethrough(true),
			Border:       lipgloss.RoundedBorder(),
			BorderColor:  lipgloss.Color("240"),
			BoxUnchecked: "◻", BoxChecked: "◼",
			SymDone: "✔", SymPending: "•",
		}
	case "mono":
		plain := lipgloss.NewStyle()
		return Theme{
			Name:  "mono",
			Title: plain.Bold(true), Muted: plain, Accent: plain,
			Success: plain, Error: plain, Pending: plain, Tag: plain,
			Selected: plain.Reverse(true), Done: plain,
			Border:       lipgloss.NormalBorder(),
			BorderColor:  lipgloss.NoColor{},
			BoxUnchecked: "[ ]", BoxChecked: "[x]",
			SymDone: "x", SymPending: "-",
		}
	default: // light
		return Theme{
			Name:         "light",
			Title:        lipgloss.NewStyle().Bold(true),
			Muted:        lipgloss.NewStyle().Faint(true),
			Accent:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
			Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
			Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Pending:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			Tag:          lipgloss.NewStyle().Foreground(lipgloss.Color("61")),
			Selected:     lipgloss.NewStyle().Bold(true).Reverse(true),
			Done:         lipgloss.NewStyle().Faint(true).Strikethrough(true),
			Border:       lipgloss.RoundedBorder(),
			BorderColor:  lipgloss.Color("8"),
			BoxUnchecked: "☐", BoxChecked: "☑",
			SymDone: "✔", SymPending: "•",
		}
	}
}
