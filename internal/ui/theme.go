package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/taskboard/internal/model"
)

// Palette bundles styles + symbols + box border for one theme.
// Every renderer takes the palette explicitly.
type Palette struct {
	Name string

	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Selected, Done, Help                          lipgloss.Style
	Low, Medium, High                             lipgloss.Style

	Border      lipgloss.Border
	BorderColor lipgloss.TerminalColor

	BoxUnchecked, BoxChecked string
	SymDone, SymPending      string
}

// PaletteFor maps a theme name onto a palette. Unknown names get light.
func PaletteFor(theme string) Palette {
	switch strings.ToLower(theme) {
	case "dark":
		return Palette{
			Name:    "dark",
			Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213")),
			Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color("87")),
			Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
			Pending: lipgloss.NewStyle().Foreground(lipgloss.Color("221")),

			Selected: lipgloss.NewStyle().Bold(true).Reverse(true),
			Done:     lipgloss.NewStyle().Faint(true).Strikethrough(true),
			Help:     lipgloss.NewStyle().Faint(true),

			Low:    lipgloss.NewStyle().Foreground(lipgloss.Color("109")),
			Medium: lipgloss.NewStyle().Foreground(lipgloss.Color("221")),
			High:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),

			Border:      lipgloss.RoundedBorder(),
			BorderColor: lipgloss.Color("240"),

			BoxUnchecked: "◻", BoxChecked: "◼",
			SymDone: "✔", SymPending: "•",
		}
	default: // light
		return Palette{
			Name:    "light",
			Title:   lipgloss.NewStyle().Bold(true),
			Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
			Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color("26")),
			Success: lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
			Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true),
			Pending: lipgloss.NewStyle().Foreground(lipgloss.Color("172")),

			Selected: lipgloss.NewStyle().Bold(true).Reverse(true),
			Done:     lipgloss.NewStyle().Faint(true).Strikethrough(true),
			Help:     lipgloss.NewStyle().Faint(true),

			Low:    lipgloss.NewStyle().Foreground(lipgloss.Color("30")),
			Medium: lipgloss.NewStyle().Foreground(lipgloss.Color("172")),
			High:   lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true),

			Border:      lipgloss.NormalBorder(),
			BorderColor: lipgloss.Color("250"),

			BoxUnchecked: "☐", BoxChecked: "☑",
			SymDone: "✔", SymPending: "•",
		}
	}
}

// Plain is the colourless palette used for NO_COLOR.
func Plain() Palette {
	s := lipgloss.NewStyle()
	return Palette{
		Name:  "plain",
		Title: s, Muted: s, Accent: s, Success: s, Error: s, Pending: s,
		Selected: s, Done: s, Help: s,
		Low: s, Medium: s, High: s,
		Border: lipgloss.Border{
			Top: "-", Bottom: "-", Left: "|", Right: "|",
			TopLeft: "+", TopRight: "+", BottomLeft: "+", BottomRight: "+",
		},
		BorderColor:  lipgloss.NoColor{},
		BoxUnchecked: "[ ]", BoxChecked: "[x]",
		SymDone: "x", SymPending: "-",
	}
}

// PriorityStyle picks the badge style for p.
func (p Palette) PriorityStyle(pr model.Priority) lipgloss.Style {
	switch pr {
	case model.PriorityHigh:
		return p.High
	case model.PriorityMedium:
		return p.Medium
	default:
		return p.Low
	}
}
