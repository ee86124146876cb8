package main

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/vovakirdan/blocky/internal/games/blocky/core"
)

// colorEnabled is false when stdout is not a terminal, e.g. when piped.
var colorEnabled = term.IsTerminal(int(os.Stdout.Fd()))

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	movesStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
)

// pieceColors maps piece kinds to terminal colors.
var pieceColors = map[core.Kind]lipgloss.Color{
	core.KindWall:    lipgloss.Color("240"),
	core.KindEmpty:   lipgloss.Color("236"),
	core.KindGoal:    lipgloss.Color("46"),
	core.KindSolid:   lipgloss.Color("250"),
	core.KindPop:     lipgloss.Color("213"),
	core.KindCracked: lipgloss.Color("180"),
	core.KindRed:     lipgloss.Color("196"),
	core.KindBlue:    lipgloss.Color("33"),
	core.KindYellow:  lipgloss.Color("226"),
	core.KindPlayer:  lipgloss.Color("15"),
}

// paint renders text with the style when color is enabled.
func paint(s lipgloss.Style, text string) string {
	if !colorEnabled {
		return text
	}
	return s.Render(text)
}

// renderRows draws tag rows with one color per piece kind, indented.
func renderRows(rows []string) string {
	var sb strings.Builder
	for _, row := range rows {
		sb.WriteString("    ")
		for _, r := range row {
			kind, ok := core.KindFromRune(r)
			color, known := pieceColors[kind]
			if !ok || !known {
				sb.WriteRune(r)
				continue
			}
			style := lipgloss.NewStyle().Foreground(color)
			if kind == core.KindPlayer {
				style = style.Bold(true)
			}
			sb.WriteString(paint(style, string(r)))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// terminalWidth returns the width of stdout, or fallback when unknown.
func terminalWidth(fallback int) int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return fallback
}
