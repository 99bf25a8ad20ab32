// Package tui is the terminal driver: a gocui editor for the forces grid
// with aurora colouring.
package tui

import (
	"fmt"
	"strings"

	"force-ca/internal/runner"
	"force-ca/internal/sims/forces"

	"github.com/logrusorgru/aurora"
)

const emptyCell = "· "

// NewAurora returns a colouriser; with colors false every value is
// rendered as plain text.
func NewAurora(colors bool) aurora.Aurora { return aurora.NewAurora(colors) }

// CellText returns the two-column text of a single state.
func CellText(s forces.State) string {
	code := s.Code()
	switch len(code) {
	case 0:
		return emptyCell
	case 1:
		return code + " "
	default:
		return code
	}
}

func colorize(a aurora.Aurora, s forces.State, text string) aurora.Value {
	switch s.Kind() {
	case forces.KindWall:
		return a.Bold(a.White(text))
	case forces.KindBox, forces.KindBoard:
		return a.White(text)
	case forces.KindDestroyer:
		return a.Red(text)
	case forces.KindRotator:
		return a.Green(text)
	case forces.KindPusher:
		return a.Blue(text)
	case forces.KindShifter:
		return a.Magenta(text)
	case forces.KindGenerator:
		return a.Yellow(text)
	default:
		return a.Gray(8, text)
	}
}

// RenderRows draws every grid row as text, two columns per cell. Cells
// for which selected returns true are shown in reverse video.
func RenderRows(a aurora.Aurora, g *forces.Grid, selected func(row, col int) bool) []string {
	rows := make([]string, g.Rows())
	var b strings.Builder
	for row := 0; row < g.Rows(); row++ {
		b.Reset()
		for col := 0; col < g.Cols(); col++ {
			s, _ := g.At(row, col)
			v := colorize(a, s, CellText(s))
			if selected != nil && selected(row, col) {
				v = v.Reverse()
			}
			b.WriteString(v.String())
		}
		rows[row] = b.String()
	}
	return rows
}

// Prop formats a "name: value" line with the name highlighted.
func Prop(a aurora.Aurora, name, valueFormat string, values ...any) string {
	return fmt.Sprintf(" "+a.Green(name).String()+": "+valueFormat, values...)
}

// ModeText names a runner mode, coloured like the terminal status panel.
func ModeText(a aurora.Aurora, running bool, mode runner.RunningState) string {
	switch {
	case mode == runner.StateFinished:
		return a.Red(mode.String()).String()
	case running:
		return a.Cyan("running").String()
	default:
		return a.Blue("paused").String()
	}
}

// StatusLines describes the session state shown in the status panel.
func StatusLines(a aurora.Aurora, st runner.Status, running bool, speed int, region forces.Region, clipboard string) []string {
	return []string{
		Prop(a, "Generation", "%v", st.Generation),
		Prop(a, "Population", "%v", st.Population),
		Prop(a, "Mode", "%v", ModeText(a, running, st.Mode)),
		Prop(a, "Speed", "%v", speed),
		Prop(a, "Selection", "%vx%v at %v,%v", region.Rows(), region.Cols(), region.Top, region.Left),
		Prop(a, "Clipboard", "%v", clipboardSummary(clipboard)),
	}
}

func clipboardSummary(text string) string {
	if text == "" {
		return "empty"
	}
	const limit = 16
	if len(text) > limit {
		return text[:limit] + "…"
	}
	return text
}
