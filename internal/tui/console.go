package tui

import (
	"bytes"
	"fmt"
	"strings"

	"force-ca/internal/core"
	"force-ca/internal/patterns"
	"force-ca/internal/runner"
	"force-ca/internal/session"
	"force-ca/internal/sims/forces"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"
)

// Target adapts a session to the runner. Generations are only computed
// while the session is running, so a step queued just before a stop
// cannot land after the rewind.
type Target struct {
	S *session.Session
}

// Step advances the grid when the session is running.
func (t Target) Step() {
	if t.S.Running() {
		t.S.Step()
	}
}

// Generation implements runner.Target.
func (t Target) Generation() int { return t.S.Generation() }

// Population implements runner.Target.
func (t Target) Population() int { return t.S.Population() }

type keyBinding struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

// ConsoleUI is the interactive terminal editor.
type ConsoleUI struct {
	r   *runner.Runner
	s   *session.Session
	lib *patterns.Library
	g   *gocui.Gui
	k   []keyBinding
	a   aurora.Aurora
	tps int

	exportPath string
	pattern    int
	message    string
}

// Options configure a ConsoleUI.
type Options struct {
	// ExportPath is where the selection is written as a pattern library.
	ExportPath string
	// TPS is the frame rate that speed levels are measured against.
	TPS int
}

// NewConsoleUI builds the terminal editor. It must be registered with a
// runner before Start.
func NewConsoleUI(s *session.Session, lib *patterns.Library, o Options) (*ConsoleUI, error) {
	if o.ExportPath == "" {
		o.ExportPath = "selection.yaml"
	}
	t := &ConsoleUI{
		s:          s,
		lib:        lib,
		a:          NewAurora(true),
		tps:        o.TPS,
		exportPath: o.ExportPath,
		pattern:    -1,
	}

	var err error
	t.g, err = gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, fmt.Errorf("start terminal: %w", err)
	}
	t.g.Mouse = true

	t.k = []keyBinding{
		{gocui.KeyCtrlC, "^C", "Exit", t.cmdQuit, ""},
		{gocui.KeySpace, "SPACE", "Run/stop", t.cmdToggle, ""},
		{'n', "N", "Step", t.cmdStep, ""},
		{gocui.KeyArrowUp, "ARROWS", "Move selection", t.cmdMove(forces.Up), ""},
		{gocui.KeyArrowDown, "", "", t.cmdMove(forces.Down), ""},
		{gocui.KeyArrowLeft, "", "", t.cmdMove(forces.Left), ""},
		{gocui.KeyArrowRight, "", "", t.cmdMove(forces.Right), ""},
		{'K', "HJKL", "Resize selection", t.cmdDrag(forces.Up), ""},
		{'J', "", "", t.cmdDrag(forces.Down), ""},
		{'H', "", "", t.cmdDrag(forces.Left), ""},
		{'L', "", "", t.cmdDrag(forces.Right), ""},
		{gocui.KeyBackspace, "BKSP/TAB", "Clear", t.cmdEdit(forces.KindEmpty), ""},
		{gocui.KeyBackspace2, "", "", t.cmdEdit(forces.KindEmpty), ""},
		{gocui.KeyTab, "", "", t.cmdEdit(forces.KindEmpty), ""},
		{'c', "C", "Copy", t.cmdCopy, ""},
		{'x', "X", "Cut", t.cmdCut, ""},
		{'v', "V", "Paste", t.cmdPaste, ""},
		{'p', "P", "Next pattern", t.cmdNextPattern, ""},
		{'o', "O", "Export selection", t.cmdExport, ""},
		{gocui.MouseLeft, "MOUSE", "Select cell", t.cmdMouseClick, "field"},
	}
	for _, key := range []rune{'w', 'e', 'f', 'd', 'r', 'q', 's', 'a'} {
		t.k = append(t.k, keyBinding{key, "", "", t.cmdEdit(session.EditKeys[key]), ""})
	}
	for _, key := range []rune{'1', '2', '3', '4', '5'} {
		t.k = append(t.k, keyBinding{key, "", "", t.cmdSpeed(key), ""})
	}
	t.g.SetManagerFunc(t.layout)
	if err := t.initKeyBindings(); err != nil {
		t.g.Close()
		return nil, err
	}
	return t, nil
}

func (t *ConsoleUI) initKeyBindings() error {
	for _, kb := range t.k {
		h := kb.handler
		if err := t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(_ *gocui.Gui, view *gocui.View) error { return h(view) }); err != nil {
			return fmt.Errorf("bind %v: %w", kb.key, err)
		}
	}
	return nil
}

// Register implements runner.Viewer.
func (t *ConsoleUI) Register(r *runner.Runner) {
	t.r = r
	r.SetInterval(core.TickInterval(t.s.Speed(), t.tps))
}

// Start runs the terminal main loop until the user quits.
func (t *ConsoleUI) Start() error {
	defer t.g.Close()
	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		return err
	}
	return nil
}

// Refresh implements runner.Viewer. It runs on the runner goroutine, so
// the text is prepared here and only written to the views by gocui.
func (t *ConsoleUI) Refresh() {
	field := RenderRows(t.a, t.s.Grid(), t.s.Selected)
	status := StatusLines(t.a, t.r.Status(), t.s.Running(), t.s.Speed(), t.s.Region(), t.s.Clipboard())
	message := t.message
	t.g.Update(func(g *gocui.Gui) error {
		t.drawField(g, field)
		if v, err := g.View("status"); err == nil {
			v.Clear()
			for _, line := range status {
				_, _ = fmt.Fprintln(v, line)
			}
			if message != "" {
				_, _ = fmt.Fprintln(v, "")
				_, _ = fmt.Fprintln(v, " "+message)
			}
		}
		return nil
	})
}

func (t *ConsoleUI) drawField(g *gocui.Gui, rows []string) {
	v, err := g.View("field")
	if err != nil {
		return
	}
	v.Clear()
	maxW, maxH := v.Size()
	crop := len(rows) > maxH || t.s.Grid().Cols()*2 > maxW

	var b bytes.Buffer
	for i, line := range rows {
		if i >= maxH {
			break
		}
		if i != 0 {
			b.WriteByte('\n')
		}
		if crop && i == maxH-1 {
			b.WriteString(t.a.Red("The grid is larger than the view").BgBlack().String())
			break
		}
		b.WriteString(line)
	}
	_, _ = fmt.Fprint(v, b.String())
}

func (t *ConsoleUI) renderConfiguration(v *gocui.View) {
	cfg := t.s.Machine().Config()
	v.Clear()
	_, _ = fmt.Fprintln(v, Prop(t.a, "Dimension", "%v x %v", cfg.Rows, cfg.Cols))
	_, _ = fmt.Fprintln(v, Prop(t.a, "Seed", "%v", cfg.Seed))
	_, _ = fmt.Fprintln(v, Prop(t.a, "Fill", "%v%%", cfg.Fill))
	_, _ = fmt.Fprintln(v, Prop(t.a, "Tie-break", "%v", cfg.TieBreak))
	_, _ = fmt.Fprintln(v, Prop(t.a, "Patterns", "%v", len(t.lib.Names())))
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	leftColumnWidth := 30
	minWindowHeight := 20

	if maxY < minWindowHeight {
		if _, err := t.headerLayout(g, maxY, "Terminal height too small"); err != nil && err != gocui.ErrUnknownView {
			return err
		}
		_ = g.DeleteView("configuration")
		_ = g.DeleteView("status")
		_ = g.DeleteView("field")
		return nil
	}
	if _, err := t.headerLayout(g, 3, "Forces cellular automaton"); err != nil && err != gocui.ErrUnknownView {
		return err
	}

	if v, err := g.SetView("configuration", 0, 3, leftColumnWidth, 10); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Configuration"
		v.Frame = true
		t.renderConfiguration(v)
	}

	if v, err := g.SetView("status", 0, 11, leftColumnWidth, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Status"
		v.Frame = true
	}

	if v, err := g.SetView("field", leftColumnWidth+1, 3, maxX-1, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Grid"
		v.Frame = true
		if t.r != nil {
			t.r.Do(func() {})
		}
	}

	if v, err := g.SetView("help", -1, maxY-5, maxX, maxY-2); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
		v.Wrap = true
		_, _ = fmt.Fprintln(v, t.helpText())
	}
	return nil
}

func (t *ConsoleUI) helpText() string {
	b := bytes.Buffer{}
	b.WriteString("KEYS: ")
	first := true
	for _, k := range t.k {
		if k.name == "" {
			continue
		}
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(t.a.Green(k.name).String())
		b.WriteString(": ")
		b.WriteString(k.descr)
	}
	b.WriteString(", ")
	b.WriteString(t.a.Green("WEFDRQSA").String())
	b.WriteString(": Place kind, ")
	b.WriteString(t.a.Green("1-5").String())
	b.WriteString(": Speed")
	return b.String()
}

func (t *ConsoleUI) headerLayout(g *gocui.Gui, height int, text string) (v *gocui.View, err error) {
	maxX, _ := g.Size()
	if v, err = g.SetView("header", -1, -1, maxX+1, height); err != nil {
		if err == gocui.ErrUnknownView && v != nil {
			v.Frame = false
			v.BgColor = gocui.ColorCyan
			v.FgColor = gocui.ColorBlack
		}
	}
	if v != nil {
		v.Clear()
		pad := max(0, (maxX-len(text))/2)
		_, _ = fmt.Fprintln(v, strings.Repeat("\n", height/2)+strings.Repeat(" ", pad)+text)
	}
	return v, err
}

// do runs fn against the session on the runner goroutine.
func (t *ConsoleUI) do(fn func() error) {
	t.r.Do(func() {
		t.message = ""
		if err := fn(); err != nil {
			t.message = t.a.Red(err.Error()).String()
		}
	})
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdToggle(_ *gocui.View) error {
	var running bool
	t.r.Sync(func() { running = t.s.Running() })
	if running {
		t.r.Stop()
		t.do(func() error { t.s.Stop(); return nil })
		return nil
	}
	t.do(func() error { t.s.Start(); return nil })
	t.r.Run()
	return nil
}

func (t *ConsoleUI) cmdStep(_ *gocui.View) error {
	t.do(t.s.StepOnce)
	return nil
}

func (t *ConsoleUI) cmdMove(d forces.D4) func(*gocui.View) error {
	return func(_ *gocui.View) error {
		t.do(func() error { t.s.MoveSelection(d); return nil })
		return nil
	}
}

func (t *ConsoleUI) cmdDrag(d forces.D4) func(*gocui.View) error {
	return func(_ *gocui.View) error {
		t.do(func() error {
			c := t.s.Cursor().Move(d)
			t.s.Drag(c.Row, c.Col)
			return nil
		})
		return nil
	}
}

func (t *ConsoleUI) cmdEdit(k forces.Kind) func(*gocui.View) error {
	return func(_ *gocui.View) error {
		t.do(func() error { return t.s.Apply(k) })
		return nil
	}
}

func (t *ConsoleUI) cmdSpeed(key rune) func(*gocui.View) error {
	return func(_ *gocui.View) error {
		t.do(func() error {
			t.s.SpeedKey(key)
			t.r.SetInterval(core.TickInterval(t.s.Speed(), t.tps))
			return nil
		})
		return nil
	}
}

func (t *ConsoleUI) cmdCopy(_ *gocui.View) error {
	t.do(func() error { t.s.Copy(); return nil })
	return nil
}

func (t *ConsoleUI) cmdCut(_ *gocui.View) error {
	t.do(func() error {
		_, err := t.s.Cut()
		return err
	})
	return nil
}

func (t *ConsoleUI) cmdPaste(_ *gocui.View) error {
	t.do(t.s.PasteClipboard)
	return nil
}

func (t *ConsoleUI) cmdNextPattern(_ *gocui.View) error {
	t.do(func() error {
		names := t.lib.Names()
		if len(names) == 0 {
			return nil
		}
		t.pattern = (t.pattern + 1) % len(names)
		p, err := t.lib.Get(names[t.pattern])
		if err != nil {
			return err
		}
		t.s.SetClipboard(p.Data)
		return nil
	})
	return nil
}

func (t *ConsoleUI) cmdExport(_ *gocui.View) error {
	t.do(func() error {
		name, err := ExportSelection(t.s, t.exportPath)
		if err != nil {
			return err
		}
		t.message = fmt.Sprintf("exported %s to %s", name, t.exportPath)
		return nil
	})
	return nil
}

func (t *ConsoleUI) cmdMouseClick(v *gocui.View) error {
	cx, cy := v.Cursor()
	t.do(func() error {
		t.s.Select(cy, cx/2)
		return nil
	})
	return nil
}

// ExportSelection writes the current selection to path as a one-entry
// pattern library and returns the pattern name.
func ExportSelection(s *session.Session, path string) (string, error) {
	lib := patterns.NewLibrary()
	name := fmt.Sprintf("selection-%d", s.Generation())
	if err := lib.Add(patterns.Capture(s.Grid(), s.Region(), name, "exported from the terminal editor")); err != nil {
		return "", err
	}
	if err := lib.WriteFile(path); err != nil {
		return "", err
	}
	return name, nil
}
