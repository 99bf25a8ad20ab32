//go:build ebiten

package app

import (
	"log"
	"time"

	"force-ca/internal/patterns"
	"force-ca/internal/render"
	"force-ca/internal/session"
	"force-ca/internal/sims/forces"
	"force-ca/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var editKeys = map[ebiten.Key]rune{
	ebiten.KeyW: 'w',
	ebiten.KeyE: 'e',
	ebiten.KeyF: 'f',
	ebiten.KeyD: 'd',
	ebiten.KeyR: 'r',
	ebiten.KeyQ: 'q',
	ebiten.KeyS: 's',
	ebiten.KeyA: 'a',
}

var arrowKeys = map[ebiten.Key]forces.D4{
	ebiten.KeyArrowUp:    forces.Up,
	ebiten.KeyArrowDown:  forces.Down,
	ebiten.KeyArrowLeft:  forces.Left,
	ebiten.KeyArrowRight: forces.Right,
}

var speedKeys = map[ebiten.Key]rune{
	ebiten.KeyDigit1: '1',
	ebiten.KeyDigit2: '2',
	ebiten.KeyDigit3: '3',
	ebiten.KeyDigit4: '4',
	ebiten.KeyDigit5: '5',
}

// Game adapts an editing session to the ebiten.Game interface.
type Game struct {
	sess    *session.Session
	lib     *patterns.Library
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD

	scale    int
	cells    []uint8
	dragging bool
	pattern  int
}

// New constructs a Game for the provided session.
func New(sess *session.Session, lib *patterns.Library, scale, hudWidth int) *Game {
	g := sess.Grid()
	return &Game{
		sess:    sess,
		lib:     lib,
		painter: render.NewGridPainter(g.Cols(), g.Rows()),
		overlay: ui.NewOverlay(sess, scale),
		hud:     ui.NewHUD(sess, hudWidth),
		scale:   scale,
		pattern: -1,
	}
}

// Reset stops any run and reseeds the grid.
func (g *Game) Reset(seed int64) {
	g.sess.Reset(seed)
}

// Update handles per-frame input and advances a running grid.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.sess.Toggle()
	}
	for key, r := range speedKeys {
		if inpututil.IsKeyJustPressed(key) {
			g.sess.SpeedKey(r)
		}
	}

	if ctrl {
		g.updateCommands()
	} else if !g.sess.Running() {
		g.updateEditing()
	}
	g.updatePointer()

	g.hud.Update(g.sess.Grid().Cols() * g.scale)
	g.sess.Tick()
	return nil
}

func (g *Game) updateCommands() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.sess.Copy()
	case inpututil.IsKeyJustPressed(ebiten.KeyX):
		_, err := g.sess.Cut()
		g.report(err)
	case inpututil.IsKeyJustPressed(ebiten.KeyV):
		g.report(g.sess.PasteClipboard())
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.Reset(g.sess.Machine().Config().Seed)
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.Reset(time.Now().UnixNano())
	}
}

func (g *Game) updateEditing() {
	for key, d := range arrowKeys {
		if inpututil.IsKeyJustPressed(key) {
			g.sess.MoveSelection(d)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) || inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.report(g.sess.Apply(forces.KindEmpty))
	}
	for key, r := range editKeys {
		if inpututil.IsKeyJustPressed(key) {
			_, err := g.sess.ApplyKey(r)
			g.report(err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.report(g.sess.StepOnce())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageDown) {
		g.cyclePattern(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageUp) {
		g.cyclePattern(-1)
	}
}

// cyclePattern loads the next library pattern into the clipboard.
func (g *Game) cyclePattern(step int) {
	names := g.lib.Names()
	if len(names) == 0 {
		return
	}
	g.pattern = (g.pattern + step + len(names)) % len(names)
	p, err := g.lib.Get(names[g.pattern])
	if err != nil {
		g.report(err)
		return
	}
	g.sess.SetClipboard(p.Data)
	log.Printf("clipboard: pattern %q (%dx%d)", p.Name, p.Rows, p.Cols)
}

func (g *Game) updatePointer() {
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.dragging = false
		return
	}
	row, col, ok := g.cellAt(ebiten.CursorPosition())
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if !ok {
			return
		}
		g.sess.Select(row, col)
		g.dragging = true
		return
	}
	if g.dragging && ok {
		g.sess.Drag(row, col)
	}
}

func (g *Game) cellAt(x, y int) (row, col int, ok bool) {
	if g.scale <= 0 || x < 0 || y < 0 {
		return 0, 0, false
	}
	row, col = y/g.scale, x/g.scale
	return row, col, g.sess.Grid().InBounds(row, col)
}

func (g *Game) report(err error) {
	if err != nil {
		log.Printf("edit: %v", err)
	}
}

// Draw renders the grid, the overlay and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	m := g.sess.Machine()
	grid := m.Grid()
	g.cells = render.Highlight(g.cells, m.Cells(), grid.Cols(), forces.HighlightOffset, g.sess.Selected)
	g.painter.Blit(screen, g.cells, m.Palette(), g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, grid.Cols()*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	grid := g.sess.Grid()
	return grid.Cols()*g.scale + g.hud.Width(), grid.Rows() * g.scale
}
