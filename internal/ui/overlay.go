//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"force-ca/internal/session"

	"github.com/hajimehoshi/ebiten/v2"
)

var (
	glyphColor     = color.RGBA{R: 255, G: 255, B: 255, A: 220}
	selectionColor = color.RGBA{R: 255, G: 64, B: 64, A: 255}
)

// Overlay draws orientation glyphs on every oriented cell and the
// selection outline while paused.
type Overlay struct {
	sess  *session.Session
	scale int
	pixel *ebiten.Image
}

// NewOverlay constructs an overlay for the session's grid.
func NewOverlay(sess *session.Session, scale int) *Overlay {
	o := &Overlay{sess: sess, scale: scale}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	g := o.sess.Grid()
	scale := float64(max(o.scale, 1))
	thickness := math.Max(1, scale/8)

	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			s, _ := g.At(row, col)
			for _, seg := range Glyph(s) {
				o.drawLine(screen,
					(float64(col)+seg.X1)*scale, (float64(row)+seg.Y1)*scale,
					(float64(col)+seg.X2)*scale, (float64(row)+seg.Y2)*scale,
					thickness, glyphColor)
			}
		}
	}

	if o.sess.Running() {
		return
	}
	x0, y0, x1, y1, ok := SelectionFrame(o.sess.Region(), g.Rows(), g.Cols())
	if !ok {
		return
	}
	x0, y0, x1, y1 = x0*scale, y0*scale, x1*scale, y1*scale
	o.drawLine(screen, x0, y0, x1, y0, 2, selectionColor)
	o.drawLine(screen, x1, y0, x1, y1, 2, selectionColor)
	o.drawLine(screen, x1, y1, x0, y1, 2, selectionColor)
	o.drawLine(screen, x0, y1, x0, y0, 2, selectionColor)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if o.pixel == nil || thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
