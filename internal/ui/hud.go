//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	"force-ca/internal/core"
	"force-ca/internal/session"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the parameter panel to the right of the grid view.
type HUD struct {
	sess       *session.Session
	width      int
	panel      *ebiten.Image
	lastHeight int
	snapshot   core.ParameterSnapshot

	controls     []hudControlState
	panelOffsetX int

	pixel *ebiten.Image
}

// NewHUD constructs a HUD for the session and panel width.
func NewHUD(sess *session.Session, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{sess: sess, width: width}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	controls := sess.Machine().ParameterControls()
	h.controls = make([]hudControlState, len(controls))
	for i, ctrl := range controls {
		h.controls[i] = hudControlState{control: ctrl, value: "--"}
	}
	h.layoutControls()
	return h
}

// Width returns the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update refreshes the cached parameter snapshot and handles clicks on the
// adjustment buttons.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	h.snapshot = h.sess.Machine().Parameters()
	h.refreshControlValues()
	h.handleInput()
}

// Draw paints the HUD panel anchored to the right edge of the grid view.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	height := h.sess.Grid().Rows() * scale
	if height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	y := h.drawStatus()
	y = h.drawControls(y)
	h.drawPopulation(y)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) refreshControlValues() {
	for i := range h.controls {
		state := &h.controls[i]
		param, ok := h.snapshot.Lookup(state.control.Key)
		if !ok || param.Type != core.ParamTypeInt {
			state.hasValue = false
			state.value = "--"
			continue
		}
		parsed, err := strconv.Atoi(param.Value)
		if err != nil {
			state.hasValue = false
			state.value = "--"
			continue
		}
		state.intValue = parsed
		state.value = param.Value
		state.hasValue = true
	}
}

func (h *HUD) handleInput() {
	if len(h.controls) == 0 || h.sess.Running() {
		return
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	px := mx - h.panelOffsetX
	for i := range h.controls {
		state := &h.controls[i]
		if !state.hasValue {
			continue
		}
		if pointInRect(px, my, state.minusRect) {
			h.applyAdjustment(state, -1)
			return
		}
		if pointInRect(px, my, state.plusRect) {
			h.applyAdjustment(state, 1)
			return
		}
	}
}

// applyAdjustment changes a control and reseeds so the new value shows.
func (h *HUD) applyAdjustment(state *hudControlState, direction int) {
	if !h.canAdjust(state, direction) {
		return
	}
	step := max(state.control.Step, 1)
	target := state.control.Clamp(state.intValue + direction*step)
	if !h.sess.Machine().SetIntParameter(state.control.Key, target) {
		return
	}
	state.intValue = target
	state.value = strconv.Itoa(target)
	h.sess.Reset(h.sess.Machine().Config().Seed)
}

func (h *HUD) canAdjust(state *hudControlState, direction int) bool {
	if state == nil || direction == 0 || !state.hasValue {
		return false
	}
	step := max(state.control.Step, 1)
	target := state.control.Clamp(state.intValue + direction*step)
	return target != state.intValue
}

func (h *HUD) drawStatus() int {
	face := basicfont.Face7x13
	y := panelPadding + headerBaseline
	text.Draw(h.panel, "Forces", face, panelPadding, y, headerColor)

	mode := "paused"
	if h.sess.Running() {
		mode = "running"
	}
	lines := []string{
		fmt.Sprintf("%s  speed %d", mode, h.sess.Speed()),
		fmt.Sprintf("generation %d", h.sess.Generation()),
	}
	r := h.sess.Region()
	if !h.sess.Running() {
		lines = append(lines, fmt.Sprintf("selection %dx%d at %d,%d", r.Rows(), r.Cols(), r.Top, r.Left))
	}
	for _, line := range lines {
		y += infoSpacing
		text.Draw(h.panel, line, face, panelPadding, y, labelColor)
	}
	return y + infoSpacing
}

func (h *HUD) drawControls(top int) int {
	face := basicfont.Face7x13
	for i := range h.controls {
		state := &h.controls[i]
		rowTop := top + i*lineHeight
		state.move(rowTop, h.width)

		labelY := rowTop + labelBaseline
		text.Draw(h.panel, state.control.Label, face, panelPadding, labelY, labelColor)
		valueColor := labelColor
		if !state.hasValue {
			valueColor = dimColor
		}
		bounds := text.BoundString(face, state.value)
		valueX := state.minusRect.Min.X - buttonGap - bounds.Dx()
		text.Draw(h.panel, state.value, face, valueX, labelY, valueColor)

		h.drawButton(state.minusRect, "-", !h.sess.Running() && h.canAdjust(state, -1))
		h.drawButton(state.plusRect, "+", !h.sess.Running() && h.canAdjust(state, 1))
	}
	return top + len(h.controls)*lineHeight
}

func (h *HUD) drawPopulation(top int) {
	face := basicfont.Face7x13
	y := top + headerBaseline
	for _, group := range h.snapshot.Groups {
		if group.Name != "Population" {
			continue
		}
		text.Draw(h.panel, group.Name, face, panelPadding, y, headerColor)
		for _, p := range group.Params {
			y += populationSpacing
			text.Draw(h.panel, p.Label, face, panelPadding, y, labelColor)
			bounds := text.BoundString(face, p.Value)
			text.Draw(h.panel, p.Value, face, h.width-panelPadding-bounds.Dx(), y, labelColor)
		}
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	if h.pixel == nil {
		return
	}
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) layoutControls() {
	for i := range h.controls {
		h.controls[i].move(controlsTop+i*lineHeight, h.width)
	}
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

type hudControlState struct {
	control core.ParameterControl
	value   string

	intValue int
	hasValue bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

func (s *hudControlState) move(top, width int) {
	buttonY := top + (lineHeight-buttonSize)/2
	s.top = top
	s.plusRect = image.Rect(width-panelPadding-buttonSize, buttonY, width-panelPadding, buttonY+buttonSize)
	s.minusRect = image.Rect(s.plusRect.Min.X-buttonGap-buttonSize, buttonY, s.plusRect.Min.X-buttonGap, buttonY+buttonSize)
}

var (
	headerColor = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelColor  = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor    = color.RGBA{R: 160, G: 160, B: 170, A: 255}
)

const (
	panelPadding      = 12
	lineHeight        = 36
	buttonSize        = 24
	buttonGap         = 6
	headerBaseline    = 18
	labelBaseline     = 24
	infoSpacing       = 18
	populationSpacing = 16
	controlsTop       = panelPadding + headerBaseline + 14
)
