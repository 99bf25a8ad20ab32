//go:build !ebiten

package ui

import "force-ca/internal/session"

// Overlay is a no-op placeholder used when the ebiten build tag is absent.
type Overlay struct{}

// NewOverlay constructs a stub overlay.
func NewOverlay(*session.Session, int) *Overlay { return &Overlay{} }

// Draw is a no-op placeholder.
func (o *Overlay) Draw(any) {}
