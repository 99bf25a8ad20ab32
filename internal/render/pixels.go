package render

import "image/color"

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		for i := range cells {
			base := i * 4
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
		}
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// Highlight copies cells into dst, adding offset to every value whose
// (row, col) is selected. cols is the grid width. dst is reallocated when
// it is too small and the filled slice is returned.
func Highlight(dst, cells []uint8, cols int, offset uint8, selected func(row, col int) bool) []uint8 {
	if cap(dst) < len(cells) {
		dst = make([]uint8, len(cells))
	}
	dst = dst[:len(cells)]
	copy(dst, cells)
	if selected == nil || cols <= 0 {
		return dst
	}
	for i := range dst {
		if selected(i/cols, i%cols) {
			dst[i] += offset
		}
	}
	return dst
}
