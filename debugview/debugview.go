// Package debugview renders the tile data stored in VRAM as a flat
// grayscale grid. It is explicitly not a PPU: there is no
// background/window/sprite composition, no scrolling, no STAT mode
// timing, and no real palette lookup beyond a fixed four-shade ramp.
// It exists so a developer driving the core from cmd/gbrun can
// visually confirm ROM data is landing in VRAM.
package debugview

import (
	"image"
	"image/color"
)

const (
	tileBytes   = 16 // 8 rows * 2 bytes/row (2bpp)
	tileCount   = 384
	tileSize    = 8
	tilesPerRow = 16
)

// shades is the fixed four-level gray ramp a 2bpp color index maps to,
// lightest (00) to darkest (11) - the same ordering the real DMG
// palette lookup uses for BGP, just without the lookup.
var shades = [4]uint8{0xFF, 0xAA, 0x55, 0x00}

// Width and Height are the pixel dimensions of the image Render produces:
// 384 tiles laid out 16 wide by 24 tall, 8 pixels per tile per side.
const (
	Width  = tilesPerRow * tileSize
	Height = (tileCount / tilesPerRow) * tileSize
)

// Render reads the 384 8x8 tiles out of a raw VRAM image (the
// 0x8000-0x97FF window, addressed here as an offset from 0) and
// returns a Width x Height grayscale image, one tile per 8x8 cell in
// reading order.
func Render(vram *[0x2000]uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, Width, Height))
	for tile := 0; tile < tileCount; tile++ {
		tx := (tile % tilesPerRow) * tileSize
		ty := (tile / tilesPerRow) * tileSize
		base := tile * tileBytes
		for row := 0; row < tileSize; row++ {
			lo := vram[base+row*2]
			hi := vram[base+row*2+1]
			for col := 0; col < tileSize; col++ {
				bit := uint(7 - col)
				idx := ((hi>>bit)&1)<<1 | (lo>>bit)&1
				img.SetGray(tx+col, ty+row, color.Gray{Y: shades[idx]})
			}
		}
	}
	return img
}
