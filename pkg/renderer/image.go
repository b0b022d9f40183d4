package renderer

import (
	"image"
)

// FlipVertical returns a copy of img with its rows in reverse order.
// Rendered images store the bottom scanline first; image encoders expect
// the top row first.
func FlipVertical(img *image.RGBA) *image.RGBA {
	bounds := img.Bounds()
	flipped := image.NewRGBA(bounds)
	height := bounds.Dy()
	rowBytes := bounds.Dx() * 4

	for y := 0; y < height; y++ {
		src := img.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		dst := flipped.PixOffset(bounds.Min.X, bounds.Max.Y-1-y)
		copy(flipped.Pix[dst:dst+rowBytes], img.Pix[src:src+rowBytes])
	}

	return flipped
}
