package lut

import (
	"image"
	"image/color"
	"math"

	"github.com/nfnt/resize"
)

// Image encodes the table as 16-bit grayscale normalized by the table
// maximum. Row j of the image is row j of the table.
func (t *Table) Image() *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, t.Width, t.Height))

	scale := 0.0
	if m := t.Max(); m > 0 {
		scale = math.MaxUint16 / m
	}

	for j := 0; j < t.Height; j++ {
		for i := 0; i < t.Width; i++ {
			v := math.Round(t.At(i, j) * scale)
			img.SetGray16(i, j, color.Gray16{Y: uint16(v)})
		}
	}
	return img
}

// Preview returns the table image scaled to width x height.
// A zero dimension preserves the aspect ratio.
func (t *Table) Preview(width, height uint) image.Image {
	return resize.Resize(width, height, t.Image(), resize.Bilinear)
}
