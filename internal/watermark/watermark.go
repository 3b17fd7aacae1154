// Package watermark stamps preview images with a tiled, semi-transparent
// diagonal overlay before they are published.
package watermark

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	markText    = "PREVIEW MODE"
	markOpacity = 110
	markScale   = 4
	jpegQuality = 90
)

// Apply decodes the enhanced image, composites the tiled overlay and
// re-encodes as JPEG. The input must be a JPEG or PNG.
func Apply(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := src.Bounds()
	dst := image.NewRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)

	stamp := renderStamp()
	stampW := stamp.Bounds().Dx()
	stampH := stamp.Bounds().Dy()

	// Tile the stamp with a per-row offset so the repeats run diagonally
	// across the frame.
	tileW := stampW + stampW/2
	tileH := stampH * 3
	row := 0
	for y := bounds.Min.Y - tileH; y < bounds.Max.Y; y += tileH {
		offset := (row * tileW / 3) % tileW
		for x := bounds.Min.X - tileW; x < bounds.Max.X; x += tileW {
			target := image.Rect(x+offset, y, x+offset+stampW, y+stampH)
			draw.Draw(dst, target, stamp, stamp.Bounds().Min, draw.Over)
		}
		row++
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}
	return buf.Bytes(), nil
}

// renderStamp draws the watermark text once at small size and scales it up
// with nearest-neighbour sampling. basicfont has a fixed 7x13 face, which is
// far too small to read on a photo without scaling.
func renderStamp() *image.RGBA {
	face := basicfont.Face7x13
	textW := font.MeasureString(face, markText).Ceil()

	small := image.NewRGBA(image.Rect(0, 0, textW+4, face.Height+4))
	drawer := &font.Drawer{
		Dst:  small,
		Src:  image.NewUniform(color.NRGBA{R: 255, G: 255, B: 255, A: markOpacity}),
		Face: face,
		Dot:  fixed.P(2, face.Ascent+2),
	}
	drawer.DrawString(markText)

	smallBounds := small.Bounds()
	stamp := image.NewRGBA(image.Rect(0, 0, smallBounds.Dx()*markScale, smallBounds.Dy()*markScale))
	for y := 0; y < stamp.Bounds().Dy(); y++ {
		for x := 0; x < stamp.Bounds().Dx(); x++ {
			stamp.SetRGBA(x, y, small.RGBAAt(smallBounds.Min.X+x/markScale, smallBounds.Min.Y+y/markScale))
		}
	}
	return stamp
}
