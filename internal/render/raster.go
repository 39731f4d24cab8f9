package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
)

// DefaultWindowSize is the side length in pixels of a rasterized frame.
const DefaultWindowSize = 512

var (
	backgroundColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	targetColor     = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	agentColor      = color.RGBA{R: 0, G: 255, B: 0, A: 255}
)

// Rasterize draws the frame into a new size×size RGBA image.
// The target is a filled red square covering its cell, the agent a green
// disc of radius one third of a cell centered in its cell.
// Row 0 of the image is the top of the grid (y = GridSize-1).
func Rasterize(f Frame, size int) *image.RGBA {
	if size <= 0 {
		size = DefaultWindowSize
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: backgroundColor}, image.Point{}, draw.Src)
	if f.GridSize <= 0 {
		return img
	}

	cell := float64(size) / float64(f.GridSize)

	tx0 := int(math.Round(float64(f.Target.X) * cell))
	ty0 := int(math.Round(float64(f.GridSize-1-f.Target.Y) * cell))
	tx1 := int(math.Round(float64(f.Target.X+1) * cell))
	ty1 := int(math.Round(float64(f.GridSize-f.Target.Y) * cell))
	draw.Draw(img, image.Rect(tx0, ty0, tx1, ty1), &image.Uniform{C: targetColor}, image.Point{}, draw.Src)

	cx := (float64(f.Agent.X) + 0.5) * cell
	cy := (float64(f.GridSize-1-f.Agent.Y) + 0.5) * cell
	fillDisc(img, cx, cy, cell/3, agentColor)

	return img
}

// fillDisc paints every pixel whose center lies within r of (cx, cy).
func fillDisc(img *image.RGBA, cx, cy, r float64, c color.RGBA) {
	bounds := img.Bounds()
	x0 := max(bounds.Min.X, int(math.Floor(cx-r)))
	x1 := min(bounds.Max.X, int(math.Ceil(cx+r)))
	y0 := max(bounds.Min.Y, int(math.Floor(cy-r)))
	y1 := min(bounds.Max.Y, int(math.Ceil(cy+r)))
	r2 := r * r
	for y := y0; y < y1; y++ {
		dy := float64(y) + 0.5 - cy
		for x := x0; x < x1; x++ {
			dx := float64(x) + 0.5 - cx
			if dx*dx+dy*dy <= r2 {
				img.SetRGBA(x, y, c)
			}
		}
	}
}

// PixelArray returns the image as rows of RGB triples, [height][width][3].
func PixelArray(img *image.RGBA) [][][3]uint8 {
	b := img.Bounds()
	rows := make([][][3]uint8, b.Dy())
	for y := range rows {
		rows[y] = make([][3]uint8, b.Dx())
		for x := range rows[y] {
			c := img.RGBAAt(b.Min.X+x, b.Min.Y+y)
			rows[y][x] = [3]uint8{c.R, c.G, c.B}
		}
	}
	return rows
}

// WriteRaw writes the pixel array as packed RGB bytes, row by row.
func WriteRaw(w io.Writer, img *image.RGBA) error {
	rows := PixelArray(img)
	buf := make([]byte, 0, len(rows)*img.Bounds().Dx()*3)
	for _, row := range rows {
		for _, px := range row {
			buf = append(buf, px[0], px[1], px[2])
		}
	}
	_, err := w.Write(buf)
	return err
}

// WritePNG encodes the image as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}
