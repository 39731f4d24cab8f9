package render

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/vovakirdan/snake-gym/internal/core"
)

func TestRasterizeColors(t *testing.T) {
	f := Frame{
		GridSize: 4,
		Agent:    core.Point{X: 0, Y: 0},
		Target:   core.Point{X: 3, Y: 3},
	}
	img := Rasterize(f, 40)

	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 40 {
		t.Fatalf("image size = %dx%d, expected 40x40", b.Dx(), b.Dy())
	}

	// Target (3,3) is the top-right cell: pixels x in [30,40), y in [0,10).
	if c := img.RGBAAt(35, 5); c != targetColor {
		t.Errorf("target pixel = %v, expected red", c)
	}
	// Agent (0,0) is the bottom-left cell, disc centered at (5, 35).
	if c := img.RGBAAt(5, 35); c != agentColor {
		t.Errorf("agent pixel = %v, expected green", c)
	}
	// Agent cell corner is outside the disc.
	if c := img.RGBAAt(0, 39); c != backgroundColor {
		t.Errorf("agent cell corner = %v, expected background", c)
	}
	if c := img.RGBAAt(20, 20); c != backgroundColor {
		t.Errorf("empty pixel = %v, expected white", c)
	}
}

func TestRasterizeDefaultSize(t *testing.T) {
	img := Rasterize(Frame{GridSize: 40}, 0)
	if img.Bounds().Dx() != DefaultWindowSize {
		t.Errorf("width = %d, expected %d", img.Bounds().Dx(), DefaultWindowSize)
	}
}

func TestPixelArrayShape(t *testing.T) {
	img := Rasterize(Frame{GridSize: 2, Target: core.Point{X: 1, Y: 1}}, 8)
	pixels := PixelArray(img)

	if len(pixels) != 8 || len(pixels[0]) != 8 {
		t.Fatalf("pixel array shape = %dx%d, expected 8x8", len(pixels), len(pixels[0]))
	}
	if pixels[0][7] != [3]uint8{255, 0, 0} {
		t.Errorf("top-right pixel = %v, expected red", pixels[0][7])
	}
}

func TestWriteRaw(t *testing.T) {
	img := Rasterize(Frame{GridSize: 2, Target: core.Point{X: 1, Y: 1}}, 8)

	var buf bytes.Buffer
	if err := WriteRaw(&buf, img); err != nil {
		t.Fatalf("WriteRaw() failed: %v", err)
	}
	raw := buf.Bytes()
	if len(raw) != 8*8*3 {
		t.Fatalf("raw length = %d, expected %d", len(raw), 8*8*3)
	}
	// Pixel (7, 0) sits in the target cell.
	if got := raw[7*3 : 7*3+3]; !bytes.Equal(got, []byte{255, 0, 0}) {
		t.Errorf("pixel (7,0) = %v, expected red", got)
	}
}

func TestWritePNG(t *testing.T) {
	img := Rasterize(Frame{GridSize: 5, Target: core.Point{X: 2, Y: 2}}, 16)

	var buf bytes.Buffer
	if err := WritePNG(&buf, img); err != nil {
		t.Fatalf("WritePNG() failed: %v", err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() failed: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("decoded bounds = %v, expected %v", decoded.Bounds(), img.Bounds())
	}
}

func TestDrawGrid(t *testing.T) {
	f := Frame{
		GridSize: 3,
		Agent:    core.Point{X: 1, Y: 1},
		Target:   core.Point{X: 2, Y: 2},
	}
	w, h := GridSpan(3)
	dst := core.NewScreen(w, h)

	if !DrawGrid(dst, f, 0) {
		t.Fatal("DrawGrid() returned false for an exact fit")
	}

	// Target (2,2) is on the top grid row, third cell.
	if got := dst.Get(1+2*cellWidth, 1); got != targetRune {
		t.Errorf("target rune = %q, expected %q", got, targetRune)
	}
	// Agent (1,1) is in the middle row.
	if got := dst.Get(1+cellWidth, 2); got != agentRune {
		t.Errorf("agent rune = %q, expected %q", got, agentRune)
	}
	if got := dst.GetCell(1+cellWidth, 2).Color; got != core.ColorBrightGreen {
		t.Errorf("agent color = %v, expected bright green", got)
	}
	if got := dst.Get(0, 0); got != '┌' {
		t.Errorf("corner = %q, expected box corner", got)
	}
}

func TestDrawGridReachedColor(t *testing.T) {
	p := core.Point{X: 0, Y: 0}
	f := Frame{GridSize: 2, Agent: p, Target: p}
	w, h := GridSpan(2)
	dst := core.NewScreen(w, h)

	DrawGrid(dst, f, 0)
	if got := dst.GetCell(1, 2).Color; got != core.ColorYellow {
		t.Errorf("reached agent color = %v, expected yellow", got)
	}
}

func TestDrawGridTooSmall(t *testing.T) {
	dst := core.NewScreen(30, 5)
	if DrawGrid(dst, Frame{GridSize: 40}, 0) {
		t.Error("DrawGrid() should refuse a screen that cannot fit the grid")
	}
	if strings.TrimSpace(dst.String()) != "" {
		t.Error("DrawGrid() should not draw when the grid does not fit")
	}

	DrawTooSmall(dst, 40)
	if !strings.Contains(dst.String(), "too small") {
		t.Errorf("DrawTooSmall() output missing hint: %q", dst.String())
	}
}
