package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"

	"termchess/types"
)

func near(got color.Color, want color.RGBA) bool {
	r, g, b, _ := got.RGBA()
	diff := func(a uint32, b uint8) int {
		d := int(a>>8) - int(b)
		if d < 0 {
			d = -d
		}
		return d
	}
	return diff(r, want.R) <= 2 && diff(g, want.G) <= 2 && diff(b, want.B) <= 2
}

func TestRenderImage(t *testing.T) {
	opts := DefaultOptions()
	img, err := RenderImage(startState(), opts)
	if err != nil {
		t.Fatalf("RenderImage: %v", err)
	}

	size := opts.SquareSize
	margin := size / 2
	total := size*types.BoardSize + margin*2
	if img.Bounds() != image.Rect(0, 0, total, total) {
		t.Fatalf("bounds = %v, want %dx%d", img.Bounds(), total, total)
	}

	light := color.RGBA{R: 0xf0, G: 0xd9, B: 0xb5, A: 0xff}
	dark := color.RGBA{R: 0xb5, G: 0x88, B: 0x63, A: 0xff}
	tests := []struct {
		name string
		x, y int
		want color.RGBA
	}{
		{"a8 corner", margin + 2, margin + 2, light},
		{"b8 corner", margin + size + 2, margin + 2, dark},
		{"a1 corner", margin + 2, margin + 7*size + 2, dark},
		{"e4 centre", margin + 4*size + size/2, margin + 4*size + size/2, light},
	}
	for _, tt := range tests {
		if got := img.At(tt.x, tt.y); !near(got, tt.want) {
			t.Errorf("%s: pixel %v, want %v", tt.name, got, tt.want)
		}
	}

	// e1 holds the white king, so some pixel differs from the square colour.
	e1 := image.Rect(margin+4*size, margin+7*size, margin+5*size, margin+8*size)
	drawn := false
	for y := e1.Min.Y + 4; y < e1.Max.Y-4 && !drawn; y++ {
		for x := e1.Min.X + 4; x < e1.Max.X-4; x++ {
			if !near(img.At(x, y), dark) && !near(img.At(x, y), light) {
				drawn = true
				break
			}
		}
	}
	if !drawn {
		t.Error("no piece drawn on e1")
	}
}

func TestWritePNGDecodes(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.SquareSize = 32
	if err := WritePNG(&buf, startState(), opts); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := img.Bounds().Dx(); got != 32*8+32 {
		t.Errorf("width = %d, want %d", got, 32*8+32)
	}
}

func TestSavePNG(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_DATA_HOME", dir)
	xdg.Reload()

	path, err := SavePNG(startState(), DefaultOptions())
	if err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	if filepath.Ext(path) != ".png" || filepath.Dir(path) != filepath.Join(dir, "termchess", "exports") {
		t.Errorf("unexpected export path %q", path)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("saved file is not a png: %v", err)
	}
}
