package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"sync"

	"github.com/adrg/xdg"
	"github.com/google/uuid"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"termchess/notation"
	"termchess/types"
)

var (
	boldFont     *opentype.Font
	boldFontErr  error
	boldFontOnce sync.Once
)

func loadBoldFont() (*opentype.Font, error) {
	boldFontOnce.Do(func() {
		boldFont, boldFontErr = opentype.Parse(gobold.TTF)
	})
	return boldFont, boldFontErr
}

func newFace(size int) (font.Face, error) {
	f, err := loadBoldFont()
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// RenderImage rasterizes the SVG drawing of state and writes piece letters
// and labels on top. The SVG rasterizer has no text support, so pieces are
// always drawn as letters.
func RenderImage(state *types.BoardState, opts Options) (*image.RGBA, error) {
	if opts.SquareSize <= 0 {
		opts.SquareSize = DefaultOptions().SquareSize
	}
	var buf bytes.Buffer
	if err := WriteSVG(&buf, state, opts); err != nil {
		return nil, err
	}

	icon, err := oksvg.ReadIconStream(&buf)
	if err != nil {
		return nil, fmt.Errorf("parse board svg: %w", err)
	}

	size := opts.SquareSize
	margin := size / 2
	total := size*types.BoardSize + margin*2

	icon.SetTarget(0, 0, float64(total), float64(total))
	img := image.NewRGBA(image.Rect(0, 0, total, total))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(total, total, img, img.Bounds())
	raster := rasterx.NewDasher(total, total, scanner)
	icon.Draw(raster, 1.0)

	pieceFace, err := newFace(size * 3 / 5)
	if err != nil {
		return nil, err
	}
	defer pieceFace.Close()
	labelFace, err := newFace(size / 4)
	if err != nil {
		return nil, err
	}
	defer labelFace.Close()

	pieces := &font.Drawer{Dst: img, Face: pieceFace}
	for row := 0; row < types.BoardSize; row++ {
		for col := 0; col < types.BoardSize; col++ {
			c := types.MustCoord(row, col)
			p, ok := state.Board.At(c)
			if !ok {
				continue
			}
			x, y := screenPos(c, opts.Flip)
			rect := image.Rect(margin+x*size, margin+y*size, margin+(x+1)*size, margin+(y+1)*size)
			fg, outline := color.Color(color.White), color.Color(color.Black)
			if p.Owner == types.Black {
				fg, outline = outline, fg
			}
			letter := notation.Letter(types.Piece{Kind: p.Kind, Owner: types.White})
			for _, d := range []image.Point{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
				drawCentered(pieces, rect.Add(d), letter, outline)
			}
			drawCentered(pieces, rect, letter, fg)
		}
	}

	labels := &font.Drawer{Dst: img, Face: labelFace}
	labelColor := color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff}
	for i := 0; i < types.BoardSize; i++ {
		fileCoord, _ := screenCoord(i, types.BoardSize-1, opts.Flip)
		rankCoord, _ := screenCoord(0, i, opts.Flip)
		fileRect := image.Rect(margin+i*size, total-margin, margin+(i+1)*size, total)
		rankRect := image.Rect(0, margin+i*size, margin, margin+(i+1)*size)
		drawCentered(labels, fileRect, notation.Square(fileCoord)[:1], labelColor)
		drawCentered(labels, rankRect, notation.Square(rankCoord)[1:], labelColor)
	}

	return img, nil
}

func drawCentered(drawer *font.Drawer, rect image.Rectangle, text string, clr color.Color) {
	metrics := drawer.Face.Metrics()
	width := drawer.MeasureString(text).Round()
	x := rect.Min.X + (rect.Dx()-width)/2
	baseline := rect.Min.Y + (rect.Dy()+metrics.Ascent.Ceil()-metrics.Descent.Ceil())/2
	drawer.Src = image.NewUniform(clr)
	drawer.Dot = fixed.P(x, baseline)
	drawer.DrawString(text)
}

// WritePNG renders state and encodes it as PNG.
func WritePNG(w io.Writer, state *types.BoardState, opts Options) error {
	img, err := RenderImage(state, opts)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SavePNG writes state to a new PNG file in the xdg data directory and
// returns its path.
func SavePNG(state *types.BoardState, opts Options) (string, error) {
	path, err := xdg.DataFile(fmt.Sprintf("%s/board-%s.png", exportDir, uuid.NewString()))
	if err != nil {
		return "", fmt.Errorf("resolve export path: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	if err := WritePNG(f, state, opts); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close export file: %w", err)
	}
	return path, nil
}
