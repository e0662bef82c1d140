// Package export writes board snapshots to files outside the terminal.
package export

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/adrg/xdg"
	svg "github.com/ajstarks/svgo"
	"github.com/google/uuid"

	"termchess/notation"
	"termchess/types"
)

var exportDir = "termchess/exports"

// Options controls the look of an exported board.
type Options struct {
	SquareSize  int
	LightSquare string // CSS colour
	DarkSquare  string
	Highlight   string
	Glyphs      notation.GlyphStyle
	Flip        bool          // Draw with Black at the bottom
	Highlights  []types.Coord // Squares to tint, e.g. the last move
}

// DefaultOptions returns the options used by the terminal's export key.
func DefaultOptions() Options {
	return Options{
		SquareSize:  64,
		LightSquare: "#f0d9b5",
		DarkSquare:  "#b58863",
		Highlight:   "#cdd26a",
		Glyphs:      notation.GlyphUnicode,
	}
}

// WriteSVG draws state as an SVG document with file and rank labels.
func WriteSVG(w io.Writer, state *types.BoardState, opts Options) error {
	if state == nil {
		return fmt.Errorf("board state is nil")
	}
	if opts.SquareSize <= 0 {
		opts.SquareSize = DefaultOptions().SquareSize
	}
	size := opts.SquareSize
	margin := size / 2
	total := size*types.BoardSize + margin*2

	highlighted := make(map[types.Coord]bool, len(opts.Highlights))
	for _, c := range opts.Highlights {
		highlighted[c] = true
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Startview(total, total, 0, 0, total, total)
	canvas.Title(fmt.Sprintf("Turn %d, %s to move", state.Turn, state.PlayerToMove))
	canvas.Rect(0, 0, total, total, "fill:white")

	fontStyle := fmt.Sprintf("font-size:%dpx;text-anchor:middle;font-family:sans-serif", size*3/4)
	labelStyle := fmt.Sprintf("font-size:%dpx;text-anchor:middle;font-family:sans-serif;fill:#555", size/4)

	canvas.Gid("squares")
	for row := 0; row < types.BoardSize; row++ {
		for col := 0; col < types.BoardSize; col++ {
			c := types.MustCoord(row, col)
			x, y := screenPos(c, opts.Flip)
			fill := opts.LightSquare
			if (row+col)%2 == 1 {
				fill = opts.DarkSquare
			}
			if highlighted[c] {
				fill = opts.Highlight
			}
			canvas.Rect(margin+x*size, margin+y*size, size, size, "fill:"+fill)
		}
	}
	canvas.Gend()

	canvas.Gid("pieces")
	for row := 0; row < types.BoardSize; row++ {
		for col := 0; col < types.BoardSize; col++ {
			c := types.MustCoord(row, col)
			p, ok := state.Board.At(c)
			if !ok {
				continue
			}
			x, y := screenPos(c, opts.Flip)
			canvas.Text(margin+x*size+size/2, margin+y*size+size*3/4, notation.Glyph(p, opts.Glyphs), fontStyle)
		}
	}
	canvas.Gend()

	canvas.Gid("labels")
	for i := 0; i < types.BoardSize; i++ {
		// Bottom row of the drawing holds the file letters, left column the ranks.
		fileCoord, _ := screenCoord(i, types.BoardSize-1, opts.Flip)
		rankCoord, _ := screenCoord(0, i, opts.Flip)
		file := notation.Square(fileCoord)[:1]
		rank := notation.Square(rankCoord)[1:]
		canvas.Text(margin+i*size+size/2, total-margin/4, file, labelStyle)
		canvas.Text(margin/2, margin+i*size+size/2+size/8, rank, labelStyle)
	}
	canvas.Gend()
	canvas.End()

	_, err := io.Copy(w, &buf)
	return err
}

// SaveSVG writes state to a new file in the xdg data directory and returns
// its path.
func SaveSVG(state *types.BoardState, opts Options) (string, error) {
	path, err := xdg.DataFile(fmt.Sprintf("%s/board-%s.svg", exportDir, uuid.NewString()))
	if err != nil {
		return "", fmt.Errorf("resolve export path: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	if err := WriteSVG(f, state, opts); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write svg: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close export file: %w", err)
	}
	return path, nil
}

// screenPos returns the drawing column and row of c.
func screenPos(c types.Coord, flip bool) (x, y int) {
	if flip {
		return types.BoardSize - 1 - c.Col, types.BoardSize - 1 - c.Row
	}
	return c.Col, c.Row
}

// screenCoord is the inverse of screenPos.
func screenCoord(x, y int, flip bool) (types.Coord, bool) {
	if flip {
		return types.NewCoord(types.BoardSize-1-y, types.BoardSize-1-x)
	}
	return types.NewCoord(y, x)
}

// Save writes state in the given format ("svg" or "png") and returns the
// file path.
func Save(state *types.BoardState, format string, opts Options) (string, error) {
	switch format {
	case "svg":
		return SaveSVG(state, opts)
	case "png":
		return SavePNG(state, opts)
	}
	return "", fmt.Errorf("unknown export format %q", format)
}
