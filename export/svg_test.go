package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"

	"termchess/engine/rules"
	"termchess/notation"
	"termchess/types"
)

func startState() *types.BoardState {
	g := rules.New()
	state := types.NewBoardState()
	state.Board = g.Board()
	return state
}

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, startState(), DefaultOptions()); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(strings.TrimSpace(out), "<?xml") || !strings.Contains(out, "</svg>") {
		t.Fatalf("output is not a complete svg document:\n%s", out)
	}
	// background + 64 squares
	if got := strings.Count(out, "<rect"); got != 65 {
		t.Errorf("got %d rects, want 65", got)
	}
	// 32 pieces + 16 labels
	if got := strings.Count(out, "<text"); got != 48 {
		t.Errorf("got %d texts, want 48", got)
	}
	if !strings.Contains(out, "♔") || !strings.Contains(out, "♚") {
		t.Error("missing king glyphs")
	}
}

func TestWriteSVGLettersAndHighlight(t *testing.T) {
	opts := DefaultOptions()
	opts.Glyphs = notation.GlyphLetters
	opts.Highlights = []types.Coord{types.MustCoord(6, 4), types.MustCoord(4, 4)}

	var buf bytes.Buffer
	if err := WriteSVG(&buf, startState(), opts); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	out := buf.String()
	if got := strings.Count(out, "fill:"+opts.Highlight); got != 2 {
		t.Errorf("got %d highlighted squares, want 2", got)
	}
	if strings.Contains(out, "♔") || !strings.Contains(out, ">K<") {
		t.Error("letters style should draw letters instead of figurines")
	}
}

func TestWriteSVGNilState(t *testing.T) {
	if err := WriteSVG(&bytes.Buffer{}, nil, DefaultOptions()); err == nil {
		t.Fatal("expected error for nil state")
	}
}

func TestScreenPosFlip(t *testing.T) {
	tests := []struct {
		c    types.Coord
		flip bool
		x, y int
	}{
		{types.MustCoord(7, 0), false, 0, 7},
		{types.MustCoord(7, 0), true, 7, 0},
		{types.MustCoord(2, 5), true, 2, 5},
	}
	for _, tt := range tests {
		x, y := screenPos(tt.c, tt.flip)
		if x != tt.x || y != tt.y {
			t.Errorf("screenPos(%+v, %v) = (%d, %d), want (%d, %d)", tt.c, tt.flip, x, y, tt.x, tt.y)
		}
		back, ok := screenCoord(x, y, tt.flip)
		if !ok || back != tt.c {
			t.Errorf("screenCoord(%d, %d, %v) = %+v, want %+v", x, y, tt.flip, back, tt.c)
		}
	}
}

func TestSaveSVG(t *testing.T) {
	dir := t.TempDir()
	// Runs after the environment is restored.
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_DATA_HOME", dir)
	xdg.Reload()

	path, err := SaveSVG(startState(), DefaultOptions())
	if err != nil {
		t.Fatalf("SaveSVG: %v", err)
	}
	if filepath.Dir(path) != filepath.Join(dir, "termchess", "exports") {
		t.Errorf("export written to %q, want under %q", path, dir)
	}
	if !strings.HasPrefix(filepath.Base(path), "board-") || filepath.Ext(path) != ".svg" {
		t.Errorf("unexpected file name %q", filepath.Base(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !bytes.Contains(data, []byte("</svg>")) {
		t.Error("export file is incomplete")
	}
}

func TestSaveFailureLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_DATA_HOME", dir)
	xdg.Reload()

	for _, format := range []string{"svg", "png"} {
		if _, err := Save(nil, format, DefaultOptions()); err == nil {
			t.Fatalf("Save(nil, %q): expected error", format)
		}
	}
	entries, err := os.ReadDir(filepath.Join(dir, "termchess", "exports"))
	if err != nil && !os.IsNotExist(err) {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("failed exports left %d files behind", len(entries))
	}
}

func TestSaveUnknownFormat(t *testing.T) {
	if _, err := Save(startState(), "gif", DefaultOptions()); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
