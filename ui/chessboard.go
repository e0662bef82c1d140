// Package ui specifies custom controls for tview to assist in playing chess in the terminal.
package ui

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"termchess/config"
	"termchess/engine"
	"termchess/export"
	"termchess/notation"
	"termchess/types"
)

// cellWidth is the number of terminal columns per square.
const cellWidth = 3

// Style slots, see SetConfig.
const (
	styleLight = iota
	styleDark
	styleWhitePiece
	styleBlackPiece
	styleCursor
	styleSelected
	styleHighlight
	styleLastPlayed
	styleCoordinates
)

type ChessBoardUI struct {
	Box        *tview.Box
	BoardState *types.BoardState
	hint       *tview.TextView
	cfg        *config.Config
	gameConfig engine.GameConfig
	finished   bool
	cursor     types.Coord
	hasCursor  bool
	selected   *types.Coord
	targets    []types.Coord
	flipped    bool
	status     string
	app        *tview.Application
	eng        engine.GameEngine
	styles     []tcell.Color
	infoPanel  *GameInfoPanel
	focusMode  bool
	log        *zap.Logger
}

// ToggleFocusMode toggles focus mode and returns the new state.
func (g *ChessBoardUI) ToggleFocusMode() bool {
	g.focusMode = !g.focusMode
	g.refreshHint()
	return g.focusMode
}

// SetFocusMode sets focus mode to the given state.
func (g *ChessBoardUI) SetFocusMode(enabled bool) {
	g.focusMode = enabled
	g.refreshHint()
}

// IsFocusMode returns true if focus mode is enabled.
func (g *ChessBoardUI) IsFocusMode() bool {
	return g.focusMode
}

// SelectedTile returns the square under the cursor, or nil if the cursor
// is hidden.
func (g *ChessBoardUI) SelectedTile() *types.Coord {
	if !g.hasCursor {
		return nil
	}
	c := g.cursor
	return &c
}

// SelectedPiece returns the square of the piece picked up, if any.
func (g *ChessBoardUI) SelectedPiece() *types.Coord {
	return g.selected
}

// Targets returns the destinations highlighted for the picked up piece.
func (g *ChessBoardUI) Targets() []types.Coord {
	return g.targets
}

// MoveSelection moves the cursor h columns right and v rows down on
// screen. The first call only shows the cursor.
func (g *ChessBoardUI) MoveSelection(h, v int) {
	if g.BoardState.Finished() {
		g.ResetSelection()
		return
	}
	if !g.hasCursor {
		g.cursor = g.initialCursor()
		g.hasCursor = true
		return
	}
	flipped := g.IsFlipped()
	x, y := toScreen(g.cursor, flipped)
	next, ok := fromScreen(x+h, y+v, flipped)
	if !ok {
		return
	}
	g.cursor = next
}

// initialCursor puts the cursor on the last destination, or on the king's
// pawn of the player to move.
func (g *ChessBoardUI) initialCursor() types.Coord {
	if g.BoardState.LastMove != nil {
		return g.BoardState.LastMove.To
	}
	if g.BoardState.PlayerToMove == types.Black {
		return types.MustCoord(1, 4)
	}
	return types.MustCoord(6, 4)
}

// ResetSelection drops the picked up piece, or hides the cursor if no
// piece is picked up.
func (g *ChessBoardUI) ResetSelection() {
	if g.selected != nil {
		g.clearPick()
		return
	}
	g.hasCursor = false
}

func (g *ChessBoardUI) clearPick() {
	g.selected = nil
	g.targets = nil
}

func NewChessBoard(app *tview.Application, cfg *config.Config, hint *tview.TextView, log *zap.Logger) *ChessBoardUI {
	if log == nil {
		log = zap.NewNop()
	}
	chessBoard := &ChessBoardUI{
		Box:        tview.NewBox(),
		BoardState: types.NewBoardState(),
		hint:       hint,
		app:        app,
		log:        log,
	}
	chessBoard.SetConfig(cfg)
	chessBoard.Box.SetDrawFunc(func(screen tcell.Screen, x int, y int, width int, height int) (int, int, int, int) {
		if chessBoard.BoardState == nil {
			return x, y, 1, 1
		}
		flipped := chessBoard.IsFlipped()
		for sy := 0; sy < types.BoardSize; sy++ {
			for sx := 0; sx < types.BoardSize; sx++ {
				c, _ := fromScreen(sx, sy, flipped)
				bg, fg, r := chessBoard.cellStyle(c)
				drawPieceCell(screen, tcell.StyleDefault.Background(bg).Foreground(fg), r, sx, sy, x+3, y)
			}
		}
		drawCoordinates(screen, x, y, chessBoard)
		// Add offset for coordinate display
		return x, y, types.BoardSize*cellWidth + 3, types.BoardSize + 1
	})
	return chessBoard
}

// cellStyle returns the background, foreground and rune for square c.
func (g *ChessBoardUI) cellStyle(c types.Coord) (tcell.Color, tcell.Color, rune) {
	bg := g.styles[styleLight]
	if (c.Row+c.Col)%2 == 1 {
		bg = g.styles[styleDark]
	}
	fg := g.styles[styleWhitePiece]
	r := ' '
	if p, ok := g.BoardState.Board.At(c); ok {
		r = []rune(notation.Glyph(p, g.cfg.Theme.Glyphs))[0]
		if p.Owner == types.Black {
			fg = g.styles[styleBlackPiece]
		}
	}

	last := g.BoardState.LastMove
	switch {
	case g.hasCursor && c == g.cursor:
		bg = g.styles[styleCursor]
	case g.selected != nil && c == *g.selected:
		bg = g.styles[styleSelected]
	case g.gameConfig.ShowHints && containsCoord(g.targets, c):
		bg = g.styles[styleHighlight]
		if r == ' ' {
			r = '·'
		}
	case g.cfg.Theme.DrawLastPlayedBackground && last != nil && (c == last.From || c == last.To):
		bg = g.styles[styleLastPlayed]
	}
	return bg, fg, r
}

// IsFlipped reports whether Black is drawn at the bottom.
func (g *ChessBoardUI) IsFlipped() bool {
	autoFlip := g.gameConfig.AutoFlip && g.BoardState != nil && g.BoardState.PlayerToMove == types.Black
	return g.flipped != autoFlip
}

// ToggleFlip turns the board around.
func (g *ChessBoardUI) ToggleFlip() {
	g.flipped = !g.flipped
}

// ConnectEngine connects the board to a game engine.
func (g *ChessBoardUI) ConnectEngine(e engine.GameEngine, gameCfg engine.GameConfig) error {
	g.finished = false
	g.eng = e
	g.gameConfig = gameCfg
	g.clearPick()
	g.status = ""

	if err := e.Connect(); err != nil {
		return err
	}

	e.OnMove(func(move types.Move, boardState *types.BoardState) {
		g.BoardState = boardState
		g.refreshHint()
		// Spawn goroutine to avoid deadlock when called from main thread
		go func() {
			g.app.QueueUpdateDraw(func() {})
		}()
	})

	e.OnGameEnd(func(winner types.Player, outcome string) {
		g.finished = true
		g.BoardState = e.GetBoardState()
		g.clearPick()
		g.hasCursor = false
		g.refreshHint()
		go func() {
			g.app.QueueUpdateDraw(func() {})
		}()
	})

	g.BoardState = e.GetBoardState()
	g.finished = g.BoardState.Finished()
	g.refreshHint()
	return nil
}

// Activate handles the confirm key on the cursor square: it picks up a
// piece of the player to move, or plays the picked up piece to a
// highlighted destination.
func (g *ChessBoardUI) Activate() {
	if g.finished || g.eng == nil || !g.hasCursor {
		return
	}
	c := g.cursor

	if g.selected != nil {
		from := *g.selected
		if c == from {
			g.clearPick()
			g.refreshHint()
			return
		}
		if containsCoord(g.targets, c) {
			g.PlayMove(from, c)
			return
		}
	}
	g.pick(c)
}

// pick selects the piece on c if it belongs to the player to move.
func (g *ChessBoardUI) pick(c types.Coord) {
	g.clearPick()
	p, ok := g.BoardState.Board.At(c)
	if !ok || p.Owner != g.BoardState.PlayerToMove {
		g.status = ""
		g.refreshHint()
		return
	}
	g.selected = &c
	g.targets = g.eng.PossibleMoves(c)
	if len(g.targets) == 0 {
		g.status = fmt.Sprintf("%s on %s cannot move", p, notation.Square(c))
	} else {
		g.status = fmt.Sprintf("%s on %s", p, notation.Square(c))
	}
	g.log.Debug("piece selected", zap.String("square", notation.Square(c)), zap.Int("targets", len(g.targets)))
	g.refreshHint()
}

// PlayMove plays a move from one square to another.
func (g *ChessBoardUI) PlayMove(from, to types.Coord) {
	if g.finished || g.eng == nil {
		return
	}
	g.clearPick()
	if err := g.eng.PlayMove(from, to); err != nil {
		g.status = err.Error()
		if !errors.Is(err, engine.ErrIllegalMove) {
			g.log.Warn("move failed", zap.Error(err))
		}
		g.refreshHint()
		return
	}
	g.status = ""
	g.BoardState = g.eng.GetBoardState()
	g.cursor = to
	g.refreshHint()
}

// Reset starts the game over.
func (g *ChessBoardUI) Reset() {
	if g.eng == nil {
		return
	}
	g.eng.Reset()
	g.finished = false
	g.clearPick()
	g.hasCursor = false
	g.status = "New game"
	g.BoardState = g.eng.GetBoardState()
	g.refreshHint()
}

// Export writes the current board to an SVG or PNG file.
func (g *ChessBoardUI) Export(format string) (string, error) {
	opts := export.DefaultOptions()
	opts.Glyphs = g.cfg.Theme.Glyphs
	opts.Flip = g.IsFlipped()
	if last := g.BoardState.LastMove; last != nil {
		opts.Highlights = []types.Coord{last.From, last.To}
	}
	path, err := export.Save(g.BoardState, format, opts)
	if err != nil {
		g.status = fmt.Sprintf("Export failed: %s", err)
		g.log.Error("export failed", zap.String("format", format), zap.Error(err))
	} else {
		g.status = fmt.Sprintf("Saved %s", path)
		g.log.Info("board exported", zap.String("path", path))
	}
	g.refreshHint()
	return path, err
}

// Close disconnects the engine.
func (g *ChessBoardUI) Close() {
	if g.eng == nil {
		return
	}
	g.eng.Close()
	g.eng = nil
}

func (g *ChessBoardUI) SetConfig(c *config.Config) {
	g.styles = []tcell.Color{
		tcell.PaletteColor(c.Theme.Colors.LightSquare),    // styleLight
		tcell.PaletteColor(c.Theme.Colors.DarkSquare),     // styleDark
		tcell.PaletteColor(c.Theme.Colors.WhitePiece),     // styleWhitePiece
		tcell.PaletteColor(c.Theme.Colors.BlackPiece),     // styleBlackPiece
		tcell.PaletteColor(c.Theme.Colors.CursorBG),       // styleCursor
		tcell.PaletteColor(c.Theme.Colors.SelectedBG),     // styleSelected
		tcell.PaletteColor(c.Theme.Colors.HighlightBG),    // styleHighlight
		tcell.PaletteColor(c.Theme.Colors.LastPlayedBG),   // styleLastPlayed
		tcell.PaletteColor(c.Theme.Colors.CoordinateText), // styleCoordinates
	}
	g.cfg = c
}

func (g *ChessBoardUI) refreshHint() {
	// Update info panel if available
	if g.infoPanel != nil {
		g.infoPanel.SetBoardState(g.BoardState)
	}

	// Focus mode shows minimal hint
	if g.focusMode {
		g.hint.SetText("  z to toggle")
		return
	}

	var statusLine, turnLine, controlsLine string

	if g.finished {
		statusLine = "───────── Game Complete ─────────\n\n"
		turnLine = fmt.Sprintf("  Result: %s\n", g.BoardState.Outcome)
		controlsLine = "\n  r · new game   e · svg   p · png   q · return to menu"
	} else {
		if g.status != "" {
			statusLine = fmt.Sprintf("  %s\n", g.status)
		}

		stone := "○"
		if g.BoardState.PlayerToMove == types.Black {
			stone = "●"
		}
		turnLine = fmt.Sprintf("  %s %s to move", stone, g.BoardState.PlayerToMove)
		if g.BoardState.Outcome != "" {
			// King taken but play continues
			turnLine += fmt.Sprintf("   (%s)", g.BoardState.Outcome)
		}
		turnLine += "\n"

		controlsLine = `
  hjkl/↑↓←→ move   ⏎ pick/place   q drop/quit
  r reset   f flip   e svg   p png   z focus`
	}

	g.hint.SetText(fmt.Sprintf("%s%s%s", statusLine, turnLine, controlsLine))
}

// IsFinished returns true if the game is over.
func (g *ChessBoardUI) IsFinished() bool {
	return g.finished
}

// toScreen returns the screen column and row of c.
func toScreen(c types.Coord, flipped bool) (x, y int) {
	if flipped {
		return types.BoardSize - 1 - c.Col, types.BoardSize - 1 - c.Row
	}
	return c.Col, c.Row
}

// fromScreen returns the square drawn at screen column x and row y.
func fromScreen(x, y int, flipped bool) (types.Coord, bool) {
	if flipped {
		return types.NewCoord(types.BoardSize-1-y, types.BoardSize-1-x)
	}
	return types.NewCoord(y, x)
}

func containsCoord(list []types.Coord, c types.Coord) bool {
	for _, v := range list {
		if v == c {
			return true
		}
	}
	return false
}

// drawPieceCell draws a square (cellWidth characters wide) with r centred.
func drawPieceCell(s tcell.Screen, c tcell.Style, r rune, x, y, l, t int) {
	s.SetContent(l+x*cellWidth, t+y, ' ', nil, c)
	s.SetContent(l+x*cellWidth+1, t+y, r, nil, c)
	s.SetContent(l+x*cellWidth+2, t+y, ' ', nil, c)
}

func drawCoordinates(s tcell.Screen, x, y int, ui *ChessBoardUI) {
	style := tcell.StyleDefault.Foreground(ui.styles[styleCoordinates])
	highlight := tcell.StyleDefault.Background(ui.styles[styleCursor])
	flipped := ui.IsFlipped()

	for sx := 0; sx < types.BoardSize; sx++ {
		c, _ := fromScreen(sx, 0, flipped)
		_style := style
		if ui.hasCursor && c.Col == ui.cursor.Col {
			_style = highlight
		}
		file := rune(notation.Square(c)[0])
		s.SetContent(x+3+sx*cellWidth, y+types.BoardSize, ' ', nil, _style)
		s.SetContent(x+3+sx*cellWidth+1, y+types.BoardSize, file, nil, _style)
		s.SetContent(x+3+sx*cellWidth+2, y+types.BoardSize, ' ', nil, _style)
	}

	for sy := 0; sy < types.BoardSize; sy++ {
		c, _ := fromScreen(0, sy, flipped)
		_style := style
		if ui.hasCursor && c.Row == ui.cursor.Row {
			_style = highlight
		}
		rank := rune(notation.Square(c)[1])
		s.SetContent(x+1, y+sy, rank, nil, _style)
	}
	s.Show()
}
