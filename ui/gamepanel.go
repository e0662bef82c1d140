package ui

import (
	"fmt"

	"github.com/rivo/tview"

	"termchess/notation"
	"termchess/types"
)

// GameInfoPanel displays game information alongside the board.
type GameInfoPanel struct {
	box        *tview.TextView
	boardState *types.BoardState
	glyphs     notation.GlyphStyle
}

// NewGameInfoPanel creates a new game info panel.
func NewGameInfoPanel() *GameInfoPanel {
	panel := &GameInfoPanel{
		box:    tview.NewTextView(),
		glyphs: notation.GlyphUnicode,
	}

	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)

	return panel
}

// Box returns the underlying tview component.
func (p *GameInfoPanel) Box() *tview.TextView {
	return p.box
}

// SetBoardState updates the panel with current board state.
func (p *GameInfoPanel) SetBoardState(state *types.BoardState) {
	p.boardState = state
	p.refresh()
}

// SetGlyphs sets the piece style used for captured pieces.
func (p *GameInfoPanel) SetGlyphs(style notation.GlyphStyle) {
	p.glyphs = style
	p.refresh()
}

// Text returns the text currently shown.
func (p *GameInfoPanel) Text() string {
	return p.box.GetText(true)
}

// refresh updates the panel text.
func (p *GameInfoPanel) refresh() {
	if p.boardState == nil {
		p.box.SetText("")
		return
	}
	s := p.boardState

	var text string

	text += "[white::b]Game Info[-:-:-]\n"
	text += "[dimgray]──────────────────────[-:-:-]\n"
	text += fmt.Sprintf("[white]Turn:[-:-:-] %d\n", s.Turn)
	if s.Outcome != "" {
		text += fmt.Sprintf("[white]Winner:[-:-:-] %s\n", s.Outcome)
	}
	if !s.Finished() {
		text += fmt.Sprintf("[white]To move:[-:-:-] %s\n", s.PlayerToMove)
	}
	if s.LastMove != nil {
		text += fmt.Sprintf("[white]Last:[-:-:-] %s\n", notation.FormatMove(*s.LastMove))
	}

	text += "\n[white::b]Captured[-:-:-]\n"
	text += "[dimgray]──────────────────────[-:-:-]\n"
	text += fmt.Sprintf("[white]White:[-:-:-] %s\n", p.captured(types.Black))
	text += fmt.Sprintf("[white]Black:[-:-:-] %s\n", p.captured(types.White))

	text += "\n[white::b]Position[-:-:-]\n"
	text += "[dimgray]──────────────────────[-:-:-]\n"
	text += fmt.Sprintf("[dimgray]%s[-]\n", notation.Placement(s.Board))

	p.box.SetText(text)
}

// captured lists the pieces of owner missing from the board.
func (p *GameInfoPanel) captured(owner types.Player) string {
	start := map[types.Kind]int{
		types.Pawn:   8,
		types.Knight: 2,
		types.Bishop: 2,
		types.Rook:   2,
		types.Queen:  1,
		types.King:   1,
	}
	for row := 0; row < types.BoardSize; row++ {
		for col := 0; col < types.BoardSize; col++ {
			if pc, ok := p.boardState.Board.At(types.MustCoord(row, col)); ok && pc.Owner == owner {
				start[pc.Kind]--
			}
		}
	}
	var out string
	for _, k := range types.Kinds {
		for i := 0; i < start[k]; i++ {
			out += notation.Glyph(types.Piece{Kind: k, Owner: owner}, p.glyphs)
		}
	}
	if out == "" {
		return "-"
	}
	return out
}

// CreateGameLayout creates the main game layout with board and side panel.
func CreateGameLayout(board *ChessBoardUI, hint *tview.TextView) *tview.Flex {
	mainFlex := tview.NewFlex()
	RebuildNormalLayout(mainFlex, board, hint)
	return mainFlex
}

// CreateCenteredForm creates a centered form container for the setup screen.
func CreateCenteredForm(form tview.Primitive, maxWidth int) *tview.Flex {
	centered := tview.NewFlex().SetDirection(tview.FlexColumn)
	centered.AddItem(nil, 0, 1, false)        // Left spacer
	centered.AddItem(form, maxWidth, 0, true) // Form with max width
	centered.AddItem(nil, 0, 1, false)        // Right spacer

	return centered
}

// RebuildNormalLayout restores the normal game layout with board, info panel, and hint.
func RebuildNormalLayout(gameFrame *tview.Flex, board *ChessBoardUI, hint *tview.TextView) {
	gameFrame.Clear()

	infoPanel := NewGameInfoPanel()
	infoPanel.SetGlyphs(board.cfg.Theme.Glyphs)

	// Store panel reference in board for updates
	board.infoPanel = infoPanel
	if board.BoardState != nil {
		infoPanel.SetBoardState(board.BoardState)
	}

	// Horizontal flex: board | info panel
	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(board.Box, 0, 1, true)
	boardRow.AddItem(infoPanel.Box(), 30, 0, false)

	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(boardRow, 0, 1, true)
	gameFrame.AddItem(hint, 4, 0, false)
}

// BuildFocusLayout builds the focus mode layout with just the centered board.
func BuildFocusLayout(gameFrame *tview.Flex, board *ChessBoardUI) {
	gameFrame.Clear()

	boardWidth := types.BoardSize*cellWidth + 3 // + rank labels
	boardHeight := types.BoardSize + 1          // + file labels

	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(nil, 0, 1, false) // top spacer

	centerRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	centerRow.AddItem(nil, 0, 1, false)
	centerRow.AddItem(board.Box, boardWidth, 0, true)
	centerRow.AddItem(nil, 0, 1, false)

	gameFrame.AddItem(centerRow, boardHeight, 0, true)
	gameFrame.AddItem(nil, 0, 1, false) // bottom spacer
}
