// Package rules implements the chess rules engine: board state, per-piece
// move generation and turn progression.
//
// A Game is not safe for concurrent use. Callers sharing one Game between
// goroutines must serialise every call.
package rules

import (
	"termchess/types"
)

var backRank = []func(types.Player) types.Piece{
	types.NewRook, types.NewKnight, types.NewBishop, types.NewQueen,
	types.NewKing, types.NewBishop, types.NewKnight, types.NewRook,
}

// Game holds the board and the number of moves played.
type Game struct {
	board types.Board
	turn  int
}

// New returns a game set up in the standard starting position.
func New() *Game {
	g := &Game{}
	g.Reset()
	return g
}

// NewFromBoard returns a game with the given position and turn counter.
// A negative turn is treated as zero.
func NewFromBoard(board types.Board, turn int) *Game {
	if turn < 0 {
		turn = 0
	}
	return &Game{board: board.Clone(), turn: turn}
}

// Reset sets the turn counter to zero and places the pieces in the
// standard layout.
func (g *Game) Reset() {
	g.turn = 0
	g.board = types.Board{}
	for col, mk := range backRank {
		g.set(0, col, mk(types.Black))
		g.set(1, col, types.NewPawn(types.Black))
		g.set(6, col, types.NewPawn(types.White))
		g.set(7, col, mk(types.White))
	}
}

func (g *Game) set(row, col int, p types.Piece) {
	g.board[row][col] = &p
}

// Turn returns the number of moves played since the last reset.
func (g *Game) Turn() int {
	return g.turn
}

// CurrentPlayer returns the player to move: White on even turns.
func (g *Game) CurrentPlayer() types.Player {
	if g.turn%2 == 0 {
		return types.White
	}
	return types.Black
}

// Board returns a copy of the current position.
func (g *Game) Board() types.Board {
	return g.board.Clone()
}

// PieceAt returns the piece on c, if any.
func (g *Game) PieceAt(c types.Coord) (types.Piece, bool) {
	return g.board.At(c)
}

// Place puts p on c, replacing any occupant.
func (g *Game) Place(c types.Coord, p types.Piece) {
	g.board[c.Row][c.Col] = &p
}

// Remove empties c.
func (g *Game) Remove(c types.Coord) {
	g.board[c.Row][c.Col] = nil
}

// Winner reports the player whose opponent has lost their king. If both
// kings are on the board there is no winner. Check and mate are not
// considered.
func (g *Game) Winner() (types.Player, bool) {
	var whiteKing, blackKing bool
	for row := range g.board {
		for _, p := range g.board[row] {
			if p == nil || p.Kind != types.King {
				continue
			}
			if p.Owner == types.White {
				whiteKing = true
			} else {
				blackKing = true
			}
		}
	}
	switch {
	case !blackKing:
		return types.White, true
	case !whiteKing:
		return types.Black, true
	}
	return types.White, false
}

// Move transfers the piece on from to to, discarding whatever stood on
// to, and advances the turn. The move is not validated: callers must only
// pass destinations returned by PossibleMoves. Move panics if from is empty.
func (g *Game) Move(from, to types.Coord) {
	p := g.board[from.Row][from.Col]
	if p == nil {
		panic("rules: move from empty square")
	}
	moved := *p
	if moved.Kind == types.Pawn {
		moved.HasMoved = true
	}
	g.board[to.Row][to.Col] = &moved
	g.board[from.Row][from.Col] = nil
	g.turn++
}
