// Package notation maps board coordinates and pieces to algebraic square
// names, piece glyphs and FEN piece placement.
package notation

import (
	"fmt"
	"strings"

	nchess "github.com/corentings/chess/v2"

	"termchess/types"
)

// GlyphStyle selects how pieces are drawn.
type GlyphStyle string

const (
	GlyphUnicode GlyphStyle = "unicode"
	GlyphLetters GlyphStyle = "letters"
)

var pieceTypes = map[types.Kind]nchess.PieceType{
	types.Pawn:   nchess.Pawn,
	types.Knight: nchess.Knight,
	types.Bishop: nchess.Bishop,
	types.Rook:   nchess.Rook,
	types.Queen:  nchess.Queen,
	types.King:   nchess.King,
}

// toSquare converts c to a square. Row 7 is rank 1 and column 0 is file a.
func toSquare(c types.Coord) nchess.Square {
	return nchess.NewSquare(nchess.File(c.Col), nchess.Rank(types.BoardSize-1-c.Row))
}

func toPiece(p types.Piece) nchess.Piece {
	color := nchess.White
	if p.Owner == types.Black {
		color = nchess.Black
	}
	return nchess.NewPiece(pieceTypes[p.Kind], color)
}

// Square returns the algebraic name of c, e.g. "e4".
func Square(c types.Coord) string {
	return toSquare(c).String()
}

// ParseSquare parses an algebraic square name such as "e4".
func ParseSquare(s string) (types.Coord, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 2 {
		return types.Coord{}, fmt.Errorf("invalid square: %q", s)
	}
	col := int(s[0] - 'a')
	rank := int(s[1] - '1')
	c, ok := types.NewCoord(types.BoardSize-1-rank, col)
	if !ok {
		return types.Coord{}, fmt.Errorf("square out of range: %q", s)
	}
	return c, nil
}

// ParseMove parses a move in coordinate notation such as "e2e4" or "e2-e4".
func ParseMove(s string) (types.Move, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "-", "")
	if len(s) != 4 {
		return types.Move{}, fmt.Errorf("invalid move: %q", s)
	}
	from, err := ParseSquare(s[:2])
	if err != nil {
		return types.Move{}, err
	}
	to, err := ParseSquare(s[2:])
	if err != nil {
		return types.Move{}, err
	}
	return types.Move{From: from, To: to}, nil
}

// ParseMoves parses a whitespace or comma separated list of moves.
func ParseMoves(s string) ([]types.Move, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	moves := make([]types.Move, 0, len(fields))
	for _, f := range fields {
		m, err := ParseMove(f)
		if err != nil {
			return nil, err
		}
		moves = append(moves, m)
	}
	return moves, nil
}

// FormatMove returns m in coordinate notation, e.g. "e2e4".
func FormatMove(m types.Move) string {
	return Square(m.From) + Square(m.To)
}

// Letter returns the FEN letter of p: upper case for White.
func Letter(p types.Piece) string {
	l := toPiece(p).Type().String()
	if p.Owner == types.White {
		return strings.ToUpper(l)
	}
	return strings.ToLower(l)
}

// Glyph returns the symbol used to draw p in the given style.
func Glyph(p types.Piece, style GlyphStyle) string {
	if style == GlyphLetters {
		return Letter(p)
	}
	return toPiece(p).String()
}

// Placement returns the piece placement field of a FEN string for board.
func Placement(board types.Board) string {
	m := make(map[nchess.Square]nchess.Piece)
	for row := range board {
		for col, p := range board[row] {
			if p != nil {
				m[toSquare(types.Coord{Row: row, Col: col})] = toPiece(*p)
			}
		}
	}
	return nchess.NewBoard(m).String()
}
