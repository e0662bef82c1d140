package rules

import (
	"fmt"

	"termchess/types"
)

type offset struct{ dRow, dCol int }

var (
	knightOffsets = []offset{
		{-2, 1}, {-1, 2}, {1, 2}, {2, 1},
		{2, -1}, {1, -2}, {-1, -2}, {-2, -1},
	}
	kingOffsets = []offset{
		{-1, -1}, {-1, 0}, {-1, 1},
		{0, -1}, {0, 1},
		{1, -1}, {1, 0}, {1, 1},
	}
	diagonals = []offset{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straights = []offset{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
)

// PossibleMoves returns the destinations the piece on origin may move to.
// The result is empty if origin is empty or holds a piece of the player
// not to move. Moves that leave the mover's king attacked are included.
func (g *Game) PossibleMoves(origin types.Coord) []types.Coord {
	p, ok := g.board.At(origin)
	if !ok || p.Owner != g.CurrentPlayer() {
		return []types.Coord{}
	}

	switch p.Kind {
	case types.Pawn:
		return g.pawnMoves(origin, p)
	case types.Knight:
		return g.stepMoves(origin, p.Owner, knightOffsets)
	case types.Bishop:
		return g.rayMoves(origin, p.Owner, diagonals)
	case types.Rook:
		return g.rayMoves(origin, p.Owner, straights)
	case types.Queen:
		return append(g.rayMoves(origin, p.Owner, diagonals), g.rayMoves(origin, p.Owner, straights)...)
	case types.King:
		return g.stepMoves(origin, p.Owner, kingOffsets)
	default:
		panic(fmt.Sprintf("rules: unknown piece kind %d", p.Kind))
	}
}

func (g *Game) empty(c types.Coord) bool {
	return g.board[c.Row][c.Col] == nil
}

// pawnMoves offers one step forward onto an empty square, two steps from
// an unmoved pawn when both squares are empty, and diagonal captures.
func (g *Game) pawnMoves(origin types.Coord, p types.Piece) []types.Coord {
	moves := []types.Coord{}

	one, oneOK := origin.OffsetBy(-1, 0, p.Owner)
	if oneOK && g.empty(one) {
		moves = append(moves, one)
		if two, ok := origin.OffsetBy(-2, 0, p.Owner); ok && !p.HasMoved && g.empty(two) {
			moves = append(moves, two)
		}
	}

	for _, dCol := range []int{-1, 1} {
		target, ok := origin.OffsetBy(-1, dCol, p.Owner)
		if !ok {
			continue
		}
		if victim, ok := g.board.At(target); ok && victim.Owner != p.Owner {
			moves = append(moves, target)
		}
	}
	return moves
}

// stepMoves offers each single-step offset that lands on the board and is
// not occupied by the mover's own piece.
func (g *Game) stepMoves(origin types.Coord, owner types.Player, offsets []offset) []types.Coord {
	moves := []types.Coord{}
	for _, o := range offsets {
		target, ok := origin.OffsetBy(o.dRow, o.dCol, owner)
		if !ok {
			continue
		}
		if other, ok := g.board.At(target); ok && other.Owner == owner {
			continue
		}
		moves = append(moves, target)
	}
	return moves
}

// rayMoves walks each direction until the edge or a piece. An opposing
// piece ends the ray and is included; an own piece ends it and is not.
func (g *Game) rayMoves(origin types.Coord, owner types.Player, dirs []offset) []types.Coord {
	moves := []types.Coord{}
	for _, d := range dirs {
		for step := 1; ; step++ {
			target, ok := origin.OffsetBy(d.dRow*step, d.dCol*step, owner)
			if !ok {
				break
			}
			other, occupied := g.board.At(target)
			if !occupied {
				moves = append(moves, target)
				continue
			}
			if other.Owner != owner {
				moves = append(moves, target)
			}
			break
		}
	}
	return moves
}
