// Package types contains shared data structures for termchess.
package types

// Board is an 8x8 grid of optional pieces indexed as Board[row][col].
// A nil cell is empty.
type Board [BoardSize][BoardSize]*Piece

// At returns the piece on c, if any.
func (b *Board) At(c Coord) (Piece, bool) {
	p := b[c.Row][c.Col]
	if p == nil {
		return Piece{}, false
	}
	return *p, true
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() Board {
	var out Board
	for row := range b {
		for col, p := range b[row] {
			if p != nil {
				cp := *p
				out[row][col] = &cp
			}
		}
	}
	return out
}

// Move is a single piece transfer.
type Move struct {
	From Coord `json:"from"`
	To   Coord `json:"to"`
}

// Phases of a game as reported in BoardState.
const (
	PhasePlaying  = "playing"
	PhaseFinished = "finished"
)

// BoardState is a read-only snapshot of a game.
type BoardState struct {
	Turn         int    `json:"turn"`
	PlayerToMove Player `json:"player_to_move"`
	Phase        string `json:"phase"`
	Board        Board  `json:"board"`
	Outcome      string `json:"outcome"`
	LastMove     *Move  `json:"last_move"`
}

// Finished returns true if the game is over.
func (b *BoardState) Finished() bool {
	return b.Phase == PhaseFinished
}

// NewBoardState creates a snapshot of an empty board with White to move.
func NewBoardState() *BoardState {
	return &BoardState{
		PlayerToMove: White,
		Phase:        PhasePlaying,
	}
}
