// Package engine defines the interface the user interface plays through.
package engine

import (
	"errors"

	"termchess/types"
)

var (
	// ErrGameOver is returned when a move is attempted after the game ended.
	ErrGameOver = errors.New("game is over")
	// ErrEmptySquare is returned when the origin of a move holds no piece.
	ErrEmptySquare = errors.New("no piece on origin square")
	// ErrIllegalMove is returned when the destination is not among the
	// possible moves of the origin.
	ErrIllegalMove = errors.New("illegal move")
)

// GameEngine defines the interface for playing a game of chess.
type GameEngine interface {
	// Connect initializes the game and replays any configured moves.
	Connect() error

	// GetBoardState returns a snapshot of the current game.
	GetBoardState() *types.BoardState

	// PossibleMoves returns the destinations of the piece on origin.
	// Empty if origin is empty or not owned by the player to move.
	PossibleMoves(origin types.Coord) []types.Coord

	// PlayMove moves the piece on from to to.
	// Returns an error if the move is not one of PossibleMoves(from).
	PlayMove(from, to types.Coord) error

	// CurrentPlayer returns the player to move.
	CurrentPlayer() types.Player

	// Winner returns the player who captured the opposing king, if any.
	Winner() (types.Player, bool)

	// Reset restores the starting position.
	Reset()

	// OnMove registers a callback for every applied move.
	// boardState is a copy taken after the move.
	OnMove(func(move types.Move, boardState *types.BoardState))

	// OnGameEnd registers a callback for when a king is captured.
	OnGameEnd(func(winner types.Player, outcome string))

	// Close releases the engine.
	Close()
}

// GameConfig holds configuration for starting a new game.
type GameConfig struct {
	AutoFlip          bool         // Show the board from the side to move
	ShowHints         bool         // Highlight destinations of the selected piece
	StopAtKingCapture bool         // Reject further moves once a king is taken
	Moves             []types.Move // Played before handing over to the players
}

// DefaultConfig returns a reasonable default configuration.
func DefaultConfig() GameConfig {
	return GameConfig{
		AutoFlip:          false,
		ShowHints:         true,
		StopAtKingCapture: true,
	}
}
