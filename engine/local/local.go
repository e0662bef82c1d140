// Package local provides an in-process GameEngine for two players sharing
// one terminal.
package local

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"termchess/engine"
	"termchess/engine/rules"
	"termchess/notation"
	"termchess/types"
)

// Engine implements engine.GameEngine on top of rules.Game. All access to
// the game goes through mu; callbacks run outside the lock.
type Engine struct {
	config   engine.GameConfig
	game     *rules.Game
	lastMove *types.Move
	gameOver bool
	outcome  string
	session  string
	log      *zap.Logger

	moveCallback func(move types.Move, boardState *types.BoardState)
	endCallback  func(winner types.Player, outcome string)

	mu sync.Mutex
}

var _ engine.GameEngine = (*Engine)(nil)

// NewEngine creates a new local engine with the given configuration.
// A nil logger disables logging.
func NewEngine(cfg engine.GameConfig, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	session := uuid.NewString()
	return &Engine{
		config:  cfg,
		game:    rules.New(),
		session: session,
		log:     log.With(zap.String("session", session)),
	}
}

// Session returns the id used to tag this engine's log entries.
func (e *Engine) Session() string {
	return e.session
}

// Connect resets the board and replays the configured moves.
func (e *Engine) Connect() error {
	e.mu.Lock()
	e.resetLocked()
	e.mu.Unlock()

	e.log.Info("game started", zap.Int("replay", len(e.config.Moves)))
	for i, m := range e.config.Moves {
		if err := e.PlayMove(m.From, m.To); err != nil {
			return fmt.Errorf("replay move %d (%s): %w", i+1, notation.FormatMove(m), err)
		}
	}
	return nil
}

// GetBoardState returns a snapshot of the current game.
func (e *Engine) GetBoardState() *types.BoardState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// PossibleMoves returns the destinations of the piece on origin. Nothing
// is offered once the game is over.
func (e *Engine) PossibleMoves(origin types.Coord) []types.Coord {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.gameOver {
		return []types.Coord{}
	}
	return e.game.PossibleMoves(origin)
}

// PlayMove validates the move against the current possible moves and
// applies it.
func (e *Engine) PlayMove(from, to types.Coord) error {
	e.mu.Lock()

	if e.gameOver {
		e.mu.Unlock()
		return engine.ErrGameOver
	}

	p, ok := e.game.PieceAt(from)
	if !ok {
		e.mu.Unlock()
		return fmt.Errorf("%s: %w", notation.Square(from), engine.ErrEmptySquare)
	}

	if !contains(e.game.PossibleMoves(from), to) {
		player := e.game.CurrentPlayer()
		e.mu.Unlock()
		e.log.Debug("move rejected",
			zap.String("piece", p.String()),
			zap.String("from", notation.Square(from)),
			zap.String("to", notation.Square(to)),
			zap.Stringer("to_move", player))
		return fmt.Errorf("%s %s-%s: %w", p, notation.Square(from), notation.Square(to), engine.ErrIllegalMove)
	}

	_, wonBefore := e.game.Winner()
	e.game.Move(from, to)
	move := types.Move{From: from, To: to}
	e.lastMove = &move

	// The outcome is recorded on the first king capture whether or not
	// play stops there.
	winner, won := e.game.Winner()
	kingCaptured := won && !wonBefore
	if kingCaptured {
		e.outcome = fmt.Sprintf("%s wins by capturing the king", winner)
		e.gameOver = e.config.StopAtKingCapture
	}
	gameOver := e.gameOver
	outcome := e.outcome
	boardStateCopy := e.snapshotLocked()
	e.mu.Unlock()

	e.log.Info("move applied",
		zap.String("piece", p.String()),
		zap.String("move", notation.FormatMove(move)),
		zap.Int("turn", boardStateCopy.Turn))

	// Notify callbacks (outside lock to prevent deadlock)
	if e.moveCallback != nil {
		e.moveCallback(move, boardStateCopy)
	}
	if kingCaptured {
		e.log.Info("king captured", zap.Stringer("winner", winner), zap.Bool("game_over", gameOver))
	}
	if gameOver && e.endCallback != nil {
		e.endCallback(winner, outcome)
	}
	return nil
}

// CurrentPlayer returns the player to move.
func (e *Engine) CurrentPlayer() types.Player {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.game.CurrentPlayer()
}

// Winner returns the player who captured the opposing king, if any.
func (e *Engine) Winner() (types.Player, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.game.Winner()
}

// Reset restores the starting position.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.resetLocked()
	e.mu.Unlock()
	e.log.Info("game reset")
}

func (e *Engine) resetLocked() {
	e.game.Reset()
	e.lastMove = nil
	e.gameOver = false
	e.outcome = ""
}

// OnMove registers a callback for when a move is played.
func (e *Engine) OnMove(callback func(move types.Move, boardState *types.BoardState)) {
	e.moveCallback = callback
}

// OnGameEnd registers a callback for when the game ends.
func (e *Engine) OnGameEnd(callback func(winner types.Player, outcome string)) {
	e.endCallback = callback
}

// Close flushes the engine's log.
func (e *Engine) Close() {
	e.log.Info("game closed")
	_ = e.log.Sync()
}

// snapshotLocked creates a deep copy of the current game.
// Must be called while holding the lock.
func (e *Engine) snapshotLocked() *types.BoardState {
	state := &types.BoardState{
		Turn:         e.game.Turn(),
		PlayerToMove: e.game.CurrentPlayer(),
		Phase:        types.PhasePlaying,
		Board:        e.game.Board(),
		Outcome:      e.outcome,
	}
	if e.gameOver {
		state.Phase = types.PhaseFinished
	}
	if e.lastMove != nil {
		m := *e.lastMove
		state.LastMove = &m
	}
	return state
}

func contains(moves []types.Coord, c types.Coord) bool {
	for _, m := range moves {
		if m == c {
			return true
		}
	}
	return false
}
