package local

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"termchess/engine"
	"termchess/notation"
	"termchess/types"
)

func sq(t *testing.T, name string) types.Coord {
	t.Helper()
	c, err := notation.ParseSquare(name)
	if err != nil {
		t.Fatalf("ParseSquare(%q): %v", name, err)
	}
	return c
}

func mustMoves(t *testing.T, s string) []types.Move {
	t.Helper()
	moves, err := notation.ParseMoves(s)
	if err != nil {
		t.Fatalf("ParseMoves(%q): %v", s, err)
	}
	return moves
}

func newConnected(t *testing.T, cfg engine.GameConfig) *Engine {
	t.Helper()
	e := NewEngine(cfg, nil)
	if err := e.Connect(); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	return e
}

func TestConnectStartsFreshGame(t *testing.T) {
	e := newConnected(t, engine.DefaultConfig())
	state := e.GetBoardState()
	if state.Turn != 0 || state.PlayerToMove != types.White || state.Finished() {
		t.Fatalf("unexpected initial state: turn=%d player=%s phase=%s", state.Turn, state.PlayerToMove, state.Phase)
	}
	if state.LastMove != nil {
		t.Fatalf("last move should be nil, got %+v", state.LastMove)
	}
	if e.Session() == "" {
		t.Fatal("session id should be set")
	}
}

func TestPlayMove(t *testing.T) {
	e := newConnected(t, engine.DefaultConfig())

	var got []types.Move
	e.OnMove(func(move types.Move, state *types.BoardState) {
		got = append(got, move)
		if state.Turn != len(got) {
			t.Errorf("callback state turn = %d, want %d", state.Turn, len(got))
		}
	})

	if err := e.PlayMove(sq(t, "e2"), sq(t, "e4")); err != nil {
		t.Fatalf("PlayMove: %v", err)
	}
	state := e.GetBoardState()
	if _, ok := state.Board.At(sq(t, "e2")); ok {
		t.Error("e2 should be empty")
	}
	p, ok := state.Board.At(sq(t, "e4"))
	if !ok || p.Kind != types.Pawn || p.Owner != types.White {
		t.Errorf("e4 = %v, %v; want White Pawn", p, ok)
	}
	if state.PlayerToMove != types.Black || e.CurrentPlayer() != types.Black {
		t.Errorf("player to move = %s, want Black", state.PlayerToMove)
	}
	want := []types.Move{{From: sq(t, "e2"), To: sq(t, "e4")}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("callback moves mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(&want[0], state.LastMove); diff != "" {
		t.Errorf("last move mismatch (-want +got):\n%s", diff)
	}
}

func TestPlayMoveRejects(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		wantErr  error
	}{
		{"empty origin", "e4", "e5", engine.ErrEmptySquare},
		{"pawn three squares", "e2", "e5", engine.ErrIllegalMove},
		{"opponent piece", "e7", "e5", engine.ErrIllegalMove},
		{"rook through pawn", "a1", "a3", engine.ErrIllegalMove},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newConnected(t, engine.DefaultConfig())
			err := e.PlayMove(sq(t, tt.from), sq(t, tt.to))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("PlayMove(%s, %s) error = %v, want %v", tt.from, tt.to, err, tt.wantErr)
			}
			if e.GetBoardState().Turn != 0 {
				t.Fatal("rejected move should not advance the turn")
			}
		})
	}
}

// scholarsMate leaves the black king on e8 attacked by the queen on f7.
const scholarsMate = "e2e4 e7e5 d1h5 b8c6 f1c4 g8f6 h5f7 a7a6"

func TestKingCaptureEndsGame(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.Moves = mustMoves(t, scholarsMate)
	e := newConnected(t, cfg)

	var winner types.Player
	var outcome string
	e.OnGameEnd(func(w types.Player, o string) {
		winner, outcome = w, o
	})

	if err := e.PlayMove(sq(t, "f7"), sq(t, "e8")); err != nil {
		t.Fatalf("capture king: %v", err)
	}
	if winner != types.White || outcome == "" {
		t.Fatalf("end callback: winner=%s outcome=%q", winner, outcome)
	}
	if w, ok := e.Winner(); !ok || w != types.White {
		t.Fatalf("Winner() = %s, %v; want White", w, ok)
	}
	state := e.GetBoardState()
	if !state.Finished() || state.Outcome != outcome {
		t.Fatalf("state phase=%s outcome=%q", state.Phase, state.Outcome)
	}
	if moves := e.PossibleMoves(sq(t, "a6")); len(moves) != 0 {
		t.Errorf("no moves should be offered after game over, got %v", moves)
	}
	if err := e.PlayMove(sq(t, "a6"), sq(t, "a5")); !errors.Is(err, engine.ErrGameOver) {
		t.Fatalf("PlayMove after end = %v, want ErrGameOver", err)
	}

	e.Reset()
	state = e.GetBoardState()
	if state.Finished() || state.Turn != 0 || state.LastMove != nil {
		t.Fatalf("reset state: phase=%s turn=%d last=%v", state.Phase, state.Turn, state.LastMove)
	}
}

func TestPlayContinuesWithoutStop(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.StopAtKingCapture = false
	cfg.Moves = mustMoves(t, scholarsMate+" f7e8")
	e := newConnected(t, cfg)

	if _, ok := e.Winner(); !ok {
		t.Fatal("expected a winner")
	}
	if e.GetBoardState().Finished() {
		t.Fatal("game should continue when StopAtKingCapture is off")
	}
	if got, want := e.GetBoardState().Outcome, "White wins by capturing the king"; got != want {
		t.Errorf("outcome = %q, want %q", got, want)
	}
	if err := e.PlayMove(sq(t, "a6"), sq(t, "a5")); err != nil {
		t.Fatalf("PlayMove after king capture: %v", err)
	}
	if e.GetBoardState().Outcome == "" {
		t.Error("outcome should survive later moves")
	}
}

func TestLogsKingCaptureOnce(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	cfg := engine.DefaultConfig()
	cfg.StopAtKingCapture = false
	cfg.Moves = mustMoves(t, scholarsMate+" f7e8")
	e := NewEngine(cfg, zap.New(core))
	if err := e.Connect(); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	for _, m := range mustMoves(t, "a6a5 e8e7 a5a4") {
		if err := e.PlayMove(m.From, m.To); err != nil {
			t.Fatalf("PlayMove(%s): %v", notation.FormatMove(m), err)
		}
	}

	if n := logs.FilterMessage("king captured").Len(); n != 1 {
		t.Errorf("got %d 'king captured' entries, want 1", n)
	}
}

func TestConnectReplayError(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.Moves = mustMoves(t, "e2e4 e2e3")
	e := NewEngine(cfg, nil)
	err := e.Connect()
	if !errors.Is(err, engine.ErrEmptySquare) {
		t.Fatalf("Connect error = %v, want ErrEmptySquare", err)
	}
}

func TestLogsMoves(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	e := NewEngine(engine.DefaultConfig(), zap.New(core))
	if err := e.Connect(); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	_ = e.PlayMove(sq(t, "g1"), sq(t, "f3"))
	_ = e.PlayMove(sq(t, "g8"), sq(t, "g6"))

	applied := logs.FilterMessage("move applied").All()
	if len(applied) != 1 {
		t.Fatalf("got %d 'move applied' entries, want 1", len(applied))
	}
	fields := applied[0].ContextMap()
	if fields["move"] != "g1f3" || fields["session"] != e.Session() {
		t.Errorf("unexpected fields: %v", fields)
	}
	if logs.FilterMessage("move rejected").Len() != 1 {
		t.Error("expected one rejected move entry")
	}
}

func TestConcurrentAccess(t *testing.T) {
	e := newConnected(t, engine.DefaultConfig())
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = e.PossibleMoves(types.MustCoord(6, j%8))
				_ = e.GetBoardState()
			}
		}()
	}
	for _, m := range mustMoves(t, "e2e4 e7e5 g1f3 b8c6") {
		if err := e.PlayMove(m.From, m.To); err != nil {
			t.Errorf("PlayMove %s: %v", notation.FormatMove(m), err)
		}
	}
	wg.Wait()
	if e.GetBoardState().Turn != 4 {
		t.Fatalf("turn = %d, want 4", e.GetBoardState().Turn)
	}
}
