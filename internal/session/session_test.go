package session

import (
	"errors"
	"testing"
	"time"

	"morris/internal/engine"
	"morris/internal/morris"
)

func TestManagerLifecycle(t *testing.T) {
	m := NewManager()
	g := m.NewGame(Options{})
	if g.ID == "" {
		t.Fatalf("empty game id")
	}
	got, err := m.Get(g.ID)
	if err != nil || got != g {
		t.Fatalf("get: got=%p err=%v", got, err)
	}
	if err := m.Remove(g.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := m.Get(g.ID); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("get after remove: err=%v", err)
	}
	if m.Len() != 0 {
		t.Fatalf("len: got=%d want=0", m.Len())
	}
}

func TestPlayTracksMillsAndRejectsIllegal(t *testing.T) {
	g := NewManager().NewGame(Options{})
	script := []morris.Move{
		morris.PlaceMove(0), morris.PlaceMove(9),
		morris.PlaceMove(1), morris.PlaceMove(10),
		morris.PlaceMove(2), // 白成三
	}
	for _, mv := range script {
		if err := g.Play(mv); err != nil {
			t.Fatalf("play %v: %v", mv, err)
		}
	}
	b := g.Board()
	if b.Phase != morris.Removing || b.Player != morris.White {
		t.Fatalf("after mill: %s", b)
	}
	if g.LastMillTurn() != 4 {
		t.Fatalf("last mill turn: got=%d want=4", g.LastMillTurn())
	}

	if err := g.Play(morris.PlaceMove(5)); !errors.Is(err, morris.ErrIllegalMove) {
		t.Fatalf("placing during removal: err=%v", err)
	}
	if err := g.Play(morris.RemoveMove(9)); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if n := len(g.Moves()); n != len(script)+1 {
		t.Fatalf("moves: got=%d want=%d", n, len(script)+1)
	}
	if st, _ := g.Status(); st != Ongoing {
		t.Fatalf("status: got=%v", st)
	}
}

func TestHumanSideCannotThink(t *testing.T) {
	g := NewManager().NewGame(Options{})
	if _, err := g.Think(); !errors.Is(err, ErrNotAIPlayer) {
		t.Fatalf("think for human: err=%v", err)
	}
}

func TestOneThinkAtATime(t *testing.T) {
	g := NewManager().NewGame(Options{Players: [2]engine.MoveStrategy{engine.RandomStrategy{}, engine.RandomStrategy{}}})
	g.thinking.Lock()
	_, err := g.Think()
	g.thinking.Unlock()
	if !errors.Is(err, ErrSearchInFlight) {
		t.Fatalf("concurrent think: err=%v", err)
	}
}

func TestAIGamesFinish(t *testing.T) {
	cases := []struct {
		name         string
		white, black engine.MoveStrategy
		budget       time.Duration
		maxPlies     int
	}{
		{"random vs random", engine.RandomStrategy{}, engine.RandomStrategy{}, 0, 2000},
		{"greedy vs random", engine.GreedyMillStrategy{}, engine.RandomStrategy{}, 0, 2000},
		{"search vs greedy", engine.NewSearchStrategy(engine.NewEngine(engine.SearchConfig{BeamWidth: 30})), engine.GreedyMillStrategy{}, 2 * time.Millisecond, 400},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := NewManager().NewGame(Options{
				Players: [2]engine.MoveStrategy{tc.white, tc.black},
				Budget:  tc.budget,
			})
			for ply := 0; ply < tc.maxPlies; ply++ {
				if st, _ := g.Status(); st != Ongoing {
					return
				}
				before := g.Board()
				res, err := g.AIMove()
				if err != nil {
					t.Fatalf("ply %d on %s: %v", ply, before, err)
				}
				if !before.IsLegal(res.Move) {
					t.Fatalf("ply %d: illegal move %v on %s", ply, res.Move, before)
				}
			}
			if st, _ := g.Status(); st == Ongoing && tc.maxPlies >= 2000 {
				t.Fatalf("game did not finish: %s", g.Board())
			}
		})
	}
}

func TestPlayAfterGameOver(t *testing.T) {
	g := NewManager().NewGame(Options{Players: [2]engine.MoveStrategy{engine.RandomStrategy{}, engine.RandomStrategy{}}})
	for ply := 0; ply < 5000; ply++ {
		if st, _ := g.Status(); st != Ongoing {
			break
		}
		if _, err := g.AIMove(); err != nil {
			t.Fatalf("ply %d: %v", ply, err)
		}
	}
	st, _ := g.Status()
	if st == Ongoing {
		t.Skip("game still running")
	}
	for _, mv := range []morris.Move{morris.PlaceMove(0), morris.SlideMove(0, 1), morris.RemoveMove(0)} {
		if err := g.Play(mv); !errors.Is(err, ErrGameOver) {
			t.Fatalf("play after %v: err=%v", st, err)
		}
	}
	if _, err := g.Think(); !errors.Is(err, ErrGameOver) {
		t.Fatalf("think after %v: err=%v", st, err)
	}
}
