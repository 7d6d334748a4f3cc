package morris

import (
	"errors"
	"math/rand"
	"testing"
)

// 手写的 16 条成三线，用来和邻接表推出来的结果对照
var canonicalMills = [][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, {9, 10, 11},
	{12, 13, 14}, {15, 16, 17}, {18, 19, 20}, {21, 22, 23},
	{0, 9, 21}, {3, 10, 18}, {6, 11, 15}, {1, 4, 7},
	{16, 19, 22}, {8, 12, 17}, {5, 13, 20}, {2, 14, 23},
}

var (
	mirrorLR = [NumPositions]int{2, 1, 0, 5, 4, 3, 8, 7, 6, 14, 13, 12, 11, 10, 9, 17, 16, 15, 20, 19, 18, 23, 22, 21}
	mirrorTB = [NumPositions]int{21, 22, 23, 18, 19, 20, 15, 16, 17, 9, 10, 11, 12, 13, 14, 6, 7, 8, 3, 4, 5, 0, 1, 2}
)

// randomStates 随机对弈若干步，收集沿途局面
func randomStates(rng *rand.Rand, games, maxPlies int) []*BoardState {
	var out []*BoardState
	for g := 0; g < games; g++ {
		b := NewBoardState()
		for ply := 0; ply < maxPlies; ply++ {
			out = append(out, b.Clone())
			moves := b.GetLegalMoves()
			if len(moves) == 0 {
				break
			}
			if err := b.ApplyMove(moves[rng.Intn(len(moves))]); err != nil {
				panic(err)
			}
		}
	}
	return out
}

func TestTopologyIsSymmetric(t *testing.T) {
	for pos := 0; pos < NumPositions; pos++ {
		n := Adjacent(pos)
		if n.Left != NoPosition && Adjacent(n.Left).Right != pos {
			t.Fatalf("pos %d: left neighbor %d does not point back", pos, n.Left)
		}
		if n.Right != NoPosition && Adjacent(n.Right).Left != pos {
			t.Fatalf("pos %d: right neighbor %d does not point back", pos, n.Right)
		}
		if n.Top != NoPosition && Adjacent(n.Top).Bottom != pos {
			t.Fatalf("pos %d: top neighbor %d does not point back", pos, n.Top)
		}
		if n.Bottom != NoPosition && Adjacent(n.Bottom).Top != pos {
			t.Fatalf("pos %d: bottom neighbor %d does not point back", pos, n.Bottom)
		}
	}
	if got := len(MillLines()); got != len(canonicalMills) {
		t.Fatalf("mill lines: got=%d want=%d", got, len(canonicalMills))
	}
}

func TestEmptyBoardHas24Placements(t *testing.T) {
	b := NewBoardState()
	moves := b.GetLegalMoves()
	if len(moves) != NumPositions {
		t.Fatalf("legal moves: got=%d want=%d", len(moves), NumPositions)
	}
	seen := map[int]bool{}
	for _, m := range moves {
		if m.Phase != Placing || m.From != NoPosition {
			t.Fatalf("unexpected move %v", m)
		}
		seen[m.To] = true
	}
	if len(seen) != NumPositions {
		t.Fatalf("distinct destinations: got=%d want=%d", len(seen), NumPositions)
	}
}

func TestPlacementClosesMill(t *testing.T) {
	b := NewBoardState()
	b.Place(White, 0, 1)
	b.Place(Black, 9, 10)
	b.Turn = 4

	if err := b.ApplyMove(PlaceMove(2)); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !b.CheckMill(2) {
		t.Fatalf("expected mill at 2")
	}
	if b.Phase != Removing || b.Turn != 4 || b.Player != White {
		t.Fatalf("after mill: phase=%v turn=%d player=%v", b.Phase, b.Turn, b.Player)
	}

	// 提子之后才换手
	if err := b.ApplyMove(RemoveMove(9)); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if b.Phase != Placing || b.Turn != 5 || b.Player != Black {
		t.Fatalf("after removal: phase=%v turn=%d player=%v", b.Phase, b.Turn, b.Player)
	}
}

func TestFlyingReachesEveryEmptyPosition(t *testing.T) {
	b := MustDecode("W.W..W..BB.B.B.B.B...... w 30 M")
	if !b.CanFly(White) {
		t.Fatalf("white should fly with %d stones", b.OnBoard(White))
	}
	empty := map[int]bool{}
	for pos := 0; pos < NumPositions; pos++ {
		if b.IsEmpty(pos) {
			empty[pos] = true
		}
	}
	for _, from := range []int{0, 2, 5} {
		reached := map[int]bool{}
		for _, m := range b.GetLegalMoves() {
			if m.From == from {
				reached[m.To] = true
			}
		}
		if len(reached) != len(empty) {
			t.Fatalf("stone %d reaches %d positions, want %d", from, len(reached), len(empty))
		}
	}
}

func TestApplyUndoRestoresState(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	states := randomStates(rng, 60, 80)
	for _, s := range states {
		for _, m := range s.GetLegalMoves() {
			b := s.Clone()
			if err := b.ApplyMove(m); err != nil {
				t.Fatalf("apply %v on %s: %v", m, s, err)
			}
			if err := b.UndoMove(m); err != nil {
				t.Fatalf("undo %v on %s: %v", m, s, err)
			}
			if !b.Equal(s) {
				t.Fatalf("undo %v: got=%s want=%s", m, b, s)
			}
		}
	}
}

func TestApplyRejectsWithoutMutation(t *testing.T) {
	b := MustDecode("WWW...BB.B.............. b 6 P")
	cases := []struct {
		name string
		move Move
	}{
		{"wrong phase", SlideMove(6, 3)},
		{"occupied", PlaceMove(0)},
		{"has source", Move{Phase: Placing, From: 3, To: 4}},
		{"out of range", PlaceMove(24)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before := b.Clone()
			err := b.ApplyMove(tc.move)
			if !errors.Is(err, ErrIllegalMove) {
				t.Fatalf("got err=%v want ErrIllegalMove", err)
			}
			if !b.Equal(before) {
				t.Fatalf("state mutated: got=%s want=%s", b, before)
			}
		})
	}
}

func TestUndoRejectsWithoutMutation(t *testing.T) {
	cases := []struct {
		name  string
		board string
		move  Move
	}{
		{"turn zero", "........................ w 0 P", PlaceMove(0)},
		{"destination empty", "WWW...BB.B.............. b 6 P", PlaceMove(4)},
		{"destination owned by opponent", "WWW...BB.B.............. b 6 P", PlaceMove(9)},
		{"no mill at destination", "WWW......BB............. w 4 R", PlaceMove(9)},
		{"removal target occupied", "WWW...BB.B.............. b 6 P", RemoveMove(0)},
		{"phase does not follow removal", "WWW...BB.B.............. b 6 M", RemoveMove(3)},
		{"removal with destination", "WWW...BB.B.............. b 6 P", Move{Phase: Removing, From: 3, To: 4}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := MustDecode(tc.board)
			before := b.Clone()
			err := b.UndoMove(tc.move)
			if !errors.Is(err, ErrInconsistentUndo) {
				t.Fatalf("got err=%v want ErrInconsistentUndo", err)
			}
			if !b.Equal(before) {
				t.Fatalf("state mutated: got=%s want=%s", b, before)
			}
		})
	}
}

func TestMillProtectionOnRemoval(t *testing.T) {
	// 黑 0,1,2 成三，另有 11；白 21,22,23 刚成三待提子
	b := MustDecode("BBB........B.........WWW w 6 R")
	moves := b.GetLegalMoves()
	if len(moves) != 1 || moves[0] != RemoveMove(11) {
		t.Fatalf("removal targets: got=%v want=[remove 11]", moves)
	}
	if err := b.ApplyMove(RemoveMove(1)); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("removing from a mill: got err=%v", err)
	}

	// 黑全部在成三里时可以任意提
	all := MustDecode("BBB..................WWW w 6 R")
	if got := len(all.GetLegalMoves()); got != 3 {
		t.Fatalf("all-in-mill removal targets: got=%d want=3", got)
	}
	if err := all.ApplyMove(RemoveMove(1)); err != nil {
		t.Fatalf("all-in-mill removal: %v", err)
	}
}

func TestRemovingNeverOffersProtectedStones(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for _, s := range randomStates(rng, 80, 120) {
		if s.Phase != Removing {
			continue
		}
		victim := s.Player.Other()
		anyStone := s.AllInMills(victim)
		for _, m := range s.GetLegalMoves() {
			if s.CheckMill(m.From) && !anyStone {
				t.Fatalf("%s offers protected stone %d", s, m.From)
			}
		}
	}
}

func TestCheckMillMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for _, s := range randomStates(rng, 40, 60) {
		for pos := 0; pos < NumPositions; pos++ {
			want := false
			c := s.At(pos)
			if c != NoColor {
				for _, line := range canonicalMills {
					if line[0] != pos && line[1] != pos && line[2] != pos {
						continue
					}
					if s.Stones[c][line[0]] && s.Stones[c][line[1]] && s.Stones[c][line[2]] {
						want = true
					}
				}
			}
			if got := s.CheckMill(pos); got != want {
				t.Fatalf("%s CheckMill(%d): got=%v want=%v", s, pos, got, want)
			}
		}
	}
}

func TestCheckMillMirrorSymmetry(t *testing.T) {
	mirror := func(b *BoardState, m [NumPositions]int) *BoardState {
		out := b.Clone()
		out.Stones = [2][NumPositions]bool{}
		for c := 0; c < 2; c++ {
			for pos := 0; pos < NumPositions; pos++ {
				out.Stones[c][m[pos]] = b.Stones[c][pos]
			}
		}
		return out
	}
	rng := rand.New(rand.NewSource(5))
	for _, s := range randomStates(rng, 40, 60) {
		for _, m := range [][NumPositions]int{mirrorLR, mirrorTB} {
			ms := mirror(s, m)
			for pos := 0; pos < NumPositions; pos++ {
				if s.CheckMill(pos) != ms.CheckMill(m[pos]) {
					t.Fatalf("%s: mill at %d not mirrored to %d", s, pos, m[pos])
				}
			}
		}
	}
}

func TestGetWinner(t *testing.T) {
	t.Run("undecided", func(t *testing.T) {
		b := MustDecode("WWBBWW..BB.WB.B......... w 18 M")
		if w := b.GetWinner(); w != NoColor {
			t.Fatalf("winner: got=%v want=none", w)
		}
	})
	t.Run("blocked mover loses", func(t *testing.T) {
		// 白 0,1,2,9 被黑完全堵死
		b := MustDecode("WWWBBB...WB...B......B.. w 20 M")
		if w := b.GetWinner(); w != Black {
			t.Fatalf("winner: got=%v want=black", w)
		}
		if n := len(b.GetLegalMoves()); n != 0 {
			t.Fatalf("legal moves in decided position: %d", n)
		}
	})
	t.Run("mill against three stones", func(t *testing.T) {
		b := MustDecode("WWW.....BB..B........... w 24 R")
		if w := b.GetWinner(); w != White {
			t.Fatalf("winner: got=%v want=white", w)
		}
	})
	t.Run("three stones can still fly", func(t *testing.T) {
		b := MustDecode("WWBB.B...W.B............ w 24 M")
		if w := b.GetWinner(); w != NoColor {
			t.Fatalf("winner: got=%v want=none", w)
		}
	})
}

func TestStoneAccounting(t *testing.T) {
	b := NewBoardState()
	if b.InHand(White) != 9 || b.InHand(Black) != 9 {
		t.Fatalf("initial in-hand: %d/%d", b.InHand(White), b.InHand(Black))
	}
	rng := rand.New(rand.NewSource(9))
	for ply := 0; ply < 200 && b.Phase != Moving; ply++ {
		moves := b.GetLegalMoves()
		if len(moves) == 0 {
			break
		}
		if err := b.ApplyMove(moves[rng.Intn(len(moves))]); err != nil {
			t.Fatalf("apply: %v", err)
		}
	}
	if b.Phase == Moving {
		if b.Turn != PlacementTurns {
			t.Fatalf("moving phase starts at turn %d, want %d", b.Turn, PlacementTurns)
		}
		if b.InHand(White) != 0 || b.InHand(Black) != 0 {
			t.Fatalf("stones left in hand: %d/%d", b.InHand(White), b.InHand(Black))
		}
	}
}

func TestNotationRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	for _, s := range randomStates(rng, 10, 40) {
		got, err := Decode(s.Encode())
		if err != nil {
			t.Fatalf("decode %q: %v", s.Encode(), err)
		}
		if !got.Equal(s) {
			t.Fatalf("round trip: got=%s want=%s", got, s)
		}
	}
	for _, bad := range []string{"", "WWW w 0 P", "........................ x 0 P", "........................ w -1 P", "....................... w 0 Q"} {
		if _, err := Decode(bad); !errors.Is(err, ErrInvalidNotation) {
			t.Fatalf("decode %q: got err=%v", bad, err)
		}
	}
}

func TestHashAndRepetition(t *testing.T) {
	a := MustDecode("WW......B.B............. w 4 P")
	b := MustDecode("WW......B.B............. w 8 P")
	if a.Hash() != b.Hash() {
		t.Fatalf("turn must not change the hash")
	}
	c := MustDecode("WW......B.B............. b 4 P")
	if a.Hash() == c.Hash() {
		t.Fatalf("side to move must change the hash")
	}

	table := NewRepetitionTable()
	if n := table.Record(a); n != 1 {
		t.Fatalf("first record: got=%d", n)
	}
	if n := table.Record(b); n != 2 {
		t.Fatalf("second record: got=%d", n)
	}
	if table.Count(c.Hash()) != 0 {
		t.Fatalf("unrelated position counted")
	}
}
