package board

import "testing"

// TestRepetitionRootDistance checks the asymmetric repetition count: one
// recurrence suffices when the repetition falls inside the search tree,
// two are needed when the earlier occurrence predates the root.
func TestRepetitionRootDistance(t *testing.T) {
	pos := NewStartPosition(Standard)
	playMoves(t, pos, "g1f3", "g8f6", "f3g1", "f6g8")

	if !pos.HasRepeated() {
		t.Fatalf("position not seen as repeated after a knight shuffle")
	}

	// First occurrence 4 plies back. A root above the repetition pair
	// (ply > 4) draws immediately; a root inside it does not.
	if pos.IsDraw(2) {
		t.Errorf("single pre-root repetition scored as a draw")
	}
	if !pos.IsDraw(5) {
		t.Errorf("in-tree repetition not scored as a draw")
	}

	// A second shuffle makes it a threefold: drawn from any root.
	playMoves(t, pos, "g1f3", "g8f6", "f3g1", "f6g8")
	if !pos.IsDraw(0) {
		t.Errorf("threefold repetition not scored as a draw")
	}
}

// TestFiftyMoveRule checks the counter draws at 100 plies and resets on
// pawn moves.
func TestFiftyMoveRule(t *testing.T) {
	pos, err := NewPosition("8/8/8/4k3/8/8/4K3/7R w - - 99 80", Standard)
	if err != nil {
		t.Fatal(err)
	}
	playMoves(t, pos, "h1h2")
	if pos.Rule50() != 100 {
		t.Fatalf("Rule50 = %d, want 100", pos.Rule50())
	}
	if !pos.IsDraw(0) {
		t.Errorf("hundredth quiet ply not scored as a draw")
	}

	pos, err = NewPosition("8/8/8/4k3/8/8/P3K3/7R w - - 99 80", Standard)
	if err != nil {
		t.Fatal(err)
	}
	playMoves(t, pos, "a2a3")
	if pos.Rule50() != 0 {
		t.Errorf("pawn move did not reset the clock, Rule50 = %d", pos.Rule50())
	}
	if pos.IsDraw(0) {
		t.Errorf("position drawn right after an irreversible move")
	}
}

// TestFiftyMoveCheckmatePriority: if the hundredth ply delivers mate, the
// mate stands.
func TestFiftyMoveCheckmatePriority(t *testing.T) {
	pos, err := NewPosition("6k1/5ppp/8/8/8/8/8/R3K3 w - - 99 80", Standard)
	if err != nil {
		t.Fatal(err)
	}
	playMoves(t, pos, "a1a8")
	if !pos.IsCheckmate() {
		t.Fatalf("back-rank mate not recognized")
	}
	if pos.IsDraw(0) {
		t.Errorf("checkmate on the hundredth ply scored as a draw")
	}
}

// TestCheckmateAndStalemate covers the fastest mate and a classic
// stalemate corner.
func TestCheckmateAndStalemate(t *testing.T) {
	pos := NewStartPosition(Standard)
	playMoves(t, pos, "f2f3", "e7e5", "g2g4", "d8h4")
	if !pos.IsCheckmate() {
		t.Errorf("fool's mate not recognized")
	}
	if pos.IsStalemate() {
		t.Errorf("checkmate misreported as stalemate")
	}

	pos, err := NewPosition("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", Standard)
	if err != nil {
		t.Fatal(err)
	}
	if !pos.IsStalemate() {
		t.Errorf("stalemate not recognized")
	}
	if pos.IsCheckmate() {
		t.Errorf("stalemate misreported as checkmate")
	}
}
