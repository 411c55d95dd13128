package board

import "testing"

// TestPerftStartingPosition verifies move generation from the standard
// starting position against the known node counts.
func TestPerftStartingPosition(t *testing.T) {
	pos := NewStartPosition(Standard)

	tests := []struct {
		depth    int
		expected uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
		// Depth 5 is 4865609, enable for thorough testing.
	}

	for _, tc := range tests {
		got := pos.Perft(tc.depth)
		if got != tc.expected {
			t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
		}
	}
}

// TestPerftKiwipete covers castling, en passant, pins and promotions in
// one position.
func TestPerftKiwipete(t *testing.T) {
	pos, err := NewPosition("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", Standard)
	if err != nil {
		t.Fatalf("parse FEN: %v", err)
	}

	tests := []struct {
		depth    int
		expected uint64
	}{
		{1, 48},
		{2, 2039},
		{3, 97862},
	}

	for _, tc := range tests {
		got := pos.Perft(tc.depth)
		if got != tc.expected {
			t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
		}
	}
}

// TestPerftEndgame exercises the horizontal en passant pin, where taking
// en passant would expose the king along the fifth rank.
func TestPerftEndgame(t *testing.T) {
	pos, err := NewPosition("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", Standard)
	if err != nil {
		t.Fatalf("parse FEN: %v", err)
	}

	tests := []struct {
		depth    int
		expected uint64
	}{
		{1, 14},
		{2, 191},
		{3, 2812},
		{4, 43238},
	}

	for _, tc := range tests {
		got := pos.Perft(tc.depth)
		if got != tc.expected {
			t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
		}
	}
}

// TestPerftPromotions is dominated by underpromotions and promotion
// captures on both sides.
func TestPerftPromotions(t *testing.T) {
	pos, err := NewPosition("n1n5/PPPk4/8/8/8/8/4Kppp/5N1N b - - 0 1", Standard)
	if err != nil {
		t.Fatalf("parse FEN: %v", err)
	}

	tests := []struct {
		depth    int
		expected uint64
	}{
		{1, 24},
		{2, 496},
		{3, 9483},
	}

	for _, tc := range tests {
		got := pos.Perft(tc.depth)
		if got != tc.expected {
			t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
		}
	}
}

// TestPerftMirrored checks the talkchess position known to expose
// castling-rights and promotion bookkeeping bugs.
func TestPerftMirrored(t *testing.T) {
	pos, err := NewPosition("r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", Standard)
	if err != nil {
		t.Fatalf("parse FEN: %v", err)
	}

	tests := []struct {
		depth    int
		expected uint64
	}{
		{1, 6},
		{2, 264},
		{3, 9467},
	}

	for _, tc := range tests {
		got := pos.Perft(tc.depth)
		if got != tc.expected {
			t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
		}
	}
}

// TestDivideSumsToPerft cross-checks Divide against Perft.
func TestDivideSumsToPerft(t *testing.T) {
	pos := NewStartPosition(Standard)

	counts := pos.Divide(3)
	var total uint64
	for _, n := range counts {
		total += n
	}
	if want := pos.Perft(3); total != want {
		t.Errorf("divide total = %d, perft = %d", total, want)
	}
	if len(counts) != 20 {
		t.Errorf("divide has %d root moves, want 20", len(counts))
	}
}
