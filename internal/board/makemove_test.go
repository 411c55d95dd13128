package board

import "testing"

// playMoves applies a space-separated move sequence, failing the test on
// any parse or legality problem.
func playMoves(t *testing.T, pos *Position, moves ...string) {
	t.Helper()
	for _, s := range moves {
		m, err := ParseMove(s, pos)
		if err != nil {
			t.Fatalf("parse move %q: %v", s, err)
		}
		if !pos.Legal(m) {
			t.Fatalf("move %q is not legal in %s", s, pos.FEN())
		}
		pos.DoMove(m, pos.GivesCheck(m))
	}
}

// TestDoUndoRestoresPosition plays a sequence touching every move kind
// and unwinds it, checking FEN and key at every step on the way back.
func TestDoUndoRestoresPosition(t *testing.T) {
	pos := NewStartPosition(Standard)

	moves := []string{
		"e2e4", "d7d5", "e4d5", "g8f6", "b1c3", "f6d5", "g1f3", "e7e5",
		"f1c4", "f8b4", "e1g1", "e8g8", "d2d4", "e5d4", "f3d4", "b4c3",
	}

	type snap struct {
		fen string
		key uint64
	}
	var snaps []snap
	var played []Move

	for _, s := range moves {
		snaps = append(snaps, snap{pos.FEN(), pos.Key()})
		m, err := ParseMove(s, pos)
		if err != nil {
			t.Fatalf("parse move %q: %v", s, err)
		}
		pos.DoMove(m, pos.GivesCheck(m))
		played = append(played, m)

		if err := pos.Validate(); err != nil {
			t.Fatalf("after %q: %v", s, err)
		}
	}

	for i := len(played) - 1; i >= 0; i-- {
		pos.UndoMove(played[i])
		if got := pos.FEN(); got != snaps[i].fen {
			t.Fatalf("undo %d: FEN = %q, want %q", i, got, snaps[i].fen)
		}
		if got := pos.Key(); got != snaps[i].key {
			t.Fatalf("undo %d: key = %016x, want %016x", i, got, snaps[i].key)
		}
	}
	if got := pos.FEN(); got != StartFEN {
		t.Errorf("full unwind FEN = %q, want start position", got)
	}
}

// TestIncrementalKeysMatchRecomputation walks a deep line and verifies the
// incrementally maintained keys against from-scratch recomputation, via
// Validate, at every node.
func TestIncrementalKeysMatchRecomputation(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	}

	for _, fen := range fens {
		pos, err := NewPosition(fen, Standard)
		if err != nil {
			t.Fatalf("parse FEN %q: %v", fen, err)
		}
		var walk func(depth int)
		walk = func(depth int) {
			if depth == 0 {
				return
			}
			ml := pos.GenerateLegalMoves()
			for i := 0; i < ml.Len(); i++ {
				m := ml.Get(i)
				pos.DoMove(m, pos.GivesCheck(m))
				if err := pos.Validate(); err != nil {
					t.Fatalf("%s after %s: %v", fen, m, err)
				}
				walk(depth - 1)
				pos.UndoMove(m)
			}
		}
		walk(2)
	}
}

// TestEnPassantOnlyWhenCapturable checks that a double push records the
// en passant square only if an enemy pawn can actually take it.
func TestEnPassantOnlyWhenCapturable(t *testing.T) {
	pos := NewStartPosition(Standard)
	playMoves(t, pos, "e2e4")
	if pos.EpSquare() != NoSquare {
		t.Errorf("ep square set with no black pawn able to capture")
	}

	playMoves(t, pos, "g8f6", "e4e5", "d7d5")
	if pos.EpSquare() != D6 {
		t.Errorf("ep square = %v, want d6", pos.EpSquare())
	}
}

// TestNullMove verifies the turn pass flips the key, clears en passant,
// blocks the repetition scan, and unwinds cleanly.
func TestNullMove(t *testing.T) {
	pos := NewStartPosition(Standard)
	playMoves(t, pos, "e2e4", "c7c5")

	fen, key := pos.FEN(), pos.Key()

	pos.DoNullMove()
	if pos.Key() == key {
		t.Errorf("key unchanged by null move")
	}
	if pos.EpSquare() != NoSquare {
		t.Errorf("ep square survived null move")
	}
	if pos.PliesFromNull() != 0 {
		t.Errorf("PliesFromNull = %d, want 0", pos.PliesFromNull())
	}
	pos.UndoNullMove()

	if got := pos.FEN(); got != fen {
		t.Errorf("FEN after null round trip = %q, want %q", got, fen)
	}
	if got := pos.Key(); got != key {
		t.Errorf("key after null round trip = %016x, want %016x", got, key)
	}
}

type recordingPrefetcher struct {
	keys []uint64
}

func (r *recordingPrefetcher) Prefetch(key uint64) {
	r.keys = append(r.keys, key)
}

// TestPrefetcherReceivesNewKey checks DoMove hands the post-move key to
// the attached prefetcher before returning.
func TestPrefetcherReceivesNewKey(t *testing.T) {
	pos := NewStartPosition(Standard)
	rec := &recordingPrefetcher{}
	pos.SetPrefetcher(rec)

	m, err := ParseMove("e2e4", pos)
	if err != nil {
		t.Fatal(err)
	}
	pos.DoMove(m, false)

	if len(rec.keys) != 1 {
		t.Fatalf("prefetcher called %d times, want 1", len(rec.keys))
	}
	if rec.keys[0] != pos.Key() {
		t.Errorf("prefetched key %016x, want %016x", rec.keys[0], pos.Key())
	}
}

// TestCopyIsIndependent verifies a copied position shares no mutable
// state with its source.
func TestCopyIsIndependent(t *testing.T) {
	pos := NewStartPosition(Standard)
	playMoves(t, pos, "e2e4", "e7e5")

	clone := pos.Copy()
	playMoves(t, clone, "g1f3")

	if pos.FEN() == clone.FEN() {
		t.Errorf("mutating the copy changed the original")
	}
	if err := pos.Validate(); err != nil {
		t.Errorf("original corrupted by copy mutation: %v", err)
	}
}
