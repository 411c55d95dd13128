package board

import "testing"

// TestFENRoundTrip parses and re-serializes positions across variants.
func TestFENRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		variant Variant
		fen     string
	}{
		{"start", Standard, StartFEN},
		{"kiwipete", Standard, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"},
		{"endgame", Standard, "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"},
		{"ep", Standard, "rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 2"},
		{"no castling", Standard, "4k3/8/8/8/8/8/8/4K3 w - - 12 40"},
		{"antichess kingless", Antichess, "8/8/8/3p4/4P3/8/8/8 w - - 0 1"},
		{"atomic", Atomic, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"crazyhouse start", Crazyhouse, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR[-] w KQkq - 0 1"},
		{"crazyhouse reserve", Crazyhouse, "rnbqk2r/pppp1ppp/5n2/2b1p3/2B1P3/5N2/PPPP1PPP/RNBQK2R[NPnp] w KQkq - 0 6"},
		{"threecheck", ThreeCheck, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 3+3 0 1"},
		{"threecheck partial", ThreeCheck, "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 1+2 0 3"},
		{"koth", KingOfTheHill, "8/8/8/4k3/8/3K4/8/8 w - - 0 50"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos, err := NewPosition(tc.fen, tc.variant)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if got := pos.FEN(); got != tc.fen {
				t.Errorf("round trip = %q, want %q", got, tc.fen)
			}
			if err := pos.Validate(); err != nil {
				t.Errorf("validate: %v", err)
			}
		})
	}
}

// TestStartingFENParses checks every variant's start position parses and
// round-trips.
func TestStartingFENParses(t *testing.T) {
	for v := Standard; v < numVariants; v++ {
		pos, err := NewPosition(StartingFEN(v), v)
		if err != nil {
			t.Fatalf("%v: %v", v, err)
		}
		if got := pos.FEN(); got != StartingFEN(v) {
			t.Errorf("%v: round trip = %q, want %q", v, got, StartingFEN(v))
		}
	}
}

// TestBogusEnPassantDropped checks an en passant square nobody can
// capture on is not retained, so transpositions hash identically.
func TestBogusEnPassantDropped(t *testing.T) {
	pos, err := NewPosition("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1", Standard)
	if err != nil {
		t.Fatal(err)
	}
	if pos.EpSquare() != NoSquare {
		t.Errorf("uncapturable ep square retained")
	}

	plain, err := NewPosition("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1", Standard)
	if err != nil {
		t.Fatal(err)
	}
	if pos.Key() != plain.Key() {
		t.Errorf("bogus ep square changed the position key")
	}
}

// TestPromotedMarkerRoundTrip covers the crazyhouse '~' decoration.
func TestPromotedMarkerRoundTrip(t *testing.T) {
	fen := "rnbqkb1r/ppppp2p/5p2/6pQ~/8/8/PPPPPPP1/RNBQKBNR[P] b KQkq - 0 5"
	pos, err := NewPosition(fen, Crazyhouse)
	if err != nil {
		t.Fatal(err)
	}
	if !pos.Promoted().IsSet(H5) {
		t.Errorf("promoted marker not recorded")
	}
	if got := pos.FEN(); got != fen {
		t.Errorf("round trip = %q, want %q", got, fen)
	}
}

// TestShredderCastlingRights parses file-letter castling rights and keeps
// the chess960 flag.
func TestShredderCastlingRights(t *testing.T) {
	fen := "rn2k1r1/ppp1pp1p/3p2p1/5bn1/P7/2N2B2/1PPPPP2/2BNK1RR w Gga - 4 11"
	pos, err := NewPosition(fen, Standard)
	if err != nil {
		t.Fatal(err)
	}
	if !pos.Chess960() {
		t.Errorf("shredder rights did not set the chess960 flag")
	}
	if pos.CastlingRookSquare(White, true) != G1 {
		t.Errorf("white kingside rook = %v, want g1", pos.CastlingRookSquare(White, true))
	}
	if got := pos.FEN(); got != fen {
		t.Errorf("round trip = %q, want %q", got, fen)
	}
}

// TestVariantKeysDiffer checks the same placement hashes differently per
// variant, so cross-variant table hits are impossible.
func TestVariantKeysDiffer(t *testing.T) {
	std := NewStartPosition(Standard)
	koth := NewStartPosition(KingOfTheHill)
	if std.Key() == koth.Key() {
		t.Errorf("identical keys across variants")
	}
}

// TestInvalidFENs rejects malformed input.
func TestInvalidFENs(t *testing.T) {
	bad := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq zz 0 1",
	}
	for _, fen := range bad {
		if _, err := NewPosition(fen, Standard); err == nil {
			t.Errorf("FEN %q parsed without error", fen)
		}
	}
}
