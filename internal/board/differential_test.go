package board

import (
	"sort"
	"strings"
	"testing"

	dragon "github.com/dylhunn/dragontoothmg"
)

var differentialFENs = []string{
	StartFEN,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"n1n5/PPPk4/8/8/8/8/4Kppp/5N1N b - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 2",
	"8/8/8/8/1k6/8/K1P5/8 w - - 0 1",
}

// TestMoveGenerationDifferential compares the legal move set for standard
// chess against an independent generator, position by position.
func TestMoveGenerationDifferential(t *testing.T) {
	for _, fen := range differentialFENs {
		pos, err := NewPosition(fen, Standard)
		if err != nil {
			t.Fatalf("parse FEN %q: %v", fen, err)
		}
		ref := dragon.ParseFen(fen)

		var want []string
		for _, m := range ref.GenerateLegalMoves() {
			want = append(want, m.String())
		}

		var got []string
		ml := pos.GenerateLegalMoves()
		for i := 0; i < ml.Len(); i++ {
			got = append(got, ml.Get(i).String())
		}

		sort.Strings(want)
		sort.Strings(got)
		if strings.Join(got, " ") != strings.Join(want, " ") {
			t.Errorf("%s:\n got  %v\n want %v", fen, got, want)
		}
	}
}

func dragonPerft(b *dragon.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		unapply := b.Apply(m)
		nodes += dragonPerft(b, depth-1)
		unapply()
	}
	return nodes
}

// TestPerftDifferential cross-checks perft counts against the reference
// generator on the same positions.
func TestPerftDifferential(t *testing.T) {
	for _, fen := range differentialFENs {
		pos, err := NewPosition(fen, Standard)
		if err != nil {
			t.Fatalf("parse FEN %q: %v", fen, err)
		}
		ref := dragon.ParseFen(fen)

		for depth := 1; depth <= 3; depth++ {
			got := pos.Perft(depth)
			want := dragonPerft(&ref, depth)
			if got != want {
				t.Errorf("%s: perft(%d) = %d, reference says %d", fen, depth, got, want)
			}
		}
	}
}
