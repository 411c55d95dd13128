package board

import (
	"strings"
	"testing"
)

// TestAntichessCompulsion: with a capture available, only captures are
// legal.
func TestAntichessCompulsion(t *testing.T) {
	pos, err := NewPosition("8/8/8/3p4/4P3/8/8/8 w - - 0 1", Antichess)
	if err != nil {
		t.Fatal(err)
	}

	ml := pos.GenerateLegalMoves()
	if ml.Len() != 1 {
		t.Fatalf("generated %d moves, want only the capture", ml.Len())
	}
	m := ml.Get(0)
	if m.From() != E4 || m.To() != D5 {
		t.Errorf("compelled move = %s, want e4d5", m)
	}

	push := NewMove(E4, E5)
	if pos.Legal(push) {
		t.Errorf("quiet push legal while a capture exists")
	}
}

// TestAntichessKingPromotion: promotions run all the way up to a king.
func TestAntichessKingPromotion(t *testing.T) {
	pos, err := NewPosition("8/P7/8/8/8/8/8/8 w - - 0 1", Antichess)
	if err != nil {
		t.Fatal(err)
	}

	ml := pos.GenerateLegalMoves()
	if ml.Len() != 5 {
		t.Fatalf("generated %d promotions, want 5 (N B R Q K)", ml.Len())
	}

	kingPromo := NewPromotion(A7, A8, King)
	if !ml.Contains(kingPromo) {
		t.Errorf("promotion to king missing")
	}

	pos.DoMove(kingPromo, false)
	if pc := pos.PieceAt(A8); pc != NewPiece(King, White) {
		t.Errorf("piece on a8 = %v, want a white king", pc)
	}
	pos.UndoMove(kingPromo)
	if pc := pos.PieceAt(A7); pc != NewPiece(Pawn, White) {
		t.Errorf("undo left %v on a7, want the pawn back", pc)
	}
}

// TestAntichessBareSideWins: the side to move with no pieces has won.
func TestAntichessBareSideWins(t *testing.T) {
	pos, err := NewPosition("n7/8/8/8/8/8/8/8 w - - 0 1", Antichess)
	if err != nil {
		t.Fatal(err)
	}
	outcome, over := pos.GameOutcome()
	if !over || outcome != Win {
		t.Errorf("bare side to move: outcome = %v over = %v, want a win", outcome, over)
	}
}

// TestAtomicExplosion: a capture removes the capturer, the victim and
// adjacent non-pawns, and undo restores everything.
func TestAtomicExplosion(t *testing.T) {
	pos, err := NewPosition("k7/8/8/2nr4/3P4/8/8/K6R w - - 0 1", Atomic)
	if err != nil {
		t.Fatal(err)
	}
	before := pos.FEN()

	// dxc5 takes the knight; the blast also claims the d5 rook and the
	// capturing pawn itself.
	m := mustMove(t, pos, "d4c5")
	if !pos.Legal(m) {
		t.Fatalf("blast capture not legal")
	}
	pos.DoMove(m, pos.GivesCheck(m))

	for _, sq := range []Square{C5, D5, D4} {
		if pos.PieceAt(sq) != NoPiece {
			t.Errorf("square %v not emptied by the blast", sq)
		}
	}
	if err := pos.Validate(); err != nil {
		t.Errorf("after blast: %v", err)
	}

	pos.UndoMove(m)
	if got := pos.FEN(); got != before {
		t.Errorf("undo after blast = %q, want %q", got, before)
	}
}

// TestAtomicOwnKingBlast: a capture whose explosion reaches one's own
// king is illegal.
func TestAtomicOwnKingBlast(t *testing.T) {
	pos, err := NewPosition("k7/8/8/8/8/1r6/K1P5/8 w - - 0 1", Atomic)
	if err != nil {
		t.Fatal(err)
	}
	m := mustMove(t, pos, "c2b3")
	if pos.Legal(m) {
		t.Errorf("capture exploding own king allowed")
	}
}

// TestAtomicAdjacentKings: touching kings shield each other from check.
func TestAtomicAdjacentKings(t *testing.T) {
	pos, err := NewPosition("8/8/8/3kK3/8/8/8/r7 b - - 0 1", Atomic)
	if err != nil {
		t.Fatal(err)
	}
	// Re1 would check a lone king on e5, but the kings touch.
	m := mustMove(t, pos, "a1e1")
	if pos.GivesCheck(m) {
		t.Errorf("check claimed against a shielded king")
	}
	pos.DoMove(m, pos.GivesCheck(m))
	if pos.InCheck() {
		t.Errorf("shielded king reported in check")
	}
}

// TestAtomicWinByExplosion: blowing up the enemy king ends the game.
func TestAtomicWinByExplosion(t *testing.T) {
	pos, err := NewPosition("rnbqkbnr/ppp2ppp/3p4/4p3/4P3/5Q2/PPPP1PPP/RNB1KBNR w KQkq - 0 3", Atomic)
	if err != nil {
		t.Fatal(err)
	}
	// Qxf7 explodes the e8 king.
	m := mustMove(t, pos, "f3f7")
	if !pos.Legal(m) {
		t.Fatalf("king-exploding capture not legal")
	}
	pos.DoMove(m, pos.GivesCheck(m))

	if pos.KingSquare(Black) != NoSquare {
		t.Fatalf("black king survived the blast")
	}
	outcome, over := pos.GameOutcome()
	if !over || outcome != Loss {
		t.Errorf("outcome = %v over = %v, want a loss for the kingless side", outcome, over)
	}
}

// TestThreeCheckCounting: checks increment the counter, flow through the
// key, and end the game at three.
func TestThreeCheckCounting(t *testing.T) {
	pos := NewStartPosition(ThreeCheck)
	key := pos.Key()

	playMoves(t, pos, "e2e4", "f7f6", "d1h5")
	if got := pos.ChecksGiven(White); got != 1 {
		t.Fatalf("ChecksGiven = %d, want 1", got)
	}
	if pos.Key() == key {
		t.Errorf("check count not hashed")
	}

	// Two checks already delivered: one more ends it.
	pos, err := NewPosition("rnbqkbnr/pppp2pp/5p2/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 1+3 0 3", ThreeCheck)
	if err != nil {
		t.Fatal(err)
	}
	playMoves(t, pos, "d1h5")
	outcome, over := pos.GameOutcome()
	if !over || outcome != Loss {
		t.Errorf("outcome = %v over = %v, want a loss after the third check", outcome, over)
	}
}

// TestKingOfTheHillCenter: a king reaching the center wins on the spot.
func TestKingOfTheHillCenter(t *testing.T) {
	pos, err := NewPosition("8/8/8/8/8/3K3k/8/8 w - - 0 1", KingOfTheHill)
	if err != nil {
		t.Fatal(err)
	}
	if _, over := pos.GameOutcome(); over {
		t.Fatalf("game over before anyone reached the center")
	}

	playMoves(t, pos, "d3d4")
	outcome, over := pos.GameOutcome()
	if !over || outcome != Loss {
		t.Errorf("outcome = %v over = %v, want a loss against the centered king", outcome, over)
	}
}

// TestCrazyhouseHandCycle: a capture fills the hand, a drop empties it,
// and undo rewinds both.
func TestCrazyhouseHandCycle(t *testing.T) {
	pos, err := NewPosition("rnbqkb1r/pppp1ppp/5n2/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R[-] w KQkq - 2 3", Crazyhouse)
	if err != nil {
		t.Fatal(err)
	}
	before := pos.FEN()

	var played []Move
	for _, s := range []string{"f3e5", "b8c6", "e5f3", "c6b8", "P@e5"} {
		m := mustMove(t, pos, s)
		if !pos.Legal(m) {
			t.Fatalf("move %q not legal", s)
		}
		pos.DoMove(m, pos.GivesCheck(m))
		played = append(played, m)

		if s == "f3e5" {
			if got := pos.Hand(White, Pawn); got != 1 {
				t.Fatalf("hand pawns = %d after capture, want 1", got)
			}
			if fen := pos.FEN(); !strings.Contains(fen, "[P]") {
				t.Errorf("reserve missing from FEN %q", fen)
			}
		}
	}

	if !played[len(played)-1].IsDrop() {
		t.Fatalf("parsed %q is not a drop", played[len(played)-1])
	}
	if pc := pos.PieceAt(E5); pc != NewPiece(Pawn, White) {
		t.Errorf("piece on e5 = %v, want the dropped pawn", pc)
	}
	if got := pos.Hand(White, Pawn); got != 0 {
		t.Errorf("hand pawns = %d after drop, want 0", got)
	}
	if err := pos.Validate(); err != nil {
		t.Errorf("after drop: %v", err)
	}

	for i := len(played) - 1; i >= 0; i-- {
		pos.UndoMove(played[i])
	}
	if got := pos.FEN(); got != before {
		t.Errorf("unwound FEN = %q, want %q", got, before)
	}
}

// TestCrazyhousePromotionDemotes: a captured promoted piece goes to the
// hand as the pawn it came from.
func TestCrazyhousePromotionDemotes(t *testing.T) {
	pos, err := NewPosition("1rk5/P7/8/8/8/8/8/2K5[-] w - - 0 1", Crazyhouse)
	if err != nil {
		t.Fatal(err)
	}

	playMoves(t, pos, "a7b8q")
	if fen := pos.FEN(); !strings.Contains(fen, "Q~") {
		t.Errorf("promoted marker missing from FEN %q", fen)
	}
	if got := pos.Hand(White, Rook); got != 1 {
		t.Errorf("white hand rooks = %d, want 1", got)
	}

	playMoves(t, pos, "c8b8")
	if got := pos.Hand(Black, Pawn); got != 1 {
		t.Errorf("black hand pawns = %d, want the demoted pawn", got)
	}
	if got := pos.Hand(Black, Queen); got != 0 {
		t.Errorf("black hand queens = %d, promoted piece not demoted", got)
	}
	if err := pos.Validate(); err != nil {
		t.Errorf("after recapture: %v", err)
	}
}

// TestCrazyhousePromotedMarkerFollowsMoves: the marker stays attached to
// the piece when it moves, so a capture any number of moves later still
// puts a pawn in hand.
func TestCrazyhousePromotedMarkerFollowsMoves(t *testing.T) {
	pos, err := NewPosition("6r1/P6k/8/8/8/8/8/4K3[-] w - - 0 1", Crazyhouse)
	if err != nil {
		t.Fatal(err)
	}

	playMoves(t, pos, "a7a8q", "g8g5", "a8a5")
	if !pos.Promoted().IsSet(A5) || pos.Promoted().IsSet(A8) {
		t.Errorf("promoted marker did not follow the queen to a5: %v", pos.Promoted())
	}
	if fen := pos.FEN(); !strings.Contains(fen, "Q~") {
		t.Errorf("promoted marker missing from FEN %q", fen)
	}
	if err := pos.Validate(); err != nil {
		t.Errorf("after moving promoted piece: %v", err)
	}

	playMoves(t, pos, "g5a5")
	if got := pos.Hand(Black, Pawn); got != 1 {
		t.Errorf("black hand pawns = %d, want the demoted pawn", got)
	}
	if got := pos.Hand(Black, Queen); got != 0 {
		t.Errorf("black hand queens = %d, promoted piece not demoted", got)
	}
	if err := pos.Validate(); err != nil {
		t.Errorf("after capturing promoted piece: %v", err)
	}
}

// TestCrazyhousePawnDropRanks: pawns may not be dropped on the first or
// last rank.
func TestCrazyhousePawnDropRanks(t *testing.T) {
	pos, err := NewPosition("k7/8/8/8/8/8/8/7K[Pp] w - - 0 1", Crazyhouse)
	if err != nil {
		t.Fatal(err)
	}

	ml := pos.GenerateLegalMoves()
	drops := 0
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		if !m.IsDrop() {
			continue
		}
		drops++
		if m.DropPiece() == Pawn && SquareBB(m.To())&BackRanks != 0 {
			t.Errorf("pawn drop generated on %v", m.To())
		}
	}
	// 62 empty squares minus the 14 free back-rank squares.
	if drops != 48 {
		t.Errorf("generated %d pawn drops, want 48", drops)
	}
}
