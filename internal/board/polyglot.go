package board

// Book hashing keeps its own key set, generated from a fixed seed that is
// independent of the engine keys, so book files stay valid when the
// internal Zobrist layout changes.
var (
	polyglotPieces     [12][64]uint64
	polyglotCastling   [4]uint64
	polyglotEnPassant  [8]uint64
	polyglotSideToMove uint64
)

func init() {
	initPolyglotKeys()
}

func initPolyglotKeys() {
	var s uint64 = 0x37b4a4b3f0d1c0d0

	next := func() uint64 {
		s ^= s >> 12
		s ^= s << 25
		s ^= s >> 27
		return s * 0x2545F4914F6CDD1D
	}

	for piece := 0; piece < 12; piece++ {
		for sq := 0; sq < 64; sq++ {
			polyglotPieces[piece][sq] = next()
		}
	}
	for i := range polyglotCastling {
		polyglotCastling[i] = next()
	}
	for i := range polyglotEnPassant {
		polyglotEnPassant[i] = next()
	}
	polyglotSideToMove = next()
}

// PolyglotHash computes the book hash key for the position. Piece kinds
// follow the Polyglot ordering, black pieces first.
func (p *Position) PolyglotHash() uint64 {
	var hash uint64

	pieceKind := [2][6]int{
		{6, 7, 8, 9, 10, 11},
		{0, 1, 2, 3, 4, 5},
	}
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for bb := p.Pieces[c][pt]; bb != 0; {
				hash ^= polyglotPieces[pieceKind[c][pt]][bb.PopLSB()]
			}
		}
	}

	cr := p.st().CastlingRights
	if cr&WhiteKingSideCastle != 0 {
		hash ^= polyglotCastling[0]
	}
	if cr&WhiteQueenSideCastle != 0 {
		hash ^= polyglotCastling[1]
	}
	if cr&BlackKingSideCastle != 0 {
		hash ^= polyglotCastling[2]
	}
	if cr&BlackQueenSideCastle != 0 {
		hash ^= polyglotCastling[3]
	}

	// EpSquare is only ever set when a capture is possible, which is
	// exactly the book convention for the en passant key.
	if ep := p.st().EpSquare; ep != NoSquare {
		hash ^= polyglotEnPassant[ep.File()]
	}

	if p.SideToMove == White {
		hash ^= polyglotSideToMove
	}

	return hash
}
