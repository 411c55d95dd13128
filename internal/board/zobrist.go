package board

// Zobrist hash keys for position hashing. All tables are filled once at
// process start from a fixed-seed PRNG and never written again, so every
// run (and every test) sees identical keys.
var (
	zobristPiece      [2][6][64]uint64
	zobristEnPassant  [8]uint64 // one per file
	zobristCastling   [16]uint64
	zobristSideToMove uint64
	zobristVariant    [numVariants]uint64

	// Material keys: piece count buckets, see materialKey().
	zobristMaterial [2][6][17]uint64

	// Variant key families. Only positions of the matching variant ever
	// fold these in.
	zobristChecksGiven [2][4]uint64     // three-check counters
	zobristInHand      [2][6][17]uint64 // crazyhouse reserve, indexed by count
)

func init() {
	initZobrist()
}

// prng is the xorshift64* generator used to build the key tables.
// Fixed seed keeps keys reproducible across runs, which opening books
// and tablebase key agreement depend on.
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x44A9F0C1D7B35E29)

	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for sq := A1; sq <= H8; sq++ {
				zobristPiece[c][pt][sq] = rng.next()
			}
		}
	}

	for file := 0; file < 8; file++ {
		zobristEnPassant[file] = rng.next()
	}

	// One random key per single castling right; the key for any subset of
	// rights is the XOR of its members, so incremental updates can fold
	// rights in and out bit by bit.
	var single [4]uint64
	for i := range single {
		single[i] = rng.next()
	}
	for mask := 0; mask < 16; mask++ {
		var k uint64
		for i := 0; i < 4; i++ {
			if mask&(1<<i) != 0 {
				k ^= single[i]
			}
		}
		zobristCastling[mask] = k
	}

	zobristSideToMove = rng.next()

	for v := Variant(0); v < numVariants; v++ {
		zobristVariant[v] = rng.next()
	}

	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for n := 0; n < 17; n++ {
				zobristMaterial[c][pt][n] = rng.next()
			}
		}
	}

	for c := White; c <= Black; c++ {
		for n := 0; n < 4; n++ {
			zobristChecksGiven[c][n] = rng.next()
		}
		for pt := Pawn; pt <= King; pt++ {
			for n := 1; n < 17; n++ {
				zobristInHand[c][pt][n] = rng.next()
			}
		}
	}
}

// ZobristPiece returns the Zobrist key for a piece on a square.
func ZobristPiece(c Color, pt PieceType, sq Square) uint64 {
	return zobristPiece[c][pt][sq]
}

// ZobristEnPassant returns the Zobrist key for an en passant file.
func ZobristEnPassant(file int) uint64 {
	return zobristEnPassant[file]
}

// ZobristCastling returns the Zobrist key for a castling rights subset.
func ZobristCastling(cr CastlingRights) uint64 {
	return zobristCastling[cr&15]
}

// ZobristSideToMove returns the Zobrist key folded in when black is to move.
func ZobristSideToMove() uint64 {
	return zobristSideToMove
}

// zobristHand returns the reserve key contribution for n pieces of a type.
// Count zero contributes nothing, so an empty hand folds to the plain key.
func zobristHand(c Color, pt PieceType, n uint8) uint64 {
	return zobristInHand[c][pt][n]
}
