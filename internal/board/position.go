package board

import (
	"fmt"
	"strings"
)

// CastlingRights represents the available castling options as a bitmask.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// castlingIndex maps a color and wing to the 0..3 right index used by the
// per-right square tables.
func castlingIndex(c Color, kingSide bool) int {
	i := int(c) * 2
	if !kingSide {
		i++
	}
	return i
}

func castlingBit(c Color, kingSide bool) CastlingRights {
	return 1 << castlingIndex(c, kingSide)
}

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// CanCastle returns true if the given side retains the given right.
func (cr CastlingRights) CanCastle(c Color, kingSide bool) bool {
	return cr&castlingBit(c, kingSide) != 0
}

// Prefetcher receives best-effort cache warming hints keyed by position
// hashes. The transposition table implements it; a nil prefetcher is
// simply skipped.
type Prefetcher interface {
	Prefetch(key uint64)
}

// Position represents a complete position under some rule variant. It is
// owned and mutated by exactly one goroutine; parallel searches each hold
// their own Copy seeded from the shared root.
type Position struct {
	// Piece bitboards: [Color][PieceType]
	Pieces [2][6]Bitboard

	// Occupancy bitboards (cached for efficiency)
	Occupied    [2]Bitboard // All pieces of each color
	AllOccupied Bitboard    // All pieces on the board

	// Mailbox view, the source of truth the bitboards must agree with.
	Squares [64]Piece

	SideToMove Color

	// Dense piece enumeration with O(1) removal by swap-with-last.
	pieceList  [12][16]Square
	pieceIndex [64]uint8
	pieceCount [12]uint8

	gamePly  int
	fullMove int
	chess960 bool

	// Per-square mask of castling rights forfeited when the square's
	// occupant moves or is captured.
	castlingRightsMask [64]CastlingRights
	castlingRookFrom   [4]Square
	castlingKingTo     [4]Square
	castlingRookTo     [4]Square
	// Squares that must be empty (excluding king and rook origins), and
	// squares the king crosses which must not be attacked.
	castlingPath     [4]Bitboard
	castlingKingPath [4]Bitboard

	variant Variant
	rules   Rules

	// StateInfo arena, a stack indexed by ply depth. sp is the top.
	states []StateInfo
	sp     int

	prefetcher Prefetcher
}

// st returns the current (top of stack) state record.
func (p *Position) st() *StateInfo {
	return &p.states[p.sp]
}

// prev returns the state record one ply back.
func (p *Position) prev() *StateInfo {
	return &p.states[p.sp-1]
}

// NewPosition builds a Position of the given variant from a FEN string.
func NewPosition(fen string, v Variant) (*Position, error) {
	p := &Position{}
	if err := p.setFEN(fen, v); err != nil {
		return nil, err
	}
	return p, nil
}

// NewStartPosition builds the variant's start position.
func NewStartPosition(v Variant) *Position {
	p, err := NewPosition(StartingFEN(v), v)
	if err != nil {
		panic(err)
	}
	return p
}

// Copy creates an independent deep copy sharing no mutable state, for
// handing to another search worker.
func (p *Position) Copy() *Position {
	c := *p
	c.states = append([]StateInfo(nil), p.states...)
	return &c
}

// SetPrefetcher wires the transposition-table prefetch hint sink.
func (p *Position) SetPrefetcher(pf Prefetcher) {
	p.prefetcher = pf
}

// Variant returns the rule variant this position plays under.
func (p *Position) Variant() Variant {
	return p.variant
}

// Rules returns the resolved variant policy object.
func (p *Position) Rules() Rules {
	return p.rules
}

// Chess960 reports whether castling came from a Shredder-FEN setup.
func (p *Position) Chess960() bool {
	return p.chess960
}

// Key returns the incrementally maintained position hash.
func (p *Position) Key() uint64 {
	return p.st().Key
}

// PawnKey returns the pawn structure hash.
func (p *Position) PawnKey() uint64 {
	return p.st().PawnKey
}

// MaterialKey returns the material configuration hash.
func (p *Position) MaterialKey() uint64 {
	return p.st().MaterialKey
}

// CastlingRights returns the current castling rights mask.
func (p *Position) CastlingRights() CastlingRights {
	return p.st().CastlingRights
}

// EpSquare returns the en passant target square, or NoSquare.
func (p *Position) EpSquare() Square {
	return p.st().EpSquare
}

// Rule50 returns the halfmove clock for the fifty-move rule.
func (p *Position) Rule50() int {
	return int(p.st().Rule50)
}

// PliesFromNull returns the ply distance to the last null move.
func (p *Position) PliesFromNull() int {
	return int(p.st().PliesFromNull)
}

// GamePly returns the number of halfmoves played from the root FEN.
func (p *Position) GamePly() int {
	return p.gamePly
}

// FullMoveNumber returns the FEN fullmove counter.
func (p *Position) FullMoveNumber() int {
	return p.fullMove
}

// Checkers returns the pieces giving check to the side to move.
func (p *Position) Checkers() Bitboard {
	return p.st().Checkers
}

// InCheck returns true if the side to move is in check.
func (p *Position) InCheck() bool {
	return p.st().Checkers != Empty
}

// CheckSquares returns the squares from which a piece of the given type
// would check the enemy king.
func (p *Position) CheckSquares(pt PieceType) Bitboard {
	return p.st().CheckSquares[pt]
}

// BlockersForKing returns the pieces of either color whose removal would
// expose c's king to a slider.
func (p *Position) BlockersForKing(c Color) Bitboard {
	return p.st().BlockersForKing[c]
}

// Pinners returns c's sliders that pin some piece to the enemy king.
func (p *Position) Pinners(c Color) Bitboard {
	return p.st().Pinners[c]
}

// PinnedPieces returns c's own pieces that are pinned to c's king.
func (p *Position) PinnedPieces(c Color) Bitboard {
	return p.st().BlockersForKing[c] & p.Occupied[c]
}

// NonPawnMaterial returns the summed non-pawn piece values for a color.
func (p *Position) NonPawnMaterial(c Color) int {
	return int(p.st().NonPawnMaterial[c])
}

// PSQScore returns the incremental material+placement score, from White's
// point of view.
func (p *Position) PSQScore() Score {
	return p.st().PSQ
}

// Hand returns the number of reserve pieces of a type held by a color.
func (p *Position) Hand(c Color, pt PieceType) int {
	return int(p.st().Hand[c][pt])
}

// HandTotal returns the total reserve size for a color.
func (p *Position) HandTotal(c Color) int {
	total := 0
	for pt := Pawn; pt <= King; pt++ {
		total += int(p.st().Hand[c][pt])
	}
	return total
}

// ChecksGiven returns how many checks a color has delivered (three-check).
func (p *Position) ChecksGiven(c Color) int {
	return int(p.st().ChecksGiven[c])
}

// Promoted returns the bitboard of pieces that arose by promotion; in
// crazyhouse such pieces demote to pawns when captured.
func (p *Position) Promoted() Bitboard {
	return p.st().Promoted
}

// CapturedPiece returns the piece captured by the last move, if any.
func (p *Position) CapturedPiece() Piece {
	return p.st().Captured
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (p *Position) PieceAt(sq Square) Piece {
	return p.Squares[sq]
}

// IsEmpty returns true if the square is empty.
func (p *Position) IsEmpty(sq Square) bool {
	return p.Squares[sq] == NoPiece
}

// KingSquare returns the king's square for a color, or NoSquare if the
// variant has removed it (exploded, or given away in antichess).
func (p *Position) KingSquare(c Color) Square {
	pc := NewPiece(King, c)
	if p.pieceCount[pc] == 0 {
		return NoSquare
	}
	return p.pieceList[pc][0]
}

// PieceCount returns the number of pieces of one kind on the board.
func (p *Position) PieceCount(pc Piece) int {
	return int(p.pieceCount[pc])
}

// PieceSquares returns the square list of one piece kind. The slice is
// backed by internal storage and valid only until the next mutation.
func (p *Position) PieceSquares(pc Piece) []Square {
	return p.pieceList[pc][:p.pieceCount[pc]]
}

// CastlingRookSquare returns the rook origin square for a retained
// castling right, or NoSquare if the right is gone.
func (p *Position) CastlingRookSquare(c Color, kingSide bool) Square {
	if !p.st().CastlingRights.CanCastle(c, kingSide) {
		return NoSquare
	}
	return p.castlingRookFrom[castlingIndex(c, kingSide)]
}

// putPiece places a piece, updating the mailbox, both bitboard views and
// the piece list in one step. Callers guarantee the square is empty.
func (p *Position) putPiece(pc Piece, sq Square) {
	bb := SquareBB(sq)
	c, pt := pc.Color(), pc.Type()

	p.Squares[sq] = pc
	p.Pieces[c][pt] |= bb
	p.Occupied[c] |= bb
	p.AllOccupied |= bb

	p.pieceIndex[sq] = p.pieceCount[pc]
	p.pieceList[pc][p.pieceCount[pc]] = sq
	p.pieceCount[pc]++
}

// removePiece removes the piece on sq in O(1) by swapping it with the
// last entry of its piece list.
func (p *Position) removePiece(sq Square) Piece {
	pc := p.Squares[sq]
	bb := SquareBB(sq)
	c, pt := pc.Color(), pc.Type()

	p.Squares[sq] = NoPiece
	p.Pieces[c][pt] &^= bb
	p.Occupied[c] &^= bb
	p.AllOccupied &^= bb

	p.pieceCount[pc]--
	last := p.pieceList[pc][p.pieceCount[pc]]
	p.pieceIndex[last] = p.pieceIndex[sq]
	p.pieceList[pc][p.pieceIndex[last]] = last

	return pc
}

// movePiece relocates a piece between squares without touching any list
// slot but its own.
func (p *Position) movePiece(from, to Square) {
	pc := p.Squares[from]
	moveBB := SquareBB(from) | SquareBB(to)
	c, pt := pc.Color(), pc.Type()

	p.Squares[from] = NoPiece
	p.Squares[to] = pc
	p.Pieces[c][pt] ^= moveBB
	p.Occupied[c] ^= moveBB
	p.AllOccupied ^= moveBB

	p.pieceIndex[to] = p.pieceIndex[from]
	p.pieceList[pc][p.pieceIndex[to]] = to
}

// String returns a visual representation of the position.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteByte('\n')
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			pc := p.Squares[NewSquare(file, rank)]
			if pc == NoPiece {
				sb.WriteString(". ")
			} else {
				sb.WriteString(pc.String() + " ")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "FEN: %s\n", p.FEN())
	fmt.Fprintf(&sb, "Variant: %s\n", p.variant)
	fmt.Fprintf(&sb, "Key: %016x\n", p.Key())
	return sb.String()
}
