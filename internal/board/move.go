package board

import "fmt"

// Move encodes a move in 21 bits:
// bits 0-5:   from square (equal to the to square for drops)
// bits 6-11:  to square
// bits 12-14: promotion piece type (Knight..King, antichess allows King)
// bits 15-17: move kind (normal, promotion, en passant, castling, drop)
// bits 18-20: dropped piece type
//
// Castling is encoded as "king captures own rook" so that Chess960
// positions where the king's destination overlaps another piece stay
// unambiguous.
type Move uint32

// Move kinds
const (
	KindNormal    uint32 = 0 << 15
	KindPromotion uint32 = 1 << 15
	KindEnPassant uint32 = 2 << 15
	KindCastling  uint32 = 3 << 15
	KindDrop      uint32 = 4 << 15
)

// NoMove represents an invalid or null move.
const NoMove Move = 0

// NewMove creates a normal move.
func NewMove(from, to Square) Move {
	return Move(from) | Move(to)<<6
}

// NewPromotion creates a promotion move.
func NewPromotion(from, to Square, promo PieceType) Move {
	return Move(from) | Move(to)<<6 | Move(promo)<<12 | Move(KindPromotion)
}

// NewEnPassant creates an en passant capture move.
func NewEnPassant(from, to Square) Move {
	return Move(from) | Move(to)<<6 | Move(KindEnPassant)
}

// NewCastling creates a castling move from the king square to the rook square.
func NewCastling(kingFrom, rookFrom Square) Move {
	return Move(kingFrom) | Move(rookFrom)<<6 | Move(KindCastling)
}

// NewDrop creates a drop move placing a reserve piece on an empty square.
func NewDrop(pt PieceType, to Square) Move {
	return Move(to) | Move(to)<<6 | Move(pt)<<18 | Move(KindDrop)
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & 0x3F)
}

// To returns the destination square. For castling this is the rook's square.
func (m Move) To() Square {
	return Square((m >> 6) & 0x3F)
}

// Kind returns the move kind bits.
func (m Move) Kind() uint32 {
	return uint32(m) & (0x7 << 15)
}

// Promotion returns the promotion piece type (valid only for promotions).
func (m Move) Promotion() PieceType {
	return PieceType((m >> 12) & 7)
}

// DropPiece returns the dropped piece type (valid only for drops).
func (m Move) DropPiece() PieceType {
	return PieceType((m >> 18) & 7)
}

// IsPromotion returns true if this is a promotion move.
func (m Move) IsPromotion() bool {
	return m.Kind() == KindPromotion
}

// IsCastling returns true if this is a castling move.
func (m Move) IsCastling() bool {
	return m.Kind() == KindCastling
}

// IsEnPassant returns true if this is an en passant capture.
func (m Move) IsEnPassant() bool {
	return m.Kind() == KindEnPassant
}

// IsDrop returns true if this is a reserve drop.
func (m Move) IsDrop() bool {
	return m.Kind() == KindDrop
}

// String returns the UCI format of the move (e.g. "e2e4", "e7e8q", "N@f3").
// Castling prints king-destination style ("e1g1") for standard positions.
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}

	if m.IsDrop() {
		return fmt.Sprintf("%c@%s", m.DropPiece().Char()&^0x20, m.To())
	}

	to := m.To()
	if m.IsCastling() {
		// Translate rook-square encoding to the conventional king target.
		rank := m.From().Rank()
		if to > m.From() {
			to = NewSquare(6, rank)
		} else {
			to = NewSquare(2, rank)
		}
	}

	s := m.From().String() + to.String()
	if m.IsPromotion() {
		s += string(m.Promotion().Char())
	}
	return s
}

// ParseMove parses a UCI format move string against a position. Castling
// may be given either king-destination style ("e1g1") or king-takes-rook
// style ("e1h1"); drops use the "P@e4" crazyhouse convention.
func ParseMove(s string, pos *Position) (Move, error) {
	if len(s) < 4 {
		return NoMove, fmt.Errorf("invalid move string: %s", s)
	}

	// Drop notation
	if s[1] == '@' {
		pt := PieceTypeFromChar(s[0] | 0x20)
		if pt == NoPieceType {
			return NoMove, fmt.Errorf("invalid drop piece: %c", s[0])
		}
		to, err := ParseSquare(s[2:4])
		if err != nil {
			return NoMove, err
		}
		return NewDrop(pt, to), nil
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}

	if len(s) == 5 {
		promo := PieceTypeFromChar(s[4])
		if promo == NoPieceType || promo < Knight {
			return NoMove, fmt.Errorf("invalid promotion piece: %c", s[4])
		}
		return NewPromotion(from, to, promo), nil
	}

	piece := pos.PieceAt(from)
	if piece == NoPiece {
		return NoMove, fmt.Errorf("no piece at %s", from)
	}

	if piece.Type() == King {
		// King-takes-own-rook castling encoding
		if target := pos.PieceAt(to); target != NoPiece &&
			target.Type() == Rook && target.Color() == piece.Color() {
			return NewCastling(from, to), nil
		}
		// Conventional two-square king move
		if abs(int(to)-int(from)) == 2 && from.Rank() == to.Rank() {
			rookTo := pos.CastlingRookSquare(piece.Color(), to > from)
			if rookTo != NoSquare {
				return NewCastling(from, rookTo), nil
			}
		}
	}

	if piece.Type() == Pawn && to == pos.EpSquare() {
		return NewEnPassant(from, to), nil
	}

	return NewMove(from, to), nil
}

// MoveList is a fixed-size list of moves to avoid allocations. Sized for
// crazyhouse, where drops can push a position well past the usual bound.
type MoveList struct {
	moves [512]Move
	count int
}

// NewMoveList creates an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{}
}

// Add adds a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Contains returns true if the list contains the move.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Clear clears the list.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Slice returns the moves as a slice backed by the list.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}
