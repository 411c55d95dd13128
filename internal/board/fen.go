package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the standard starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// StartingFEN returns the starting FEN for a variant, with the variant's
// own decorations (empty reserve, remaining-check counters).
func StartingFEN(v Variant) string {
	switch v {
	case Crazyhouse:
		return "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR[-] w KQkq - 0 1"
	case ThreeCheck:
		return "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 3+3 0 1"
	case Antichess:
		return "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"
	default:
		return StartFEN
	}
}

// setFEN initializes the position from a FEN string. Malformed input is
// the caller's responsibility; parsing reports gross structural errors
// but does not try to reject every illegal position.
func (p *Position) setFEN(fen string, v Variant) error {
	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return fmt.Errorf("invalid FEN: need at least 4 fields, got %d", len(parts))
	}

	*p = Position{
		variant: v,
		rules:   RulesFor(v),
		states:  make([]StateInfo, 1, 256),
	}
	for sq := range p.Squares {
		p.Squares[sq] = NoPiece
	}
	st := p.st()
	st.EpSquare = NoSquare
	p.fullMove = 1

	if err := p.parsePlacement(parts[0]); err != nil {
		return err
	}

	switch parts[1] {
	case "w":
		p.SideToMove = White
	case "b":
		p.SideToMove = Black
	default:
		return fmt.Errorf("invalid side to move: %s", parts[1])
	}

	if err := p.parseCastling(parts[2]); err != nil {
		return err
	}

	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return fmt.Errorf("invalid en passant square: %s", parts[3])
		}
		// Keep the square only if a capture is actually possible: a pawn
		// of ours attacks it and the pushed enemy pawn stands in front.
		us, them := p.SideToMove, p.SideToMove.Other()
		pushed := Square(int(sq) + PawnPush(them))
		if pawnAttacks[them][sq]&p.Pieces[us][Pawn] != 0 &&
			p.Squares[pushed] == NewPiece(Pawn, them) {
			st.EpSquare = sq
		}
	}

	rest := parts[4:]

	// Three-check positions carry a remaining-checks field ("3+2" means
	// white needs 3 more, black 2 more) between the en passant square and
	// the halfmove clock.
	if p.rules.CountsChecks() && len(rest) > 0 && strings.Contains(rest[0], "+") {
		var w, b int
		if _, err := fmt.Sscanf(rest[0], "%d+%d", &w, &b); err != nil {
			return fmt.Errorf("invalid check count field: %s", rest[0])
		}
		st.ChecksGiven[White] = uint8(3 - min(w, 3))
		st.ChecksGiven[Black] = uint8(3 - min(b, 3))
		rest = rest[1:]
	}

	if len(rest) > 0 {
		hmc, err := strconv.Atoi(rest[0])
		if err != nil {
			return fmt.Errorf("invalid halfmove clock: %s", rest[0])
		}
		st.Rule50 = int16(hmc)
	}
	if len(rest) > 1 {
		fmn, err := strconv.Atoi(rest[1])
		if err != nil {
			return fmt.Errorf("invalid fullmove number: %s", rest[1])
		}
		p.fullMove = fmn
	}

	p.gamePly = 2 * (p.fullMove - 1)
	if p.gamePly < 0 {
		p.gamePly = 0
	}
	if p.SideToMove == Black {
		p.gamePly++
	}
	st.PliesFromNull = st.Rule50

	st.Key = p.computeKey()
	st.PawnKey = p.computePawnKey()
	st.MaterialKey = p.computeMaterialKey()
	p.computeScores(st)
	st.Checkers = p.rules.Checkers(p, p.SideToMove)
	p.setCheckInfo(st)

	return nil
}

// parsePlacement fills the board from the FEN placement field, including
// the crazyhouse '~' promoted markers and the bracketed reserve list.
func (p *Position) parsePlacement(placement string) error {
	st := p.st()

	// Split off a bracketed reserve, e.g. "...R1K[NQpp]".
	if i := strings.IndexByte(placement, '['); i >= 0 {
		if placement[len(placement)-1] != ']' {
			return fmt.Errorf("unterminated reserve in placement: %s", placement)
		}
		for _, c := range placement[i+1 : len(placement)-1] {
			if c == '-' {
				continue
			}
			pc := PieceFromChar(byte(c))
			if pc == NoPiece {
				return fmt.Errorf("invalid reserve piece: %c", c)
			}
			st.Hand[pc.Color()][pc.Type()]++
		}
		placement = placement[:i]
	}

	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("invalid piece placement: need 8 ranks, got %d", len(ranks))
	}

	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0

		for j := 0; j < len(rankStr); j++ {
			c := rankStr[j]
			switch {
			case c >= '1' && c <= '8':
				file += int(c - '0')
			case c == '~':
				if file == 0 {
					return fmt.Errorf("dangling promoted marker in rank %d", rank+1)
				}
				st.Promoted |= SquareBB(NewSquare(file-1, rank))
			default:
				pc := PieceFromChar(c)
				if pc == NoPiece {
					return fmt.Errorf("invalid piece character: %c", c)
				}
				if file > 7 {
					return fmt.Errorf("too many squares in rank %d", rank+1)
				}
				p.putPiece(pc, NewSquare(file, rank))
				file++
			}
		}

		if file != 8 {
			return fmt.Errorf("invalid number of squares in rank %d: got %d", rank+1, file)
		}
	}

	return nil
}

// parseCastling handles both conventional KQkq rights and Shredder-FEN
// file letters (Chess960).
func (p *Position) parseCastling(castling string) error {
	if castling == "-" || !p.rules.HasCastling() {
		return nil
	}

	for k := 0; k < len(castling); k++ {
		ch := castling[k]
		var c Color
		if ch >= 'a' && ch <= 'z' {
			c = Black
		} else {
			c = White
		}

		ksq := p.KingSquare(c)
		if ksq == NoSquare {
			return fmt.Errorf("castling rights without a king: %c", ch)
		}
		backRank := RankMask[ksq.Rank()]
		rooks := p.Pieces[c][Rook] & backRank

		var rookSq Square
		switch lower := ch | 0x20; {
		case lower == 'k':
			// Outermost rook toward the h-file
			rookSq = (rooks & ^(SquareBB(ksq) - 1)).MSB()
		case lower == 'q':
			rookSq = (rooks & (SquareBB(ksq) - 1)).LSB()
		case lower >= 'a' && lower <= 'h':
			rookSq = NewSquare(int(lower-'a'), ksq.Rank())
			p.chess960 = true
		default:
			return fmt.Errorf("invalid castling character: %c", ch)
		}

		if !rookSq.IsValid() || p.Squares[rookSq] != NewPiece(Rook, c) {
			return fmt.Errorf("no rook for castling right %c", ch)
		}
		p.setCastlingRight(c, rookSq)
	}

	return nil
}

// setCastlingRight registers one castling right and precomputes the rook
// square, destinations, empty-path and king-path data used by move
// generation and execution.
func (p *Position) setCastlingRight(c Color, rookFrom Square) {
	ksq := p.KingSquare(c)
	kingSide := rookFrom > ksq
	idx := castlingIndex(c, kingSide)
	bit := castlingBit(c, kingSide)

	st := p.st()
	st.CastlingRights |= bit
	p.castlingRightsMask[ksq] |= bit
	p.castlingRightsMask[rookFrom] |= bit

	var kingTo, rookTo Square
	if kingSide {
		kingTo = NewSquare(6, ksq.Rank())
		rookTo = NewSquare(5, ksq.Rank())
	} else {
		kingTo = NewSquare(2, ksq.Rank())
		rookTo = NewSquare(3, ksq.Rank())
	}

	p.castlingRookFrom[idx] = rookFrom
	p.castlingKingTo[idx] = kingTo
	p.castlingRookTo[idx] = rookTo
	p.castlingKingPath[idx] = Between(ksq, kingTo) | SquareBB(kingTo)

	// Squares that must be empty: everything either piece crosses or
	// lands on, minus the two pieces themselves.
	path := Between(ksq, kingTo) | SquareBB(kingTo) | Between(rookFrom, rookTo) | SquareBB(rookTo)
	path &^= SquareBB(ksq) | SquareBB(rookFrom)
	p.castlingPath[idx] = path
}

// FEN returns the FEN representation of the position, including any
// variant decorations the position carries.
func (p *Position) FEN() string {
	var sb strings.Builder
	st := p.st()

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			sq := NewSquare(file, rank)
			pc := p.Squares[sq]
			if pc == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(pc.String())
			if st.Promoted.IsSet(sq) {
				sb.WriteByte('~')
			}
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	if p.rules.AllowsDrops() {
		sb.WriteByte('[')
		n := 0
		for c := White; c <= Black; c++ {
			for pt := Queen; ; pt-- {
				for i := 0; i < int(st.Hand[c][pt]); i++ {
					sb.WriteString(NewPiece(pt, c).String())
					n++
				}
				if pt == Pawn {
					break
				}
			}
		}
		if n == 0 {
			sb.WriteByte('-')
		}
		sb.WriteByte(']')
	}

	sb.WriteByte(' ')
	if p.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(p.castlingString())

	sb.WriteByte(' ')
	sb.WriteString(st.EpSquare.String())

	if p.rules.CountsChecks() {
		fmt.Fprintf(&sb, " %d+%d", 3-int(st.ChecksGiven[White]), 3-int(st.ChecksGiven[Black]))
	}

	fmt.Fprintf(&sb, " %d %d", st.Rule50, p.fullMove)
	return sb.String()
}

// castlingString renders rights as KQkq, or as Shredder file letters for
// Chess960 setups.
func (p *Position) castlingString() string {
	cr := p.st().CastlingRights
	if cr == NoCastling {
		return "-"
	}
	if !p.chess960 {
		return cr.String()
	}

	var sb strings.Builder
	for _, c := range []Color{White, Black} {
		for _, kingSide := range []bool{true, false} {
			if !cr.CanCastle(c, kingSide) {
				continue
			}
			file := byte('A' + p.castlingRookFrom[castlingIndex(c, kingSide)].File())
			if c == Black {
				file |= 0x20
			}
			sb.WriteByte(file)
		}
	}
	return sb.String()
}

// computeKey recomputes the position key from scratch. DoMove maintains
// the key incrementally; this exists for setup and for the consistency
// validator, which cross-checks the two.
func (p *Position) computeKey() uint64 {
	st := p.st()
	k := zobristVariant[p.variant]

	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			bb := p.Pieces[c][pt]
			for bb != 0 {
				k ^= zobristPiece[c][pt][bb.PopLSB()]
			}
		}
	}

	if p.SideToMove == Black {
		k ^= zobristSideToMove
	}
	k ^= zobristCastling[st.CastlingRights&15]
	if st.EpSquare != NoSquare {
		k ^= zobristEnPassant[st.EpSquare.File()]
	}

	if p.rules.CountsChecks() {
		k ^= zobristChecksGiven[White][st.ChecksGiven[White]]
		k ^= zobristChecksGiven[Black][st.ChecksGiven[Black]]
	}
	if p.rules.AllowsDrops() {
		for c := White; c <= Black; c++ {
			for pt := Pawn; pt <= King; pt++ {
				k ^= zobristHand(c, pt, st.Hand[c][pt])
			}
		}
	}

	return k
}

// computePawnKey recomputes the pawn structure key from scratch.
func (p *Position) computePawnKey() uint64 {
	var k uint64
	for c := White; c <= Black; c++ {
		bb := p.Pieces[c][Pawn]
		for bb != 0 {
			k ^= zobristPiece[c][Pawn][bb.PopLSB()]
		}
	}
	return k
}

// computeMaterialKey recomputes the material key from scratch: each
// (piece, count) pair folds in one bucketed random key.
func (p *Position) computeMaterialKey() uint64 {
	var k uint64
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for n := 1; n <= int(p.pieceCount[NewPiece(pt, c)]); n++ {
				k ^= zobristMaterial[c][pt][n]
			}
		}
	}
	return k
}

// computeScores rebuilds the incremental PSQ score and the non-pawn
// material totals from the board.
func (p *Position) computeScores(st *StateInfo) {
	st.PSQ = Score{}
	st.NonPawnMaterial = [2]int32{}

	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			pc := NewPiece(pt, c)
			bb := p.Pieces[c][pt]
			for bb != 0 {
				sq := bb.PopLSB()
				st.PSQ = st.PSQ.Add(psq[pc][sq])
			}
			if pt != Pawn && pt != King {
				st.NonPawnMaterial[c] += int32(PieceValue[pt]) * int32(p.pieceCount[pc])
			}
		}
	}
}
