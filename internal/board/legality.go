package board

// AttackersTo returns a bitboard of all pieces of both colors attacking a
// square, computed against a caller-supplied occupancy. Passing a modified
// occupancy answers "what if these squares were empty" questions for SEE,
// en passant legality and castling-through-check tests.
func (p *Position) AttackersTo(sq Square, occupied Bitboard) Bitboard {
	if sq == NoSquare {
		return Empty
	}
	return (pawnAttacks[Black][sq] & p.Pieces[White][Pawn]) |
		(pawnAttacks[White][sq] & p.Pieces[Black][Pawn]) |
		(knightAttacks[sq] & (p.Pieces[White][Knight] | p.Pieces[Black][Knight])) |
		(kingAttacks[sq] & (p.Pieces[White][King] | p.Pieces[Black][King])) |
		(BishopAttacks(sq, occupied) & (p.Pieces[White][Bishop] | p.Pieces[Black][Bishop] |
			p.Pieces[White][Queen] | p.Pieces[Black][Queen])) |
		(RookAttacks(sq, occupied) & (p.Pieces[White][Rook] | p.Pieces[Black][Rook] |
			p.Pieces[White][Queen] | p.Pieces[Black][Queen]))
}

// SquareAttackedBy returns true if the square is attacked by the given
// color under the current occupancy.
func (p *Position) SquareAttackedBy(sq Square, c Color) bool {
	return p.AttackersTo(sq, p.AllOccupied)&p.Occupied[c] != 0
}

// SliderBlockers computes the pieces of either color that stand alone
// between targetSq and one of the given sliders: removing any of them
// exposes targetSq. The second result is the subset of sliders whose
// blocker belongs to the same color as the piece on targetSq, i.e. true
// pinners. One pass serves both pin detection and discovered checks.
func (p *Position) SliderBlockers(sliders Bitboard, targetSq Square) (blockers, pinners Bitboard) {
	snipers := ((RookAttacks(targetSq, 0) & (p.Pieces[White][Rook] | p.Pieces[Black][Rook] |
		p.Pieces[White][Queen] | p.Pieces[Black][Queen])) |
		(BishopAttacks(targetSq, 0) & (p.Pieces[White][Bishop] | p.Pieces[Black][Bishop] |
			p.Pieces[White][Queen] | p.Pieces[Black][Queen]))) & sliders

	occupancy := p.AllOccupied ^ snipers
	target := p.Squares[targetSq]

	for snipers != 0 {
		sniperSq := snipers.PopLSB()
		b := Between(targetSq, sniperSq) & occupancy
		if b != 0 && !b.More() {
			blockers |= b
			if target != NoPiece && b&p.Occupied[target.Color()] != 0 {
				pinners |= SquareBB(sniperSq)
			}
		}
	}
	return blockers, pinners
}

// setCheckInfo refreshes the pin/blocker bitboards for both kings and the
// per-piece-type checking squares against the enemy king. Called once per
// completed move for the new side to move.
func (p *Position) setCheckInfo(st *StateInfo) {
	if !p.rules.RoyalKing() {
		st.BlockersForKing = [2]Bitboard{}
		st.Pinners = [2]Bitboard{}
		st.CheckSquares = [6]Bitboard{}
		return
	}

	for c := White; c <= Black; c++ {
		ksq := p.KingSquare(c)
		if ksq == NoSquare {
			st.BlockersForKing[c] = Empty
			st.Pinners[c.Other()] = Empty
			continue
		}
		st.BlockersForKing[c], st.Pinners[c.Other()] = p.SliderBlockers(p.Occupied[c.Other()], ksq)
	}

	them := p.SideToMove.Other()
	eksq := p.KingSquare(them)
	if eksq == NoSquare {
		st.CheckSquares = [6]Bitboard{}
		return
	}

	st.CheckSquares[Pawn] = pawnAttacks[them][eksq]
	st.CheckSquares[Knight] = knightAttacks[eksq]
	st.CheckSquares[Bishop] = BishopAttacks(eksq, p.AllOccupied)
	st.CheckSquares[Rook] = RookAttacks(eksq, p.AllOccupied)
	st.CheckSquares[Queen] = st.CheckSquares[Bishop] | st.CheckSquares[Rook]
	st.CheckSquares[King] = Empty
}

// IsCaptureMove reports whether the move takes a piece (including en
// passant; castling's rook "capture" does not count).
func (p *Position) IsCaptureMove(m Move) bool {
	if m.IsEnPassant() {
		return true
	}
	if m.IsCastling() || m.IsDrop() {
		return false
	}
	return p.Squares[m.To()] != NoPiece
}

// PseudoLegal is a fast structural test for a move against the current
// position, used to validate moves retrieved from the transposition
// table, which may be stale or aliased from a key collision. It checks
// origin, destination, pawn geometry and evasion shape without full
// attack recomputation. Non-normal move kinds fall back to generator
// membership, which already encodes their structure.
func (p *Position) PseudoLegal(m Move) bool {
	if m.Kind() != KindNormal {
		return p.GeneratePseudoLegalMoves().Contains(m)
	}

	us := p.SideToMove
	from, to := m.From(), m.To()
	pc := p.Squares[from]

	if pc == NoPiece || pc.Color() != us {
		return false
	}
	if p.Occupied[us].IsSet(to) {
		return false
	}
	pt := pc.Type()

	if pt == Pawn {
		// A normal-kind pawn move may not land on a promotion rank.
		if SquareBB(to)&BackRanks != 0 {
			return false
		}
		push := PawnPush(us)
		switch int(to) - int(from) {
		case push:
			if p.AllOccupied.IsSet(to) {
				return false
			}
		case 2 * push:
			if from.RelativeRank(us) != 1 ||
				p.AllOccupied.IsSet(Square(int(from)+push)) || p.AllOccupied.IsSet(to) {
				return false
			}
		default:
			if pawnAttacks[us][from]&SquareBB(to) == 0 || !p.Occupied[us.Other()].IsSet(to) {
				return false
			}
		}
	} else if PieceAttacks(pt, us, from, p.AllOccupied)&SquareBB(to) == 0 {
		return false
	}

	// Evasion shape: while in check, only king moves or moves onto the
	// checking line are candidates.
	if checkers := p.st().Checkers; checkers != 0 && pt != King {
		if checkers.More() {
			return false
		}
		ksq := p.KingSquare(us)
		checkSq := checkers.LSB()
		if (Between(checkSq, ksq)|checkers)&SquareBB(to) == 0 {
			return false
		}
	}

	return true
}

// Legal determines full legality of a pseudo-legal move, including the
// variant's capture compulsion.
func (p *Position) Legal(m Move) bool {
	if p.rules.MustCapture() && !p.IsCaptureMove(m) && p.hasLegalCapture() {
		return false
	}
	return p.legalCore(m)
}

// legalCore is Legal without the capture-compulsion test, so compulsion
// scanning can reuse it without recursing.
func (p *Position) legalCore(m Move) bool {
	if !p.rules.RoyalKing() {
		return true
	}

	us := p.SideToMove
	them := us.Other()
	st := p.st()

	if m.IsDrop() {
		// A drop never exposes the king; while in check it must block
		// the single checker.
		if st.Checkers == 0 {
			return true
		}
		if st.Checkers.More() {
			return false
		}
		ksq := p.KingSquare(us)
		return Between(st.Checkers.LSB(), ksq).IsSet(m.To())
	}

	if m.IsCastling() {
		if st.Checkers != 0 {
			return false
		}
		kingSide := m.To() > m.From()
		idx := castlingIndex(us, kingSide)
		if p.castlingPath[idx]&(p.AllOccupied&^SquareBB(m.To())&^SquareBB(m.From())) != 0 {
			return false
		}
		// No square the king crosses may be attacked.
		path := p.castlingKingPath[idx]
		occ := p.AllOccupied &^ SquareBB(m.From())
		for path != 0 {
			if p.AttackersTo(path.PopLSB(), occ)&p.Occupied[them] != 0 {
				return false
			}
		}
		return true
	}

	if p.rules.BlastOnCapture() && p.IsCaptureMove(m) {
		// Explosions can remove checkers, pinners, or one's own king;
		// simulate and inspect the wreckage.
		return p.blastLegal(m)
	}

	from, to := m.From(), m.To()
	ksq := p.KingSquare(us)

	if m.IsEnPassant() {
		// Removing two pawns from the rank can expose a slider, so run
		// the attack check on the post-capture occupancy.
		capSq := Square(int(to) - PawnPush(us))
		occ := (p.AllOccupied ^ SquareBB(from) ^ SquareBB(capSq)) | SquareBB(to)
		return RookAttacks(ksq, occ)&(p.Pieces[them][Rook]|p.Pieces[them][Queen]) == 0 &&
			BishopAttacks(ksq, occ)&(p.Pieces[them][Bishop]|p.Pieces[them][Queen]) == 0
	}

	if p.Squares[from].Type() == King {
		occ := p.AllOccupied &^ SquareBB(from)
		if p.rules.BlastOnCapture() {
			// Adjacent kings cannot be captured, so a king may step
			// beside the enemy king regardless of attackers.
			esq := p.KingSquare(them)
			if esq != NoSquare && kingAttacks[to]&SquareBB(esq) != 0 {
				return true
			}
		}
		return p.AttackersTo(to, occ)&p.Occupied[them] == 0
	}

	// While in check, a non-king move must capture the single checker or
	// interpose on its line.
	if st.Checkers != 0 {
		if st.Checkers.More() {
			return false
		}
		checkSq := st.Checkers.LSB()
		if (Between(checkSq, ksq)|st.Checkers)&SquareBB(to) == 0 {
			return false
		}
	}

	// A pinned piece may only move along its pin ray.
	return st.BlockersForKing[us]&SquareBB(from) == 0 || Aligned(from, to, ksq)
}

// blastLegal applies an atomic capture and inspects the result: losing
// one's own king loses, taking the enemy king wins regardless of checks.
func (p *Position) blastLegal(m Move) bool {
	us := p.SideToMove
	p.DoMove(m, false)
	ownKing := p.KingSquare(us)
	legal := ownKing != NoSquare &&
		(p.KingSquare(us.Other()) == NoSquare || p.rules.Checkers(p, us) == 0)
	p.UndoMove(m)
	return legal
}

// hasLegalCapture reports whether the side to move has any legal capture,
// the trigger for antichess capture compulsion.
func (p *Position) hasLegalCapture() bool {
	ml := NewMoveList()
	p.generateCaptures(ml)
	for i := 0; i < ml.Len(); i++ {
		if p.legalCore(ml.Get(i)) {
			return true
		}
	}
	return false
}

// GivesCheck determines whether a move checks the enemy king without
// playing it, via the precomputed check squares, the blocker sets for
// discovered checks, and per-kind special cases.
func (p *Position) GivesCheck(m Move) bool {
	if !p.rules.RoyalKing() {
		return false
	}

	us := p.SideToMove
	them := us.Other()
	eksq := p.KingSquare(them)
	if eksq == NoSquare {
		return false
	}

	if p.rules.BlastOnCapture() {
		if p.IsCaptureMove(m) {
			return p.blastGivesCheck(m, eksq)
		}
		// Adjacent kings shield each other: no quiet move checks while
		// the kings touch afterwards.
		ourKing := p.KingSquare(us)
		if p.Squares[m.From()].Type() == King {
			ourKing = m.To()
		}
		if ourKing != NoSquare && kingAttacks[eksq]&SquareBB(ourKing) != 0 {
			return false
		}
	}

	st := p.st()
	from, to := m.From(), m.To()

	if m.IsDrop() {
		return st.CheckSquares[m.DropPiece()].IsSet(to)
	}

	if m.IsCastling() {
		// Only the rook's destination can deliver the check.
		kingSide := to > from
		idx := castlingIndex(us, kingSide)
		rookTo := p.castlingRookTo[idx]
		occ := (p.AllOccupied ^ SquareBB(from) ^ SquareBB(to)) |
			SquareBB(p.castlingKingTo[idx]) | SquareBB(rookTo)
		return RookAttacks(rookTo, occ).IsSet(eksq)
	}

	// Direct check from the destination square.
	if st.CheckSquares[p.Squares[from].Type()].IsSet(to) {
		return true
	}

	// Discovered check: the mover was blocking a slider aimed at the
	// enemy king and steps off the line.
	if st.BlockersForKing[them].IsSet(from) && !Aligned(from, to, eksq) {
		return true
	}

	switch m.Kind() {
	case KindPromotion:
		occ := p.AllOccupied &^ SquareBB(from)
		return PieceAttacks(m.Promotion(), us, to, occ).IsSet(eksq)
	case KindEnPassant:
		// The vacated capture square can open a line of its own.
		capSq := Square(int(to) - PawnPush(us))
		occ := (p.AllOccupied ^ SquareBB(from) ^ SquareBB(capSq)) | SquareBB(to)
		return RookAttacks(eksq, occ)&(p.Pieces[us][Rook]|p.Pieces[us][Queen]) != 0 ||
			BishopAttacks(eksq, occ)&(p.Pieces[us][Bishop]|p.Pieces[us][Queen]) != 0
	}
	return false
}

// blastGivesCheck evaluates check delivery for an atomic capture by
// building the post-explosion occupancy without mutating the position.
func (p *Position) blastGivesCheck(m Move, eksq Square) bool {
	us := p.SideToMove
	from, to := m.From(), m.To()

	capSq := to
	if m.IsEnPassant() {
		capSq = Square(int(to) - PawnPush(us))
	}

	removed := SquareBB(from) | SquareBB(capSq) | SquareBB(to)
	blastZone := kingAttacks[to] & p.AllOccupied &^ (p.Pieces[White][Pawn] | p.Pieces[Black][Pawn])
	removed |= blastZone

	if removed.IsSet(eksq) {
		// The enemy king explodes: the game ends, no check involved.
		return false
	}
	ourKing := p.KingSquare(us)
	if ourKing != NoSquare && kingAttacks[eksq]&SquareBB(ourKing) != 0 {
		return false
	}

	// The capturer always explodes with its victim, so every removed
	// square is empty afterwards.
	occ := p.AllOccupied &^ removed

	attackers := (pawnAttacks[us.Other()][eksq] & p.Pieces[us][Pawn] &^ removed) |
		(knightAttacks[eksq] & p.Pieces[us][Knight] &^ removed) |
		(BishopAttacks(eksq, occ) & (p.Pieces[us][Bishop] | p.Pieces[us][Queen]) &^ removed) |
		(RookAttacks(eksq, occ) & (p.Pieces[us][Rook] | p.Pieces[us][Queen]) &^ removed)
	return attackers != 0
}
