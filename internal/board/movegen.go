package board

// GeneratePseudoLegalMoves produces every structurally valid move for the
// side to move: piece geometry, pawn pushes and captures, promotions up to
// the variant's ceiling, en passant, castling encoded as king-takes-rook,
// and reserve drops. Full legality (pins, king safety, evasions, capture
// compulsion) is Legal's job.
func (p *Position) GeneratePseudoLegalMoves() *MoveList {
	ml := NewMoveList()
	p.generatePawnMoves(ml, false)
	p.generatePieceMoves(ml, false)
	p.generateCastlingMoves(ml)
	p.generateDrops(ml)
	return ml
}

// GenerateLegalMoves produces the fully legal moves for the side to move.
func (p *Position) GenerateLegalMoves() *MoveList {
	pseudo := p.GeneratePseudoLegalMoves()
	ml := NewMoveList()

	compelled := p.rules.MustCapture() && p.hasLegalCapture()
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		if compelled && !p.IsCaptureMove(m) {
			continue
		}
		if p.legalCore(m) {
			ml.Add(m)
		}
	}
	return ml
}

// HasLegalMoves reports whether any legal move exists, without building
// the full list.
func (p *Position) HasLegalMoves() bool {
	pseudo := p.GeneratePseudoLegalMoves()
	for i := 0; i < pseudo.Len(); i++ {
		if p.legalCore(pseudo.Get(i)) {
			return true
		}
	}
	return false
}

// generateCaptures adds only capturing moves, including en passant.
func (p *Position) generateCaptures(ml *MoveList) {
	p.generatePawnMoves(ml, true)
	p.generatePieceMoves(ml, true)
}

func (p *Position) generatePawnMoves(ml *MoveList, capturesOnly bool) {
	us := p.SideToMove
	them := us.Other()
	pawns := p.Pieces[us][Pawn]
	push := PawnPush(us)

	if !capturesOnly {
		empty := ^p.AllOccupied
		single := pawns.Forward(us) & empty
		double := single.Forward(us) & empty & doublePushRank(us)

		for bb := single; bb != 0; {
			to := bb.PopLSB()
			p.addPawnMove(ml, Square(int(to)-push), to)
		}
		for bb := double; bb != 0; {
			to := bb.PopLSB()
			ml.Add(NewMove(Square(int(to)-2*push), to))
		}
	}

	for bb := pawns; bb != 0; {
		from := bb.PopLSB()
		atk := pawnAttacks[us][from] & p.Occupied[them]
		for atk != 0 {
			p.addPawnMove(ml, from, atk.PopLSB())
		}
	}

	if ep := p.st().EpSquare; ep != NoSquare {
		for bb := pawnAttacks[them][ep] & pawns; bb != 0; {
			ml.Add(NewEnPassant(bb.PopLSB(), ep))
		}
	}
}

// addPawnMove emits a quiet or capturing pawn move, expanding back-rank
// arrivals into one move per allowed promotion piece.
func (p *Position) addPawnMove(ml *MoveList, from, to Square) {
	if SquareBB(to)&BackRanks == 0 {
		ml.Add(NewMove(from, to))
		return
	}
	for pt := Knight; pt <= p.rules.MaxPromotion(); pt++ {
		ml.Add(NewPromotion(from, to, pt))
	}
}

func (p *Position) generatePieceMoves(ml *MoveList, capturesOnly bool) {
	us := p.SideToMove
	target := ^p.Occupied[us]
	if capturesOnly {
		target = p.Occupied[us.Other()]
	}

	for pt := Knight; pt <= King; pt++ {
		for bb := p.Pieces[us][pt]; bb != 0; {
			from := bb.PopLSB()
			atk := PieceAttacks(pt, us, from, p.AllOccupied) & target
			for atk != 0 {
				ml.Add(NewMove(from, atk.PopLSB()))
			}
		}
	}
}

func (p *Position) generateCastlingMoves(ml *MoveList) {
	if !p.rules.HasCastling() || p.st().Checkers != 0 {
		return
	}
	us := p.SideToMove
	ksq := p.KingSquare(us)
	cr := p.st().CastlingRights

	for _, kingSide := range [2]bool{true, false} {
		if !cr.CanCastle(us, kingSide) {
			continue
		}
		rookFrom := p.castlingRookFrom[castlingIndex(us, kingSide)]
		if rookFrom != NoSquare {
			ml.Add(NewCastling(ksq, rookFrom))
		}
	}
}

func (p *Position) generateDrops(ml *MoveList) {
	if !p.rules.AllowsDrops() {
		return
	}
	us := p.SideToMove
	hand := p.st().Hand[us]
	empty := ^p.AllOccupied

	for pt := Pawn; pt <= King; pt++ {
		if hand[pt] == 0 {
			continue
		}
		targets := empty
		if pt == Pawn {
			targets &^= BackRanks
		}
		for targets != 0 {
			ml.Add(NewDrop(pt, targets.PopLSB()))
		}
	}
}

// doublePushRank is the arrival rank of a two-square pawn push.
func doublePushRank(c Color) Bitboard {
	if c == White {
		return Rank4
	}
	return Rank5
}
