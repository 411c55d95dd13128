package board

// DoMove plays a move on the board, pushing a fresh StateInfo onto the
// arena and maintaining every key and score incrementally. The givesCheck
// flag is trusted: callers obtain it from GivesCheck before committing,
// which lets search probe check status without paying for it twice.
func (p *Position) DoMove(m Move, givesCheck bool) {
	p.sp++
	if p.sp == len(p.states) {
		p.states = append(p.states, StateInfo{})
	}
	st := &p.states[p.sp]
	st.copyForward(&p.states[p.sp-1])

	us := p.SideToMove
	them := us.Other()
	from, to := m.From(), m.To()

	key := st.Key ^ zobristSideToMove

	st.Rule50++
	st.PliesFromNull++
	p.gamePly++
	if us == Black {
		p.fullMove++
	}

	if st.EpSquare != NoSquare {
		key ^= zobristEnPassant[st.EpSquare.File()]
		st.EpSquare = NoSquare
	}

	var rightsGone CastlingRights

	switch {
	case m.IsCastling():
		kingSide := to > from
		idx := castlingIndex(us, kingSide)
		kingTo, rookTo := p.castlingKingTo[idx], p.castlingRookTo[idx]

		king := p.removePiece(from)
		rook := p.removePiece(to)
		p.putPiece(king, kingTo)
		p.putPiece(rook, rookTo)

		key ^= zobristPiece[us][King][from] ^ zobristPiece[us][King][kingTo]
		key ^= zobristPiece[us][Rook][to] ^ zobristPiece[us][Rook][rookTo]
		st.PSQ = st.PSQ.Sub(psq[king][from]).Sub(psq[rook][to]).
			Add(psq[king][kingTo]).Add(psq[rook][rookTo])

		rightsGone = p.castlingRightsMask[from] | p.castlingRightsMask[to]

	case m.IsDrop():
		pt := m.DropPiece()
		pc := NewPiece(pt, us)

		key ^= zobristHand(us, pt, st.Hand[us][pt])
		st.Hand[us][pt]--
		key ^= zobristHand(us, pt, st.Hand[us][pt])

		p.putPiece(pc, to)
		key ^= zobristPiece[us][pt][to]
		st.MaterialKey ^= zobristMaterial[us][pt][p.pieceCount[pc]]
		st.PSQ = st.PSQ.Add(psq[pc][to])
		if pt == Pawn {
			st.PawnKey ^= zobristPiece[us][Pawn][to]
			st.Rule50 = 0
		} else if pt != King {
			st.NonPawnMaterial[us] += int32(PieceValue[pt])
		}

	default:
		pc := p.Squares[from]
		pt := pc.Type()

		captured := p.Squares[to]
		capSq := to
		if m.IsEnPassant() {
			capSq = Square(int(to) - PawnPush(us))
			captured = p.Squares[capSq]
		}

		rightsGone = p.castlingRightsMask[from] | p.castlingRightsMask[to]

		if captured != NoPiece {
			cpt := captured.Type()
			key ^= zobristPiece[them][cpt][capSq]
			st.MaterialKey ^= zobristMaterial[them][cpt][p.pieceCount[captured]]
			st.PSQ = st.PSQ.Sub(psq[captured][capSq])
			if cpt == Pawn {
				st.PawnKey ^= zobristPiece[them][Pawn][capSq]
			} else if cpt != King {
				st.NonPawnMaterial[them] -= int32(PieceValue[cpt])
			}
			p.removePiece(capSq)

			if p.rules.AllowsDrops() {
				// The victim changes sides; a promoted piece demotes
				// back to the pawn it started as.
				handPt := cpt
				if st.Promoted.IsSet(capSq) {
					handPt = Pawn
					st.Promoted = st.Promoted.Clear(capSq)
				}
				key ^= zobristHand(us, handPt, st.Hand[us][handPt])
				st.Hand[us][handPt]++
				key ^= zobristHand(us, handPt, st.Hand[us][handPt])
			}

			st.Rule50 = 0
			st.Captured = captured
		}

		if p.rules.BlastOnCapture() && captured != NoPiece {
			// The capturer is consumed with its victim, along with
			// every adjacent non-pawn piece of either color.
			key ^= zobristPiece[us][pt][from]
			st.MaterialKey ^= zobristMaterial[us][pt][p.pieceCount[pc]]
			st.PSQ = st.PSQ.Sub(psq[pc][from])
			if pt == Pawn {
				st.PawnKey ^= zobristPiece[us][Pawn][from]
			} else if pt != King {
				st.NonPawnMaterial[us] -= int32(PieceValue[pt])
			}
			p.removePiece(from)
			st.recordBlast(from, pc)

			zone := kingAttacks[to] & p.AllOccupied &^
				(p.Pieces[White][Pawn] | p.Pieces[Black][Pawn])
			for zone != 0 {
				sq := zone.PopLSB()
				bpc := p.Squares[sq]
				bc, bpt := bpc.Color(), bpc.Type()
				key ^= zobristPiece[bc][bpt][sq]
				st.MaterialKey ^= zobristMaterial[bc][bpt][p.pieceCount[bpc]]
				st.PSQ = st.PSQ.Sub(psq[bpc][sq])
				if bpt != Pawn && bpt != King {
					st.NonPawnMaterial[bc] -= int32(PieceValue[bpt])
				}
				p.removePiece(sq)
				st.recordBlast(sq, bpc)
				rightsGone |= p.castlingRightsMask[sq]
			}
		} else {
			p.movePiece(from, to)
			key ^= zobristPiece[us][pt][from] ^ zobristPiece[us][pt][to]
			st.PSQ = st.PSQ.Sub(psq[pc][from]).Add(psq[pc][to])

			// The promoted marker travels with the piece so a later
			// capture still demotes it to a pawn in hand.
			if p.rules.AllowsDrops() && st.Promoted.IsSet(from) {
				st.Promoted = st.Promoted.Clear(from).Set(to)
			}

			if pt == Pawn {
				st.PawnKey ^= zobristPiece[us][Pawn][from] ^ zobristPiece[us][Pawn][to]
				st.Rule50 = 0

				// A double push only grants en passant if an enemy pawn
				// is actually placed to take it.
				if int(to)-int(from) == 2*PawnPush(us) {
					epSq := Square(int(from) + PawnPush(us))
					if pawnAttacks[us][epSq]&p.Pieces[them][Pawn] != 0 {
						st.EpSquare = epSq
						key ^= zobristEnPassant[epSq.File()]
					}
				}

				if m.IsPromotion() {
					promo := m.Promotion()
					ppc := NewPiece(promo, us)
					p.removePiece(to)
					p.putPiece(ppc, to)

					key ^= zobristPiece[us][Pawn][to] ^ zobristPiece[us][promo][to]
					st.PawnKey ^= zobristPiece[us][Pawn][to]
					st.MaterialKey ^= zobristMaterial[us][Pawn][p.pieceCount[NewPiece(Pawn, us)]+1] ^
						zobristMaterial[us][promo][p.pieceCount[ppc]]
					st.PSQ = st.PSQ.Sub(psq[pc][to]).Add(psq[ppc][to])
					if promo != King {
						st.NonPawnMaterial[us] += int32(PieceValue[promo])
					}
					if p.rules.AllowsDrops() {
						st.Promoted = st.Promoted.Set(to)
					}
				}
			}
		}
	}

	if rightsGone != 0 && st.CastlingRights&rightsGone != 0 {
		key ^= zobristCastling[st.CastlingRights]
		st.CastlingRights &^= rightsGone
		key ^= zobristCastling[st.CastlingRights]
	}

	if givesCheck && p.rules.CountsChecks() && st.ChecksGiven[us] < 3 {
		key ^= zobristChecksGiven[us][st.ChecksGiven[us]]
		st.ChecksGiven[us]++
		key ^= zobristChecksGiven[us][st.ChecksGiven[us]]
	}

	st.Key = key
	if p.prefetcher != nil {
		p.prefetcher.Prefetch(key)
	}

	p.SideToMove = them
	if givesCheck {
		st.Checkers = p.rules.Checkers(p, them)
	}
	p.setCheckInfo(st)
}

// UndoMove takes back the last move. The board is reversed by hand; all
// keys, clocks and rights come back for free when the StateInfo pops.
func (p *Position) UndoMove(m Move) {
	p.SideToMove = p.SideToMove.Other()
	us := p.SideToMove
	from, to := m.From(), m.To()
	st := p.st()

	switch {
	case m.IsCastling():
		idx := castlingIndex(us, to > from)
		king := p.removePiece(p.castlingKingTo[idx])
		rook := p.removePiece(p.castlingRookTo[idx])
		p.putPiece(king, from)
		p.putPiece(rook, to)

	case m.IsDrop():
		p.removePiece(to)

	default:
		capSq := to
		if m.IsEnPassant() {
			capSq = Square(int(to) - PawnPush(us))
		}

		if p.rules.BlastOnCapture() && st.Captured != NoPiece {
			// Resurrect everything the explosion took, capturer first
			// at its origin square.
			for i := 0; i < int(st.blastCount); i++ {
				p.putPiece(st.blastPiece[i], st.blastSquare[i])
			}
			p.putPiece(st.Captured, capSq)
		} else {
			if m.IsPromotion() {
				p.removePiece(to)
				p.putPiece(NewPiece(Pawn, us), from)
			} else {
				p.movePiece(to, from)
			}
			if st.Captured != NoPiece {
				p.putPiece(st.Captured, capSq)
			}
		}
	}

	p.gamePly--
	if us == Black {
		p.fullMove--
	}
	p.sp--
}

// DoNullMove passes the turn, used by null-move pruning in search. Only
// the side to move, the en passant right and the key change; PliesFromNull
// resets so the repetition scan cannot cross the null boundary.
func (p *Position) DoNullMove() {
	p.sp++
	if p.sp == len(p.states) {
		p.states = append(p.states, StateInfo{})
	}
	st := &p.states[p.sp]
	st.copyForward(&p.states[p.sp-1])

	st.Key ^= zobristSideToMove
	if st.EpSquare != NoSquare {
		st.Key ^= zobristEnPassant[st.EpSquare.File()]
		st.EpSquare = NoSquare
	}
	st.Rule50++
	st.PliesFromNull = 0
	p.gamePly++

	if p.prefetcher != nil {
		p.prefetcher.Prefetch(st.Key)
	}

	p.SideToMove = p.SideToMove.Other()
	p.setCheckInfo(st)
}

// UndoNullMove reverses DoNullMove.
func (p *Position) UndoNullMove() {
	p.sp--
	p.SideToMove = p.SideToMove.Other()
	p.gamePly--
}
