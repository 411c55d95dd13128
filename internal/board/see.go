package board

// SeeGE statically evaluates the exchange a move starts on its target
// square and reports whether the outcome is at least threshold. The swap
// runs on piece values supplied by the variant rules, stops early once the
// balance can no longer cross the threshold, and keeps pinned pieces out
// of the exchange while their pinner remains on the board.
func (p *Position) SeeGE(m Move, threshold int) bool {
	if p.rules.BlastOnCapture() && p.IsCaptureMove(m) {
		return p.seeBlast(m, threshold)
	}

	// Castling is king-takes-rook, so the destination square never sees
	// an exchange; assume value-neutral.
	if m.IsCastling() {
		return 0 >= threshold
	}

	from, to := m.From(), m.To()

	swap := p.exchangeValue(p.Squares[to]) - threshold
	occupied := p.AllOccupied ^ SquareBB(from) ^ SquareBB(to)
	nextVictim := p.Squares[from]

	switch {
	case m.IsEnPassant():
		// The captured pawn sits beside the destination, not on it.
		capSq := Square(int(to) - PawnPush(p.SideToMove))
		occupied ^= SquareBB(capSq)
		swap = p.rules.ExchangeValue(Pawn) - threshold
	case m.IsDrop():
		// Nothing is gained by the drop itself; the dropped piece is
		// what the opponent gets to take.
		nextVictim = NewPiece(m.DropPiece(), p.SideToMove)
		occupied = p.AllOccupied ^ SquareBB(to)
	}

	if swap < 0 {
		return false
	}
	swap = p.exchangeValue(nextVictim) - swap
	if swap <= 0 {
		return true
	}

	stm := nextVictim.Color()
	attackers := p.AttackersTo(to, occupied) & occupied
	st := p.st()
	res := 1

	bishopsQueens := p.Pieces[White][Bishop] | p.Pieces[Black][Bishop] |
		p.Pieces[White][Queen] | p.Pieces[Black][Queen]
	rooksQueens := p.Pieces[White][Rook] | p.Pieces[Black][Rook] |
		p.Pieces[White][Queen] | p.Pieces[Black][Queen]

	for {
		stm = stm.Other()
		attackers &= occupied

		stmAttackers := attackers & p.Occupied[stm]
		if stmAttackers == 0 {
			break
		}

		// A pinned piece stays out of the exchange as long as its
		// pinner has not itself been swapped off.
		if st.Pinners[stm.Other()]&occupied != 0 {
			stmAttackers &^= st.BlockersForKing[stm]
			if stmAttackers == 0 {
				break
			}
		}

		res ^= 1

		// Pick the least valuable attacker; sliders moving to the
		// target can unveil new attackers behind them.
		if bb := stmAttackers & p.Pieces[stm][Pawn]; bb != 0 {
			if swap = p.rules.ExchangeValue(Pawn) - swap; swap < res {
				break
			}
			occupied ^= SquareBB(bb.LSB())
			attackers |= BishopAttacks(to, occupied) & bishopsQueens
		} else if bb := stmAttackers & p.Pieces[stm][Knight]; bb != 0 {
			if swap = p.rules.ExchangeValue(Knight) - swap; swap < res {
				break
			}
			occupied ^= SquareBB(bb.LSB())
		} else if bb := stmAttackers & p.Pieces[stm][Bishop]; bb != 0 {
			if swap = p.rules.ExchangeValue(Bishop) - swap; swap < res {
				break
			}
			occupied ^= SquareBB(bb.LSB())
			attackers |= BishopAttacks(to, occupied) & bishopsQueens
		} else if bb := stmAttackers & p.Pieces[stm][Rook]; bb != 0 {
			if swap = p.rules.ExchangeValue(Rook) - swap; swap < res {
				break
			}
			occupied ^= SquareBB(bb.LSB())
			attackers |= RookAttacks(to, occupied) & rooksQueens
		} else if bb := stmAttackers & p.Pieces[stm][Queen]; bb != 0 {
			if swap = p.rules.ExchangeValue(Queen) - swap; swap < res {
				break
			}
			occupied ^= SquareBB(bb.LSB())
			attackers |= (BishopAttacks(to, occupied) & bishopsQueens) |
				(RookAttacks(to, occupied) & rooksQueens)
		} else {
			// King takes last; if the opponent still has an attacker
			// the king capture is illegal and the verdict flips back.
			if attackers&^p.Occupied[stm] != 0 {
				res ^= 1
			}
			return res != 0
		}
	}
	return res != 0
}

func (p *Position) exchangeValue(pc Piece) int {
	if pc == NoPiece {
		return 0
	}
	return p.rules.ExchangeValue(pc.Type())
}

// seeBlast scores an atomic capture as its full explosion balance: victim
// plus every enemy piece in the blast, minus the capturer and every own
// piece destroyed with it. A blast reaching either king is decisive.
func (p *Position) seeBlast(m Move, threshold int) bool {
	us := p.SideToMove
	to := m.To()
	capSq := to
	if m.IsEnPassant() {
		capSq = Square(int(to) - PawnPush(us))
	}

	balance := p.exchangeValue(p.Squares[capSq]) - p.exchangeValue(p.Squares[m.From()])

	zone := kingAttacks[to] & p.AllOccupied &^
		(p.Pieces[White][Pawn] | p.Pieces[Black][Pawn])
	for zone != 0 {
		sq := zone.PopLSB()
		pc := p.Squares[sq]
		if pc.Type() == King {
			// Blowing up the enemy king wins outright; blowing up our
			// own cannot be played.
			return pc.Color() != us
		}
		if pc.Color() == us {
			balance -= p.exchangeValue(pc)
		} else {
			balance += p.exchangeValue(pc)
		}
	}
	return balance >= threshold
}
