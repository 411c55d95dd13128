package board

import "fmt"

// Validate re-derives every redundant view of the position from the
// mailbox and cross-checks it against the incrementally maintained state:
// bitboards, piece lists, occupancy, all three keys, scores, castling
// bookkeeping and the check state. Tests call it after move sequences to
// catch incremental drift.
func (p *Position) Validate() error {
	var count [12]uint8

	for sq := A1; sq <= H8; sq++ {
		pc := p.Squares[sq]
		if pc == NoPiece {
			if p.AllOccupied.IsSet(sq) {
				return fmt.Errorf("square %v empty in mailbox but occupied in bitboard", sq)
			}
			continue
		}
		c, pt := pc.Color(), pc.Type()
		if !p.Pieces[c][pt].IsSet(sq) {
			return fmt.Errorf("piece %v on %v missing from its bitboard", pc, sq)
		}
		if !p.Occupied[c].IsSet(sq) || !p.AllOccupied.IsSet(sq) {
			return fmt.Errorf("piece %v on %v missing from occupancy", pc, sq)
		}
		if idx := p.pieceIndex[sq]; int(idx) >= int(p.pieceCount[pc]) || p.pieceList[pc][idx] != sq {
			return fmt.Errorf("piece list entry for %v on %v is stale", pc, sq)
		}
		count[pc]++
	}

	for pc := Piece(0); pc < NoPiece; pc++ {
		if count[pc] != p.pieceCount[pc] {
			return fmt.Errorf("piece count for %v: list says %d, board has %d",
				pc, p.pieceCount[pc], count[pc])
		}
	}

	if p.Occupied[White]&p.Occupied[Black] != 0 {
		return fmt.Errorf("color occupancies overlap")
	}
	if p.Occupied[White]|p.Occupied[Black] != p.AllOccupied {
		return fmt.Errorf("occupancy union mismatch")
	}

	st := p.st()

	if k := p.computeKey(); k != st.Key {
		return fmt.Errorf("position key drift: incremental %016x, recomputed %016x", st.Key, k)
	}
	if k := p.computePawnKey(); k != st.PawnKey {
		return fmt.Errorf("pawn key drift: incremental %016x, recomputed %016x", st.PawnKey, k)
	}
	if k := p.computeMaterialKey(); k != st.MaterialKey {
		return fmt.Errorf("material key drift: incremental %016x, recomputed %016x", st.MaterialKey, k)
	}

	var ref StateInfo
	p.computeScores(&ref)
	if ref.PSQ != st.PSQ {
		return fmt.Errorf("psq score drift: incremental %+v, recomputed %+v", st.PSQ, ref.PSQ)
	}
	if ref.NonPawnMaterial != st.NonPawnMaterial {
		return fmt.Errorf("non-pawn material drift: incremental %v, recomputed %v",
			st.NonPawnMaterial, ref.NonPawnMaterial)
	}

	for c := White; c <= Black; c++ {
		for _, kingSide := range [2]bool{true, false} {
			if !st.CastlingRights.CanCastle(c, kingSide) {
				continue
			}
			idx := castlingIndex(c, kingSide)
			rookFrom := p.castlingRookFrom[idx]
			if rookFrom == NoSquare || p.Squares[rookFrom] != NewPiece(Rook, c) {
				return fmt.Errorf("castling right held without a rook on its origin square")
			}
			if p.KingSquare(c) == NoSquare {
				return fmt.Errorf("castling right held without a king")
			}
		}
	}

	if ep := st.EpSquare; ep != NoSquare {
		if rank := ep.RelativeRank(p.SideToMove.Other()); rank != 2 {
			return fmt.Errorf("en passant square %v on impossible rank", ep)
		}
		if p.Squares[ep] != NoPiece {
			return fmt.Errorf("en passant square %v is occupied", ep)
		}
	}

	if checkers := p.rules.Checkers(p, p.SideToMove); checkers != st.Checkers {
		return fmt.Errorf("checkers drift: stored %v, recomputed %v", st.Checkers, checkers)
	}

	if p.rules.AllowsDrops() {
		for c := White; c <= Black; c++ {
			if st.Hand[c][King] != 0 {
				return fmt.Errorf("king in hand")
			}
		}
		if st.Promoted&^p.AllOccupied != 0 {
			return fmt.Errorf("promoted marker on empty square")
		}
	}

	return nil
}
