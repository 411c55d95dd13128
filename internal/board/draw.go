package board

// IsDraw reports whether the position is drawn by the fifty-move rule or
// by repetition. ply is the distance from the search root: a position
// repeated at or after the root draws on its first recurrence, while one
// last seen before the root must come back twice. That asymmetry keeps
// the root evaluation honest while letting search prune in-tree loops
// early.
func (p *Position) IsDraw(ply int) bool {
	st := p.st()

	if st.Rule50 > 99 && (st.Checkers == 0 || p.HasLegalMoves()) {
		return true
	}

	// The scan cannot reach past an irreversible move or a null move.
	end := int(st.Rule50)
	if int(st.PliesFromNull) < end {
		end = int(st.PliesFromNull)
	}
	if end < 4 {
		return false
	}

	cnt := 0
	for i := 4; i <= end && p.sp-i >= 0; i += 2 {
		if p.states[p.sp-i].Key != st.Key {
			continue
		}
		cnt++
		if ply > i {
			cnt++
		}
		if cnt >= 2 {
			return true
		}
	}
	return false
}

// HasRepeated reports whether the current position occurred at least once
// before within the reversible-move window, regardless of root distance.
func (p *Position) HasRepeated() bool {
	st := p.st()
	end := int(st.Rule50)
	if int(st.PliesFromNull) < end {
		end = int(st.PliesFromNull)
	}
	for i := 4; i <= end && p.sp-i >= 0; i += 2 {
		if p.states[p.sp-i].Key == st.Key {
			return true
		}
	}
	return false
}

// GameOutcome returns the variant verdict for the side to move when a
// variant-specific end condition has fired: a third check delivered, a
// king on a center square, an exploded king, or an emptied army.
func (p *Position) GameOutcome() (Outcome, bool) {
	return p.rules.EndsGame(p)
}

// IsCheckmate reports whether the side to move is checkmated. Variants
// without a royal king have no checkmate.
func (p *Position) IsCheckmate() bool {
	return p.rules.RoyalKing() && p.InCheck() && !p.HasLegalMoves()
}

// IsStalemate reports whether the side to move has no legal move while
// not in check. In antichess this is a win for the stalemated side; that
// verdict belongs to the rules' EndsGame.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}
