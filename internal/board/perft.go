package board

// Perft counts the leaf nodes of the legal move tree to the given depth,
// the standard cross-check for move generation and make/unmake.
func (p *Position) Perft(depth int) uint64 {
	if depth == 0 {
		return 1
	}
	ml := p.GenerateLegalMoves()
	if depth == 1 {
		return uint64(ml.Len())
	}

	var nodes uint64
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		p.DoMove(m, p.GivesCheck(m))
		nodes += p.Perft(depth - 1)
		p.UndoMove(m)
	}
	return nodes
}

// Divide returns the perft count below each root move, the usual way to
// bisect a perft mismatch against another engine.
func (p *Position) Divide(depth int) map[string]uint64 {
	out := make(map[string]uint64)
	ml := p.GenerateLegalMoves()
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		p.DoMove(m, p.GivesCheck(m))
		out[m.String()] = p.Perft(depth - 1)
		p.UndoMove(m)
	}
	return out
}
