package board

// StateInfo is the incremental per-ply snapshot. One is pushed for every
// DoMove and popped by the matching UndoMove, so the arena of StateInfos
// forms a strict stack indexed by ply depth. Fields up to and including
// Promoted are carried forward by copy and updated incrementally; the
// remainder is recomputed for the new side to move after each move.
type StateInfo struct {
	Key             uint64
	PawnKey         uint64
	MaterialKey     uint64
	NonPawnMaterial [2]int32
	PSQ             Score
	CastlingRights  CastlingRights
	EpSquare        Square
	Rule50          int16
	PliesFromNull   int16
	ChecksGiven     [2]uint8
	Hand            [2][6]uint8
	Promoted        Bitboard

	Checkers        Bitboard
	CheckSquares    [6]Bitboard
	BlockersForKing [2]Bitboard
	Pinners         [2]Bitboard
	Captured        Piece

	// Pieces removed by an atomic explosion (capturer, captured, and
	// adjacent non-pawns), recorded so UndoMove can resurrect them.
	blastCount  uint8
	blastSquare [10]Square
	blastPiece  [10]Piece
}

// copyForward seeds a fresh StateInfo from its predecessor: everything
// maintained incrementally comes along, everything recomputed is zeroed.
func (st *StateInfo) copyForward(prev *StateInfo) {
	st.Key = prev.Key
	st.PawnKey = prev.PawnKey
	st.MaterialKey = prev.MaterialKey
	st.NonPawnMaterial = prev.NonPawnMaterial
	st.PSQ = prev.PSQ
	st.CastlingRights = prev.CastlingRights
	st.EpSquare = prev.EpSquare
	st.Rule50 = prev.Rule50
	st.PliesFromNull = prev.PliesFromNull
	st.ChecksGiven = prev.ChecksGiven
	st.Hand = prev.Hand
	st.Promoted = prev.Promoted

	st.Checkers = Empty
	st.Captured = NoPiece
	st.blastCount = 0
}

func (st *StateInfo) recordBlast(sq Square, pc Piece) {
	st.blastSquare[st.blastCount] = sq
	st.blastPiece[st.blastCount] = pc
	st.blastCount++
}
