package board

// Score holds a middlegame/endgame score pair in centipawns, from White's
// point of view. The evaluation layer interpolates the two by game phase.
type Score struct {
	MG, EG int32
}

// Add returns the component-wise sum.
func (s Score) Add(o Score) Score {
	return Score{s.MG + o.MG, s.EG + o.EG}
}

// Sub returns the component-wise difference.
func (s Score) Sub(o Score) Score {
	return Score{s.MG - o.MG, s.EG - o.EG}
}

// Piece-square tables, written rank 8 first so they read like a board
// from White's side. Material value is folded in when the combined psq
// table is built, so a single lookup yields material plus placement.

var pawnTable = [64]int32{
	0, 0, 0, 0, 0, 0, 0, 0,
	50, 50, 50, 50, 50, 50, 50, 50,
	10, 10, 20, 30, 30, 20, 10, 10,
	5, 5, 10, 25, 25, 10, 5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, -5, -10, 0, 0, -10, -5, 5,
	5, 10, 10, -20, -20, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var knightTable = [64]int32{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

var bishopTableSq = [64]int32{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

var rookTableSq = [64]int32{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, 10, 10, 10, 10, 5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	0, 0, 0, 5, 5, 0, 0, 0,
}

var queenTable = [64]int32{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-5, 0, 5, 5, 5, 5, 0, -5,
	0, 0, 5, 5, 5, 5, 0, -5,
	-10, 5, 5, 5, 5, 5, 0, -10,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

var kingMidgameTable = [64]int32{
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	20, 20, 0, 0, 0, 0, 20, 20,
	20, 30, 10, 0, 0, 10, 30, 20,
}

var kingEndgameTable = [64]int32{
	-50, -40, -30, -20, -20, -30, -40, -50,
	-30, -20, -10, 0, 0, -10, -20, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -30, 0, 0, 0, 0, -30, -30,
	-50, -30, -30, -30, -30, -30, -30, -50,
}

// psq[piece][square] is material plus placement; black entries are the
// negated mirror of white's, so summing over all pieces gives the board's
// incremental score directly.
var psq [12][64]Score

func init() {
	tables := [6]*[64]int32{
		&pawnTable, &knightTable, &bishopTableSq, &rookTableSq, &queenTable, &kingMidgameTable,
	}

	for pt := Pawn; pt <= King; pt++ {
		val := int32(PieceValue[pt])
		for sq := A1; sq <= H8; sq++ {
			// Tables are laid out rank 8 first, so a white piece on sq
			// reads the mirrored index.
			visual := sq.Mirror()
			mg := val + tables[pt][visual]
			eg := val + tables[pt][visual]
			if pt == King {
				eg = val + kingEndgameTable[visual]
			}
			psq[NewPiece(pt, White)][sq] = Score{mg, eg}
			psq[NewPiece(pt, Black)][sq.Mirror()] = Score{-mg, -eg}
		}
	}
}

// PieceSquareValue returns the material+placement score of one piece on a
// square, from White's point of view.
func PieceSquareValue(p Piece, sq Square) Score {
	return psq[p][sq]
}
