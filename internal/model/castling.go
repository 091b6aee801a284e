package model

const kingHomeCol = 4

type castleSide struct {
	rookCol int
	step    int // column direction the king travels
}

var castleSides = map[MoveKind]castleSide{
	CastleKingside:  {rookCol: BoardDim - 1, step: 1},
	CastleQueenside: {rookCol: 0, step: -1},
}

// CastlingMoves returns the castles available to color, kingside first.
// A side that fails any requirement is left out; that is never an error.
func CastlingMoves(b *Board, color Color) ([]Move, error) {
	var moves []Move
	for _, kind := range []MoveKind{CastleKingside, CastleQueenside} {
		ok, err := canCastle(b, color, kind)
		if err != nil {
			return nil, err
		}
		if ok {
			moves = append(moves, castleMove(color, kind))
		}
	}
	return moves, nil
}

func canCastle(b *Board, color Color, kind MoveKind) (bool, error) {
	side := castleSides[kind]
	row := color.homeRow()
	kingSq := Square{Row: row, Col: kingHomeCol}

	if !unmovedAt(b, kingSq, King, color) || !unmovedAt(b, Square{Row: row, Col: side.rookCol}, Rook, color) {
		return false, nil
	}
	for col := kingHomeCol + side.step; col != side.rookCol; col += side.step {
		if !b.IsEmpty(Square{Row: row, Col: col}) {
			return false, nil
		}
	}

	inCheck, err := InCheck(b, color)
	if err != nil || inCheck {
		return false, err
	}
	// transit square, then destination
	for dist := 1; dist <= 2; dist++ {
		exposed, err := leavesKingInCheck(b, kingSq, kingSq.Offset(0, dist*side.step), color)
		if err != nil || exposed {
			return false, err
		}
	}
	return true, nil
}

func unmovedAt(b *Board, sq Square, kind PieceKind, color Color) bool {
	p, ok := b.At(sq)
	return ok && p.Kind == kind && p.Color == color && !p.HasMoved
}

func castleMove(color Color, kind MoveKind) Move {
	king := Square{Row: color.homeRow(), Col: kingHomeCol}
	return Move{From: king, To: king.Offset(0, 2*castleSides[kind].step), Kind: kind}
}

// castleRookSquares returns where the rook of a castle starts and lands:
// next to the king's destination, on the square the king crossed.
func castleRookSquares(color Color, kind MoveKind) (from, to Square) {
	side := castleSides[kind]
	row := color.homeRow()
	return Square{Row: row, Col: side.rookCol}, Square{Row: row, Col: kingHomeCol + side.step}
}
