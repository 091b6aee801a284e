package model

// LegalMoves returns the moves of the piece on from that do not leave
// side's king attacked. Every candidate is played out on a clone of b, so b
// itself is never touched. Squares that are empty, off the board or hold an
// opposing piece yield no moves.
func LegalMoves(b *Board, from Square, side Color) ([]Move, error) {
	piece, ok := b.At(from)
	if !ok || piece.Color != side {
		return nil, nil
	}

	var moves []Move
	for _, to := range PseudoLegalMoves(b, from) {
		exposed, err := leavesKingInCheck(b, from, to, side)
		if err != nil {
			return nil, err
		}
		if !exposed {
			moves = append(moves, Move{From: from, To: to, Kind: Normal})
		}
	}
	return moves, nil
}

// LegalMovesFrom is LegalMoves plus the castling moves when from holds
// side's king.
func LegalMovesFrom(b *Board, from Square, side Color) ([]Move, error) {
	moves, err := LegalMoves(b, from, side)
	if err != nil {
		return nil, err
	}
	if piece, ok := b.At(from); ok && piece.Kind == King && piece.Color == side {
		castles, err := CastlingMoves(b, side)
		if err != nil {
			return nil, err
		}
		for _, m := range castles {
			if m.From == from {
				moves = append(moves, m)
			}
		}
	}
	return moves, nil
}

// AllLegalMoves lists every legal move of side.
func AllLegalMoves(b *Board, side Color) ([]Move, error) {
	var all []Move
	for _, pp := range b.Pieces(side) {
		moves, err := LegalMovesFrom(b, pp.Square, side)
		if err != nil {
			return nil, err
		}
		all = append(all, moves...)
	}
	return all, nil
}

// HasLegalMoves skips castling: a castle is only available when the king's
// transit square is itself a legal king step.
func HasLegalMoves(b *Board, side Color) (bool, error) {
	for _, pp := range b.Pieces(side) {
		moves, err := LegalMoves(b, pp.Square, side)
		if err != nil {
			return false, err
		}
		if len(moves) > 0 {
			return true, nil
		}
	}
	return false, nil
}

func leavesKingInCheck(b *Board, from, to Square, side Color) (bool, error) {
	sim := b.Clone()
	sim.relocate(from, to)
	return InCheck(sim, side)
}
