package model

type generator func(b *Board, from Square, piece Piece) []Square

var generators = map[PieceKind]generator{
	Pawn:   pawnMoves,
	Knight: patternMoves,
	Bishop: patternMoves,
	Rook:   patternMoves,
	Queen:  patternMoves,
	King:   patternMoves,
}

// PseudoLegalMoves lists the destinations of the piece on from, ignoring
// whether the move would leave its own king in check. Castling is not
// included.
func PseudoLegalMoves(b *Board, from Square) []Square {
	piece, ok := b.At(from)
	if !ok {
		return nil
	}
	gen, ok := generators[piece.Kind]
	if !ok {
		return nil
	}
	return gen(b, from, piece)
}

func pawnMoves(b *Board, from Square, piece Piece) []Square {
	var moves []Square
	dir := piece.Color.pawnDirection()

	one := from.Offset(dir, 0)
	if one.OnBoard() && b.IsEmpty(one) {
		moves = append(moves, one)
		two := from.Offset(2*dir, 0)
		if !piece.HasMoved && from.Row == pawnRow(piece.Color) && two.OnBoard() && b.IsEmpty(two) {
			moves = append(moves, two)
		}
	}
	for _, target := range pawnCaptureSquares(from, piece.Color) {
		if other, ok := b.At(target); ok && other.Color != piece.Color {
			moves = append(moves, target)
		}
	}
	return moves
}

// pawnRow is the rank a color's pawns start on.
func pawnRow(c Color) int {
	return c.homeRow() + c.pawnDirection()
}

// pawnCaptureSquares are the on-board forward diagonals of a pawn.
func pawnCaptureSquares(from Square, c Color) []Square {
	var out []Square
	dir := c.pawnDirection()
	for _, dc := range []int{-1, 1} {
		if sq := from.Offset(dir, dc); sq.OnBoard() {
			out = append(out, sq)
		}
	}
	return out
}

func patternMoves(b *Board, from Square, piece Piece) []Square {
	pat := catalog[piece.Kind]
	var moves []Square
	for _, d := range pat.directions {
		target := from.Offset(d.dr, d.dc)
		for target.OnBoard() {
			other, occupied := b.At(target)
			if occupied && other.Color == piece.Color {
				break
			}
			moves = append(moves, target)
			if occupied || !pat.slides {
				break
			}
			target = target.Offset(d.dr, d.dc)
		}
	}
	return moves
}
