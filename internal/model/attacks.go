package model

import (
	"sort"

	"golang.org/x/exp/maps"
)

type SquareSet map[Square]struct{}

func (s SquareSet) Add(sq Square) {
	s[sq] = struct{}{}
}

func (s SquareSet) Has(sq Square) bool {
	_, ok := s[sq]
	return ok
}

// Sorted returns the squares in row-major order.
func (s SquareSet) Sorted() []Square {
	out := maps.Keys(s)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

// AttackedSquares is the union of squares every piece of color could capture
// on next move. Pawns contribute their diagonals only; a push never captures.
func AttackedSquares(b *Board, color Color) SquareSet {
	attacked := SquareSet{}
	for _, pp := range b.Pieces(color) {
		var targets []Square
		if pp.Piece.Kind == Pawn {
			targets = pawnCaptureSquares(pp.Square, color)
		} else {
			targets = PseudoLegalMoves(b, pp.Square)
		}
		for _, sq := range targets {
			attacked.Add(sq)
		}
	}
	return attacked
}

func IsSquareAttacked(b *Board, by Color, sq Square) bool {
	return AttackedSquares(b, by).Has(sq)
}

// InCheck reports whether color's king stands on a square its opponent attacks.
func InCheck(b *Board, color Color) (bool, error) {
	king, err := b.FindKing(color)
	if err != nil {
		return false, err
	}
	return IsSquareAttacked(b, color.Opponent(), king), nil
}
