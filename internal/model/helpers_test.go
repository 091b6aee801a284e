package model

import (
	"strings"
	"testing"
)

func sq(t testing.TB, s string) Square {
	t.Helper()
	q, ok := ParseSquare(s)
	if !ok {
		t.Fatalf("invalid square %q", s)
	}
	return q
}

var pieceLetters = map[byte]PieceKind{
	'p': Pawn, 'n': Knight, 'b': Bishop, 'r': Rook, 'q': Queen, 'k': King,
}

// boardFromPlacement reads the placement field of a FEN string. Pawns on
// their starting rank are unmoved; every other piece is marked as moved
// unless its square is listed in unmoved.
func boardFromPlacement(t testing.TB, placement string, unmoved ...string) *Board {
	t.Helper()
	ranks := strings.Split(placement, "/")
	if len(ranks) != BoardDim {
		t.Fatalf("placement %q: want %d ranks, got %d", placement, BoardDim, len(ranks))
	}
	b := NewBoard()
	for row, rank := range ranks {
		col := 0
		for i := 0; i < len(rank); i++ {
			c := rank[i]
			if c >= '1' && c <= '8' {
				col += int(c - '0')
				continue
			}
			kind, ok := pieceLetters[strings.ToLower(string(c))[0]]
			if !ok {
				t.Fatalf("placement %q: bad piece letter %q", placement, c)
			}
			color := Black
			if c >= 'A' && c <= 'Z' {
				color = White
			}
			p := Piece{Kind: kind, Color: color, HasMoved: true}
			if kind == Pawn && row == pawnRow(color) {
				p.HasMoved = false
			}
			b.Set(Square{Row: row, Col: col}, p)
			col++
		}
		if col != BoardDim {
			t.Fatalf("placement %q: rank %d has %d files", placement, row, col)
		}
	}
	for _, s := range unmoved {
		at := sq(t, s)
		p, ok := b.At(at)
		if !ok {
			t.Fatalf("no piece on %s to mark unmoved", s)
		}
		p.HasMoved = false
		b.Set(at, p)
	}
	return b
}

// placementOf writes b back as a FEN placement field.
func placementOf(b *Board) string {
	var sb strings.Builder
	for row := 0; row < BoardDim; row++ {
		empty := 0
		for col := 0; col < BoardDim; col++ {
			p, ok := b.At(Square{Row: row, Col: col})
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			letter := p.Kind.Letter()
			if p.Kind == Pawn {
				letter = "P"
			}
			if p.Color == Black {
				letter = strings.ToLower(letter)
			}
			sb.WriteString(letter)
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if row < BoardDim-1 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

func destinations(moves []Move) map[Square]MoveKind {
	out := make(map[Square]MoveKind, len(moves))
	for _, m := range moves {
		out[m.To] = m.Kind
	}
	return out
}
