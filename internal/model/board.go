package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

const BoardDim = 8

// Square is a (row, col) coordinate. Row 0 is Black's home rank, row 7 White's.
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (s Square) OnBoard() bool {
	return s.Row >= 0 && s.Row < BoardDim && s.Col >= 0 && s.Col < BoardDim
}

func (s Square) Offset(dr, dc int) Square {
	return Square{Row: s.Row + dr, Col: s.Col + dc}
}

func (s Square) String() string {
	if !s.OnBoard() {
		return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
	}
	return fmt.Sprintf("%c%d", 'a'+s.Col, BoardDim-s.Row)
}

// ParseSquare reads an algebraic coordinate such as "e4".
func ParseSquare(s string) (Square, bool) {
	if len(s) != 2 {
		return Square{}, false
	}
	sq := Square{Row: BoardDim - int(s[1]-'0'), Col: int(s[0] - 'a')}
	if s[0] < 'a' || s[1] < '1' || !sq.OnBoard() {
		return Square{}, false
	}
	return sq, true
}

// Board is an 8x8 grid of optional pieces. It is a plain value: copying a
// Board copies every cell.
type Board struct {
	cells [BoardDim][BoardDim]Piece
}

func NewBoard() *Board {
	return &Board{}
}

// InitialBoard returns the standard starting position.
func InitialBoard() *Board {
	b := &Board{}
	for col, kind := range backRank {
		b.cells[Black.homeRow()][col] = Piece{Kind: kind, Color: Black}
		b.cells[White.homeRow()][col] = Piece{Kind: kind, Color: White}
		b.cells[1][col] = Piece{Kind: Pawn, Color: Black}
		b.cells[6][col] = Piece{Kind: Pawn, Color: White}
	}
	return b
}

// At returns the piece on sq. Off-board squares read as empty.
func (b *Board) At(sq Square) (Piece, bool) {
	if !sq.OnBoard() {
		return Piece{}, false
	}
	p := b.cells[sq.Row][sq.Col]
	return p, !p.IsEmpty()
}

func (b *Board) Set(sq Square, p Piece) {
	if !sq.OnBoard() {
		return
	}
	b.cells[sq.Row][sq.Col] = p
}

func (b *Board) Clear(sq Square) {
	b.Set(sq, Piece{})
}

func (b *Board) IsEmpty(sq Square) bool {
	_, ok := b.At(sq)
	return !ok
}

func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// PlacedPiece is a piece together with the square it stands on.
type PlacedPiece struct {
	Square Square
	Piece  Piece
}

// Pieces lists every piece of the given color in row-major order.
func (b *Board) Pieces(color Color) []PlacedPiece {
	var out []PlacedPiece
	for row := 0; row < BoardDim; row++ {
		for col := 0; col < BoardDim; col++ {
			p := b.cells[row][col]
			if !p.IsEmpty() && p.Color == color {
				out = append(out, PlacedPiece{Square: Square{Row: row, Col: col}, Piece: p})
			}
		}
	}
	return out
}

func (b *Board) PieceCount() int {
	n := 0
	for row := range b.cells {
		for col := range b.cells[row] {
			if !b.cells[row][col].IsEmpty() {
				n++
			}
		}
	}
	return n
}

func (b *Board) FindKing(color Color) (Square, error) {
	for row := 0; row < BoardDim; row++ {
		for col := 0; col < BoardDim; col++ {
			p := b.cells[row][col]
			if p.Kind == King && p.Color == color {
				return Square{Row: row, Col: col}, nil
			}
		}
	}
	return Square{}, fmt.Errorf("%s king: %w", color, ErrKingNotFound)
}

// relocate moves whatever stands on from to to, marking it as moved.
func (b *Board) relocate(from, to Square) {
	p := b.cells[from.Row][from.Col]
	p.HasMoved = true
	b.cells[from.Row][from.Col] = Piece{}
	b.cells[to.Row][to.Col] = p
}

// String renders the board with presentation codes, rank 8 first.
func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < BoardDim; row++ {
		for col := 0; col < BoardDim; col++ {
			code := b.cells[row][col].Code()
			if code == "" {
				code = "--"
			}
			sb.WriteString(code)
			if col < BoardDim-1 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// MarshalJSON encodes the board as rows of nullable pieces.
func (b *Board) MarshalJSON() ([]byte, error) {
	var rows [BoardDim][BoardDim]*Piece
	for row := range b.cells {
		for col := range b.cells[row] {
			if !b.cells[row][col].IsEmpty() {
				p := b.cells[row][col]
				rows[row][col] = &p
			}
		}
	}
	return json.Marshal(rows)
}

func (b *Board) UnmarshalJSON(data []byte) error {
	var rows [BoardDim][BoardDim]*Piece
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	*b = Board{}
	for row := range rows {
		for col := range rows[row] {
			if rows[row][col] != nil {
				b.cells[row][col] = *rows[row][col]
			}
		}
	}
	return nil
}
