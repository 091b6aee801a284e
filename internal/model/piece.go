package model

import "fmt"

type Color int

const (
	White Color = iota
	Black
)

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return fmt.Sprintf("Color(%d)", int(c))
}

func (c Color) MarshalText() ([]byte, error) {
	if c != White && c != Black {
		return nil, fmt.Errorf("unknown color %d", int(c))
	}
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	switch string(text) {
	case "white":
		*c = White
	case "black":
		*c = Black
	default:
		return fmt.Errorf("unknown color %q", text)
	}
	return nil
}

// homeRow is the back rank a color starts on.
func (c Color) homeRow() int {
	if c == White {
		return 7
	}
	return 0
}

// pawnDirection is the row delta of a forward pawn step.
func (c Color) pawnDirection() int {
	if c == White {
		return -1
	}
	return 1
}

type PieceKind int

const (
	NoPiece PieceKind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var kindNames = [...]string{
	NoPiece: "",
	Pawn:    "pawn",
	Knight:  "knight",
	Bishop:  "bishop",
	Rook:    "rook",
	Queen:   "queen",
	King:    "king",
}

func (k PieceKind) String() string {
	if k < NoPiece || k > King {
		return fmt.Sprintf("PieceKind(%d)", int(k))
	}
	return kindNames[k]
}

func (k PieceKind) MarshalText() ([]byte, error) {
	if k <= NoPiece || k > King {
		return nil, fmt.Errorf("unknown piece kind %d", int(k))
	}
	return []byte(kindNames[k]), nil
}

func (k *PieceKind) UnmarshalText(text []byte) error {
	for i, name := range kindNames {
		if i != int(NoPiece) && name == string(text) {
			*k = PieceKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown piece kind %q", text)
}

// Letter is the upper-case piece letter used by board dumps ("" for pawns, like SAN).
func (k PieceKind) Letter() string {
	switch k {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	}
	return ""
}

// Piece is a single chessman. The zero value is an empty cell.
type Piece struct {
	Kind     PieceKind `json:"type"`
	Color    Color     `json:"color"`
	HasMoved bool      `json:"hasMoved"`
}

func (p Piece) IsEmpty() bool {
	return p.Kind == NoPiece
}

// Code is the two character presentation code, e.g. "wK" or "bP".
func (p Piece) Code() string {
	if p.IsEmpty() {
		return ""
	}
	letter := p.Kind.Letter()
	if p.Kind == Pawn {
		letter = "P"
	}
	return p.Color.String()[:1] + letter
}

type direction struct {
	dr, dc int
}

var (
	orthogonal = []direction{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	diagonal   = []direction{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	allAround  = append(append([]direction{}, orthogonal...), diagonal...)

	knightOffsets = []direction{
		{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
		{1, -2}, {1, 2}, {2, -1}, {2, 1},
	}
)

// pattern is the movement description of one piece kind. Pawns are
// handled separately because their pushes and captures differ.
type pattern struct {
	directions []direction
	slides     bool
}

var catalog = map[PieceKind]pattern{
	Knight: {directions: knightOffsets},
	Bishop: {directions: diagonal, slides: true},
	Rook:   {directions: orthogonal, slides: true},
	Queen:  {directions: allAround, slides: true},
	King:   {directions: allAround},
}

// backRank is the home rank layout from file a to file h.
var backRank = [8]PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
