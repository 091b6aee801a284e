package model

import "fmt"

type MoveKind int

const (
	Normal MoveKind = iota
	CastleKingside
	CastleQueenside
)

var moveKindNames = [...]string{
	Normal:          "normal",
	CastleKingside:  "castle-kingside",
	CastleQueenside: "castle-queenside",
}

func (k MoveKind) String() string {
	if k < Normal || k > CastleQueenside {
		return fmt.Sprintf("MoveKind(%d)", int(k))
	}
	return moveKindNames[k]
}

func (k MoveKind) IsCastle() bool {
	return k == CastleKingside || k == CastleQueenside
}

func (k MoveKind) MarshalText() ([]byte, error) {
	if k < Normal || k > CastleQueenside {
		return nil, fmt.Errorf("unknown move kind %d", int(k))
	}
	return []byte(moveKindNames[k]), nil
}

func (k *MoveKind) UnmarshalText(text []byte) error {
	for i, name := range moveKindNames {
		if name == string(text) {
			*k = MoveKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown move kind %q", text)
}

type Move struct {
	From Square   `json:"from"`
	To   Square   `json:"to"`
	Kind MoveKind `json:"kind"`
}

func (m Move) String() string {
	switch m.Kind {
	case CastleKingside:
		return "O-O"
	case CastleQueenside:
		return "O-O-O"
	}
	return m.From.String() + m.To.String()
}

// SimpleMove is the (from, to) pair a player submits.
type SimpleMove struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

type CastleRookMove struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

// Ply records one executed move.
type Ply struct {
	Piece          Piece           `json:"piece"`
	From           Square          `json:"from"`
	To             Square          `json:"to"`
	Kind           MoveKind        `json:"kind"`
	CapturedPiece  *Piece          `json:"capturedPiece"`
	CastleRookMove *CastleRookMove `json:"castleRookMove"`
}

func (p Ply) Move() Move {
	return Move{From: p.From, To: p.To, Kind: p.Kind}
}

// ApplyMove executes m on b in place. It does not check legality; callers
// pick m from LegalMovesFrom. Every relocated piece is marked as moved,
// including the rook of a castle.
func ApplyMove(b *Board, m Move) (Ply, error) {
	if !m.From.OnBoard() || !m.To.OnBoard() {
		return Ply{}, ErrOutOfBounds
	}
	piece, ok := b.At(m.From)
	if !ok {
		return Ply{}, ErrNoPiece
	}

	ply := Ply{Piece: piece, From: m.From, To: m.To, Kind: m.Kind}
	if captured, ok := b.At(m.To); ok {
		ply.CapturedPiece = &captured
	}
	b.relocate(m.From, m.To)

	if m.Kind.IsCastle() {
		rookFrom, rookTo := castleRookSquares(piece.Color, m.Kind)
		b.relocate(rookFrom, rookTo)
		ply.CastleRookMove = &CastleRookMove{From: rookFrom, To: rookTo}
	}
	return ply, nil
}

// IsCaptureAt reports whether a move onto sq would take a piece.
func IsCaptureAt(b *Board, sq Square) bool {
	return !b.IsEmpty(sq)
}
