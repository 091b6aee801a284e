package model

import "fmt"

type Outcome int

const (
	InProgress Outcome = iota
	Check
	Checkmate
	Stalemate
	DrawInsufficientMaterial
)

var outcomeNames = [...]string{
	InProgress:               "in-progress",
	Check:                    "check",
	Checkmate:                "checkmate",
	Stalemate:                "stalemate",
	DrawInsufficientMaterial: "draw-insufficient-material",
}

func (o Outcome) String() string {
	if o < InProgress || o > DrawInsufficientMaterial {
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
	return outcomeNames[o]
}

func (o Outcome) MarshalText() ([]byte, error) {
	if o < InProgress || o > DrawInsufficientMaterial {
		return nil, fmt.Errorf("unknown outcome %d", int(o))
	}
	return []byte(outcomeNames[o]), nil
}

func (o *Outcome) UnmarshalText(text []byte) error {
	for i, name := range outcomeNames {
		if name == string(text) {
			*o = Outcome(i)
			return nil
		}
	}
	return fmt.Errorf("unknown outcome %q", text)
}

// GameStatus is evaluated for Turn, the side about to move. Check and
// Checkmate refer to Turn's king.
type GameStatus struct {
	Turn    Color   `json:"turn"`
	Outcome Outcome `json:"outcome"`
}

func (s GameStatus) IsOver() bool {
	return s.Outcome == Checkmate || s.Outcome == Stalemate || s.Outcome == DrawInsufficientMaterial
}

func (s GameStatus) InCheck() bool {
	return s.Outcome == Check || s.Outcome == Checkmate
}

func (s GameStatus) Winner() (Color, bool) {
	if s.Outcome != Checkmate {
		return White, false
	}
	return s.Turn.Opponent(), true
}

// Evaluate computes the status of b with toMove to play. A missing king is
// reported as ErrKingNotFound rather than as "not in check".
func Evaluate(b *Board, toMove Color) (GameStatus, error) {
	status := GameStatus{Turn: toMove, Outcome: InProgress}
	for _, c := range []Color{toMove, toMove.Opponent()} {
		if _, err := b.FindKing(c); err != nil {
			return status, err
		}
	}

	if onlyKingsLeft(b) {
		status.Outcome = DrawInsufficientMaterial
		return status, nil
	}

	inCheck, err := InCheck(b, toMove)
	if err != nil {
		return status, err
	}
	hasMove, err := HasLegalMoves(b, toMove)
	if err != nil {
		return status, err
	}

	switch {
	case !hasMove && inCheck:
		status.Outcome = Checkmate
	case !hasMove:
		status.Outcome = Stalemate
	case inCheck:
		status.Outcome = Check
	}
	return status, nil
}

// onlyKingsLeft is the bare two kings case only; other drawn material such
// as king and bishop against king is played on.
func onlyKingsLeft(b *Board) bool {
	return b.PieceCount() == 2
}
