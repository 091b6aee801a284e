package model

import "fmt"

// Cue tells the presentation layer which sound or effect fits the last move.
type Cue string

const (
	CueNone    Cue = ""
	CueMove    Cue = "move"
	CueCapture Cue = "capture"
	CueCheck   Cue = "check"
	CueGameEnd Cue = "game-end"
)

// Game owns the canonical board of one game and the side to move. It is
// not safe for concurrent use; the service layer serialises access.
type Game struct {
	board   *Board
	turn    Color
	status  GameStatus
	history []Ply
	sound   Cue
}

// GameState is the snapshot handed to the presentation layer.
type GameState struct {
	ID             string         `json:"id"`
	Board          *Board         `json:"board"`
	ToMove         Color          `json:"toMove"`
	Status         GameStatus     `json:"status"`
	IsCheck        bool           `json:"isCheck"`
	CheckedKing    *Square        `json:"checkedKing"`
	Winner         *Color         `json:"winner"`
	Sound          Cue            `json:"sound"`
	LastMove       *Move          `json:"lastMove"`
	MoveHistory    []Ply          `json:"moveHistory"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
}

// CapturedPieces groups taken pieces by the color that took them.
type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

// GameRecord is the persisted form of a game.
type GameRecord struct {
	Board   *Board     `json:"board"`
	Turn    Color      `json:"turn"`
	Status  GameStatus `json:"status"`
	History []Ply      `json:"history"`
}

func NewGame() *Game {
	return &Game{
		board:  InitialBoard(),
		turn:   White,
		status: GameStatus{Turn: White, Outcome: InProgress},
	}
}

// NewGameFromBoard starts a game from an arbitrary position.
func NewGameFromBoard(b *Board, turn Color) (*Game, error) {
	status, err := Evaluate(b, turn)
	if err != nil {
		return nil, fmt.Errorf("evaluate position: %w", err)
	}
	return &Game{board: b.Clone(), turn: turn, status: status}, nil
}

// RestoreGame rebuilds a game from its record. The status is recomputed
// from the board rather than trusted.
func RestoreGame(rec GameRecord) (*Game, error) {
	if rec.Board == nil {
		return nil, fmt.Errorf("restore game: record has no board")
	}
	g, err := NewGameFromBoard(rec.Board, rec.Turn)
	if err != nil {
		return nil, err
	}
	g.history = append([]Ply(nil), rec.History...)
	return g, nil
}

func (g *Game) Record() GameRecord {
	return GameRecord{
		Board:   g.board.Clone(),
		Turn:    g.turn,
		Status:  g.status,
		History: g.History(),
	}
}

// Board returns a copy of the canonical board.
func (g *Game) Board() *Board {
	return g.board.Clone()
}

func (g *Game) Turn() Color {
	return g.turn
}

func (g *Game) Status() GameStatus {
	return g.status
}

func (g *Game) History() []Ply {
	return append([]Ply(nil), g.history...)
}

// LegalMovesFrom lists the moves of the piece on sq for the side to move.
// A finished game has no moves.
func (g *Game) LegalMovesFrom(sq Square) ([]Move, error) {
	if g.status.IsOver() {
		return nil, nil
	}
	return LegalMovesFrom(g.board, sq, g.turn)
}

func (g *Game) IsCaptureAt(sq Square) bool {
	return IsCaptureAt(g.board, sq)
}

// MakeMove plays from -> to for the side to move. A rejected attempt leaves
// the game untouched and returns an error wrapping ErrInvalidMove, or
// ErrGameOver once the game has ended.
func (g *Game) MakeMove(from, to Square) (Ply, error) {
	if g.status.IsOver() {
		return Ply{}, ErrGameOver
	}
	if !from.OnBoard() || !to.OnBoard() {
		return Ply{}, ErrOutOfBounds
	}
	piece, ok := g.board.At(from)
	if !ok {
		return Ply{}, ErrNoPiece
	}
	if piece.Color != g.turn {
		return Ply{}, ErrNotYourTurn
	}

	moves, err := LegalMovesFrom(g.board, from, g.turn)
	if err != nil {
		return Ply{}, err
	}
	move, ok := findMove(moves, to)
	if !ok {
		return Ply{}, fmt.Errorf("%s to %s: %w", from, to, ErrIllegalMove)
	}

	next := g.board.Clone()
	ply, err := ApplyMove(next, move)
	if err != nil {
		return Ply{}, err
	}
	status, err := Evaluate(next, g.turn.Opponent())
	if err != nil {
		return Ply{}, err
	}

	g.board = next
	g.turn = g.turn.Opponent()
	g.status = status
	g.history = append(g.history, ply)
	g.sound = cueFor(ply, status)
	return ply, nil
}

func findMove(moves []Move, to Square) (Move, bool) {
	for _, m := range moves {
		if m.To == to {
			return m, true
		}
	}
	return Move{}, false
}

func cueFor(ply Ply, status GameStatus) Cue {
	switch {
	case status.IsOver():
		return CueGameEnd
	case status.InCheck():
		return CueCheck
	case ply.CapturedPiece != nil:
		return CueCapture
	}
	return CueMove
}

// State builds the presentation snapshot of the game.
func (g *Game) State(id string) GameState {
	state := GameState{
		ID:          id,
		Board:       g.board.Clone(),
		ToMove:      g.turn,
		Status:      g.status,
		IsCheck:     g.status.InCheck(),
		Sound:       g.sound,
		MoveHistory: append(make([]Ply, 0, len(g.history)), g.history...),
		CapturedPieces: CapturedPieces{
			White: make([]Piece, 0),
			Black: make([]Piece, 0),
		},
	}
	if state.IsCheck {
		if king, err := g.board.FindKing(g.turn); err == nil {
			state.CheckedKing = &king
		}
	}
	if winner, ok := g.status.Winner(); ok {
		state.Winner = &winner
	}
	if n := len(g.history); n > 0 {
		last := g.history[n-1].Move()
		state.LastMove = &last
	}
	for _, ply := range g.history {
		if ply.CapturedPiece == nil {
			continue
		}
		switch ply.Piece.Color {
		case White:
			state.CapturedPieces.White = append(state.CapturedPieces.White, *ply.CapturedPiece)
		case Black:
			state.CapturedPieces.Black = append(state.CapturedPieces.Black, *ply.CapturedPiece)
		}
	}
	return state
}
