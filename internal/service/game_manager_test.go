package service

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/storage"
	"github.com/benbeisheim/chessrules-backend/internal/ws"
)

type fakeConn struct {
	mu   sync.Mutex
	msgs []ws.Message
	fail bool
}

func (c *fakeConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errors.New("broken pipe")
	}
	c.msgs = append(c.msgs, v.(ws.Message))
	return nil
}

func (c *fakeConn) states(t *testing.T) []model.GameState {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []model.GameState
	for _, m := range c.msgs {
		if m.Type != ws.MessageTypeGameState {
			t.Fatalf("unexpected message type %s", m.Type)
		}
		var st model.GameState
		if err := json.Unmarshal(m.Payload, &st); err != nil {
			t.Fatalf("decode state: %v", err)
		}
		out = append(out, st)
	}
	return out
}

func square(t *testing.T, s string) model.Square {
	t.Helper()
	sq, ok := model.ParseSquare(s)
	if !ok {
		t.Fatalf("bad square %q", s)
	}
	return sq
}

func move(t *testing.T, m string) model.SimpleMove {
	t.Helper()
	return model.SimpleMove{From: square(t, m[:2]), To: square(t, m[2:])}
}

func newTestManager(t *testing.T) (*GameManager, storage.Store) {
	t.Helper()
	store := storage.NewMemoryStore()
	return NewGameManager(store), store
}

func TestCreateAndGetGame(t *testing.T) {
	gm, store := newTestManager(t)
	if err := gm.CreateGame("g1"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := gm.CreateGame("g1"); !errors.Is(err, ErrGameExists) {
		t.Fatalf("expected ErrGameExists, got %v", err)
	}

	state, err := gm.GetGameState("g1")
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	if state.ID != "g1" || state.ToMove != model.White || state.Status.Outcome != model.InProgress {
		t.Fatalf("unexpected fresh state %+v", state.Status)
	}
	if _, err := store.Load("g1"); err != nil {
		t.Fatalf("created game was not persisted: %v", err)
	}

	if _, err := gm.GetGameState("nope"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
}

func TestMakeMovePersistsAndRestores(t *testing.T) {
	gm, store := newTestManager(t)
	if err := gm.CreateGame("g1"); err != nil {
		t.Fatalf("create: %v", err)
	}
	for _, m := range []string{"e2e4", "e7e5"} {
		if _, err := gm.MakeMove("g1", move(t, m)); err != nil {
			t.Fatalf("%s: %v", m, err)
		}
	}

	fresh := NewGameManager(store)
	state, err := fresh.GetGameState("g1")
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if state.ToMove != model.White || len(state.MoveHistory) != 2 {
		t.Fatalf("restored game has turn %s and %d plies", state.ToMove, len(state.MoveHistory))
	}
	if _, err := fresh.MakeMove("g1", move(t, "g1f3")); err != nil {
		t.Fatalf("move on restored game: %v", err)
	}

	ids, err := fresh.ListGames()
	if err != nil || len(ids) != 1 || ids[0] != "g1" {
		t.Fatalf("list games: %v %v", ids, err)
	}
}

func TestRejectedMoveLeavesGameAlone(t *testing.T) {
	gm, _ := newTestManager(t)
	if err := gm.CreateGame("g1"); err != nil {
		t.Fatalf("create: %v", err)
	}
	conn := &fakeConn{}
	if err := gm.RegisterConnection("g1", "alice", conn); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := gm.MakeMove("g1", move(t, "e7e5"))
	if !errors.Is(err, model.ErrNotYourTurn) || !errors.Is(err, model.ErrInvalidMove) {
		t.Fatalf("expected not-your-turn, got %v", err)
	}
	if got := len(conn.states(t)); got != 1 {
		t.Fatalf("rejected move broadcast a state (%d messages)", got)
	}
	state, _ := gm.GetGameState("g1")
	if len(state.MoveHistory) != 0 {
		t.Fatalf("rejected move was recorded")
	}
}

func TestBroadcastToConnections(t *testing.T) {
	gm, _ := newTestManager(t)
	if err := gm.CreateGame("g1"); err != nil {
		t.Fatalf("create: %v", err)
	}
	alice, bob := &fakeConn{}, &fakeConn{}
	for id, c := range map[string]*fakeConn{"alice": alice, "bob": bob} {
		if err := gm.RegisterConnection("g1", id, c); err != nil {
			t.Fatalf("register %s: %v", id, err)
		}
	}

	if _, err := gm.MakeMove("g1", move(t, "d2d4")); err != nil {
		t.Fatalf("move: %v", err)
	}
	for name, c := range map[string]*fakeConn{"alice": alice, "bob": bob} {
		states := c.states(t)
		if len(states) != 2 {
			t.Fatalf("%s got %d states, want initial + move", name, len(states))
		}
		if states[1].ToMove != model.Black || states[1].Sound != model.CueMove {
			t.Fatalf("%s got stale state %+v", name, states[1].Status)
		}
	}

	gm.UnregisterConnection("g1", "bob", &fakeConn{})
	gm.UnregisterConnection("g1", "alice", alice)
	if _, err := gm.MakeMove("g1", move(t, "d7d5")); err != nil {
		t.Fatalf("move: %v", err)
	}
	if len(alice.states(t)) != 2 {
		t.Fatalf("unregistered client still receives states")
	}
	if len(bob.states(t)) != 3 {
		t.Fatalf("stale unregister removed the live connection")
	}
}

func TestBrokenConnectionIsDropped(t *testing.T) {
	gm, _ := newTestManager(t)
	if err := gm.CreateGame("g1"); err != nil {
		t.Fatalf("create: %v", err)
	}
	conn := &fakeConn{}
	if err := gm.RegisterConnection("g1", "alice", conn); err != nil {
		t.Fatalf("register: %v", err)
	}
	conn.fail = true
	if _, err := gm.MakeMove("g1", move(t, "e2e4")); err != nil {
		t.Fatalf("move with broken client: %v", err)
	}
	conn.fail = false
	if _, err := gm.MakeMove("g1", move(t, "e7e5")); err != nil {
		t.Fatalf("move: %v", err)
	}
	if got := len(conn.states(t)); got != 1 {
		t.Fatalf("dropped connection received %d states", got)
	}
}

func TestLegalMovesThroughManager(t *testing.T) {
	gm, _ := newTestManager(t)
	if err := gm.CreateGame("g1"); err != nil {
		t.Fatalf("create: %v", err)
	}
	moves, err := gm.LegalMoves("g1", square(t, "g1"))
	if err != nil {
		t.Fatalf("legal moves: %v", err)
	}
	if len(moves) != 2 {
		t.Fatalf("expected two knight moves, got %v", moves)
	}
	empty, err := gm.LegalMoves("g1", square(t, "e4"))
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil list, got %v %v", empty, err)
	}
	if _, err := gm.LegalMoves("missing", square(t, "e2")); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
}

func TestGameServiceCreatesUniqueIDs(t *testing.T) {
	gs := NewGameService(NewGameManager(storage.NewMemoryStore()))
	a, err := gs.CreateGame()
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	b, err := gs.CreateGame()
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if a == b {
		t.Fatalf("duplicate game id %s", a)
	}
	state, err := gs.HandleMove(a, move(t, "e2e4"))
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if state.ID != a || state.LastMove == nil {
		t.Fatalf("unexpected state after move %+v", state)
	}
}
