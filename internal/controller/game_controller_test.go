package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/service"
	"github.com/benbeisheim/chessrules-backend/internal/storage"
	"github.com/benbeisheim/chessrules-backend/internal/ws"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	gs := service.NewGameService(service.NewGameManager(storage.NewMemoryStore()))
	app := fiber.New()
	RegisterRoutes(app, NewGameController(gs), NewWebSocketController(gs), websocket.Config{})
	return app
}

func do(t *testing.T, app *fiber.App, method, target, body string, out interface{}) int {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: decode: %v", method, target, err)
		}
	}
	return resp.StatusCode
}

func createGame(t *testing.T, app *fiber.App) string {
	t.Helper()
	var created struct {
		GameID string `json:"gameId"`
	}
	if code := do(t, app, "POST", "/api/game/create", "", &created); code != fiber.StatusCreated {
		t.Fatalf("create returned %d", code)
	}
	if created.GameID == "" {
		t.Fatalf("create returned no game id")
	}
	return created.GameID
}

func moveBody(fromRow, fromCol, toRow, toCol int) string {
	return fmt.Sprintf(`{"from":{"row":%d,"col":%d},"to":{"row":%d,"col":%d}}`, fromRow, fromCol, toRow, toCol)
}

func TestGameLifecycleOverHTTP(t *testing.T) {
	app := newTestApp(t)
	id := createGame(t, app)

	var state model.GameState
	if code := do(t, app, "GET", "/api/game/"+id, "", &state); code != fiber.StatusOK {
		t.Fatalf("get returned %d", code)
	}
	if state.ID != id || state.ToMove != model.White {
		t.Fatalf("unexpected state %s %s", state.ID, state.ToMove)
	}

	var legal ws.LegalMovesResponse
	if code := do(t, app, "GET", "/api/game/"+id+"/moves?row=6&col=4", "", &legal); code != fiber.StatusOK {
		t.Fatalf("moves returned %d", code)
	}
	if len(legal.Moves) != 2 {
		t.Fatalf("expected e3 and e4, got %v", legal.Moves)
	}

	// e2-e4
	if code := do(t, app, "POST", "/api/game/"+id+"/move", moveBody(6, 4, 4, 4), &state); code != fiber.StatusOK {
		t.Fatalf("move returned %d", code)
	}
	if state.ToMove != model.Black || state.LastMove == nil {
		t.Fatalf("move not applied: %+v", state.Status)
	}

	var list struct {
		Games []string `json:"games"`
	}
	if code := do(t, app, "GET", "/api/games", "", &list); code != fiber.StatusOK || len(list.Games) != 1 {
		t.Fatalf("list returned %d %v", code, list.Games)
	}
}

func TestHTTPErrorMapping(t *testing.T) {
	app := newTestApp(t)
	id := createGame(t, app)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		want   int
	}{
		{name: "unknown game", method: "GET", target: "/api/game/missing", want: fiber.StatusNotFound},
		{name: "moves of unknown game", method: "GET", target: "/api/game/missing/moves?row=6&col=4", want: fiber.StatusNotFound},
		{name: "non-numeric square", method: "GET", target: "/api/game/" + id + "/moves?row=x&col=4", want: fiber.StatusBadRequest},
		{name: "off-board square", method: "GET", target: "/api/game/" + id + "/moves?row=9&col=4", want: fiber.StatusUnprocessableEntity},
		{name: "wrong turn", method: "POST", target: "/api/game/" + id + "/move", body: moveBody(1, 4, 3, 4), want: fiber.StatusUnprocessableEntity},
		{name: "illegal move", method: "POST", target: "/api/game/" + id + "/move", body: moveBody(7, 0, 5, 0), want: fiber.StatusUnprocessableEntity},
		{name: "bad body", method: "POST", target: "/api/game/" + id + "/move", body: "{", want: fiber.StatusBadRequest},
		{name: "move in unknown game", method: "POST", target: "/api/game/missing/move", body: moveBody(6, 4, 4, 4), want: fiber.StatusNotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var body struct {
				Error string `json:"error"`
			}
			if code := do(t, app, tt.method, tt.target, tt.body, &body); code != tt.want {
				t.Fatalf("status %d, want %d (%s)", code, tt.want, body.Error)
			}
			if body.Error == "" {
				t.Fatalf("expected an error message")
			}
		})
	}
}

func TestFinishedGameReturnsConflict(t *testing.T) {
	app := newTestApp(t)
	id := createGame(t, app)

	// f2f3 e7e5 g2g4 d8h4
	for _, m := range []string{moveBody(6, 5, 5, 5), moveBody(1, 4, 3, 4), moveBody(6, 6, 4, 6), moveBody(0, 3, 4, 7)} {
		if code := do(t, app, "POST", "/api/game/"+id+"/move", m, nil); code != fiber.StatusOK {
			t.Fatalf("move %s returned %d", m, code)
		}
	}
	if code := do(t, app, "POST", "/api/game/"+id+"/move", moveBody(6, 0, 5, 0), nil); code != fiber.StatusConflict {
		t.Fatalf("move after mate returned %d", code)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: service.ErrGameNotFound, want: fiber.StatusNotFound},
		{err: fmt.Errorf("wrapped: %w", model.ErrIllegalMove), want: fiber.StatusUnprocessableEntity},
		{err: model.ErrGameOver, want: fiber.StatusConflict},
		{err: model.ErrKingNotFound, want: fiber.StatusInternalServerError},
		{err: errors.New("disk full"), want: fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
