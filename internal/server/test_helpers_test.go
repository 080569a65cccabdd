package server

import (
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"human-bingo/internal/config"
	"human-bingo/internal/db"
)

func newTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Skipf("skipping test; listen unavailable: %v", err)
	}
	ts := &httptest.Server{
		Listener: listener,
		Config:   &http.Server{Handler: handler},
	}
	ts.Start()
	return ts
}

func newServer(t *testing.T) *Server {
	t.Helper()
	conn, err := db.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return New(conn, config.Default())
}

func noRedirectClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// createGame drives the admin form end to end and returns the issued game
// code from the redirect target.
func createGame(t *testing.T, ts *httptest.Server, prompts ...string) string {
	t.Helper()
	form := url.Values{}
	form.Set("name", "Test Bingo")
	form.Set("prompts", strings.Join(prompts, "\n"))
	resp, err := noRedirectClient().PostForm(ts.URL+"/admin/create", form)
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("create game: expected redirect, got %d", resp.StatusCode)
	}
	location := resp.Header.Get("Location")
	code := strings.TrimPrefix(location, "/admin/")
	if code == "" || code == location {
		t.Fatalf("create game: unexpected redirect target %q", location)
	}
	return code
}

func joinPlayer(t *testing.T, ts *httptest.Server, gameID, name string) string {
	t.Helper()
	body := strings.NewReader(`{"game_id":"` + gameID + `","name":"` + name + `"}`)
	resp, err := http.Post(ts.URL+"/join", "application/json", body)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("join: expected 200, got %d", resp.StatusCode)
	}
	var payload struct {
		PlayerID string `json:"player_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("join: decode response: %v", err)
	}
	if payload.PlayerID == "" {
		t.Fatal("join: empty player_id")
	}
	return payload.PlayerID
}

type boardPrompt struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

func fetchBoard(t *testing.T, ts *httptest.Server, gameID string) []boardPrompt {
	t.Helper()
	resp, err := http.Get(ts.URL + "/board/" + gameID)
	if err != nil {
		t.Fatalf("board: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("board: expected 200, got %d", resp.StatusCode)
	}
	var prompts []boardPrompt
	if err := json.NewDecoder(resp.Body).Decode(&prompts); err != nil {
		t.Fatalf("board: decode response: %v", err)
	}
	return prompts
}
