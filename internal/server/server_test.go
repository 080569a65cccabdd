package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

func TestHealth(t *testing.T) {
	ts := newTestServer(t, newServer(t).Handler())
	t.Cleanup(ts.Close)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var payload struct {
		OK bool `json:"ok"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !payload.OK {
		t.Fatal("expected ok=true")
	}
}

func TestJoinUnknownGame(t *testing.T) {
	ts := newTestServer(t, newServer(t).Handler())
	t.Cleanup(ts.Close)

	body := strings.NewReader(`{"game_id":"NOSUCH","name":"Alice"}`)
	resp, err := http.Post(ts.URL+"/join", "application/json", body)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestJoinRejectsMissingName(t *testing.T) {
	ts := newTestServer(t, newServer(t).Handler())
	t.Cleanup(ts.Close)

	gameID := createGame(t, ts, "P1")
	body := strings.NewReader(`{"game_id":"` + gameID + `"}`)
	resp, err := http.Post(ts.URL+"/join", "application/json", body)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestJoinCaseInsensitiveCode(t *testing.T) {
	ts := newTestServer(t, newServer(t).Handler())
	t.Cleanup(ts.Close)

	gameID := createGame(t, ts, "P1")
	playerID := joinPlayer(t, ts, strings.ToLower(gameID), "Alice")
	if playerID == "" {
		t.Fatal("expected player_id for lower-case code")
	}
}

func TestBoardListsPrompts(t *testing.T) {
	ts := newTestServer(t, newServer(t).Handler())
	t.Cleanup(ts.Close)

	gameID := createGame(t, ts, "First prompt", "Second prompt")
	prompts := fetchBoard(t, ts, gameID)
	if len(prompts) != 2 {
		t.Fatalf("expected 2 prompts, got %d", len(prompts))
	}
	if prompts[0].Text != "First prompt" || prompts[1].Text != "Second prompt" {
		t.Fatalf("unexpected prompt order: %+v", prompts)
	}
	for _, prompt := range prompts {
		if prompt.ID == "" {
			t.Fatalf("prompt missing id: %+v", prompt)
		}
	}
}

func TestLeaderboardQueryEndpoint(t *testing.T) {
	ts := newTestServer(t, newServer(t).Handler())
	t.Cleanup(ts.Close)

	gameID := createGame(t, ts, "P1")
	joinPlayer(t, ts, gameID, "Bob")
	joinPlayer(t, ts, gameID, "Alice")

	resp, err := http.Get(ts.URL + "/api/games/" + gameID + "/leaderboard")
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var payload struct {
		Leaderboard []struct {
			ID    string `json:"id"`
			Name  string `json:"name"`
			Score int    `json:"score"`
		} `json:"leaderboard"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload.Leaderboard) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(payload.Leaderboard))
	}
	// equal scores rank by name ascending
	if payload.Leaderboard[0].Name != "Alice" || payload.Leaderboard[1].Name != "Bob" {
		t.Fatalf("unexpected order: %+v", payload.Leaderboard)
	}
}

func TestLeaderboardUnknownGame(t *testing.T) {
	ts := newTestServer(t, newServer(t).Handler())
	t.Cleanup(ts.Close)

	resp, err := http.Get(ts.URL + "/api/games/NOSUCH/leaderboard")
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestQRServesPNG(t *testing.T) {
	ts := newTestServer(t, newServer(t).Handler())
	t.Cleanup(ts.Close)

	gameID := createGame(t, ts, "P1")
	resp, err := http.Get(ts.URL + "/qr/" + gameID)
	if err != nil {
		t.Fatalf("qr: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Fatalf("expected image/png, got %s", ct)
	}
}

func TestAdminViewMissingGameRedirects(t *testing.T) {
	ts := newTestServer(t, newServer(t).Handler())
	t.Cleanup(ts.Close)

	resp, err := noRedirectClient().Get(ts.URL + "/admin/NOSUCH")
	if err != nil {
		t.Fatalf("admin view: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect, got %d", resp.StatusCode)
	}
	if location := resp.Header.Get("Location"); location != "/admin" {
		t.Fatalf("expected redirect to /admin, got %q", location)
	}
}

func TestAdminDeleteRemovesGame(t *testing.T) {
	ts := newTestServer(t, newServer(t).Handler())
	t.Cleanup(ts.Close)

	gameID := createGame(t, ts, "P1")
	resp, err := noRedirectClient().PostForm(ts.URL+"/admin/"+gameID+"/delete", nil)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect, got %d", resp.StatusCode)
	}

	boardResp, err := http.Get(ts.URL + "/board/" + gameID)
	if err != nil {
		t.Fatalf("board: %v", err)
	}
	defer boardResp.Body.Close()
	if boardResp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", boardResp.StatusCode)
	}
}
