package server

import (
	"strings"
	"testing"
)

func TestParsePromptLines(t *testing.T) {
	raw := "  First prompt  \n\n\nSecond prompt\n   \nThird prompt"
	prompts := parsePromptLines(raw)
	want := []string{"First prompt", "Second prompt", "Third prompt"}
	if len(prompts) != len(want) {
		t.Fatalf("expected %d prompts, got %d", len(want), len(prompts))
	}
	for i, text := range want {
		if prompts[i] != text {
			t.Fatalf("prompt %d: expected %q, got %q", i, text, prompts[i])
		}
	}
}

func TestParsePromptLinesCap(t *testing.T) {
	raw := strings.Repeat("prompt\n", maxPromptsPerGame+10)
	if got := len(parsePromptLines(raw)); got != maxPromptsPerGame {
		t.Fatalf("expected cap at %d prompts, got %d", maxPromptsPerGame, got)
	}
}

func TestNormalizeGameCode(t *testing.T) {
	if got := normalizeGameCode("  abcdef "); got != "ABCDEF" {
		t.Fatalf("expected ABCDEF, got %q", got)
	}
}

func TestValidatePartner(t *testing.T) {
	if partner, err := validatePartner("   "); err != nil || partner != "" {
		t.Fatalf("expected blank partner to pass as empty, got %q, %v", partner, err)
	}
	if partner, err := validatePartner(" Alex "); err != nil || partner != "Alex" {
		t.Fatalf("expected trimmed Alex, got %q, %v", partner, err)
	}
	if _, err := validatePartner(strings.Repeat("x", maxPartnerLength+1)); err == nil {
		t.Fatal("expected error for oversized partner")
	}
	if _, err := validatePartner("bad\x00partner"); err == nil {
		t.Fatal("expected error for control characters")
	}
}

func TestValidateGameName(t *testing.T) {
	if got := validateGameName("  Orientation Bingo  "); got != "Orientation Bingo" {
		t.Fatalf("expected trimmed name, got %q", got)
	}
	if got := validateGameName("   "); got != "Human Bingo" {
		t.Fatalf("expected default name for blank input, got %q", got)
	}
}

func TestNewGameCode(t *testing.T) {
	code := newGameCode(6)
	if len(code) != 6 {
		t.Fatalf("expected 6-char code, got %q", code)
	}
	for _, r := range code {
		if !strings.ContainsRune("ABCDEFGHJKLMNPQRSTUVWXYZ23456789", r) {
			t.Fatalf("unexpected character %q in code %q", r, code)
		}
	}
}
