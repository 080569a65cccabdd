package server

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	maxNameLength     = 64
	maxPartnerLength  = 120
	maxPromptLength   = 280
	maxGameNameLength = 120
	maxPromptsPerGame = 100
)

var validatorOnce sync.Once

func registerValidators() {
	validatorOnce.Do(func() {
		engine, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = engine.RegisterValidation("name", func(fl validator.FieldLevel) bool {
			_, err := validateName(fl.Field().String())
			return err == nil
		})
	})
}

func validateName(name string) (string, error) {
	return validateText("name", name, maxNameLength)
}

func validatePartner(partner string) (string, error) {
	trimmed := strings.TrimSpace(partner)
	if trimmed == "" {
		return "", nil
	}
	if len(trimmed) > maxPartnerLength {
		return "", fmt.Errorf("partner must be %d characters or fewer", maxPartnerLength)
	}
	if !isSafeText(trimmed) {
		return "", errors.New("partner contains unsupported characters")
	}
	return trimmed, nil
}

func validatePrompt(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", errors.New("prompt is required")
	}
	if len(trimmed) > maxPromptLength {
		return "", fmt.Errorf("prompt must be %d characters or fewer", maxPromptLength)
	}
	if !isSafeText(trimmed) {
		return "", errors.New("prompt contains unsupported characters")
	}
	return trimmed, nil
}

func validateGameName(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || len(trimmed) > maxGameNameLength || !isSafeText(trimmed) {
		return "Human Bingo"
	}
	return trimmed
}

func validateText(field, value string, limit int) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("%s is required", field)
	}
	if len(trimmed) > limit {
		return "", fmt.Errorf("%s must be %d characters or fewer", field, limit)
	}
	if !isSafeText(trimmed) {
		return "", fmt.Errorf("%s contains unsupported characters", field)
	}
	return trimmed, nil
}

func isSafeText(value string) bool {
	for _, r := range value {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// parsePromptLines splits an authoring textarea into a prompt roster, one
// prompt per line, dropping blanks and anything past the roster cap.
func parsePromptLines(raw string) []string {
	prompts := make([]string, 0)
	for _, line := range strings.Split(raw, "\n") {
		text, err := validatePrompt(line)
		if err != nil {
			continue
		}
		prompts = append(prompts, text)
		if len(prompts) == maxPromptsPerGame {
			break
		}
	}
	return prompts
}

func normalizeGameCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
