package llm

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/vedran77/sortinghat/internal/domain"
)

var (
	ErrInvalidResponse = errors.New("invalid llm response")
	ErrHouseNotString  = errors.New("house must be a string")
	ErrUnknownHouse    = errors.New("house is not one of the four houses")
)

// Verdict is the parsed outcome of a sorting request.
type Verdict struct {
	House       string `json:"house"`
	Explanation string `json:"explanation"`
}

// ParseVerdict validates the raw completion text. The house is returned in
// its canonical spelling.
func ParseVerdict(content string) (Verdict, error) {
	content = stripFences(content)
	if content == "" {
		return Verdict{}, ErrInvalidResponse
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &raw); err != nil || raw == nil {
		return Verdict{}, ErrInvalidResponse
	}

	var house string
	if err := json.Unmarshal(raw["house"], &house); err != nil || strings.TrimSpace(house) == "" {
		return Verdict{}, ErrHouseNotString
	}

	canonical, ok := domain.CanonicalHouse(house)
	if !ok {
		return Verdict{}, ErrUnknownHouse
	}

	var explanation string
	if msg, ok := raw["explanation"]; ok && string(msg) != "null" {
		if err := json.Unmarshal(msg, &explanation); err != nil {
			return Verdict{}, ErrInvalidResponse
		}
	}

	return Verdict{House: canonical, Explanation: strings.TrimSpace(explanation)}, nil
}

// stripFences removes a surrounding markdown code fence some models add
// despite being told not to.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
