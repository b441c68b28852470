// Package llm asks a chat-completion provider to sort a student and parses
// the verdict it returns.
package llm

import (
	"context"
	"errors"
)

// ErrEmptyCompletion is returned when the provider answers without any
// message content.
var ErrEmptyCompletion = errors.New("empty completion")

// Client sends a system and a user prompt and returns the raw text of the
// first choice.
type Client interface {
	Complete(ctx context.Context, system, user string) (string, error)
}
