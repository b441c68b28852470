package mailer

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vedran77/sortinghat/internal/logger"
)

func TestWelcomeBody(t *testing.T) {
	body := welcomeBody("harry", "Gryffindor")

	assert.Contains(t, body, "Dear harry,")
	assert.Contains(t, body, "sorted into Gryffindor")
	assert.Contains(t, body, "Draco Dormiens Nunquam Titillandus")
}

func TestBuildWelcome(t *testing.T) {
	msg, err := buildWelcome("Sorting Hat AI", "hat@hogwarts.example", "harry@hogwarts.example", "harry", "Gryffindor")
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"Sorting Hat AI" <hat@hogwarts.example>`)
	assert.Contains(t, out, "<harry@hogwarts.example>")
	assert.Contains(t, out, "Acceptance Letter to Hogwarts")
}

func TestBuildWelcome_InvalidRecipient(t *testing.T) {
	_, err := buildWelcome("Sorting Hat AI", "hat@hogwarts.example", "not an address", "harry", "Gryffindor")
	assert.Error(t, err)
}

func TestLogMailer(t *testing.T) {
	var buf bytes.Buffer
	m := NewLogMailer(logger.New(logger.Config{Writer: &buf, Environment: "production"}))

	require.NoError(t, m.SendWelcome(context.Background(), "harry@hogwarts.example", "harry", "Gryffindor"))
	assert.Contains(t, buf.String(), `"house":"Gryffindor"`)
}
