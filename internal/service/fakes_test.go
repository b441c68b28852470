package service

import (
	"context"
	"errors"
	"sync"

	"github.com/vedran77/sortinghat/internal/domain"
	"github.com/vedran77/sortinghat/internal/google"
)

type fakeSource struct {
	chars []domain.Character
	err   error
}

func (f *fakeSource) ListCharacters(ctx context.Context) ([]domain.Character, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.chars, nil
}

func (f *fakeSource) GetCharacter(ctx context.Context, id string) (*domain.Character, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.chars {
		if f.chars[i].ID == id {
			c := f.chars[i]
			return &c, nil
		}
	}
	return nil, nil
}

func hogwartsSource() *fakeSource {
	return &fakeSource{chars: []domain.Character{
		{ID: "1", Name: "Harry Potter", House: "Gryffindor", Image: "url1"},
		{ID: "2", Name: "Draco Malfoy", House: "Slytherin", Image: "url2"},
		{ID: "3", Name: "Hermione Granger", House: "Gryffindor", Image: "url3"},
	}}
}

type fakeLLM struct {
	content string
	err     error
	system  string
	user    string
}

func (f *fakeLLM) Complete(ctx context.Context, system, user string) (string, error) {
	f.system, f.user = system, user
	return f.content, f.err
}

type sentLetter struct {
	to, username, house string
}

type fakeMailer struct {
	mu   sync.Mutex
	err  error
	sent []sentLetter
}

func (f *fakeMailer) SendWelcome(ctx context.Context, to, username, house string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentLetter{to, username, house})
	return nil
}

type fakeVerifier struct {
	identity *google.Identity
}

func (f *fakeVerifier) Verify(ctx context.Context, token string) (*google.Identity, error) {
	if f.identity == nil || token != "good" {
		return nil, google.ErrInvalidToken
	}
	return f.identity, nil
}

var errUpstream = errors.New("upstream down")
