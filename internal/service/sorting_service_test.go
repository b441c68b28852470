package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vedran77/sortinghat/internal/domain"
	"github.com/vedran77/sortinghat/internal/llm"
	"github.com/vedran77/sortinghat/internal/logger"
	"github.com/vedran77/sortinghat/internal/repository/memory"
)

type sortingFixture struct {
	svc    *SortingService
	users  *memory.UserRepo
	llm    *fakeLLM
	mailer *fakeMailer
	user   *domain.User
}

func newSortingFixture(t *testing.T, content string) *sortingFixture {
	t.Helper()
	users := memory.NewUserRepo()
	user := &domain.User{ID: uuid.New(), Username: "harry", Email: "harry@hogwarts.example", CreatedAt: time.Now()}
	require.NoError(t, users.Create(context.Background(), user))

	f := &sortingFixture{
		users:  users,
		llm:    &fakeLLM{content: content},
		mailer: &fakeMailer{},
		user:   user,
	}
	f.svc = NewSortingService(users, f.llm, f.mailer, logger.Discard())
	return f
}

func (f *sortingFixture) reload(t *testing.T) *domain.User {
	t.Helper()
	u, err := f.users.GetByID(context.Background(), f.user.ID)
	require.NoError(t, err)
	return u
}

func TestSortingService_Sort(t *testing.T) {
	f := newSortingFixture(t, `{"house":"gryffindor","explanation":"Brave heart."}`)

	res, err := f.svc.Sort(context.Background(), f.user.ID, []string{"brave", "loyal"})
	require.NoError(t, err)
	assert.Equal(t, "Gryffindor", res.House)
	assert.Equal(t, "Brave heart.", res.Explanation)
	assert.True(t, res.EmailSent)

	assert.Equal(t, llm.SystemPrompt, f.llm.system)
	assert.Contains(t, f.llm.user, "brave, loyal")
	assert.Equal(t, []sentLetter{{"harry@hogwarts.example", "harry", "Gryffindor"}}, f.mailer.sent)

	u := f.reload(t)
	require.NotNil(t, u.House)
	assert.Equal(t, "Gryffindor", *u.House)
	assert.NotNil(t, u.WelcomeEmailSentAt)
}

func TestSortingService_InvalidVerdicts(t *testing.T) {
	tests := []struct {
		name    string
		content string
		llmErr  error
		wantErr error
	}{
		{name: "numeric house", content: `{"house":123,"explanation":"x"}`, wantErr: llm.ErrHouseNotString},
		{name: "not json", content: `Gryffindor`, wantErr: llm.ErrInvalidResponse},
		{name: "unknown house", content: `{"house":"Durmstrang"}`, wantErr: llm.ErrUnknownHouse},
		{name: "empty completion", llmErr: llm.ErrEmptyCompletion, wantErr: llm.ErrInvalidResponse},
		{name: "transport failure", llmErr: errUpstream, wantErr: errUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSortingFixture(t, tt.content)
			f.llm.err = tt.llmErr

			_, err := f.svc.Sort(context.Background(), f.user.ID, []string{"a"})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, f.reload(t).House, "house must not change")
			assert.Empty(t, f.mailer.sent)
		})
	}
}

func TestSortingService_UnknownUser(t *testing.T) {
	f := newSortingFixture(t, `{"house":"Ravenclaw","explanation":"x"}`)

	_, err := f.svc.Sort(context.Background(), uuid.New(), []string{"a"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSortingService_EmailFailureKeepsHouse(t *testing.T) {
	f := newSortingFixture(t, `{"house":"Ravenclaw","explanation":"Wit beyond measure."}`)
	smtpErr := errors.New("smtp down")
	f.mailer.err = smtpErr

	res, err := f.svc.Sort(context.Background(), f.user.ID, []string{"books"})

	var emailErr *EmailError
	require.ErrorAs(t, err, &emailErr)
	assert.ErrorIs(t, err, smtpErr)
	assert.Equal(t, "Ravenclaw", emailErr.Result.House)
	assert.Equal(t, "Ravenclaw", res.House)
	assert.False(t, res.EmailSent)

	u := f.reload(t)
	require.NotNil(t, u.House)
	assert.Equal(t, "Ravenclaw", *u.House)
	assert.Nil(t, u.WelcomeEmailSentAt)
}

func TestSortingService_ResendWelcome(t *testing.T) {
	f := newSortingFixture(t, `{"house":"Hufflepuff","explanation":"Loyal."}`)
	ctx := context.Background()

	_, err := f.svc.ResendWelcome(ctx, f.user.ID)
	assert.ErrorIs(t, err, ErrNoHouse)

	f.mailer.err = errors.New("smtp down")
	_, err = f.svc.Sort(ctx, f.user.ID, []string{"kind"})
	require.Error(t, err)

	f.mailer.err = nil
	sent, err := f.svc.ResendWelcome(ctx, f.user.ID)
	require.NoError(t, err)
	assert.True(t, sent)
	assert.Len(t, f.mailer.sent, 1)

	sent, err = f.svc.ResendWelcome(ctx, f.user.ID)
	require.NoError(t, err)
	assert.False(t, sent, "second resend is a no-op")
	assert.Len(t, f.mailer.sent, 1)

	_, err = f.svc.ResendWelcome(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSortingService_ResortClearsMarker(t *testing.T) {
	f := newSortingFixture(t, `{"house":"Slytherin","explanation":"Cunning."}`)
	ctx := context.Background()

	_, err := f.svc.Sort(ctx, f.user.ID, []string{"ambition"})
	require.NoError(t, err)

	f.llm.content = `{"house":"Gryffindor","explanation":"Brave."}`
	f.mailer.err = errors.New("smtp down")
	_, err = f.svc.Sort(ctx, f.user.ID, []string{"courage"})
	require.Error(t, err)

	assert.Nil(t, f.reload(t).WelcomeEmailSentAt)
}
