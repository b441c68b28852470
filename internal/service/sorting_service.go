package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/vedran77/sortinghat/internal/llm"
	"github.com/vedran77/sortinghat/internal/mailer"
	"github.com/vedran77/sortinghat/internal/repository"
)

var ErrNoHouse = errors.New("user has not been sorted yet")

// EmailError reports that the house was stored but the welcome letter could
// not be sent. The result is still valid.
type EmailError struct {
	Result *SortResult
	Err    error
}

func (e *EmailError) Error() string {
	return fmt.Sprintf("house %s assigned but welcome email failed: %v", e.Result.House, e.Err)
}

func (e *EmailError) Unwrap() error { return e.Err }

type SortResult struct {
	House       string `json:"house"`
	Explanation string `json:"explanation"`
	EmailSent   bool   `json:"-"`
}

type SortingService struct {
	userRepo repository.UserRepository
	llm      llm.Client
	mailer   mailer.Mailer
	logger   *slog.Logger
	now      func() time.Time
}

func NewSortingService(userRepo repository.UserRepository, client llm.Client, m mailer.Mailer, logger *slog.Logger) *SortingService {
	return &SortingService{
		userRepo: userRepo,
		llm:      client,
		mailer:   m,
		logger:   logger.With("component", "sorting"),
		now:      time.Now,
	}
}

// Sort asks the model for a house, stores it on the user and sends the
// welcome letter. Verdict validation failures are returned as the llm
// package's sentinel errors. When only the email step fails an *EmailError
// carrying the result is returned.
func (s *SortingService) Sort(ctx context.Context, userID uuid.UUID, answers []string) (*SortResult, error) {
	content, err := s.llm.Complete(ctx, llm.SystemPrompt, llm.UserPrompt(answers))
	if err != nil {
		if errors.Is(err, llm.ErrEmptyCompletion) {
			return nil, llm.ErrInvalidResponse
		}
		return nil, fmt.Errorf("requesting verdict: %w", err)
	}

	verdict, err := llm.ParseVerdict(content)
	if err != nil {
		s.logger.WarnContext(ctx, "rejected llm verdict", "error", err, "content", content)
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := s.userRepo.UpdateHouse(ctx, user.ID, verdict.House); err != nil {
		return nil, fmt.Errorf("saving house: %w", err)
	}
	s.logger.InfoContext(ctx, "house assigned", "user_id", user.ID, "house", verdict.House)

	result := &SortResult{House: verdict.House, Explanation: verdict.Explanation}

	if err := s.sendWelcome(ctx, user.ID, user.Email, user.Username, verdict.House); err != nil {
		return result, &EmailError{Result: result, Err: err}
	}
	result.EmailSent = true
	return result, nil
}

// ResendWelcome retries the email step alone. It does nothing when the
// letter for the current house was already delivered.
func (s *SortingService) ResendWelcome(ctx context.Context, userID uuid.UUID) (sent bool, err error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, ErrUserNotFound
	}
	if user.House == nil || *user.House == "" {
		return false, ErrNoHouse
	}
	if user.WelcomeEmailSentAt != nil {
		return false, nil
	}

	if err := s.sendWelcome(ctx, user.ID, user.Email, user.Username, *user.House); err != nil {
		return false, err
	}
	return true, nil
}

func (s *SortingService) sendWelcome(ctx context.Context, userID uuid.UUID, email, username, house string) error {
	if err := s.mailer.SendWelcome(ctx, email, username, house); err != nil {
		s.logger.ErrorContext(ctx, "welcome email failed", "user_id", userID, "error", err)
		return err
	}
	// The letter is out; a failed marker only means a later resend may
	// deliver it twice.
	if err := s.userRepo.MarkWelcomeEmailSent(ctx, userID, s.now()); err != nil {
		s.logger.ErrorContext(ctx, "recording welcome email failed", "user_id", userID, "error", err)
	}
	return nil
}
