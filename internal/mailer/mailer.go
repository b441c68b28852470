// Package mailer delivers the acceptance letter sent after a student is
// sorted.
package mailer

import (
	"context"
	"fmt"
	"log/slog"
)

// Mailer sends the welcome letter for a freshly sorted student.
type Mailer interface {
	SendWelcome(ctx context.Context, to, username, house string) error
}

const welcomeSubject = "Acceptance Letter to Hogwarts School of Witchcraft and Wizardry!"

func welcomeBody(username, house string) string {
	return fmt.Sprintf(`Dear %s,

We are pleased to inform you that you have been officially sorted into %s at Hogwarts School of Witchcraft and Wizardry.

Students shall be required to embrace the values of their house and uphold the traditions of Hogwarts as they embark on their magical journey.

Please ensure that the utmost attention is given to the principles of your house, for they will guide you through your years at Hogwarts.

We very much look forward to welcoming you as part of the new generation of Hogwarts' heritage.

Draco Dormiens Nunquam Titillandus,

Prof. McGonagall`, username, house)
}

// LogMailer writes letters to the log instead of sending them. Used when no
// SMTP relay is configured.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger.With("component", "mailer")}
}

func (m *LogMailer) SendWelcome(ctx context.Context, to, username, house string) error {
	m.logger.InfoContext(ctx, "welcome letter not sent, smtp disabled",
		"to", to, "username", username, "house", house)
	return nil
}
