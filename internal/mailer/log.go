package mailer

import (
	"context"

	"github.com/rs/zerolog/log"
)

// LogMailer writes mail to the application log instead of delivering it.
// Used when no SMTP host is configured, which Validate only permits outside
// production.
type LogMailer struct{}

func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

func (LogMailer) Send(ctx context.Context, e Email) error {
	log.Info().
		Strs("to", e.To).
		Str("subject", e.Subject).
		Str("body", e.TextBody).
		Msg("mail (log only, no SMTP configured)")
	return nil
}
