package mailer

import "context"

// Service dispatches transactional mail. Implementations must respect the
// context deadline; a failed send is returned to the caller, never swallowed.
type Service interface {
	Send(ctx context.Context, e Email) error
}

type Email struct {
	From    string
	To      []string
	Subject string

	TextBody string
	HTMLBody string
}

func (e Email) Recipients() []string {
	out := make([]string, 0, len(e.To))
	out = append(out, e.To...)
	return out
}
