package mailer

import (
	"context"
	"sync"
)

// NewMock creates a recording mailer for tests.
func NewMock() *Mock {
	return &Mock{}
}

// Mock records sent mail for tests and returns Err if set.
type Mock struct {
	mu   sync.Mutex
	Sent []Email
	Err  error
}

func (m *Mock) Send(ctx context.Context, e Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, e)
	return nil
}

// SentCount returns the number of recorded sends.
func (m *Mock) SentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent)
}

// LastSent returns the most recently recorded email, or a zero Email.
func (m *Mock) LastSent() Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return Email{}
	}
	return m.Sent[len(m.Sent)-1]
}
