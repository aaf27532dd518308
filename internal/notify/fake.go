package notify

import (
	"context"
	"sync"
)

var _ Mailer = (*FakeMailer)(nil)

// SentMail records a single message delivered through FakeMailer.
type SentMail struct {
	To      string
	Subject string
	Body    string
}

// FakeMailer is an in-memory Mailer for tests.
type FakeMailer struct {
	mu   sync.Mutex
	Sent []SentMail

	// Err, when set, is returned by Send without recording the message.
	Err error
}

func (f *FakeMailer) Send(_ context.Context, to, subject, body string) error {
	if f.Err != nil {
		return f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Sent = append(f.Sent, SentMail{To: to, Subject: subject, Body: body})
	return nil
}
