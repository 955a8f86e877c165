package mocks

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/Mohamed-Hany1211/Moktashef-back/internal/domain/valueobject/mails"
)

type MockMailSender struct {
	mu        sync.Mutex
	sentMails []mails.Payload
	fail      error
}

func NewMockMailSender() *MockMailSender {
	return &MockMailSender{}
}

func (m *MockMailSender) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = err
}

func (m *MockMailSender) SendMail(ctx context.Context, p mails.Payload) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}

	m.sentMails = append(m.sentMails, p)
	return nil
}

func (m *MockMailSender) GetSentMails() []mails.Payload {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]mails.Payload, len(m.sentMails))
	copy(out, m.sentMails)
	return out
}

func (m *MockMailSender) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sentMails = nil
}

func (m *MockMailSender) AssertMailSent(t *testing.T, to, subject string) mails.Payload {
	t.Helper()

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.sentMails {
		if p.To == to && p.Subject == subject {
			return p
		}
	}

	t.Errorf("expected mail to %s with subject %q, got %d mails", to, subject, len(m.sentMails))
	return mails.Payload{}
}

func (m *MockMailSender) AssertNoMailSent(t *testing.T, to string) {
	t.Helper()

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.sentMails {
		if p.To == to {
			t.Errorf("expected no mail to %s, got one with subject %q", to, p.Subject)
		}
	}
}

// AssertMailContains checks the HTML body of the last mail sent to an address.
func (m *MockMailSender) AssertMailContains(t *testing.T, to, substr string) {
	t.Helper()

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := len(m.sentMails) - 1; i >= 0; i-- {
		if m.sentMails[i].To != to {
			continue
		}
		if !strings.Contains(m.sentMails[i].HTML, substr) {
			t.Errorf("expected mail to %s to contain %q", to, substr)
		}
		return
	}

	t.Errorf("no mail sent to %s", to)
}
