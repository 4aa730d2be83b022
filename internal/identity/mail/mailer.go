// Package mail defines the outbound email surface of the identity service.
// Transport and templating live elsewhere; the service only ever asks for a
// verification email to be sent and treats failures as non-fatal.
package mail

import (
	"context"
	"fmt"
	"log/slog"
)

// Mailer dispatches verification emails. Implementations may enqueue or
// send inline, but must not block longer than the send itself.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, to, displayName, token string) error
}

// LogMailer writes the verification link to the log instead of sending
// anything. It is the default wiring for dev environments and tests; real
// deployments plug in an SMTP- or API-backed implementation.
type LogMailer struct {
	Logger  *slog.Logger
	BaseURL string // e.g. "http://localhost:8080"
}

func (m *LogMailer) SendVerificationEmail(ctx context.Context, to, displayName, token string) error {
	link := fmt.Sprintf("%s/v1/auth/verify?token=%s", m.BaseURL, token)
	m.Logger.Info("verification email",
		"to", to,
		"name", displayName,
		"link", link,
	)
	return nil
}
