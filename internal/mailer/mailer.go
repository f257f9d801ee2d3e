// Package mailer emails the screening summary to the HR reviewer.
// Notification is best-effort: the screening result never depends on it.
package mailer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/mkandie/resume-screener/internal/models"
	"github.com/mkandie/resume-screener/internal/ranking"
)

// Config holds SMTP settings. Empty credentials disable sending entirely.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	To       string
	SheetURL string
}

// Mailer sends completion summaries over SMTP. A Mailer built without
// credentials is a no-op that only logs the skip.
type Mailer struct {
	client *mail.Client
	cfg    Config
	logger *zap.Logger
}

// New creates a mailer. When credentials are not configured the returned
// mailer silently skips every send.
func New(cfg Config, logger *zap.Logger) (*Mailer, error) {
	if cfg.Username == "" || cfg.Password == "" || cfg.To == "" {
		return &Mailer{cfg: cfg, logger: logger}, nil
	}

	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
	)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	return &Mailer{client: client, cfg: cfg, logger: logger}, nil
}

// SendResults emails the per-recommendation counts and a link to the
// sheet. Callers treat a failure here as non-fatal.
func (m *Mailer) SendResults(ctx context.Context, role string, outcomes []models.ScoringOutcome) error {
	if m.client == nil {
		m.logger.Info("email credentials not configured, skipping notification")
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.From(m.cfg.Username); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(m.cfg.To); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject(fmt.Sprintf("Resume Screening Complete - %d Candidates Analyzed (%s)", len(outcomes), role))
	msg.SetBodyString(mail.TypeTextPlain, buildBody(role, m.cfg.SheetURL, outcomes))

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send results email: %w", err)
	}

	m.logger.Info("results email sent", zap.String("role", role), zap.String("to", m.cfg.To))
	return nil
}

func buildBody(role, sheetURL string, outcomes []models.ScoringOutcome) string {
	summary := ranking.Summarize(outcomes)

	var b strings.Builder
	fmt.Fprintf(&b, "Hi HR Team,\n\n")
	fmt.Fprintf(&b, "Resume screening has completed successfully for role: %s\n\n", role)
	fmt.Fprintf(&b, "SUMMARY\n")
	fmt.Fprintf(&b, "Total Candidates: %d\n\n", len(outcomes))
	fmt.Fprintf(&b, "Recommendations:\n")
	fmt.Fprintf(&b, "  Strong Yes: %d\n", summary.StrongYes)
	fmt.Fprintf(&b, "  Yes:        %d\n", summary.Yes)
	fmt.Fprintf(&b, "  Maybe:      %d\n", summary.Maybe)
	fmt.Fprintf(&b, "  No:         %d\n\n", summary.No)
	fmt.Fprintf(&b, "NEXT STEPS\n")
	fmt.Fprintf(&b, "Review detailed results in the sheet:\n  %s\n\n", sheetURL)
	fmt.Fprintf(&b, "All candidates are ranked by score - check the top 5 first.\n\n")
	fmt.Fprintf(&b, "Generated at: %s\n", time.Now().Format(time.RFC1123))

	return b.String()
}
