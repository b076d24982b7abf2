package notify

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog"
)

// SMTPConfig carries mail relay settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTP mails the alert to the guardian address on the alert itself.
type SMTP struct {
	cfg    SMTPConfig
	logger *zerolog.Logger
}

func NewSMTP(cfg SMTPConfig, logger *zerolog.Logger) *SMTP {
	return &SMTP{cfg: cfg, logger: logger}
}

func (s *SMTP) Notify(ctx context.Context, alert Alert) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(alert.GuardianContact) == "" {
		return errors.New("alert has no guardian address")
	}

	subject := fmt.Sprintf("Safety alert for %s (%s severity)", displayName(alert), alert.Severity)
	body := renderMailBody(alert)

	msg := strings.Join([]string{
		"From: " + s.cfg.From,
		"To: " + alert.GuardianContact,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{alert.GuardianContact}, []byte(msg)); err != nil {
		return fmt.Errorf("send alert mail: %w", err)
	}

	s.logger.Info().
		Str("request_id", alert.RequestID).
		Msg("guardian alert mailed")
	return nil
}

func displayName(alert Alert) string {
	if alert.RequesterName != "" {
		return alert.RequesterName
	}
	return "your child"
}

// renderMailBody summarizes the verdict without quoting the message.
func renderMailBody(alert Alert) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A message sent to %s was flagged by the safety engine.\r\n\r\n", displayName(alert))
	fmt.Fprintf(&b, "Risk score: %d/100\r\n", alert.Score)
	fmt.Fprintf(&b, "Severity:   %s\r\n", alert.Severity)
	if len(alert.Labels) > 0 {
		fmt.Fprintf(&b, "Categories: %s\r\n", strings.Join(alert.Labels, ", "))
	}
	fmt.Fprintf(&b, "Reference:  %s\r\n\r\n", alert.RequestID)
	b.WriteString("The message text is not included in this alert. ")
	b.WriteString("Please check in with your child and review the conversation together.\r\n")
	return b.String()
}
