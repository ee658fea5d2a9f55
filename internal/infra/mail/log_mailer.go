package mail

import (
	"context"
	"log/slog"

	"smarthr/internal/domain/service"
)

// LogMailer records messages instead of sending them. Used when mail is disabled.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

var _ service.Mailer = (*LogMailer)(nil)

func (m *LogMailer) Send(ctx context.Context, msg service.MailMessage) error {
	m.logger.InfoContext(ctx, "mail delivery disabled, message logged",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.Int("bodyLength", len(msg.Body)),
	)

	return nil
}
