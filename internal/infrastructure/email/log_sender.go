package email

import (
	"context"

	"go.uber.org/zap"
)

// LogSender implements Sender by logging messages instead of delivering
// them. Used in development when no SMTP host is configured.
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender creates a log-only sender
func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger.Named("email")}
}

var _ Sender = (*LogSender)(nil)

// Send logs the message
func (s *LogSender) Send(ctx context.Context, msg Message) error {
	s.logger.Info("outbound email",
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("text", msg.Text),
	)
	return nil
}
