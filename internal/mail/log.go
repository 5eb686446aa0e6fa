package mail

import (
	"context"
	"log/slog"

	"github.com/phrazzld/wallet-user-api/internal/domain"
	"github.com/phrazzld/wallet-user-api/internal/platform/logger"
)

// LogSender writes reset links to the log instead of sending mail.
// It is meant for local development only.
type LogSender struct {
	resetURL string
	logger   *slog.Logger
}

// Ensure LogSender implements Sender interface
var _ Sender = (*LogSender)(nil)

// NewLogSender creates a LogSender.
func NewLogSender(resetURL string, logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSender{
		resetURL: resetURL,
		logger:   logger.With(slog.String("component", "log_sender")),
	}
}

// SendPasswordReset implements Sender.SendPasswordReset
func (s *LogSender) SendPasswordReset(ctx context.Context, user *domain.User, token string) error {
	link, err := resetLink(s.resetURL, token)
	if err != nil {
		return err
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("password reset requested",
		slog.String("user_id", user.ID.String()),
		slog.String("reset_link", link))
	return nil
}
