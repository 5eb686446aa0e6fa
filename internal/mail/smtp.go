package mail

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/wallet-user-api/internal/config"
	"github.com/phrazzld/wallet-user-api/internal/domain"
	"github.com/phrazzld/wallet-user-api/internal/platform/logger"
	gomail "github.com/wneessen/go-mail"
)

// deliverer is the part of *gomail.Client the sender uses.
type deliverer interface {
	DialAndSendWithContext(ctx context.Context, messages ...*gomail.Msg) error
}

// SMTPSender sends mail through an SMTP relay.
type SMTPSender struct {
	client        deliverer
	from          string
	resetURL      string
	resetLifetime int
	logger        *slog.Logger
}

// Ensure SMTPSender implements Sender interface
var _ Sender = (*SMTPSender)(nil)

// NewSMTPSender creates an SMTPSender from cfg. Credentials are optional; when a
// username is set PLAIN auth is used. TLS is opportunistic.
func NewSMTPSender(cfg config.MailConfig, resetLifetimeMinutes int, logger *slog.Logger) (*SMTPSender, error) {
	if logger == nil {
		logger = slog.Default()
	}

	opts := []gomail.Option{
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if cfg.Port > 0 {
		opts = append(opts, gomail.WithPort(cfg.Port))
	}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}

	return &SMTPSender{
		client:        client,
		from:          cfg.From,
		resetURL:      cfg.ResetURL,
		resetLifetime: resetLifetimeMinutes,
		logger:        logger.With(slog.String("component", "smtp_sender")),
	}, nil
}

// SendPasswordReset implements Sender.SendPasswordReset
func (s *SMTPSender) SendPasswordReset(ctx context.Context, user *domain.User, token string) error {
	msg, err := s.buildResetMessage(user, token)
	if err != nil {
		return err
	}

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send password reset mail: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("password reset mail sent",
		slog.String("user_id", user.ID.String()))
	return nil
}

func (s *SMTPSender) buildResetMessage(user *domain.User, token string) (*gomail.Msg, error) {
	link, err := resetLink(s.resetURL, token)
	if err != nil {
		return nil, err
	}
	body, err := renderReset(user, link, s.resetLifetime)
	if err != nil {
		return nil, err
	}

	msg := gomail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(user.Email); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(resetSubject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	return msg, nil
}
