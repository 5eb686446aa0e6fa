package mocks

import (
	"context"

	"github.com/phrazzld/wallet-user-api/internal/domain"
	"github.com/phrazzld/wallet-user-api/internal/mail"
	"github.com/stretchr/testify/mock"
)

// MailSender is a mock of mail.Sender for use with testify/mock
type MailSender struct {
	mock.Mock
}

var _ mail.Sender = (*MailSender)(nil)

// SendPasswordReset is a mock implementation of mail.Sender.SendPasswordReset
func (m *MailSender) SendPasswordReset(ctx context.Context, user *domain.User, token string) error {
	args := m.Called(ctx, user, token)
	return args.Error(0)
}
