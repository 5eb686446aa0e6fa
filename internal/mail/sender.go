package mail

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"text/template"

	"github.com/phrazzld/wallet-user-api/internal/config"
	"github.com/phrazzld/wallet-user-api/internal/domain"
)

// Sender delivers password reset tokens to users.
type Sender interface {
	SendPasswordReset(ctx context.Context, user *domain.User, token string) error
}

const resetSubject = "Reset your password"

var resetBody = template.Must(template.New("reset").Parse(`Hello {{.Name}},

We received a request to reset the password for {{.Email}}.
Use the link below to choose a new password. It expires in {{.Lifetime}} minutes.

{{.Link}}

If you did not ask for this, you can ignore this message.
`))

type resetData struct {
	Name     string
	Email    string
	Link     string
	Lifetime int
}

// resetLink appends the token to base as the "token" query parameter.
func resetLink(base, token string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid reset url: %w", err)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func renderReset(user *domain.User, link string, lifetimeMinutes int) (string, error) {
	var buf bytes.Buffer
	err := resetBody.Execute(&buf, resetData{
		Name:     user.Name,
		Email:    user.Email,
		Link:     link,
		Lifetime: lifetimeMinutes,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render reset mail: %w", err)
	}
	return buf.String(), nil
}

// New builds the Sender selected by cfg.Driver.
func New(cfg config.MailConfig, resetLifetimeMinutes int, logger *slog.Logger) (Sender, error) {
	switch cfg.Driver {
	case "smtp":
		return NewSMTPSender(cfg, resetLifetimeMinutes, logger)
	case "log", "":
		return NewLogSender(cfg.ResetURL, logger), nil
	default:
		return nil, fmt.Errorf("unknown mail driver %q", cfg.Driver)
	}
}
