// Package mail delivers the one-time recovery passcode to users. The
// service layer depends on the Mailer interface; the production
// implementation sends through the Resend API.
package mail

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"

	"github.com/irabeny89/ebbs2022-sub000/internal/logging"
)

// Mailer dispatches a plaintext passcode to a recipient. The passcode is
// never persisted server-side, so the email is the only place it exists in
// the clear.
type Mailer interface {
	SendPasscode(ctx context.Context, toEmail, passcode string) error
}

type resendMailer struct {
	client *resend.Client
	from   string
}

// NewResendMailer builds a Mailer backed by Resend. from must be an address
// under a domain verified in the Resend dashboard.
func NewResendMailer(apiKey, from string) Mailer {
	return &resendMailer{client: resend.NewClient(apiKey), from: from}
}

func (m *resendMailer) SendPasscode(ctx context.Context, toEmail, passcode string) error {
	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="margin:0;padding:32px;background-color:#f5f5f4;font-family:Arial,Helvetica,sans-serif;">
  <table width="100%%" cellpadding="0" cellspacing="0">
    <tr>
      <td align="center">
        <table width="440" cellpadding="0" cellspacing="0" style="background-color:#ffffff;border-radius:8px;padding:32px;">
          <tr>
            <td>
              <h1 style="color:#1c1917;font-size:22px;margin:0 0 16px 0;">EBBS</h1>
              <p style="color:#44403c;font-size:15px;line-height:1.6;margin:0 0 20px 0;">
                Use the passcode below to continue. It expires in a few minutes
                and works exactly once.
              </p>
              <p style="background-color:#f5f5f4;border-radius:6px;padding:14px 20px;color:#1c1917;font-size:20px;letter-spacing:2px;font-family:monospace;margin:0 0 20px 0;">%s</p>
              <p style="color:#78716c;font-size:13px;line-height:1.6;margin:0;">
                If you didn't request this, you can safely ignore this email.
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`, passcode)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("EBBS <%s>", m.from),
		To:      []string{toEmail},
		Subject: "Your EBBS passcode",
		Html:    html,
	}

	if _, err := m.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send passcode email: %w", err)
	}

	return nil
}

type logMailer struct {
	logger logging.Logger
}

// NewLogMailer writes the passcode to the log instead of sending mail.
// Development only: used when no Resend API key is configured.
func NewLogMailer(logger logging.Logger) Mailer {
	return &logMailer{logger: logger.With("module", "mail")}
}

func (m *logMailer) SendPasscode(ctx context.Context, toEmail, passcode string) error {
	m.logger.Info(ctx, "passcode issued (mail delivery disabled)", "to", toEmail, "passcode", passcode)
	return nil
}
