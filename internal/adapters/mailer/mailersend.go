package mailer

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"pet-qr-tags/internal/platform/logger"

	"github.com/mailersend/mailersend-go"
)

type MailerSend struct {
	client *mailersend.Mailersend
	from   mailersend.From
	log    logger.Logger
}

func NewMailerSend(apiKey, fromName, fromEmail string, log logger.Logger) *MailerSend {
	if log == nil {
		log = logger.Nop()
	}
	return &MailerSend{
		client: mailersend.NewMailersend(apiKey),
		from:   mailersend.From{Name: fromName, Email: fromEmail},
		log:    log,
	}
}

func (m *MailerSend) SendVerificationCode(ctx context.Context, toEmail, toName, code string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	msg := m.client.Email.NewMessage()
	msg.SetFrom(m.from)
	msg.SetRecipients([]mailersend.Recipient{{Name: toName, Email: toEmail}})
	msg.SetSubject(verificationSubject)
	msg.SetText(verificationText(code))
	msg.SetHTML(verificationHTML(code))

	res, err := m.client.Email.Send(ctx, msg)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("mailersend error: status=%d body=%s", res.StatusCode, strings.TrimSpace(string(body)))
	}
	m.log.Debug("verification email sent", map[string]any{"message_id": res.Header.Get("X-Message-Id")})
	return nil
}
