package mailer

import (
	"context"

	"pet-qr-tags/internal/platform/logger"
)

// Log no envía nada: deja el código en el log. Solo para desarrollo.
type Log struct {
	log logger.Logger
}

func NewLog(log logger.Logger) *Log {
	if log == nil {
		log = logger.Nop()
	}
	return &Log{log: log}
}

func (l *Log) SendVerificationCode(ctx context.Context, toEmail, toName, code string) error {
	l.log.Info("verification code (dev mailer)", map[string]any{"to": toEmail, "code": code})
	return nil
}
