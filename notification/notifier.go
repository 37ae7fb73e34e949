package notification

import (
	"context"
	"fmt"

	"livestock-app/config"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Message adalah notifikasi yang dikirim setelah transaksi berhasil disimpan
type Message struct {
	Subject string
	Body    string
}

type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, Message) error { return nil }

type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type MailNotifier struct {
	dialer Dialer
	from   string
	to     []string
	log    *zap.Logger
}

func NewMailNotifier(dialer Dialer, from string, to []string, log *zap.Logger) *MailNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &MailNotifier{dialer: dialer, from: from, to: to, log: log}
}

func (n *MailNotifier) Notify(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(n.to) == 0 {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", n.to...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)

	if err := n.dialer.DialAndSend(m); err != nil {
		n.log.Warn("send notification failed", zap.String("subject", msg.Subject), zap.Error(err))
		return fmt.Errorf("send mail: %w", err)
	}
	n.log.Info("notification sent", zap.String("subject", msg.Subject), zap.Strings("to", n.to))
	return nil
}

// FromConfig memakai SMTP bila SMTP_HOST diisi, selain itu notifikasi diabaikan
func FromConfig(log *zap.Logger) Notifier {
	if config.SMTPHost == "" {
		return NopNotifier{}
	}
	dialer := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPUser, config.SMTPPassword)
	from := config.SMTPUser
	if from == "" {
		from = config.NotifyEmail
	}
	return NewMailNotifier(dialer, from, []string{config.NotifyEmail}, log)
}
