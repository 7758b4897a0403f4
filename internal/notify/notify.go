// Package notify tells the site owner about new contact submissions.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"

	"portfolio-api/internal/config"
	"portfolio-api/internal/logx"
	"portfolio-api/internal/model"
)

var notifyLogger = logx.GetScope("notify")

// Notifier delivers a notification for a stored contact submission.
type Notifier interface {
	NotifyContact(ctx context.Context, c *model.Contact) error
}

// Noop drops every notification. It is used when mail is not configured.
type Noop struct{}

func (Noop) NotifyContact(context.Context, *model.Contact) error { return nil }

// Mailer sends notifications over SMTP.
type Mailer struct {
	host string
	from string
	to   string
	opts []mail.Option
	now  func() time.Time
}

// Open returns a Mailer when cfg has mail settings and Noop otherwise.
func Open(cfg *config.Config) Notifier {
	if !cfg.MailEnabled() {
		notifyLogger.Info("email not configured, contact notifications disabled")
		return Noop{}
	}
	return NewMailer(cfg)
}

func NewMailer(cfg *config.Config) *Mailer {
	m := cfg.Mail
	opts := []mail.Option{
		mail.WithPort(m.Port),
		mail.WithTimeout(15 * time.Second),
	}
	if m.Secure {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPortPolicy(mail.TLSOpportunistic))
	}
	if m.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.Username),
			mail.WithPassword(m.Password))
	}
	from := m.From
	if from == "" {
		from = m.Username
	}
	return &Mailer{host: m.Host, from: from, to: m.To, opts: opts, now: time.Now}
}

// Message builds the mail for c without sending it.
func (m *Mailer) Message(c *model.Contact) (*mail.Msg, error) {
	email, err := Render(c, m.now())
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	if err := msg.To(m.to); err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}
	if err := msg.ReplyTo(c.Email); err != nil {
		return nil, fmt.Errorf("reply-to: %w", err)
	}
	msg.Subject(email.Subject)
	msg.SetDate()
	msg.SetBodyString(mail.TypeTextPlain, email.Text)
	msg.AddAlternativeString(mail.TypeTextHTML, email.HTML)
	return msg, nil
}

func (m *Mailer) NotifyContact(ctx context.Context, c *model.Contact) error {
	msg, err := m.Message(c)
	if err != nil {
		return err
	}
	client, err := mail.NewClient(m.host, m.opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send: %w", err)
	}
	notifyLogger.Sugar().Infof("contact email sent to %s", m.to)
	return nil
}
