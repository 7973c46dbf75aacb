// Package mail provides outbound email dispatch and the message templates
// used by the reminder engine.
package mail

import (
	gomail "github.com/wneessen/go-mail"

	"fundwerk/internal/config"
	"fundwerk/internal/logger"
)

// Message is a fully rendered outbound email.
type Message struct {
	To      []string
	Subject string
	Body    string
}

// Mailer sends rendered messages. Implementations do not retry; a failed
// send surfaces as an error exactly once.
type Mailer interface {
	Send(msg Message) error
}

// SMTPMailer delivers messages over SMTP.
type SMTPMailer struct {
	client *gomail.Client
	from   string
}

// NewSMTPMailer creates an SMTP mailer from the application configuration.
func NewSMTPMailer(cfg *config.Config) (*SMTPMailer, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.SMTPPort),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if cfg.SMTPUser != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.SMTPUser),
			gomail.WithPassword(cfg.SMTPPass),
		)
	}

	client, err := gomail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, err
	}
	return &SMTPMailer{client: client, from: cfg.MailFrom}, nil
}

// Send delivers a single message.
func (m *SMTPMailer) Send(msg Message) error {
	mm := gomail.NewMsg()
	if err := mm.From(m.from); err != nil {
		return err
	}
	if err := mm.To(msg.To...); err != nil {
		return err
	}
	mm.Subject(msg.Subject)
	mm.SetBodyString(gomail.TypeTextPlain, msg.Body)
	return m.client.DialAndSend(mm)
}

// LogMailer writes messages to the application log instead of sending them.
// Used when no SMTP host is configured, e.g. in local development.
type LogMailer struct{}

// Send logs the message and reports success.
func (LogMailer) Send(msg Message) error {
	logger.Get().Infow("mail (log only)",
		"to", msg.To,
		"subject", msg.Subject,
		"body", msg.Body,
	)
	return nil
}
