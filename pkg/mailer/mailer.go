package mailer

import (
	"fmt"
	"sync"

	gomail "gopkg.in/gomail.v2"
)

// Message is a single outbound email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers a single message.
type Sender interface {
	Send(msg Message) error
}

// DeliveryResult is the settled outcome of one delivery attempt. Err is nil
// on success.
type DeliveryResult struct {
	Recipient string
	Err       error
}

// Config holds SMTP connection details.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPSender is a gomail-backed Sender.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPSender creates a new SMTPSender.
func NewSMTPSender(cfg Config) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// Send dials the SMTP server and delivers the message.
func (s *SMTPSender) Send(msg Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", msg.To, err)
	}
	return nil
}

// Broadcast attempts every message concurrently and waits for all attempts to
// settle. Each message gets exactly one attempt; failures never abort the
// remaining deliveries. Results are returned in submission order.
func Broadcast(sender Sender, msgs []Message) []DeliveryResult {
	results := make([]DeliveryResult, len(msgs))

	var wg sync.WaitGroup
	for i, msg := range msgs {
		wg.Add(1)
		go func(i int, msg Message) {
			defer wg.Done()
			results[i] = DeliveryResult{Recipient: msg.To, Err: sender.Send(msg)}
		}(i, msg)
	}
	wg.Wait()

	return results
}
