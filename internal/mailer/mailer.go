package mailer

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"
)

// Sender delivers one email per call and reports success or failure for it.
type Sender interface {
	Send(to, subject, htmlBody string) error
}

// Client sends email over SMTP.
type Client struct {
	dialer *gomail.Dialer
	from   string
}

// New creates an SMTP mail client. When host is empty the client is left
// unconfigured and every send fails with an error the caller can log.
func New(host string, port int, user, pass, from string) *Client {
	c := &Client{from: from}
	if host == "" {
		return c
	}
	c.dialer = gomail.NewDialer(host, port, user, pass)
	return c
}

// Send delivers a single HTML email to one recipient.
func (c *Client) Send(to, subject, htmlBody string) error {
	if c.dialer == nil {
		return fmt.Errorf("mailer not configured, dropping email to %s", to)
	}
	if to == "" {
		return fmt.Errorf("recipient address missing")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", c.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := c.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}
