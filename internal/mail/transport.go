package mail

import (
	"errors"

	"gopkg.in/gomail.v2"
)

// Sender delivers a composed message.
type Sender interface {
	Send(msg Message) error
}

// ErrNotConfigured is returned before any connection attempt when the SMTP
// settings are incomplete.
var ErrNotConfigured = errors.New("mail: smtp not configured")

// TransportError wraps a failure during connect, negotiate, authenticate or
// transmit. The cause is for logging only and never shown to clients.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "mail: send failed: " + e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

// SMTPTransport sends mail over authenticated SMTP, one connection per call,
// no pooling, no retries. Negotiation policy branches on port: 465 uses
// implicit TLS, every other port opens plain and upgrades via STARTTLS
// before authenticating.
type SMTPTransport struct {
	host     string
	port     int
	user     string
	password string
}

// NewSMTPTransport creates an SMTPTransport. Missing settings are reported
// by Send as ErrNotConfigured rather than at construction time.
func NewSMTPTransport(host string, port int, user, password string) *SMTPTransport {
	return &SMTPTransport{host: host, port: port, user: user, password: password}
}

// Send delivers msg as a multipart/alternative envelope with the plain body
// always present and the HTML body attached when available. The dialer owns
// the connection lifecycle, releasing it on every exit path, and bounds the
// connection attempt with its own dial timeout.
func (t *SMTPTransport) Send(msg Message) error {
	if t.host == "" || t.port == 0 || t.user == "" || t.password == "" {
		return ErrNotConfigured
	}

	m := gomail.NewMessage()
	m.SetHeader("From", msg.From)
	m.SetHeader("To", msg.To)
	if msg.ReplyTo != "" {
		m.SetHeader("Reply-To", msg.ReplyTo)
	}
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.TextBody)
	if msg.HTMLBody != "" {
		m.AddAlternative("text/html", msg.HTMLBody)
	}

	d := gomail.NewDialer(t.host, t.port, t.user, t.password)
	d.SSL = t.port == 465

	if err := d.DialAndSend(m); err != nil {
		return &TransportError{Err: err}
	}
	return nil
}
