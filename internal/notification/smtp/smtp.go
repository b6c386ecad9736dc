// Package smtp delivers confirmation emails through an SMTP relay using
// STARTTLS and PLAIN auth when the server offers them.
package smtp

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/mail"
	"net/smtp"
	"net/textproto"
	"sort"
	"strconv"
	"strings"
	"time"

	"examreg/internal/notification"
	"examreg/internal/platform/config"
)

// Dialer abstracts net.Dialer so tests can hand back an in-memory conn.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

type Option func(*Mailer)

// WithTLSConfig overrides the STARTTLS configuration. A nil config disables STARTTLS.
func WithTLSConfig(cfg *tls.Config) Option {
	return func(m *Mailer) {
		m.tlsConfig = cfg
	}
}

func WithDialer(d Dialer) Option {
	return func(m *Mailer) {
		if d != nil {
			m.dialer = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Mailer) {
		if now != nil {
			m.now = now
		}
	}
}

// WithHelloName sets the EHLO identity.
func WithHelloName(name string) Option {
	return func(m *Mailer) {
		if name = strings.TrimSpace(name); name != "" {
			m.helloName = name
		}
	}
}

// Mailer implements notification.Mailer.
type Mailer struct {
	host      string
	port      int
	from      string
	auth      smtp.Auth
	tlsConfig *tls.Config
	dialer    Dialer
	now       func() time.Time
	helloName string
}

var _ notification.Mailer = (*Mailer)(nil)

func New(cfg config.SMTPConfig, opts ...Option) (*Mailer, error) {
	if strings.TrimSpace(cfg.Host) == "" {
		return nil, errors.New("smtp: host is required")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("smtp: invalid port %d", cfg.Port)
	}
	if strings.TrimSpace(cfg.From) == "" {
		return nil, errors.New("smtp: from address is required")
	}

	m := &Mailer{
		host:      cfg.Host,
		port:      cfg.Port,
		from:      strings.TrimSpace(cfg.From),
		dialer:    &net.Dialer{Timeout: 30 * time.Second},
		now:       time.Now,
		helloName: "localhost",
		tlsConfig: &tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12},
	}
	if cfg.Username != "" {
		m.auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

func (m *Mailer) Send(ctx context.Context, msg *notification.Message) error {
	if msg == nil {
		return errors.New("smtp: message is required")
	}
	from := strings.TrimSpace(msg.From)
	if from == "" {
		from = m.from
	}
	envelopeFrom, err := envelopeAddress(from)
	if err != nil {
		return fmt.Errorf("smtp: invalid from address: %w", err)
	}
	rcpt, err := envelopeAddress(msg.To)
	if err != nil {
		return fmt.Errorf("smtp: invalid recipient: %w", err)
	}

	return m.deliver(ctx, envelopeFrom, rcpt, m.buildMessage(msg, from))
}

func (m *Mailer) deliver(ctx context.Context, from, rcpt string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	conn, err := m.dialer.DialContext(ctx, "tcp", net.JoinHostPort(m.host, strconv.Itoa(m.port)))
	if err != nil {
		return fmt.Errorf("smtp: dial: %w", err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	// net/smtp has no context support; closing the conn unblocks it.
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()
	defer close(done)

	client, err := smtp.NewClient(conn, m.host)
	if err != nil {
		return fmt.Errorf("smtp: greeting: %w", err)
	}
	defer client.Close()

	if err := client.Hello(m.helloName); err != nil {
		return fmt.Errorf("smtp: hello: %w", err)
	}
	if m.tlsConfig != nil {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(m.tlsConfig.Clone()); err != nil {
				return fmt.Errorf("smtp: starttls: %w", err)
			}
		}
	}
	if m.auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(m.auth); err != nil {
				return fmt.Errorf("smtp: auth: %w", err)
			}
		}
	}

	if err := client.Mail(from); err != nil {
		return fmt.Errorf("smtp: mail from: %w", err)
	}
	if err := client.Rcpt(rcpt); err != nil {
		return fmt.Errorf("smtp: rcpt to: %w", err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp: data: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("smtp: data write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp: data close: %w", err)
	}
	if err := client.Quit(); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("smtp: quit: %w", err)
	}
	return ctx.Err()
}

func (m *Mailer) buildMessage(msg *notification.Message, from string) []byte {
	headers := map[string]string{
		"From":         sanitizeHeaderValue(from),
		"To":           sanitizeHeaderValue(msg.To),
		"Subject":      sanitizeHeaderValue(msg.Subject),
		"Date":         m.now().UTC().Format(time.RFC1123Z),
		"MIME-Version": "1.0",
		"Content-Type": "text/plain; charset=UTF-8",
	}
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	for _, k := range keys {
		if headers[k] == "" {
			continue
		}
		buf.WriteString(k + ": " + headers[k] + "\r\n")
	}
	buf.WriteString("\r\n")
	buf.WriteString(normalizeBody(msg.Body))
	return buf.Bytes()
}

// Code returns the SMTP reply code carried by err, or 0.
func Code(err error) int {
	var tpErr *textproto.Error
	if errors.As(err, &tpErr) {
		return tpErr.Code
	}
	return 0
}

func envelopeAddress(value string) (string, error) {
	addr, err := mail.ParseAddress(value)
	if err != nil {
		return "", err
	}
	return addr.Address, nil
}

func normalizeBody(body string) string {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	body = strings.ReplaceAll(body, "\r", "\n")
	return strings.ReplaceAll(body, "\n", "\r\n")
}

// Header values never carry line breaks.
func sanitizeHeaderValue(value string) string {
	value = strings.ReplaceAll(value, "\r", " ")
	value = strings.ReplaceAll(value, "\n", " ")
	return strings.TrimSpace(value)
}
