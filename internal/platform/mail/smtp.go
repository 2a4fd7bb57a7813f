package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	portssvc "github.com/primex-app/primex_backend/internal/core/ports/services"
	"github.com/primex-app/primex_backend/internal/platform/config"
)

// SMTPSender delivers OTP emails over SMTP with STARTTLS, or implicit TLS on
// port 465. Safe for concurrent use; a fresh connection is made per send.
type SMTPSender struct {
	host string
	port int
	user string
	pass string
	from string
}

func NewSMTPSender(cfg *config.Config) *SMTPSender {
	return &SMTPSender{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
		from: cfg.SMTPFrom,
	}
}

var _ portssvc.MailSender = (*SMTPSender)(nil)

func (s *SMTPSender) SendVerificationEmail(ctx context.Context, to string, code string) error {
	subject := "Verify Your Email Address for PrimeX"
	body := "Welcome to PrimeX! Please use the following One-Time Password (OTP) to verify your email address.\r\n" +
		"Your OTP is: " + code + "\r\n" +
		"This OTP is valid for 10 minutes.\r\n"
	return s.send(ctx, to, subject, body)
}

func (s *SMTPSender) SendPasswordResetEmail(ctx context.Context, to string, code string) error {
	subject := "Your Password Reset OTP"
	body := "You requested a password reset.\r\n" +
		"Your One-Time Password (OTP) is: " + code + "\r\n" +
		"This OTP is valid for 10 minutes.\r\n"
	return s.send(ctx, to, subject, body)
}

func (s *SMTPSender) send(ctx context.Context, to string, subject string, body string) error {
	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	message := buildMessage(s.from, to, subject, body)

	client, err := s.dial(ctx, addr)
	if err != nil {
		return fmt.Errorf("failed to connect to smtp server: %w", err)
	}
	defer client.Close()

	auth := smtp.PlainAuth("", s.user, s.pass, s.host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth failed: %w", err)
	}
	if err := client.Mail(parseAddress(s.from)); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	writer, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := writer.Write([]byte(message)); err != nil {
		_ = writer.Close()
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func (s *SMTPSender) dial(ctx context.Context, addr string) (*smtp.Client, error) {
	dialer := &net.Dialer{}

	if s.port == 465 {
		conn, err := tls.DialWithDialer(dialer, "tcp", addr, &tls.Config{ServerName: s.host})
		if err != nil {
			return nil, err
		}
		return smtp.NewClient(conn, s.host)
	}

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		return nil, err
	}
	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: s.host}); err != nil {
			_ = client.Close()
			return nil, err
		}
	}
	return client, nil
}

func buildMessage(from string, to string, subject string, body string) string {
	headers := []string{
		"From: " + from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}
	return strings.Join(headers, "\r\n")
}

func parseAddress(from string) string {
	start := strings.Index(from, "<")
	end := strings.Index(from, ">")
	if start >= 0 && end > start {
		return strings.TrimSpace(from[start+1 : end])
	}
	return strings.TrimSpace(from)
}
