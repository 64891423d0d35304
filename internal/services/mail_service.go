package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"text/template"
	"time"

	"jobboard/internal/config"
	"jobboard/pkg/logger"
)

type IMailService interface {
	SendPasswordReset(to, link string) error
}

type smtpMailService struct {
	cfg      config.SMTPConfig
	resetTpl *template.Template
}

const resetTemplate = `To reset your password, visit the following link:
{{.Link}}
If you did not make this request then simply ignore this email and no changes will be made.
`

// NewMailService returns an SMTP sender, or a sender that only logs when no
// SMTP host is configured.
func NewMailService(cfg config.SMTPConfig) IMailService {
	if strings.TrimSpace(cfg.Host) == "" {
		logger.Warn().Msg("SMTP host not set; outgoing mail will be logged only")
		return &logMailService{}
	}
	return &smtpMailService{
		cfg:      cfg,
		resetTpl: template.Must(template.New("reset").Parse(resetTemplate)),
	}
}

func (s *smtpMailService) SendPasswordReset(to, link string) error {
	var body bytes.Buffer
	if err := s.resetTpl.Execute(&body, struct{ Link string }{link}); err != nil {
		return err
	}
	return s.send(to, "Password Reset Request", body.String())
}

func (s *smtpMailService) send(to, subject, textBody string) error {
	var msg bytes.Buffer
	write := func(format string, a ...any) { _, _ = fmt.Fprintf(&msg, format, a...) }

	write("From: %s\r\n", s.formatFromHeader())
	write("To: %s\r\n", to)
	write("Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	write("Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: text/plain; charset=UTF-8\r\n")
	write("Content-Transfer-Encoding: 8bit\r\n\r\n")
	write("%s\r\n", strings.ReplaceAll(textBody, "\n", "\r\n"))

	addr := net.JoinHostPort(s.cfg.Host, fmt.Sprint(s.cfg.Port))
	tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}

	var conn net.Conn
	var err error
	dialer := &net.Dialer{Timeout: 10 * time.Second}
	if s.cfg.UseSSL {
		// SMTPS, usually 465
		conn, err = tls.DialWithDialer(dialer, "tcp", addr, tlsCfg)
	} else {
		conn, err = dialer.Dial("tcp", addr)
	}
	if err != nil {
		return err
	}
	defer conn.Close()

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return err
	}
	defer c.Quit()

	if !s.cfg.UseSSL {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err = c.StartTLS(tlsCfg); err != nil {
				return err
			}
		}
	}

	if s.cfg.Username != "" {
		if err = c.Auth(smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)); err != nil {
			return err
		}
	}
	if err = c.Mail(s.cfg.From); err != nil {
		return err
	}
	if err = c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(msg.Bytes()); err != nil {
		return err
	}
	return w.Close()
}

func (s *smtpMailService) formatFromHeader() string {
	name := strings.TrimSpace(s.cfg.FromName)
	if name == "" {
		return s.cfg.From
	}
	return fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", name), s.cfg.From)
}

type logMailService struct{}

func (logMailService) SendPasswordReset(to, link string) error {
	logger.Info().Str("to", to).Str("link", link).Msg("password reset mail (not sent)")
	return nil
}
