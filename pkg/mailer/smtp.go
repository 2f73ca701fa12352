package mailer

import (
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"
)

const (
	providerSMTP        = "smtp"
	smtpImplicitTLSPort = 465
	smtpDialTimeout     = 10 * time.Second
)

var ErrSMTPHostRequired = errors.New("SMTP host is required")

// SMTPProvider sends mail through a plain SMTP relay. Port 465 uses implicit
// TLS; any other port goes through smtp.SendMail, which upgrades with
// STARTTLS when the server offers it.
type SMTPProvider struct {
	Host     string
	Port     int
	Username string
	Password string
	FromName string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	FromName string
}

func NewSMTPProvider(config SMTPConfig) *SMTPProvider {
	return &SMTPProvider{
		Host:     config.Host,
		Port:     config.Port,
		Username: config.Username,
		Password: config.Password,
		FromName: config.FromName,
	}
}

func (p *SMTPProvider) GetName() string {
	return providerSMTP
}

func (p *SMTPProvider) Send(emailData *EmailData) (*EmailResult, error) {
	if p.Host == "" {
		return &EmailResult{Success: false, Error: ErrSMTPHostRequired.Error(), Provider: providerSMTP}, ErrSMTPHostRequired
	}

	msg := p.buildMessage(emailData)
	addr := net.JoinHostPort(p.Host, strconv.Itoa(p.Port))
	auth := smtp.PlainAuth("", p.Username, p.Password, p.Host)

	var err error
	if p.Port == smtpImplicitTLSPort {
		err = p.sendImplicitTLS(addr, auth, emailData.From, emailData.To, msg)
	} else {
		err = smtp.SendMail(addr, auth, emailData.From, emailData.To, msg)
	}

	if err != nil {
		return &EmailResult{
			Success:  false,
			Error:    fmt.Sprintf("SMTP send failed: %v", err),
			Provider: providerSMTP,
		}, err
	}

	return &EmailResult{Success: true, Provider: providerSMTP}, nil
}

func (p *SMTPProvider) Verify() (bool, error) {
	if p.Host == "" {
		return false, ErrSMTPHostRequired
	}

	addr := net.JoinHostPort(p.Host, strconv.Itoa(p.Port))
	conn, err := net.DialTimeout("tcp", addr, smtpDialTimeout)
	if err != nil {
		return false, err
	}
	conn.Close()
	return true, nil
}

func (p *SMTPProvider) sendImplicitTLS(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: p.Host})
	if err != nil {
		return err
	}

	client, err := smtp.NewClient(conn, p.Host)
	if err != nil {
		conn.Close()
		return err
	}
	defer client.Close()

	if err := client.Auth(auth); err != nil {
		return err
	}

	if err := client.Mail(from); err != nil {
		return err
	}

	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}

	w, err := client.Data()
	if err != nil {
		return err
	}

	if _, err := w.Write(msg); err != nil {
		w.Close()
		return err
	}

	if err := w.Close(); err != nil {
		return err
	}

	return client.Quit()
}

func (p *SMTPProvider) buildMessage(emailData *EmailData) []byte {
	from := emailData.From
	if p.FromName != "" {
		from = fmt.Sprintf("%q <%s>", p.FromName, emailData.From)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(emailData.To, ", "))
	if emailData.ReplyTo != "" {
		fmt.Fprintf(&b, "Reply-To: %s\r\n", emailData.ReplyTo)
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", emailData.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(emailData.HTML)
	b.WriteString("\r\n")

	return []byte(b.String())
}
