package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"mime"
	"net"
	"net/smtp"
	"net/url"
	"strings"
	textTemplate "text/template"
	"time"

	"go.uber.org/zap"
)

type IMailService interface {
	SendBookingRequest(to string, booking BookingMail) error
	SendMailToResetPassword(to, token string) error
}

// BookingMail carries what the guide needs to act on a new request.
type BookingMail struct {
	GuideName    string
	BookingID    string
	Date         string
	Time         string
	Hours        int
	Participants int
	Total        string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string

	// UseSSL selects implicit TLS (465); otherwise STARTTLS is used when offered.
	UseSSL bool

	AppName    string
	AppBaseURL string
}

type smtpMailService struct {
	cfg     SMTPConfig
	htmlTpl *template.Template
	textTpl *textTemplate.Template
	logger  *zap.Logger
}

func NewSMTPMailService(cfg SMTPConfig, logger *zap.Logger) IMailService {
	return &smtpMailService{
		cfg:     cfg,
		htmlTpl: template.Must(template.New("mailHTML").Parse(mailHTMLTemplate)),
		textTpl: textTemplate.Must(textTemplate.New("mailText").Parse(mailTextTemplate)),
		logger:  logger,
	}
}

func (s *smtpMailService) SendBookingRequest(to string, b BookingMail) error {
	subject := "New booking request"
	intro := fmt.Sprintf(
		"Hello %s, a tourist asked for a tour on %s at %s for %d hour(s), %d participant(s). Total: %s.",
		b.GuideName, b.Date, b.Time, b.Hours, b.Participants, b.Total,
	)
	link := strings.TrimRight(s.cfg.AppBaseURL, "/") + "/booking-confirmation?id=" + url.QueryEscape(b.BookingID)

	return s.render(to, mailData{
		Title:     subject,
		Intro:     intro,
		ButtonURL: link,
		ButtonTxt: "Review booking",
	})
}

func (s *smtpMailService) SendMailToResetPassword(to, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", strings.TrimRight(s.cfg.AppBaseURL, "/"), url.QueryEscape(token))

	return s.render(to, mailData{
		Title:     "Reset your password",
		Intro:     "We received a request to reset your password. The link below is valid for 15 minutes. If you did not ask for this, ignore this email.",
		ButtonURL: link,
		ButtonTxt: "Reset Password",
	})
}

type mailData struct {
	Title     string
	Intro     string
	ButtonURL string
	ButtonTxt string
	AppName   string
	Year      int
}

const mailHTMLTemplate = `<!doctype html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width,initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    body { margin: 0; padding: 0; background: #f4efe6; color: #1f2937; font-family: -apple-system, "Segoe UI", Roboto, Arial, sans-serif; }
    .container { max-width: 600px; margin: 32px auto; background: #ffffff; border-radius: 12px; overflow: hidden; }
    .header { padding: 24px 32px; background: #0e7490; color: #ffffff; font-weight: 700; font-size: 20px; }
    .body { padding: 32px; }
    h1 { margin: 0 0 16px; font-size: 24px; }
    p { margin: 0 0 20px; line-height: 1.6; }
    .btn { display: inline-block; padding: 14px 28px; background: #c2410c; color: #ffffff !important; text-decoration: none; border-radius: 8px; font-weight: 600; }
    .muted { color: #6b7280; font-size: 13px; word-break: break-all; }
    .footer { padding: 20px 32px; color: #6b7280; font-size: 13px; text-align: center; border-top: 1px solid #e5e7eb; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">{{.AppName}}</div>
    <div class="body">
      <h1>{{.Title}}</h1>
      <p>{{.Intro}}</p>
      {{if .ButtonURL}}
        <p><a class="btn" href="{{.ButtonURL}}">{{.ButtonTxt}}</a></p>
        <p class="muted">{{.ButtonURL}}</p>
      {{end}}
    </div>
    <div class="footer">&copy; {{.Year}} {{.AppName}}</div>
  </div>
</body>
</html>`

const mailTextTemplate = `{{.Title}}

{{.Intro}}
{{if .ButtonURL}}
{{.ButtonTxt}}: {{.ButtonURL}}
{{end}}
{{.AppName}} (c) {{.Year}}
`

func (s *smtpMailService) render(to string, data mailData) error {
	data.AppName = s.cfg.AppName
	data.Year = time.Now().Year()

	var hb, tb bytes.Buffer
	if err := s.htmlTpl.Execute(&hb, data); err != nil {
		return err
	}
	if err := s.textTpl.Execute(&tb, data); err != nil {
		return err
	}
	return s.send(to, data.Title, hb.String(), tb.String())
}

func (s *smtpMailService) buildMessage(to, subject, htmlBody, textBody string) []byte {
	boundary := fmt.Sprintf("alt_%d", time.Now().UnixNano())

	var msg bytes.Buffer
	write := func(format string, a ...any) { _, _ = fmt.Fprintf(&msg, format, a...) }

	write("From: %s\r\n", s.fromHeader())
	write("To: %s\r\n", to)
	write("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject))
	write("Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)

	write("--%s\r\n", boundary)
	write("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	write("%s\r\n\r\n", textBody)

	write("--%s\r\n", boundary)
	write("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	write("%s\r\n\r\n", htmlBody)

	write("--%s--\r\n", boundary)
	return msg.Bytes()
}

func (s *smtpMailService) send(to, subject, htmlBody, textBody string) error {
	msg := s.buildMessage(to, subject, htmlBody, textBody)
	addr := net.JoinHostPort(s.cfg.Host, fmt.Sprint(s.cfg.Port))
	tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}

	var conn net.Conn
	var err error
	dialer := &net.Dialer{Timeout: 10 * time.Second}
	if s.cfg.UseSSL {
		conn, err = tls.DialWithDialer(dialer, "tcp", addr, tlsCfg)
	} else {
		conn, err = dialer.Dial("tcp", addr)
	}
	if err != nil {
		return fmt.Errorf("smtp dial %s: %w", addr, err)
	}
	defer conn.Close()

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return err
	}
	defer c.Quit()

	if !s.cfg.UseSSL {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err := c.StartTLS(tlsCfg); err != nil {
				return err
			}
		}
	}
	if s.cfg.Username != "" {
		if err := c.Auth(smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)); err != nil {
			return err
		}
	}
	if err := c.Mail(s.cfg.From); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}

func (s *smtpMailService) fromHeader() string {
	name := strings.TrimSpace(s.cfg.FromName)
	if name == "" {
		return s.cfg.From
	}
	return fmt.Sprintf("%s <%s>", mime.BEncoding.Encode("UTF-8", name), s.cfg.From)
}

// logMailService stands in when SMTP is not configured.
type logMailService struct {
	logger *zap.Logger
}

func NewLogMailService(logger *zap.Logger) IMailService {
	return &logMailService{logger: logger}
}

func (s *logMailService) SendBookingRequest(to string, b BookingMail) error {
	s.logger.Info("smtp disabled, booking mail not sent", zap.String("to", to), zap.String("booking_id", b.BookingID))
	return nil
}

func (s *logMailService) SendMailToResetPassword(to, _ string) error {
	s.logger.Info("smtp disabled, reset mail not sent", zap.String("to", to))
	return nil
}
