package service

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"strings"

	"github.com/blogicum/internal/config"
)

// EmailService 邮件发送服务
type EmailService struct {
	cfg      *config.EmailConfig
	siteName string
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	siteName := "Blogicum"
	if cfg != nil && strings.TrimSpace(cfg.FromName) != "" {
		siteName = strings.TrimSpace(cfg.FromName)
	}
	return &EmailService{cfg: cfg, siteName: siteName}
}

// Enabled 邮件服务是否启用
func (s *EmailService) Enabled() bool {
	return s != nil && s.cfg != nil && s.cfg.Enabled
}

// CommentNotificationInput 新评论通知内容
type CommentNotificationInput struct {
	PostID    uint
	PostTitle string
	Commenter string
	Text      string
}

// SendCommentNotification 通知文章作者有新评论
func (s *EmailService) SendCommentNotification(toEmail string, input CommentNotificationInput) error {
	subject, body := buildCommentNotificationContent(s.siteName, input)
	return s.sendTextEmail(toEmail, subject, body)
}

// SendCustomEmail 发送测试邮件或自定义邮件
func (s *EmailService) SendCustomEmail(toEmail, subject, body string) error {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = s.siteName + " SMTP test"
	}
	body = strings.TrimSpace(body)
	if body == "" {
		body = "This is a test message. SMTP settings are working."
	}
	return s.sendTextEmail(toEmail, subject, body)
}

func (s *EmailService) sendTextEmail(toEmail, subject, body string) error {
	if !s.Enabled() {
		return ErrEmailServiceDisabled
	}
	if s.cfg.Host == "" || s.cfg.Port == 0 || s.cfg.From == "" {
		return ErrEmailServiceNotConfigured
	}
	if _, err := mail.ParseAddress(toEmail); err != nil {
		return ErrInvalidEmail
	}

	msg := buildEmailMessage(buildFromAddress(s.cfg.From, s.cfg.FromName), toEmail, subject, body)
	addr := net.JoinHostPort(s.cfg.Host, fmt.Sprintf("%d", s.cfg.Port))
	var auth smtp.Auth
	if s.cfg.Username != "" || s.cfg.Password != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	client, err := s.dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()
	return normalizeEmailSendError(deliver(client, auth, s.cfg.From, toEmail, msg))
}

// dial 建立 SMTP 连接：use_ssl 走隐式 TLS，否则在服务端支持时升级 STARTTLS
func (s *EmailService) dial(addr string) (*smtp.Client, error) {
	tlsConfig := &tls.Config{ServerName: s.cfg.Host}
	if s.cfg.UseSSL {
		conn, err := tls.Dial("tcp", addr, tlsConfig)
		if err != nil {
			return nil, err
		}
		client, err := smtp.NewClient(conn, s.cfg.Host)
		if err != nil {
			_ = conn.Close()
			return nil, err
		}
		return client, nil
	}

	client, err := smtp.Dial(addr)
	if err != nil {
		return nil, err
	}
	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(tlsConfig); err != nil {
			_ = client.Close()
			return nil, err
		}
	}
	return client, nil
}

func deliver(client *smtp.Client, auth smtp.Auth, from, to string, msg []byte) error {
	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}
	if err := client.Mail(from); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func buildCommentNotificationContent(siteName string, input CommentNotificationInput) (string, string) {
	title := strings.TrimSpace(input.PostTitle)
	commenter := strings.TrimSpace(input.Commenter)
	if commenter == "" {
		commenter = "Someone"
	}
	subject := fmt.Sprintf("[%s] New comment on \"%s\"", siteName, title)
	body := fmt.Sprintf("%s commented on your post \"%s\" (#%d):\n\n%s", commenter, title, input.PostID, strings.TrimSpace(input.Text))
	return subject, body
}

func buildFromAddress(from, name string) string {
	if strings.TrimSpace(name) == "" {
		return from
	}
	return (&mail.Address{Name: name, Address: from}).String()
}

func buildEmailMessage(from, to, subject, body string) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	buf.WriteString(body)
	return buf.Bytes()
}

func normalizeEmailSendError(err error) error {
	if err != nil && isEmailRecipientRejected(err) {
		return ErrEmailRecipientRejected
	}
	return err
}

var recipientRejectedKeywords = []string{
	"no such recipient",
	"no such user",
	"recipient not found",
	"recipient address rejected",
	"invalid recipient",
	"user unknown",
	"unknown user",
	"mailbox unavailable",
}

func isEmailRecipientRejected(err error) bool {
	if err == nil {
		return false
	}
	message := strings.ToLower(strings.TrimSpace(err.Error()))
	for _, keyword := range recipientRejectedKeywords {
		if strings.Contains(message, keyword) {
			return true
		}
	}
	if strings.Contains(message, "550") {
		for _, hint := range []string{"recipient", "mailbox", "rcpt"} {
			if strings.Contains(message, hint) {
				return true
			}
		}
	}
	return false
}
