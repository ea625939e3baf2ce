package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/blogicum/internal/config"
)

func TestBuildCommentNotificationContent(t *testing.T) {
	subject, body := buildCommentNotificationContent("Blogicum", CommentNotificationInput{
		PostID:    42,
		PostTitle: "  Alps trip ",
		Commenter: "bob",
		Text:      "nice photos\n",
	})
	if !strings.Contains(subject, "[Blogicum]") || !strings.Contains(subject, `"Alps trip"`) {
		t.Fatalf("unexpected subject: %s", subject)
	}
	for _, expected := range []string{"bob commented", "#42", "nice photos"} {
		if !strings.Contains(body, expected) {
			t.Fatalf("body missing %q: %s", expected, body)
		}
	}

	_, anonymous := buildCommentNotificationContent("Blogicum", CommentNotificationInput{PostTitle: "x"})
	if !strings.HasPrefix(anonymous, "Someone") {
		t.Fatalf("expected anonymous commenter fallback: %s", anonymous)
	}
}

func TestBuildEmailMessageHeaders(t *testing.T) {
	msg := string(buildEmailMessage(buildFromAddress("noreply@example.com", "Blogicum"), "a@example.com", "Новый комментарий", "body"))
	if !strings.Contains(msg, "From: \"Blogicum\" <noreply@example.com>\r\n") {
		t.Fatalf("unexpected from header: %s", msg)
	}
	if !strings.Contains(msg, "Subject: =?UTF-8?q?") {
		t.Fatalf("subject should be Q-encoded: %s", msg)
	}
	if !strings.HasSuffix(msg, "\r\n\r\nbody") {
		t.Fatalf("body should follow blank line: %q", msg)
	}
}

func TestSendTextEmailGuards(t *testing.T) {
	disabled := NewEmailService(&config.EmailConfig{Enabled: false})
	if err := disabled.SendCustomEmail("a@example.com", "", ""); !errors.Is(err, ErrEmailServiceDisabled) {
		t.Fatalf("want ErrEmailServiceDisabled got %v", err)
	}

	var nilService *EmailService
	if nilService.Enabled() {
		t.Fatalf("nil service should be disabled")
	}

	unconfigured := NewEmailService(&config.EmailConfig{Enabled: true})
	if err := unconfigured.SendCustomEmail("a@example.com", "", ""); !errors.Is(err, ErrEmailServiceNotConfigured) {
		t.Fatalf("want ErrEmailServiceNotConfigured got %v", err)
	}

	configured := NewEmailService(&config.EmailConfig{Enabled: true, Host: "127.0.0.1", Port: 1, From: "noreply@example.com"})
	if err := configured.SendCustomEmail("not-an-address", "", ""); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("want ErrInvalidEmail got %v", err)
	}
}

func TestIsEmailRecipientRejected(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "smtp_550_no_such_recipient", err: errors.New("550 No such recipient here"), want: true},
		{name: "smtp_user_unknown", err: errors.New("SMTP 5.1.1 user unknown"), want: true},
		{name: "smtp_550_rcpt", err: errors.New("550 5.7.1 RCPT rejected"), want: true},
		{name: "network_timeout", err: errors.New("dial tcp timeout"), want: false},
		{name: "nil_error", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isEmailRecipientRejected(tt.err); got != tt.want {
				t.Fatalf("isEmailRecipientRejected() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeEmailSendError(t *testing.T) {
	if got := normalizeEmailSendError(errors.New("550 No such recipient here")); !errors.Is(got, ErrEmailRecipientRejected) {
		t.Fatalf("expected ErrEmailRecipientRejected, got %v", got)
	}
	networkErr := errors.New("dial tcp timeout")
	if got := normalizeEmailSendError(networkErr); !errors.Is(got, networkErr) {
		t.Fatalf("should keep original error, got %v", got)
	}
	if got := normalizeEmailSendError(nil); got != nil {
		t.Fatalf("nil should stay nil, got %v", got)
	}
}
