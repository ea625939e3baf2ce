package service

import (
	"errors"
	"testing"

	"github.com/blogicum/internal/config"
	"github.com/blogicum/internal/models"
)

func TestIsOwner(t *testing.T) {
	post := models.Post{AuthorID: 5}
	if !IsOwner(post, 5) {
		t.Fatalf("author should own post")
	}
	if IsOwner(post, 6) || IsOwner(post, 0) {
		t.Fatalf("non-author should not own post")
	}
	if IsOwner(models.Comment{AuthorID: 0}, 0) {
		t.Fatalf("anonymous actor never owns anything")
	}
}

func TestValidatePassword(t *testing.T) {
	policy := config.PasswordPolicyConfig{MinLength: 8, RequireLetter: true, RequireNumber: true}

	tests := []struct {
		name    string
		pass    string
		wantKey string
	}{
		{name: "too_short", pass: "ab1", wantKey: "error.password_min_length"},
		{name: "no_letter", pass: "12345678", wantKey: "error.password_require_letter"},
		{name: "no_number", pass: "abcdefgh", wantKey: "error.password_require_number"},
		{name: "ok", pass: "abcdefg1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePassword(policy, tt.pass)
			if tt.wantKey == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrWeakPassword) {
				t.Fatalf("want ErrWeakPassword got %v", err)
			}
			var policyErr passwordPolicyError
			if !errors.As(err, &policyErr) || policyErr.Key() != tt.wantKey {
				t.Fatalf("want key %s got %v", tt.wantKey, err)
			}
		})
	}
}

func TestValidationErrorHelpers(t *testing.T) {
	v := &ValidationError{}
	if v.OrNil() != nil {
		t.Fatalf("empty validation error should be nil")
	}
	validateSlug(v, "bad slug!")
	validateUsername(v, "")
	normalizeEmail(v, "nope")
	err := v.OrNil()
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("want ErrValidation got %v", err)
	}
	if v.Fields["slug"] != "invalid" || v.Fields["username"] != "required" || v.Fields["email"] != "invalid" {
		t.Fatalf("unexpected fields: %+v", v.Fields)
	}
	if err.Error() != "validation failed: email: invalid; slug: invalid; username: required" {
		t.Fatalf("unexpected message: %s", err.Error())
	}

	v.Add("slug", "too_long")
	if v.Fields["slug"] != "invalid" {
		t.Fatalf("first field error should win")
	}
}
