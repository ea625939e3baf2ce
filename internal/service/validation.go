package service

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	maxTitleLength    = 256
	maxUsernameLength = 150
	maxNameLength     = 150
	maxSlugLength     = 64
)

var (
	slugPattern     = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)
)

func validateTitle(v *ValidationError, field, value string) {
	switch {
	case strings.TrimSpace(value) == "":
		v.Add(field, "required")
	case utf8.RuneCountInString(value) > maxTitleLength:
		v.Add(field, "too_long")
	}
}

func validateSlug(v *ValidationError, slug string) {
	switch {
	case slug == "":
		v.Add("slug", "required")
	case len(slug) > maxSlugLength:
		v.Add("slug", "too_long")
	case !slugPattern.MatchString(slug):
		v.Add("slug", "invalid")
	}
}

func validateUsername(v *ValidationError, username string) {
	switch {
	case username == "":
		v.Add("username", "required")
	case utf8.RuneCountInString(username) > maxUsernameLength:
		v.Add("username", "too_long")
	case !usernamePattern.MatchString(username):
		v.Add("username", "invalid")
	}
}

func validatePersonName(v *ValidationError, field, value string) {
	if utf8.RuneCountInString(value) > maxNameLength {
		v.Add(field, "too_long")
	}
}

// normalizeEmail 邮箱可为空，非空时需合法
func normalizeEmail(v *ValidationError, email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return ""
	}
	if _, err := mail.ParseAddress(email); err != nil {
		v.Add("email", "invalid")
	}
	return email
}
