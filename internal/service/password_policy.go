package service

import (
	"fmt"
	"unicode"

	"github.com/blogicum/internal/config"
)

type passwordPolicyError struct {
	key  string
	args []interface{}
}

func (e passwordPolicyError) Error() string {
	if len(e.args) == 0 {
		return e.key
	}
	return fmt.Sprintf("%s %v", e.key, e.args)
}

func (e passwordPolicyError) Is(target error) bool {
	return target == ErrWeakPassword
}

// Key 返回错误消息键
func (e passwordPolicyError) Key() string {
	return e.key
}

// Args 返回消息参数
func (e passwordPolicyError) Args() []interface{} {
	return e.args
}

func validatePassword(policy config.PasswordPolicyConfig, password string) error {
	if policy.MinLength > 0 && len([]rune(password)) < policy.MinLength {
		return passwordPolicyError{key: "error.password_min_length", args: []interface{}{policy.MinLength}}
	}

	var hasLetter, hasNumber bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasNumber = true
		}
	}
	if policy.RequireLetter && !hasLetter {
		return passwordPolicyError{key: "error.password_require_letter"}
	}
	if policy.RequireNumber && !hasNumber {
		return passwordPolicyError{key: "error.password_require_number"}
	}
	return nil
}
