package service

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrNotOwner           = errors.New("not owner")
	ErrValidation         = errors.New("validation failed")
	ErrSlugExists         = errors.New("slug already exists")
	ErrUsernameExists     = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrWeakPassword       = errors.New("weak password")
	ErrUserDisabled       = errors.New("user disabled")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrLocationNotFound   = errors.New("location not found")

	ErrCaptchaRequired      = errors.New("captcha required")
	ErrCaptchaInvalid       = errors.New("captcha invalid")
	ErrCaptchaConfigInvalid = errors.New("captcha config invalid")

	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrEmailRecipientRejected    = errors.New("email recipient rejected")
	ErrInvalidEmail              = errors.New("invalid email")

	ErrUploadTooLarge       = errors.New("upload too large")
	ErrUploadTypeNotAllowed = errors.New("upload type not allowed")
	ErrUploadImageInvalid   = errors.New("upload image invalid")
)

// ValidationError 表单校验错误，按字段携带错误信息
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError 创建单字段校验错误
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// Add 追加字段错误，返回自身便于链式调用
func (e *ValidationError) Add(field, message string) *ValidationError {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = message
	}
	return e
}

// Empty 是否没有任何字段错误
func (e *ValidationError) Empty() bool {
	return e == nil || len(e.Fields) == 0
}

// OrNil 无字段错误时返回 nil
func (e *ValidationError) OrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for key := range e.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+e.Fields[key])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is 使 errors.Is(err, ErrValidation) 成立
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
