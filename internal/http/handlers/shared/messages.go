package shared

import "fmt"

var messages = map[string]string{
	"error.bad_request":              "invalid request",
	"error.unauthorized":             "authentication required",
	"error.forbidden":                "permission denied",
	"error.not_found":                "not found",
	"error.internal":                 "internal error",
	"error.validation":               "form contains errors",
	"error.rate_limited":             "too many requests, retry in %d seconds",
	"error.login_too_many":           "too many login attempts, retry in %d seconds",
	"error.rate_limit_unavailable":   "rate limiter unavailable",
	"error.too_many_requests":        "too many attempts, try again later",
	"error.user_id_invalid":          "invalid user id",
	"error.user_id_type_invalid":     "invalid user id type",
	"error.post_not_found":           "post not found",
	"error.comment_not_found":        "comment not found",
	"error.category_not_found":       "category not found",
	"error.location_not_found":       "location not found",
	"error.user_not_found":           "user not found",
	"error.slug_exists":              "slug already exists",
	"error.username_exists":          "username already exists",
	"error.invalid_credentials":      "invalid username or password",
	"error.invalid_password":         "current password is incorrect",
	"error.password_weak":            "password does not meet the policy",
	"error.password_min_length":      "password must be at least %d characters",
	"error.password_require_number":  "password must contain a number",
	"error.password_require_letter":  "password must contain a letter",
	"error.user_disabled":            "account disabled",
	"error.auth_header_missing":      "authorization header missing",
	"error.auth_header_invalid":      "authorization header invalid",
	"error.token_revoked":            "token revoked",
	"error.token_invalid":            "token invalid or expired",
	"error.captcha_required":         "captcha required",
	"error.captcha_invalid":          "captcha invalid",
	"error.captcha_config_invalid":   "captcha misconfigured",
	"error.captcha_verify_failed":    "captcha verification failed",
	"error.captcha_generate":         "captcha generation failed",
	"error.upload_missing":           "file is required",
	"error.upload_too_large":         "file too large",
	"error.upload_type":              "file type not allowed",
	"error.upload_image_invalid":     "file is not a valid image",
	"error.upload_failed":            "upload failed",
	"error.role_invalid":             "invalid role",
	"error.authz_unavailable":        "authorization service unavailable",
	"error.email_invalid":            "invalid email address",
	"error.email_recipient_rejected": "recipient rejected by mail server",
	"error.email_not_configured":     "email service not configured",
	"error.email_send_failed":        "email delivery failed",
	"error.save_failed":              "save failed",
	"error.delete_failed":            "delete failed",
	"error.fetch_failed":             "fetch failed",
}

// Message 返回 key 对应的提示文案，未登记时原样返回 key。
func Message(key string, args ...interface{}) string {
	msg, ok := messages[key]
	if !ok {
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}
