package public

import (
	"errors"
	"strings"

	"github.com/blogicum/internal/constants"
	handlershared "github.com/blogicum/internal/http/handlers/shared"
	"github.com/blogicum/internal/http/response"
	"github.com/blogicum/internal/models"
	"github.com/blogicum/internal/service"

	"github.com/gin-gonic/gin"
)

// UserRegisterRequest 注册请求
type UserRegisterRequest struct {
	Username       string                              `json:"username" binding:"required"`
	Email          string                              `json:"email"`
	FirstName      string                              `json:"first_name"`
	LastName       string                              `json:"last_name"`
	Password       string                              `json:"password" binding:"required"`
	CaptchaPayload handlershared.CaptchaPayloadRequest `json:"captcha_payload"`
}

// UserLoginRequest 登录请求
type UserLoginRequest struct {
	Username       string                              `json:"username" binding:"required"`
	Password       string                              `json:"password" binding:"required"`
	CaptchaPayload handlershared.CaptchaPayloadRequest `json:"captcha_payload"`
}

// UserRegister 用户注册
func (h *Handler) UserRegister(c *gin.Context) {
	var req UserRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Register(service.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
		Captcha:   req.CaptchaPayload.ToServicePayload(),
	})
	if err != nil {
		respondWithMappedError(c, err, accountErrorRules, response.CodeInternal, "error.save_failed")
		return
	}
	requestLog(c).Infow("user_registered", "user_id", user.ID, "username", user.Username)
	response.Success(c, tokenPayload(user, token, expiresAt.Format("2006-01-02T15:04:05Z07:00")))
}

// UserLogin 用户登录
func (h *Handler) UserLogin(c *gin.Context) {
	var req UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.recordUserLogin(c, req.Username, 0, constants.LoginLogStatusFailed, constants.LoginLogFailReasonBadRequest)
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Login(req.Username, req.Password, req.CaptchaPayload.ToServicePayload())
	if err != nil {
		reason := constants.LoginLogFailReasonInternalError
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			reason = constants.LoginLogFailReasonInvalidCredentials
		case errors.Is(err, service.ErrUserDisabled):
			reason = constants.LoginLogFailReasonUserDisabled
		case errors.Is(err, service.ErrCaptchaRequired), errors.Is(err, service.ErrCaptchaInvalid):
			reason = constants.LoginLogFailReasonCaptchaInvalid
		}
		h.recordUserLogin(c, req.Username, 0, constants.LoginLogStatusFailed, reason)
		respondWithMappedError(c, err, accountErrorRules, response.CodeInternal, "error.internal")
		return
	}

	h.recordUserLogin(c, user.Username, user.ID, constants.LoginLogStatusSuccess, "")
	response.Success(c, tokenPayload(user, token, expiresAt.Format("2006-01-02T15:04:05Z07:00")))
}

func tokenPayload(user *models.User, token, expiresAt string) gin.H {
	return gin.H{
		"user": gin.H{
			"id":         user.ID,
			"username":   user.Username,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"is_staff":   user.IsStaff,
		},
		"token":      token,
		"expires_at": expiresAt,
	}
}

func (h *Handler) recordUserLogin(c *gin.Context, username string, userID uint, status, failReason string) {
	if h == nil || h.UserLoginLogService == nil {
		return
	}
	requestID := ""
	if rid, ok := c.Get("request_id"); ok {
		if value, ok := rid.(string); ok {
			requestID = strings.TrimSpace(value)
		}
	}
	if err := h.UserLoginLogService.Record(service.RecordUserLoginInput{
		UserID:      userID,
		Username:    username,
		Status:      status,
		FailReason:  failReason,
		ClientIP:    c.ClientIP(),
		UserAgent:   c.GetHeader("User-Agent"),
		LoginSource: constants.LoginLogSourceWeb,
		RequestID:   requestID,
	}); err != nil {
		requestLog(c).Warnw("user_login_log_record_failed", "error", err)
	}
}
