package admin

import (
	"strings"

	"github.com/blogicum/internal/http/response"
	"github.com/blogicum/internal/service"

	"github.com/gin-gonic/gin"
)

// EmailTestSendRequest 邮件测试发送请求
type EmailTestSendRequest struct {
	ToEmail string `json:"to_email" binding:"required"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

var emailErrorRules = []mappedHandlerError{
	{Target: service.ErrInvalidEmail, Code: response.CodeBadRequest, Key: "error.email_invalid"},
	{Target: service.ErrEmailRecipientRejected, Code: response.CodeBadRequest, Key: "error.email_recipient_rejected"},
	{Target: service.ErrEmailServiceDisabled, Code: response.CodeBadRequest, Key: "error.email_not_configured"},
	{Target: service.ErrEmailServiceNotConfigured, Code: response.CodeBadRequest, Key: "error.email_not_configured"},
}

// TestEmailSend 用当前 SMTP 配置发送测试邮件
func (h *Handler) TestEmailSend(c *gin.Context) {
	var req EmailTestSendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	toEmail := strings.TrimSpace(req.ToEmail)
	if toEmail == "" {
		respondError(c, response.CodeBadRequest, "error.email_invalid", nil)
		return
	}
	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		subject = "SMTP test"
	}
	body := req.Body
	if strings.TrimSpace(body) == "" {
		body = "This is a test message."
	}

	if err := h.EmailService.SendCustomEmail(toEmail, subject, body); err != nil {
		respondWithMappedError(c, err, emailErrorRules, response.CodeInternal, "error.email_send_failed")
		return
	}
	response.Success(c, gin.H{"sent": true})
}
