package admin

import (
	"strings"

	handlershared "github.com/blogicum/internal/http/handlers/shared"
	"github.com/blogicum/internal/http/response"
	"github.com/blogicum/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetUserLoginLogs 用户登录日志
func (h *Handler) GetUserLoginLogs(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)
	userID, err := parseUintQuery(c, "user_id")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	createdFrom, createdTo, ok := parseCreatedRange(c)
	if !ok {
		return
	}

	logs, total, err := h.UserLoginLogService.ListForAdmin(repository.UserLoginLogListFilter{
		Page:        page,
		PageSize:    pageSize,
		UserID:      userID,
		Username:    strings.TrimSpace(c.Query("username")),
		Status:      strings.TrimSpace(c.Query("status")),
		ClientIP:    strings.TrimSpace(c.Query("client_ip")),
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, logs, response.BuildPagination(page, pageSize, total))
}

// ListAuthzAuditLogs 权限审计日志
func (h *Handler) ListAuthzAuditLogs(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)
	operatorUserID, err := parseUintQuery(c, "operator_user_id")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	targetUserID, err := parseUintQuery(c, "target_user_id")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	createdFrom, createdTo, ok := parseCreatedRange(c)
	if !ok {
		return
	}

	items, total, err := h.AuthzAuditService.ListForAdmin(repository.AuthzAuditLogListFilter{
		Page:           page,
		PageSize:       pageSize,
		OperatorUserID: operatorUserID,
		TargetUserID:   targetUserID,
		Action:         strings.TrimSpace(c.Query("action")),
		Role:           strings.TrimSpace(c.Query("role")),
		CreatedFrom:    createdFrom,
		CreatedTo:      createdTo,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, items, response.BuildPagination(page, pageSize, total))
}
