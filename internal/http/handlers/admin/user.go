package admin

import (
	"strings"

	"github.com/blogicum/internal/constants"
	handlershared "github.com/blogicum/internal/http/handlers/shared"
	"github.com/blogicum/internal/http/response"
	"github.com/blogicum/internal/repository"
	"github.com/blogicum/internal/service"

	"github.com/gin-gonic/gin"
)

type userFlagPayload struct {
	Value *bool `json:"value" binding:"required"`
}

type userRolePayload struct {
	Role string `json:"role" binding:"required"`
}

var userErrorRules = notFoundRule("error.user_not_found")

// GetAdminUsers 用户列表
func (h *Handler) GetAdminUsers(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)
	isStaff, err := parseBoolQuery(c, "is_staff")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	users, total, err := h.UserAuthService.ListUsers(repository.UserListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  strings.TrimSpace(c.Query("keyword")),
		IsStaff:  isStaff,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, users, response.BuildPagination(page, pageSize, total))
}

// SetAdminUserActive 启用/停用用户
func (h *Handler) SetAdminUserActive(c *gin.Context) {
	id, ok := parseIDParam(c, "error.user_not_found")
	if !ok {
		return
	}
	var req userFlagPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	user, err := h.UserAuthService.SetActive(id, *req.Value)
	if err != nil {
		respondWithMappedError(c, err, userErrorRules, response.CodeInternal, "error.save_failed")
		return
	}
	requestLog(c).Infow("admin_user_active_changed", "user_id", id, "active", *req.Value, "operator_id", currentUserID(c))
	response.Success(c, user)
}

// SetAdminUserStaff 授予/撤销后台访问
func (h *Handler) SetAdminUserStaff(c *gin.Context) {
	id, ok := parseIDParam(c, "error.user_not_found")
	if !ok {
		return
	}
	var req userFlagPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	user, err := h.UserAuthService.SetStaff(id, *req.Value)
	if err != nil {
		respondWithMappedError(c, err, userErrorRules, response.CodeInternal, "error.save_failed")
		return
	}
	requestLog(c).Infow("admin_user_staff_changed", "user_id", id, "staff", *req.Value, "operator_id", currentUserID(c))
	response.Success(c, user)
}

// DeleteAdminUser 删除用户及其文章、评论、角色绑定
func (h *Handler) DeleteAdminUser(c *gin.Context) {
	id, ok := parseIDParam(c, "error.user_not_found")
	if !ok {
		return
	}
	if err := h.UserAuthService.DeleteUser(id); err != nil {
		respondWithMappedError(c, err, userErrorRules, response.CodeInternal, "error.delete_failed")
		return
	}
	if h.AuthzService != nil {
		if err := h.AuthzService.RemoveUser(id); err != nil {
			requestLog(c).Warnw("admin_user_roles_cleanup_failed", "user_id", id, "error", err)
		}
	}
	requestLog(c).Infow("admin_user_deleted", "user_id", id, "operator_id", currentUserID(c))
	response.Success(c, nil)
}

// GetAdminUserRoles 用户角色
func (h *Handler) GetAdminUserRoles(c *gin.Context) {
	id, ok := parseIDParam(c, "error.user_not_found")
	if !ok {
		return
	}
	roles, err := h.AuthzService.GetUserRoles(id)
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_unavailable", err)
		return
	}
	response.Success(c, roles)
}

// AssignAdminUserRole 授予角色
func (h *Handler) AssignAdminUserRole(c *gin.Context) {
	h.changeUserRole(c, constants.AuthzAuditActionGrantRole)
}

// RevokeAdminUserRole 撤销角色
func (h *Handler) RevokeAdminUserRole(c *gin.Context) {
	h.changeUserRole(c, constants.AuthzAuditActionRevokeRole)
}

func (h *Handler) changeUserRole(c *gin.Context, action string) {
	operatorID, ok := getOperatorID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "error.user_not_found")
	if !ok {
		return
	}
	var req userRolePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	target, err := h.UserAuthService.GetUserByID(id)
	if err != nil {
		respondWithMappedError(c, err, userErrorRules, response.CodeInternal, "error.fetch_failed")
		return
	}

	var (
		role    string
		changed bool
	)
	if action == constants.AuthzAuditActionGrantRole {
		role, changed, err = h.AuthzService.AssignRole(id, req.Role)
	} else {
		role, changed, err = h.AuthzService.RevokeRole(id, req.Role)
	}
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.role_invalid", err)
		return
	}

	if changed {
		h.recordAuthzAudit(c, service.AuthzAuditRecordInput{
			OperatorUserID:   operatorID,
			OperatorUsername: currentUsername(c),
			TargetUserID:     target.ID,
			TargetUsername:   target.Username,
			Action:           action,
			Role:             role,
			RequestID:        currentRequestID(c),
		})
	}
	response.Success(c, gin.H{"role": role, "changed": changed})
}
