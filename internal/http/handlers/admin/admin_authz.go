package admin

import (
	"net/url"
	"strings"

	"github.com/blogicum/internal/http/response"
	"github.com/blogicum/internal/logger"
	"github.com/blogicum/internal/service"

	"github.com/gin-gonic/gin"
)

type authzRolePayload struct {
	Role string `json:"role" binding:"required"`
}

type authzPolicyPayload struct {
	Role   string `json:"role" binding:"required"`
	Object string `json:"object" binding:"required"`
	Action string `json:"action" binding:"required"`
}

// GetAuthzMe 当前用户权限快照
func (h *Handler) GetAuthzMe(c *gin.Context) {
	userID, ok := getOperatorID(c)
	if !ok {
		return
	}
	roles, err := h.AuthzService.GetUserRoles(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_unavailable", err)
		return
	}
	isSuper := false
	if value, exists := c.Get("is_superuser"); exists {
		if flag, typeOK := value.(bool); typeOK {
			isSuper = flag
		}
	}
	response.Success(c, gin.H{
		"user_id":  userID,
		"is_super": isSuper,
		"roles":    roles,
	})
}

// ListAuthzRoles 角色列表
func (h *Handler) ListAuthzRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_unavailable", err)
		return
	}
	response.Success(c, roles)
}

// CreateAuthzRole 创建角色
func (h *Handler) CreateAuthzRole(c *gin.Context) {
	var req authzRolePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	role, err := h.AuthzService.EnsureRole(req.Role)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.role_invalid", err)
		return
	}
	h.recordAuthzAudit(c, service.AuthzAuditRecordInput{
		OperatorUserID:   currentUserID(c),
		OperatorUsername: currentUsername(c),
		Action:           "role_create",
		Role:             role,
		RequestID:        currentRequestID(c),
	})
	logger.Infow("admin_authz_role_created", "operator_user_id", currentUserID(c), "role", role)
	response.Success(c, gin.H{"role": role})
}

// GetAuthzRolePolicies 角色策略
func (h *Handler) GetAuthzRolePolicies(c *gin.Context) {
	role := decodeRoleParam(c.Param("role"))
	if role == "" {
		respondError(c, response.CodeBadRequest, "error.role_invalid", nil)
		return
	}
	policies, err := h.AuthzService.GetRolePolicies(role)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.role_invalid", err)
		return
	}
	response.Success(c, policies)
}

// GrantAuthzPolicy 授予角色策略
func (h *Handler) GrantAuthzPolicy(c *gin.Context) {
	var req authzPolicyPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.AuthzService.GrantRolePolicy(req.Role, req.Object, req.Action); err != nil {
		respondError(c, response.CodeBadRequest, "error.role_invalid", err)
		return
	}
	h.recordAuthzAudit(c, service.AuthzAuditRecordInput{
		OperatorUserID:   currentUserID(c),
		OperatorUsername: currentUsername(c),
		Action:           "policy_grant",
		Role:             req.Role,
		RequestID:        currentRequestID(c),
	})
	logger.Infow("admin_authz_policy_granted",
		"operator_user_id", currentUserID(c),
		"role", req.Role,
		"object", req.Object,
		"action", req.Action,
	)
	response.Success(c, nil)
}

// RevokeAuthzPolicy 撤销角色策略
func (h *Handler) RevokeAuthzPolicy(c *gin.Context) {
	var req authzPolicyPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.AuthzService.RevokeRolePolicy(req.Role, req.Object, req.Action); err != nil {
		respondError(c, response.CodeBadRequest, "error.role_invalid", err)
		return
	}
	h.recordAuthzAudit(c, service.AuthzAuditRecordInput{
		OperatorUserID:   currentUserID(c),
		OperatorUsername: currentUsername(c),
		Action:           "policy_revoke",
		Role:             req.Role,
		RequestID:        currentRequestID(c),
	})
	logger.Infow("admin_authz_policy_revoked",
		"operator_user_id", currentUserID(c),
		"role", req.Role,
		"object", req.Object,
		"action", req.Action,
	)
	response.Success(c, nil)
}

func (h *Handler) recordAuthzAudit(c *gin.Context, input service.AuthzAuditRecordInput) {
	if h == nil || h.AuthzAuditService == nil {
		return
	}
	if input.OperatorUserID == 0 || strings.TrimSpace(input.Action) == "" {
		return
	}
	if err := h.AuthzAuditService.Record(input); err != nil {
		logger.Warnw("admin_authz_audit_record_failed",
			"error", err,
			"action", input.Action,
			"operator_user_id", input.OperatorUserID,
		)
	}
}

func decodeRoleParam(raw string) string {
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return strings.TrimSpace(raw)
	}
	return strings.TrimSpace(decoded)
}
