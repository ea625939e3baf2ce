package service

import (
	"strings"
	"time"

	"github.com/blogicum/internal/models"
	"github.com/blogicum/internal/repository"
)

// AuthzAuditRecordInput 角色变更审计输入
type AuthzAuditRecordInput struct {
	OperatorUserID   uint
	OperatorUsername string
	TargetUserID     uint
	TargetUsername   string
	Action           string
	Role             string
	RequestID        string
}

// AuthzAuditService 权限审计服务
type AuthzAuditService struct {
	repo repository.AuthzAuditLogRepository
}

// NewAuthzAuditService 创建权限审计服务
func NewAuthzAuditService(repo repository.AuthzAuditLogRepository) *AuthzAuditService {
	return &AuthzAuditService{repo: repo}
}

// Record 记录角色变更，操作人或动作缺失时忽略
func (s *AuthzAuditService) Record(input AuthzAuditRecordInput) error {
	if s == nil || s.repo == nil || input.OperatorUserID == 0 {
		return nil
	}
	action := strings.TrimSpace(input.Action)
	if action == "" {
		return nil
	}
	return s.repo.Create(&models.AuthzAuditLog{
		OperatorUserID:   input.OperatorUserID,
		OperatorUsername: strings.TrimSpace(input.OperatorUsername),
		TargetUserID:     input.TargetUserID,
		TargetUsername:   strings.TrimSpace(input.TargetUsername),
		Action:           action,
		Role:             strings.TrimSpace(input.Role),
		RequestID:        strings.TrimSpace(input.RequestID),
		CreatedAt:        time.Now(),
	})
}

// ListForAdmin 管理端查询权限审计日志
func (s *AuthzAuditService) ListForAdmin(filter repository.AuthzAuditLogListFilter) ([]models.AuthzAuditLog, int64, error) {
	if s == nil || s.repo == nil {
		return []models.AuthzAuditLog{}, 0, nil
	}
	return s.repo.ListAdmin(filter)
}
