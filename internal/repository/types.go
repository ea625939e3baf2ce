package repository

import "time"

// AdminPostListFilter 管理端文章列表过滤条件
type AdminPostListFilter struct {
	Page        int
	PageSize    int
	Search      string
	AuthorID    uint
	CategoryID  uint
	LocationID  uint
	IsPublished *bool
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// CommentListFilter 管理端评论列表过滤条件
type CommentListFilter struct {
	Page     int
	PageSize int
	PostID   uint
	AuthorID uint
	Search   string
}

// UserListFilter 用户列表过滤条件
type UserListFilter struct {
	Page     int
	PageSize int
	Keyword  string
	IsStaff  *bool
}

// UserLoginLogListFilter 登录日志过滤条件
type UserLoginLogListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Username    string
	Status      string
	ClientIP    string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// AuthzAuditLogListFilter 权限审计日志过滤条件
type AuthzAuditLogListFilter struct {
	Page           int
	PageSize       int
	OperatorUserID uint
	TargetUserID   uint
	Action         string
	Role           string
	CreatedFrom    *time.Time
	CreatedTo      *time.Time
}
