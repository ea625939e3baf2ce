package models

import "time"

// User 用户表
type User struct {
	ID                 uint       `gorm:"primarykey" json:"id"`                                   // 主键
	Username           string     `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"` // 用户名
	FirstName          string     `gorm:"type:varchar(150);not null;default:''" json:"first_name"`
	LastName           string     `gorm:"type:varchar(150);not null;default:''" json:"last_name"`
	Email              string     `gorm:"type:varchar(254);index;not null;default:''" json:"email"`
	PasswordHash       string     `gorm:"not null" json:"-"`                            // 密码哈希（不返回给前端）
	IsStaff            bool       `gorm:"not null;default:false;index" json:"is_staff"` // 可进入管理后台
	IsSuperuser        bool       `gorm:"not null;default:false" json:"is_superuser"`   // 免权限校验
	IsActive           bool       `gorm:"not null" json:"is_active"`                    // 账号是否可用
	TokenVersion       uint64     `gorm:"not null;default:0" json:"-"`                  // Token 版本（用于全量失效）
	TokenInvalidBefore *time.Time `gorm:"index" json:"-"`                               // 该时间点前签发的 Token 失效
	LastLoginAt        *time.Time `json:"last_login_at"`                                // 最后登录时间
	CreatedAt          time.Time  `gorm:"index" json:"date_joined"`                     // 注册时间
	UpdatedAt          time.Time  `json:"updated_at"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// FullName 返回姓名，均为空时返回用户名
func (u User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	}
	return u.Username
}
