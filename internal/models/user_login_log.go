package models

import "time"

// UserLoginLog 用户登录日志
// 说明：记录登录成功或失败行为，供管理后台审计。
type UserLoginLog struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	UserID      uint      `gorm:"index" json:"user_id"` // 失败时可为0
	Username    string    `gorm:"type:varchar(150);index;not null" json:"username"`
	Status      string    `gorm:"type:varchar(16);index;not null" json:"status"`
	FailReason  string    `gorm:"type:varchar(64);index" json:"fail_reason"`
	ClientIP    string    `gorm:"type:varchar(64);index" json:"client_ip"`
	UserAgent   string    `gorm:"type:text" json:"user_agent"`
	LoginSource string    `gorm:"type:varchar(32);index" json:"login_source"`
	RequestID   string    `gorm:"type:varchar(64);index" json:"request_id"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

// TableName 指定表名
func (UserLoginLog) TableName() string {
	return "user_login_logs"
}
