package models

import "time"

// Category 文章分类表
type Category struct {
	ID          uint      `gorm:"primarykey" json:"id"`                              // 主键
	Title       string    `gorm:"type:varchar(256);not null" json:"title"`           // 标题
	Description string    `gorm:"type:text;not null;default:''" json:"description"`  // 描述
	Slug        string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"slug"` // 唯一标识（字母、数字、-、_）
	IsPublished bool      `gorm:"not null;index" json:"is_published"`                // 是否发布
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                           // 创建时间
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}

// Location 地点表
type Location struct {
	ID          uint      `gorm:"primarykey" json:"id"`                   // 主键
	Name        string    `gorm:"type:varchar(256);not null" json:"name"` // 名称
	IsPublished bool      `gorm:"not null;index" json:"is_published"`     // 是否发布
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                // 创建时间
}

// TableName 指定表名
func (Location) TableName() string {
	return "locations"
}
