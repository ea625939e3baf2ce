package models

import "time"

// Post 博客文章表
type Post struct {
	ID          uint      `gorm:"primarykey" json:"id"`                               // 主键
	Title       string    `gorm:"type:varchar(256);not null" json:"title"`            // 标题
	Text        string    `gorm:"type:text;not null" json:"text"`                     // 正文
	PubDate     time.Time `gorm:"index;not null" json:"pub_date"`                     // 发布时间（可为未来时间，即定时发布）
	AuthorID    uint      `gorm:"index;not null" json:"author_id"`                    // 作者
	LocationID  *uint     `gorm:"index" json:"location_id"`                           // 地点（可空）
	CategoryID  *uint     `gorm:"index" json:"category_id"`                           // 分类（可空）
	Image       string    `gorm:"type:varchar(500);not null;default:''" json:"image"` // 图片路径或 URL
	IsPublished bool      `gorm:"not null;index" json:"is_published"`                 // 是否发布
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                            // 创建时间
	Author      *User     `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	Location    *Location `gorm:"foreignKey:LocationID;constraint:OnDelete:SET NULL" json:"location,omitempty"`
	Category    *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	// CommentCount 只读派生字段，由查询的子查询填充
	CommentCount int64 `gorm:"->;-:migration" json:"comment_count"`
}

// TableName 指定表名
func (Post) TableName() string {
	return "posts"
}

// OwnerID 返回文章作者
func (p Post) OwnerID() uint {
	return p.AuthorID
}

// Comment 文章评论表
type Comment struct {
	ID        uint      `gorm:"primarykey" json:"id"`            // 主键
	Text      string    `gorm:"type:text;not null" json:"text"`  // 内容
	PostID    uint      `gorm:"index;not null" json:"post_id"`   // 所属文章
	AuthorID  uint      `gorm:"index;not null" json:"author_id"` // 作者
	CreatedAt time.Time `gorm:"index" json:"created_at"`         // 创建时间
	Author    *User     `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	Post      *Post     `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName 指定表名
func (Comment) TableName() string {
	return "comments"
}

// OwnerID 返回评论作者
func (c Comment) OwnerID() uint {
	return c.AuthorID
}
