package repository

import (
	"errors"

	"github.com/blogicum/internal/models"

	"gorm.io/gorm"
)

// CommentRepository 评论数据访问接口
type CommentRepository interface {
	ListByPost(postID uint) ([]models.Comment, error)
	ListAdmin(filter CommentListFilter) ([]models.Comment, int64, error)
	GetByID(id uint) (*models.Comment, error)
	Create(comment *models.Comment) error
	Update(comment *models.Comment) error
	Delete(id uint) error
}

// GormCommentRepository GORM 实现
type GormCommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository 创建评论仓库
func NewCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// ListByPost 按创建时间正序返回文章评论
func (r *GormCommentRepository) ListByPost(postID uint) ([]models.Comment, error) {
	comments := make([]models.Comment, 0)
	err := r.db.Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// ListAdmin 管理端评论列表
func (r *GormCommentRepository) ListAdmin(filter CommentListFilter) ([]models.Comment, int64, error) {
	query := r.db.Model(&models.Comment{})
	query = applyKeyword(query, filter.Search, "text")
	if filter.PostID != 0 {
		query = query.Where("post_id = ?", filter.PostID)
	}
	if filter.AuthorID != 0 {
		query = query.Where("author_id = ?", filter.AuthorID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	comments := make([]models.Comment, 0)
	if err := query.Preload("Author").Order("id DESC").Find(&comments).Error; err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

// GetByID 根据 ID 获取评论
func (r *GormCommentRepository) GetByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.Preload("Author").First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

// Create 创建评论
func (r *GormCommentRepository) Create(comment *models.Comment) error {
	return r.db.Omit("Author", "Post").Create(comment).Error
}

// Update 更新评论
func (r *GormCommentRepository) Update(comment *models.Comment) error {
	return r.db.Omit("Author", "Post").Save(comment).Error
}

// Delete 删除评论
func (r *GormCommentRepository) Delete(id uint) error {
	return r.db.Delete(&models.Comment{}, id).Error
}
