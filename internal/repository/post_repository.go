package repository

import (
	"errors"

	"github.com/blogicum/internal/models"

	"gorm.io/gorm"
)

const postWithCommentCount = "posts.*, (SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comment_count"

// PostRepository 文章数据访问接口
// 列表方法返回完整集合（按 pub_date 倒序、同时间按 id 正序），可见性由服务层判定。
type PostRepository interface {
	ListAll() ([]models.Post, error)
	ListByCategory(categoryID uint) ([]models.Post, error)
	ListByAuthor(authorID uint) ([]models.Post, error)
	ListAdmin(filter AdminPostListFilter) ([]models.Post, int64, error)
	GetByID(id uint) (*models.Post, error)
	Create(post *models.Post) error
	Update(post *models.Post) error
	UpdateFields(id uint, updates map[string]interface{}) error
	Delete(id uint) error
}

// GormPostRepository GORM 实现
type GormPostRepository struct {
	db *gorm.DB
}

// NewPostRepository 创建文章仓库
func NewPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// withRelations 预加载作者、分类、地点并带出评论数
func (r *GormPostRepository) withRelations() *gorm.DB {
	return r.db.Model(&models.Post{}).
		Select(postWithCommentCount).
		Preload("Author").
		Preload("Category").
		Preload("Location")
}

func (r *GormPostRepository) list(query *gorm.DB) ([]models.Post, error) {
	posts := make([]models.Post, 0)
	if err := query.Order("posts.pub_date DESC, posts.id ASC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// ListAll 全部文章
func (r *GormPostRepository) ListAll() ([]models.Post, error) {
	return r.list(r.withRelations())
}

// ListByCategory 某分类下的全部文章
func (r *GormPostRepository) ListByCategory(categoryID uint) ([]models.Post, error) {
	return r.list(r.withRelations().Where("posts.category_id = ?", categoryID))
}

// ListByAuthor 某作者的全部文章
func (r *GormPostRepository) ListByAuthor(authorID uint) ([]models.Post, error) {
	return r.list(r.withRelations().Where("posts.author_id = ?", authorID))
}

// ListAdmin 管理端文章列表，支持按正文/标题搜索与创建时间过滤
func (r *GormPostRepository) ListAdmin(filter AdminPostListFilter) ([]models.Post, int64, error) {
	query := r.db.Model(&models.Post{})
	query = applyKeyword(query, filter.Search, "posts.title", "posts.text")
	if filter.AuthorID != 0 {
		query = query.Where("posts.author_id = ?", filter.AuthorID)
	}
	if filter.CategoryID != 0 {
		query = query.Where("posts.category_id = ?", filter.CategoryID)
	}
	if filter.LocationID != 0 {
		query = query.Where("posts.location_id = ?", filter.LocationID)
	}
	if filter.IsPublished != nil {
		query = query.Where("posts.is_published = ?", *filter.IsPublished)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("posts.created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("posts.created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize).
		Select(postWithCommentCount).
		Preload("Author").
		Preload("Category").
		Preload("Location")

	posts := make([]models.Post, 0)
	if err := query.Order("posts.created_at DESC, posts.id DESC").Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// GetByID 根据 ID 获取文章（含关联与评论数）
func (r *GormPostRepository) GetByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.withRelations().Where("posts.id = ?", id).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// Create 创建文章
func (r *GormPostRepository) Create(post *models.Post) error {
	return r.db.Omit("Author", "Category", "Location").Create(post).Error
}

// Update 更新文章
func (r *GormPostRepository) Update(post *models.Post) error {
	return r.db.Omit("Author", "Category", "Location").Save(post).Error
}

// UpdateFields 更新指定字段
func (r *GormPostRepository) UpdateFields(id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&models.Post{}).Where("id = ?", id).Updates(updates).Error
}

// Delete 删除文章及其评论
func (r *GormPostRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
}
