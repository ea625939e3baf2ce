package service

import (
	"context"
	"strings"

	"github.com/blogicum/internal/cache"
	"github.com/blogicum/internal/logger"
	"github.com/blogicum/internal/models"
	"github.com/blogicum/internal/repository"
)

// CategoryService 分类业务服务
type CategoryService struct {
	repo repository.CategoryRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(repo repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// CategoryInput 创建/更新分类输入
type CategoryInput struct {
	Title       string
	Description string
	Slug        string
	IsPublished *bool
}

// ListPublic 公开分类列表，优先读取 Redis 缓存
func (s *CategoryService) ListPublic(ctx context.Context) ([]models.Category, error) {
	var cached []models.Category
	hit, err := cache.GetPublicCategories(ctx, &cached)
	if err != nil {
		logger.Warnw("category_cache_read_failed", "error", err)
	}
	if hit {
		return cached, nil
	}

	categories, err := s.repo.List(true)
	if err != nil {
		return nil, err
	}
	if err := cache.SetPublicCategories(ctx, categories); err != nil {
		logger.Warnw("category_cache_write_failed", "error", err)
	}
	return categories, nil
}

// List 管理端分类列表
func (s *CategoryService) List() ([]models.Category, error) {
	return s.repo.List(false)
}

// Create 创建分类
func (s *CategoryService) Create(ctx context.Context, input CategoryInput) (*models.Category, error) {
	category := &models.Category{IsPublished: true}
	if err := s.apply(category, input, nil); err != nil {
		return nil, err
	}
	if err := s.repo.Create(category); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return category, nil
}

// Update 更新分类
func (s *CategoryService) Update(ctx context.Context, id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	if err := s.apply(category, input, &id); err != nil {
		return nil, err
	}
	if err := s.repo.Update(category); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return category, nil
}

// Delete 删除分类，引用它的文章保留且分类置空
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CategoryService) apply(category *models.Category, input CategoryInput, excludeID *uint) error {
	slug := strings.TrimSpace(input.Slug)
	v := &ValidationError{}
	validateTitle(v, "title", input.Title)
	validateSlug(v, slug)
	if err := v.OrNil(); err != nil {
		return err
	}

	count, err := s.repo.CountBySlug(slug, excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrSlugExists
	}

	category.Title = strings.TrimSpace(input.Title)
	category.Description = input.Description
	category.Slug = slug
	if input.IsPublished != nil {
		category.IsPublished = *input.IsPublished
	}
	return nil
}

func (s *CategoryService) invalidate(ctx context.Context) {
	if err := cache.InvalidatePublicCategories(ctx); err != nil {
		logger.Warnw("category_cache_invalidate_failed", "error", err)
	}
}
