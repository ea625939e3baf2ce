package service

import (
	"errors"
	"strings"
	"time"

	"github.com/blogicum/internal/models"
	"github.com/blogicum/internal/repository"
)

const defaultPostsPerPage = 10

type postCommentLister interface {
	ListForPost(postID uint) ([]models.Comment, error)
}

// PostService 文章业务服务
type PostService struct {
	postRepo     repository.PostRepository
	categoryRepo repository.CategoryRepository
	locationRepo repository.LocationRepository
	userRepo     repository.UserRepository
	comments     postCommentLister
	pageSize     int
	now          func() time.Time
}

// NewPostService 创建文章服务
func NewPostService(
	postRepo repository.PostRepository,
	categoryRepo repository.CategoryRepository,
	locationRepo repository.LocationRepository,
	userRepo repository.UserRepository,
	comments postCommentLister,
	pageSize int,
) *PostService {
	if pageSize <= 0 {
		pageSize = defaultPostsPerPage
	}
	return &PostService{
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		locationRepo: locationRepo,
		userRepo:     userRepo,
		comments:     comments,
		pageSize:     pageSize,
		now:          time.Now,
	}
}

// PostInput 创建/编辑文章输入
type PostInput struct {
	Title       string
	Text        string
	PubDate     *time.Time
	CategoryID  *uint
	LocationID  *uint
	Image       string
	IsPublished *bool
}

// PostDetail 文章详情（含评论）
type PostDetail struct {
	Post     models.Post      `json:"post"`
	Comments []models.Comment `json:"comments"`
}

// CategoryPosts 分类页
type CategoryPosts struct {
	Category models.Category   `json:"category"`
	Posts    Page[models.Post] `json:"posts"`
}

// ProfilePage 个人主页
type ProfilePage struct {
	Profile  models.User       `json:"profile"`
	FullName string            `json:"full_name"`
	Posts    Page[models.Post] `json:"posts"`
}

// PostAdminPatch 管理端行内编辑
type PostAdminPatch struct {
	IsPublished   *bool
	CategoryID    *uint
	ClearCategory bool
	LocationID    *uint
	ClearLocation bool
}

// ListIndex 首页：全部公开可见文章分页
func (s *PostService) ListIndex(page string) (Page[models.Post], error) {
	posts, err := s.postRepo.ListAll()
	if err != nil {
		return Page[models.Post]{}, err
	}
	return Paginate(FilterPosts(posts, s.now()), s.pageSize, page), nil
}

// GetDetail 文章详情，不可见时返回 ErrNotFound
func (s *PostService) GetDetail(postID, viewerID uint) (*PostDetail, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if post == nil || !CanViewPost(*post, viewerID, s.now()) {
		return nil, ErrNotFound
	}
	comments, err := s.comments.ListForPost(post.ID)
	if err != nil {
		return nil, err
	}
	return &PostDetail{Post: *post, Comments: comments}, nil
}

// ListCategory 分类页：分类需存在且已发布
func (s *PostService) ListCategory(slug, page string) (*CategoryPosts, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrNotFound
	}
	category, err := s.categoryRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if category == nil || !category.IsPublished {
		return nil, ErrNotFound
	}
	posts, err := s.postRepo.ListByCategory(category.ID)
	if err != nil {
		return nil, err
	}
	return &CategoryPosts{
		Category: *category,
		Posts:    Paginate(FilterPosts(posts, s.now()), s.pageSize, page),
	}, nil
}

// ListProfile 个人主页：本人可见全部文章，其他人仅公开可见文章
func (s *PostService) ListProfile(username string, viewerID uint, page string) (*ProfilePage, error) {
	user, err := s.userRepo.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	posts, err := s.postRepo.ListByAuthor(user.ID)
	if err != nil {
		return nil, err
	}
	return &ProfilePage{
		Profile:  *user,
		FullName: user.FullName(),
		Posts:    Paginate(ProfilePosts(posts, user.ID, viewerID, s.now()), s.pageSize, page),
	}, nil
}

// GetForEdit 获取待编辑文章，非作者返回 ErrNotOwner
func (s *PostService) GetForEdit(postID, actorID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	if !IsOwner(*post, actorID) {
		return nil, ErrNotOwner
	}
	return post, nil
}

// Create 创建文章，作者强制为当前用户
func (s *PostService) Create(authorID uint, input PostInput) (*models.Post, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	pubDate := s.now()
	if input.PubDate != nil {
		pubDate = *input.PubDate
	}
	isPublished := true
	if input.IsPublished != nil {
		isPublished = *input.IsPublished
	}
	post := &models.Post{
		Title:       strings.TrimSpace(input.Title),
		Text:        input.Text,
		PubDate:     pubDate,
		AuthorID:    authorID,
		CategoryID:  input.CategoryID,
		LocationID:  input.LocationID,
		Image:       strings.TrimSpace(input.Image),
		IsPublished: isPublished,
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

// Update 编辑文章，仅作者可操作
func (s *PostService) Update(postID, actorID uint, input PostInput) (*models.Post, error) {
	post, err := s.GetForEdit(postID, actorID)
	if err != nil {
		return nil, err
	}
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	post.Title = strings.TrimSpace(input.Title)
	post.Text = input.Text
	if input.PubDate != nil {
		post.PubDate = *input.PubDate
	}
	post.CategoryID = input.CategoryID
	post.LocationID = input.LocationID
	if image := strings.TrimSpace(input.Image); image != "" {
		post.Image = image
	}
	if input.IsPublished != nil {
		post.IsPublished = *input.IsPublished
	}
	post.Category = nil
	post.Location = nil
	post.Author = nil
	if err := s.postRepo.Update(post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete 删除文章及其评论，仅作者可操作
func (s *PostService) Delete(postID, actorID uint) error {
	if _, err := s.GetForEdit(postID, actorID); err != nil {
		return err
	}
	return s.postRepo.Delete(postID)
}

// ListAdmin 管理端文章列表
func (s *PostService) ListAdmin(filter repository.AdminPostListFilter) ([]models.Post, int64, error) {
	return s.postRepo.ListAdmin(filter)
}

// AdminPatch 管理端行内修改发布状态、分类、地点
func (s *PostService) AdminPatch(postID uint, patch PostAdminPatch) (*models.Post, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}

	updates := map[string]interface{}{}
	if patch.IsPublished != nil {
		updates["is_published"] = *patch.IsPublished
	}
	switch {
	case patch.ClearCategory:
		updates["category_id"] = nil
	case patch.CategoryID != nil:
		if err := s.ensureCategory(*patch.CategoryID); err != nil {
			return nil, err
		}
		updates["category_id"] = *patch.CategoryID
	}
	switch {
	case patch.ClearLocation:
		updates["location_id"] = nil
	case patch.LocationID != nil:
		if err := s.ensureLocation(*patch.LocationID); err != nil {
			return nil, err
		}
		updates["location_id"] = *patch.LocationID
	}
	if err := s.postRepo.UpdateFields(postID, updates); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(postID)
}

// AdminDelete 管理端删除文章
func (s *PostService) AdminDelete(postID uint) error {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrNotFound
	}
	return s.postRepo.Delete(postID)
}

func (s *PostService) validateInput(input PostInput) error {
	v := &ValidationError{}
	validateTitle(v, "title", input.Title)
	if strings.TrimSpace(input.Text) == "" {
		v.Add("text", "required")
	}
	if input.CategoryID != nil {
		if err := s.ensureCategory(*input.CategoryID); err != nil {
			if !errors.Is(err, ErrCategoryNotFound) {
				return err
			}
			v.Add("category", "not_found")
		}
	}
	if input.LocationID != nil {
		if err := s.ensureLocation(*input.LocationID); err != nil {
			if !errors.Is(err, ErrLocationNotFound) {
				return err
			}
			v.Add("location", "not_found")
		}
	}
	return v.OrNil()
}

func (s *PostService) ensureCategory(id uint) error {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	return nil
}

func (s *PostService) ensureLocation(id uint) error {
	location, err := s.locationRepo.GetByID(id)
	if err != nil {
		return err
	}
	if location == nil {
		return ErrLocationNotFound
	}
	return nil
}
