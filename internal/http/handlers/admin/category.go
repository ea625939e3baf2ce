package admin

import (
	"github.com/blogicum/internal/http/response"
	"github.com/blogicum/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryRequest 分类表单
type CategoryRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Slug        string `json:"slug"`
	IsPublished *bool  `json:"is_published"`
}

func (r CategoryRequest) toInput() service.CategoryInput {
	return service.CategoryInput{
		Title:       r.Title,
		Description: r.Description,
		Slug:        r.Slug,
		IsPublished: r.IsPublished,
	}
}

var categoryErrorRules = []mappedHandlerError{
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.category_not_found"},
	{Target: service.ErrSlugExists, Code: response.CodeBadRequest, Key: "error.slug_exists"},
}

// GetAdminCategories 分类列表（含未发布）
func (h *Handler) GetAdminCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}
	response.Success(c, categories)
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	category, err := h.CategoryService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		respondWithMappedError(c, err, categoryErrorRules, response.CodeInternal, "error.save_failed")
		return
	}
	requestLog(c).Infow("admin_category_created", "category_id", category.ID, "slug", category.Slug)
	response.Success(c, category)
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "error.category_not_found")
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	category, err := h.CategoryService.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, categoryErrorRules, response.CodeInternal, "error.save_failed")
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除分类，关联文章的分类置空
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "error.category_not_found")
	if !ok {
		return
	}
	if err := h.CategoryService.Delete(c.Request.Context(), id); err != nil {
		respondWithMappedError(c, err, categoryErrorRules, response.CodeInternal, "error.delete_failed")
		return
	}
	requestLog(c).Infow("admin_category_deleted", "category_id", id)
	response.Success(c, nil)
}
