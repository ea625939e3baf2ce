package public

import (
	"github.com/blogicum/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetCategories 公开分类列表（仅已发布）
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.CategoryService.ListPublic(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}
	response.Success(c, categories)
}

// GetLocations 地点列表（仅已发布），供发帖表单选择
func (h *Handler) GetLocations(c *gin.Context) {
	locations, err := h.LocationService.ListPublished()
	if err != nil {
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}
	response.Success(c, locations)
}
