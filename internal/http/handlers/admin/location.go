package admin

import (
	"github.com/blogicum/internal/http/response"
	"github.com/blogicum/internal/service"

	"github.com/gin-gonic/gin"
)

// LocationRequest 地点表单
type LocationRequest struct {
	Name        string `json:"name"`
	IsPublished *bool  `json:"is_published"`
}

// GetAdminLocations 地点列表
func (h *Handler) GetAdminLocations(c *gin.Context) {
	locations, err := h.LocationService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}
	response.Success(c, locations)
}

// CreateLocation 创建地点
func (h *Handler) CreateLocation(c *gin.Context) {
	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	location, err := h.LocationService.Create(service.LocationInput{Name: req.Name, IsPublished: req.IsPublished})
	if err != nil {
		respondWithMappedError(c, err, nil, response.CodeInternal, "error.save_failed")
		return
	}
	response.Success(c, location)
}

// UpdateLocation 更新地点
func (h *Handler) UpdateLocation(c *gin.Context) {
	id, ok := parseIDParam(c, "error.location_not_found")
	if !ok {
		return
	}
	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	location, err := h.LocationService.Update(id, service.LocationInput{Name: req.Name, IsPublished: req.IsPublished})
	if err != nil {
		respondWithMappedError(c, err, notFoundRule("error.location_not_found"), response.CodeInternal, "error.save_failed")
		return
	}
	response.Success(c, location)
}

// DeleteLocation 删除地点，关联文章的地点置空
func (h *Handler) DeleteLocation(c *gin.Context) {
	id, ok := parseIDParam(c, "error.location_not_found")
	if !ok {
		return
	}
	if err := h.LocationService.Delete(id); err != nil {
		respondWithMappedError(c, err, notFoundRule("error.location_not_found"), response.CodeInternal, "error.delete_failed")
		return
	}
	requestLog(c).Infow("admin_location_deleted", "location_id", id)
	response.Success(c, nil)
}
