package admin

import (
	"strings"

	handlershared "github.com/blogicum/internal/http/handlers/shared"
	"github.com/blogicum/internal/http/response"
	"github.com/blogicum/internal/repository"
	"github.com/blogicum/internal/service"

	"github.com/gin-gonic/gin"
)

// PostPatchRequest 行内编辑：发布状态、分类、地点；分类/地点传 0 表示清空
type PostPatchRequest struct {
	IsPublished *bool `json:"is_published"`
	CategoryID  *uint `json:"category_id"`
	LocationID  *uint `json:"location_id"`
}

func (r PostPatchRequest) toPatch() service.PostAdminPatch {
	patch := service.PostAdminPatch{IsPublished: r.IsPublished}
	if r.CategoryID != nil {
		if *r.CategoryID == 0 {
			patch.ClearCategory = true
		} else {
			patch.CategoryID = r.CategoryID
		}
	}
	if r.LocationID != nil {
		if *r.LocationID == 0 {
			patch.ClearLocation = true
		} else {
			patch.LocationID = r.LocationID
		}
	}
	return patch
}

var adminPostErrorRules = []mappedHandlerError{
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.post_not_found"},
	{Target: service.ErrCategoryNotFound, Code: response.CodeBadRequest, Key: "error.category_not_found"},
	{Target: service.ErrLocationNotFound, Code: response.CodeBadRequest, Key: "error.location_not_found"},
}

// GetAdminPosts 文章列表，支持按标题/正文搜索与创建时间筛选
func (h *Handler) GetAdminPosts(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)

	authorID, err := parseUintQuery(c, "author_id")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	categoryID, err := parseUintQuery(c, "category_id")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	locationID, err := parseUintQuery(c, "location_id")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	isPublished, err := parseBoolQuery(c, "is_published")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	createdFrom, createdTo, ok := parseCreatedRange(c)
	if !ok {
		return
	}

	posts, total, err := h.PostService.ListAdmin(repository.AdminPostListFilter{
		Page:        page,
		PageSize:    pageSize,
		Search:      strings.TrimSpace(c.Query("search")),
		AuthorID:    authorID,
		CategoryID:  categoryID,
		LocationID:  locationID,
		IsPublished: isPublished,
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, posts, response.BuildPagination(page, pageSize, total))
}

// PatchAdminPost 行内修改文章
func (h *Handler) PatchAdminPost(c *gin.Context) {
	id, ok := parseIDParam(c, "error.post_not_found")
	if !ok {
		return
	}
	var req PostPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	post, err := h.PostService.AdminPatch(id, req.toPatch())
	if err != nil {
		respondWithMappedError(c, err, adminPostErrorRules, response.CodeInternal, "error.save_failed")
		return
	}
	requestLog(c).Infow("admin_post_patched", "post_id", id, "operator_id", currentUserID(c))
	response.Success(c, post)
}

// DeleteAdminPost 删除文章及其评论
func (h *Handler) DeleteAdminPost(c *gin.Context) {
	id, ok := parseIDParam(c, "error.post_not_found")
	if !ok {
		return
	}
	if err := h.PostService.AdminDelete(id); err != nil {
		respondWithMappedError(c, err, adminPostErrorRules, response.CodeInternal, "error.delete_failed")
		return
	}
	requestLog(c).Infow("admin_post_deleted", "post_id", id, "operator_id", currentUserID(c))
	response.Success(c, nil)
}
