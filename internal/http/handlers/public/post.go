package public

import (
	"errors"
	"strings"
	"time"

	"github.com/blogicum/internal/constants"
	handlershared "github.com/blogicum/internal/http/handlers/shared"
	"github.com/blogicum/internal/http/response"
	"github.com/blogicum/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// PostRequest 文章表单，支持 JSON 与 multipart（附带 image 文件）
type PostRequest struct {
	Title       string     `json:"title" form:"title"`
	Text        string     `json:"text" form:"text"`
	PubDate     *time.Time `json:"pub_date" form:"pub_date" time_format:"2006-01-02T15:04"`
	CategoryID  *uint      `json:"category_id" form:"category_id"`
	LocationID  *uint      `json:"location_id" form:"location_id"`
	IsPublished *bool      `json:"is_published" form:"is_published"`
}

func (r PostRequest) toInput(image string) service.PostInput {
	pubDate := r.PubDate
	if pubDate != nil && pubDate.IsZero() {
		pubDate = nil
	}
	return service.PostInput{
		Title:       r.Title,
		Text:        r.Text,
		PubDate:     pubDate,
		CategoryID:  r.CategoryID,
		LocationID:  r.LocationID,
		Image:       image,
		IsPublished: r.IsPublished,
	}
}

// ListPosts 首页文章列表
func (h *Handler) ListPosts(c *gin.Context) {
	page, err := h.PostService.ListIndex(c.Query("page"))
	if err != nil {
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}
	response.Success(c, page)
}

// GetPost 文章详情（含评论）
func (h *Handler) GetPost(c *gin.Context) {
	postID, ok := handlershared.ParseUintParam(c, "post_id")
	if !ok {
		respondError(c, response.CodeNotFound, "error.post_not_found", nil)
		return
	}
	detail, err := h.PostService.GetDetail(postID, viewerID(c))
	if err != nil {
		respondWithMappedError(c, err, postErrorRules, response.CodeInternal, "error.fetch_failed")
		return
	}
	response.Success(c, detail)
}

// GetCategoryPosts 分类文章列表
func (h *Handler) GetCategoryPosts(c *gin.Context) {
	result, err := h.PostService.ListCategory(c.Param("slug"), c.Query("page"))
	if err != nil {
		rules := []mappedHandlerError{{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.category_not_found"}}
		respondWithMappedError(c, err, rules, response.CodeInternal, "error.fetch_failed")
		return
	}
	response.Success(c, result)
}

// GetProfile 用户主页
func (h *Handler) GetProfile(c *gin.Context) {
	result, err := h.PostService.ListProfile(c.Param("username"), viewerID(c), c.Query("page"))
	if err != nil {
		rules := []mappedHandlerError{{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.user_not_found"}}
		respondWithMappedError(c, err, rules, response.CodeInternal, "error.fetch_failed")
		return
	}
	response.Success(c, result)
}

// CreatePost 发布文章，成功后跳转到作者主页
func (h *Handler) CreatePost(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req PostRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	image, ok := h.saveAttachedImage(c)
	if !ok {
		return
	}

	post, err := h.PostService.Create(uid, req.toInput(image))
	if err != nil {
		respondWithMappedError(c, err, postErrorRules, response.CodeInternal, "error.save_failed")
		return
	}
	requestLog(c).Infow("post_created", "post_id", post.ID, "author_id", uid)

	author, err := h.UserAuthService.GetUserByID(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}
	redirect(c, profilePath(author.Username))
}

// GetPostForEdit 获取待编辑文章，非作者跳转回详情
func (h *Handler) GetPostForEdit(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	postID, ok := handlershared.ParseUintParam(c, "post_id")
	if !ok {
		respondError(c, response.CodeNotFound, "error.post_not_found", nil)
		return
	}
	post, err := h.PostService.GetForEdit(postID, uid)
	if err != nil {
		if errors.Is(err, service.ErrNotOwner) {
			redirect(c, postDetailPath(postID))
			return
		}
		respondWithMappedError(c, err, postErrorRules, response.CodeInternal, "error.fetch_failed")
		return
	}
	response.Success(c, post)
}

// UpdatePost 编辑文章，成功或非作者均跳转回详情
func (h *Handler) UpdatePost(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	postID, ok := handlershared.ParseUintParam(c, "post_id")
	if !ok {
		respondError(c, response.CodeNotFound, "error.post_not_found", nil)
		return
	}
	if _, err := h.PostService.GetForEdit(postID, uid); err != nil {
		if errors.Is(err, service.ErrNotOwner) {
			redirect(c, postDetailPath(postID))
			return
		}
		respondWithMappedError(c, err, postErrorRules, response.CodeInternal, "error.fetch_failed")
		return
	}

	var req PostRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	image, ok := h.saveAttachedImage(c)
	if !ok {
		return
	}
	if _, err := h.PostService.Update(postID, uid, req.toInput(image)); err != nil {
		if errors.Is(err, service.ErrNotOwner) {
			redirect(c, postDetailPath(postID))
			return
		}
		respondWithMappedError(c, err, postErrorRules, response.CodeInternal, "error.save_failed")
		return
	}
	redirect(c, postDetailPath(postID))
}

// DeletePost 删除文章，成功跳转首页，非作者跳转回详情
func (h *Handler) DeletePost(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	postID, ok := handlershared.ParseUintParam(c, "post_id")
	if !ok {
		respondError(c, response.CodeNotFound, "error.post_not_found", nil)
		return
	}
	if err := h.PostService.Delete(postID, uid); err != nil {
		if errors.Is(err, service.ErrNotOwner) {
			redirect(c, postDetailPath(postID))
			return
		}
		respondWithMappedError(c, err, postErrorRules, response.CodeInternal, "error.delete_failed")
		return
	}
	requestLog(c).Infow("post_deleted", "post_id", postID, "author_id", uid)
	redirect(c, postIndexPath())
}

// saveAttachedImage 处理 multipart 表单中的 image 字段，未附带时返回空
func (h *Handler) saveAttachedImage(c *gin.Context) (string, bool) {
	if !strings.HasPrefix(c.ContentType(), binding.MIMEMultipartPOSTForm) {
		return "", true
	}
	file, err := c.FormFile("image")
	if err != nil {
		return "", true
	}
	url, err := h.UploadService.SaveImage(c.Request.Context(), file, constants.UploadScenePost)
	if err != nil {
		respondWithMappedError(c, err, uploadErrorRules, response.CodeInternal, "error.upload_failed")
		return "", false
	}
	return url, true
}
