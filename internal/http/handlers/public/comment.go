package public

import (
	"errors"

	handlershared "github.com/blogicum/internal/http/handlers/shared"
	"github.com/blogicum/internal/http/response"
	"github.com/blogicum/internal/service"

	"github.com/gin-gonic/gin"
)

// CommentRequest 评论表单
type CommentRequest struct {
	Text string `json:"text" form:"text"`
}

func commentRoute(c *gin.Context) (postID, commentID uint, ok bool) {
	postID, ok = handlershared.ParseUintParam(c, "post_id")
	if !ok {
		respondError(c, response.CodeNotFound, "error.post_not_found", nil)
		return 0, 0, false
	}
	commentID, ok = handlershared.ParseUintParam(c, "comment_id")
	if !ok {
		respondError(c, response.CodeNotFound, "error.comment_not_found", nil)
		return 0, 0, false
	}
	return postID, commentID, true
}

// AddComment 发表评论，成功后跳转文章详情
func (h *Handler) AddComment(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	postID, ok := handlershared.ParseUintParam(c, "post_id")
	if !ok {
		respondError(c, response.CodeNotFound, "error.post_not_found", nil)
		return
	}
	var req CommentRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	comment, err := h.CommentService.Add(postID, uid, req.Text)
	if err != nil {
		respondWithMappedError(c, err, commentErrorRules, response.CodeInternal, "error.save_failed")
		return
	}
	requestLog(c).Infow("comment_created", "comment_id", comment.ID, "post_id", postID)
	redirect(c, postDetailPath(postID))
}

// GetCommentForEdit 获取待编辑评论
func (h *Handler) GetCommentForEdit(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	postID, commentID, ok := commentRoute(c)
	if !ok {
		return
	}
	comment, err := h.CommentService.GetForEdit(postID, commentID, uid)
	if err != nil {
		h.respondCommentError(c, postID, err, "error.fetch_failed")
		return
	}
	response.Success(c, comment)
}

// UpdateComment 编辑评论
func (h *Handler) UpdateComment(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	postID, commentID, ok := commentRoute(c)
	if !ok {
		return
	}
	var req CommentRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if _, err := h.CommentService.Update(postID, commentID, uid, req.Text); err != nil {
		h.respondCommentError(c, postID, err, "error.save_failed")
		return
	}
	redirect(c, postDetailPath(postID))
}

// DeleteComment 删除评论
func (h *Handler) DeleteComment(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	postID, commentID, ok := commentRoute(c)
	if !ok {
		return
	}
	if err := h.CommentService.Delete(postID, commentID, uid); err != nil {
		h.respondCommentError(c, postID, err, "error.delete_failed")
		return
	}
	redirect(c, postDetailPath(postID))
}

func (h *Handler) respondCommentError(c *gin.Context, postID uint, err error, fallbackKey string) {
	if errors.Is(err, service.ErrNotOwner) {
		redirect(c, postDetailPath(postID))
		return
	}
	rules := []mappedHandlerError{{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.comment_not_found"}}
	respondWithMappedError(c, err, rules, response.CodeInternal, fallbackKey)
}
