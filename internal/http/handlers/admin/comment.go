package admin

import (
	"strings"

	handlershared "github.com/blogicum/internal/http/handlers/shared"
	"github.com/blogicum/internal/http/response"
	"github.com/blogicum/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetAdminComments 评论审核列表
func (h *Handler) GetAdminComments(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)
	postID, err := parseUintQuery(c, "post_id")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	authorID, err := parseUintQuery(c, "author_id")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	comments, total, err := h.CommentService.ListAdmin(repository.CommentListFilter{
		Page:     page,
		PageSize: pageSize,
		PostID:   postID,
		AuthorID: authorID,
		Search:   strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, comments, response.BuildPagination(page, pageSize, total))
}

// DeleteAdminComment 删除评论
func (h *Handler) DeleteAdminComment(c *gin.Context) {
	id, ok := parseIDParam(c, "error.comment_not_found")
	if !ok {
		return
	}
	if err := h.CommentService.AdminDelete(id); err != nil {
		respondWithMappedError(c, err, notFoundRule("error.comment_not_found"), response.CodeInternal, "error.delete_failed")
		return
	}
	requestLog(c).Infow("admin_comment_deleted", "comment_id", id, "operator_id", currentUserID(c))
	response.Success(c, nil)
}
