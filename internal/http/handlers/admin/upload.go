package admin

import (
	"github.com/blogicum/internal/http/response"
	"github.com/blogicum/internal/service"

	"github.com/gin-gonic/gin"
)

var uploadErrorRules = []mappedHandlerError{
	{Target: service.ErrUploadTooLarge, Code: response.CodeBadRequest, Key: "error.upload_too_large"},
	{Target: service.ErrUploadTypeNotAllowed, Code: response.CodeBadRequest, Key: "error.upload_type"},
	{Target: service.ErrUploadImageInvalid, Code: response.CodeBadRequest, Key: "error.upload_image_invalid"},
}

// UploadFile 上传图片，scene 为 post 或 avatar
func (h *Handler) UploadFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.upload_missing", nil)
		return
	}
	url, err := h.UploadService.SaveImage(c.Request.Context(), file, c.DefaultPostForm("scene", ""))
	if err != nil {
		respondWithMappedError(c, err, uploadErrorRules, response.CodeInternal, "error.upload_failed")
		return
	}
	response.Success(c, gin.H{
		"url":      url,
		"filename": file.Filename,
		"size":     file.Size,
	})
}
