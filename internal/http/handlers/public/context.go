package public

import (
	"fmt"
	"net/http"
	"net/url"

	handlershared "github.com/blogicum/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const apiPrefix = "/api/v1"

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, "user_id", "error.user_id_invalid", "error.user_id_type_invalid")
}

// viewerID 可选登录接口的当前用户，未登录为 0
func viewerID(c *gin.Context) uint {
	return handlershared.OptionalContextUint(c, "user_id")
}

func postIndexPath() string {
	return apiPrefix + "/posts"
}

func postDetailPath(postID uint) string {
	return fmt.Sprintf("%s/posts/%d", apiPrefix, postID)
}

func profilePath(username string) string {
	return apiPrefix + "/profile/" + url.PathEscape(username)
}

// redirect 表单处理完成后跳转，与页面提交语义保持一致
func redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}
