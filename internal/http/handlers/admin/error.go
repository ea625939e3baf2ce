package admin

import (
	handlershared "github.com/blogicum/internal/http/handlers/shared"
	"github.com/blogicum/internal/http/response"
	"github.com/blogicum/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type mappedHandlerError = handlershared.MappedError

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	handlershared.RespondMappedError(c, err, rules, fallbackCode, fallbackKey)
}

func notFoundRule(key string) []mappedHandlerError {
	return []mappedHandlerError{{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: key}}
}
