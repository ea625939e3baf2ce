package shared

import (
	"errors"

	"github.com/blogicum/internal/http/response"
	"github.com/blogicum/internal/logger"
	"github.com/blogicum/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 按消息 key 返回错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, key string, err error) {
	RespondErrorWithMsg(c, code, Message(key), err)
}

// RespondErrorWithMsg 返回自定义消息错误响应，并在有原始错误时记录日志。
func RespondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}

// RespondValidation 校验失败时返回字段错误，等同于重新渲染表单。
func RespondValidation(c *gin.Context, err error) bool {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		response.ErrorWithData(c, response.CodeBadRequest, Message("error.validation"), gin.H{"fields": verr.Fields})
		return true
	}
	var perr interface {
		Key() string
		Args() []interface{}
	}
	if errors.As(err, &perr) {
		response.ErrorWithData(c, response.CodeBadRequest, Message(perr.Key(), perr.Args()...), gin.H{
			"fields": map[string]string{"password": perr.Key()},
		})
		return true
	}
	return false
}

// MappedError 业务错误到接口错误响应的映射。
type MappedError struct {
	Target error
	Code   int
	Key    string
}

// RespondMappedError 依次匹配映射表，未命中时使用兜底错误并记录原始错误。
func RespondMappedError(c *gin.Context, err error, rules []MappedError, fallbackCode int, fallbackKey string) {
	if RespondValidation(c, err) {
		return
	}
	for _, rule := range rules {
		if errors.Is(err, rule.Target) {
			RespondError(c, rule.Code, rule.Key, nil)
			return
		}
	}
	RespondError(c, fallbackCode, fallbackKey, err)
}
