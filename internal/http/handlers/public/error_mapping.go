package public

import (
	handlershared "github.com/blogicum/internal/http/handlers/shared"
	"github.com/blogicum/internal/http/response"
	"github.com/blogicum/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError = handlershared.MappedError

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	handlershared.RespondMappedError(c, err, rules, fallbackCode, fallbackKey)
}

var postErrorRules = []mappedHandlerError{
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.post_not_found"},
	{Target: service.ErrCategoryNotFound, Code: response.CodeBadRequest, Key: "error.category_not_found"},
	{Target: service.ErrLocationNotFound, Code: response.CodeBadRequest, Key: "error.location_not_found"},
}

var commentErrorRules = []mappedHandlerError{
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.post_not_found"},
}

var uploadErrorRules = []mappedHandlerError{
	{Target: service.ErrUploadTooLarge, Code: response.CodeBadRequest, Key: "error.upload_too_large"},
	{Target: service.ErrUploadTypeNotAllowed, Code: response.CodeBadRequest, Key: "error.upload_type"},
	{Target: service.ErrUploadImageInvalid, Code: response.CodeBadRequest, Key: "error.upload_image_invalid"},
}

var captchaErrorRules = []mappedHandlerError{
	{Target: service.ErrCaptchaRequired, Code: response.CodeBadRequest, Key: "error.captcha_required"},
	{Target: service.ErrCaptchaInvalid, Code: response.CodeBadRequest, Key: "error.captcha_invalid"},
	{Target: service.ErrCaptchaConfigInvalid, Code: response.CodeInternal, Key: "error.captcha_config_invalid"},
}

var accountErrorRules = concatMappedHandlerErrors(captchaErrorRules, []mappedHandlerError{
	{Target: service.ErrUsernameExists, Code: response.CodeBadRequest, Key: "error.username_exists"},
	{Target: service.ErrInvalidCredentials, Code: response.CodeUnauthorized, Key: "error.invalid_credentials"},
	{Target: service.ErrInvalidPassword, Code: response.CodeBadRequest, Key: "error.invalid_password"},
	{Target: service.ErrUserDisabled, Code: response.CodeUnauthorized, Key: "error.user_disabled"},
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.user_not_found"},
})

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}
