package router

import (
	"errors"
	"strings"

	"github.com/blogicum/internal/authz"
	"github.com/blogicum/internal/cache"
	handlershared "github.com/blogicum/internal/http/handlers/shared"
	"github.com/blogicum/internal/http/response"
	"github.com/blogicum/internal/logger"
	"github.com/blogicum/internal/repository"
	"github.com/blogicum/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	userIDKey      = "user_id"
	usernameKey    = "username"
	isStaffKey     = "is_staff"
	isSuperuserKey = "is_superuser"
)

var (
	errAuthHeaderMissing = errors.New("error.auth_header_missing")
	errAuthHeaderInvalid = errors.New("error.auth_header_invalid")
	errTokenInvalid      = errors.New("error.token_invalid")
	errTokenRevoked      = errors.New("error.token_revoked")
	errUserDisabled      = errors.New("error.user_disabled")
)

// tokenParser 由 service.UserAuthService 实现
type tokenParser interface {
	ParseUserJWT(tokenString string) (*service.UserJWTClaims, error)
}

// UserJWTAuthMiddleware 需登录接口：校验 Bearer Token 与鉴权快照
func UserJWTAuthMiddleware(parser tokenParser, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := authenticateUser(c, parser, userRepo)
		if err != nil {
			response.Unauthorized(c, handlershared.Message(err.Error()))
			c.Abort()
			return
		}
		bindUserContext(c, state)
		c.Next()
	}
}

// OptionalUserJWTMiddleware 可选登录接口：Token 有效时注入用户，否则按游客处理
func OptionalUserJWTMiddleware(parser tokenParser, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.TrimSpace(c.GetHeader("Authorization")) == "" {
			c.Next()
			return
		}
		if state, err := authenticateUser(c, parser, userRepo); err == nil {
			bindUserContext(c, state)
		}
		c.Next()
	}
}

func authenticateUser(c *gin.Context, parser tokenParser, userRepo repository.UserRepository) (*cache.UserAuthState, error) {
	if parser == nil || userRepo == nil {
		return nil, errTokenInvalid
	}
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, errAuthHeaderMissing
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if !(len(parts) == 2 && parts[0] == "Bearer") {
		return nil, errAuthHeaderInvalid
	}

	claims, err := parser.ParseUserJWT(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, errTokenInvalid
	}

	ctx := c.Request.Context()
	state, hit, cacheErr := cache.GetUserAuthState(ctx, claims.UserID)
	if cacheErr != nil || !hit || state == nil {
		user, err := userRepo.GetByID(claims.UserID)
		if err != nil || user == nil {
			return nil, errTokenInvalid
		}
		state = cache.BuildUserAuthState(user)
		_ = cache.SetUserAuthState(ctx, state)
	}

	if !state.IsActive {
		return nil, errUserDisabled
	}
	if claims.TokenVersion != state.TokenVersion || !isIssuedAfterInvalidBeforeUnix(claims.IssuedAt, state.TokenInvalidBefore) {
		return nil, errTokenRevoked
	}
	return state, nil
}

func bindUserContext(c *gin.Context, state *cache.UserAuthState) {
	c.Set(userIDKey, state.UserID)
	c.Set(usernameKey, state.Username)
	c.Set(isStaffKey, state.IsStaff)
	c.Set(isSuperuserKey, state.IsSuperuser)
}

// StaffMiddleware 仅 is_staff（或超级用户）可进入管理端
func StaffMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if contextFlag(c, isStaffKey) || contextFlag(c, isSuperuserKey) {
			c.Next()
			return
		}
		response.Forbidden(c, handlershared.Message("error.forbidden"))
		c.Abort()
	}
}

// AdminRBACMiddleware 管理端 RBAC 鉴权中间件，超级用户跳过校验
func AdminRBACMiddleware(authzService *authz.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if contextFlag(c, isSuperuserKey) {
			c.Next()
			return
		}
		if authzService == nil {
			logger.Errorw("admin_rbac_service_unavailable")
			response.Unauthorized(c, handlershared.Message("error.unauthorized"))
			c.Abort()
			return
		}

		userID := handlershared.OptionalContextUint(c, userIDKey)
		if userID == 0 {
			response.Unauthorized(c, handlershared.Message("error.unauthorized"))
			c.Abort()
			return
		}

		resource := c.FullPath()
		if strings.TrimSpace(resource) == "" {
			resource = c.Request.URL.Path
		}

		allowed, err := authzService.EnforceUser(userID, resource, c.Request.Method)
		if err != nil {
			logger.Errorw("admin_rbac_enforce_failed",
				"user_id", userID,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", err,
			)
			response.Unauthorized(c, handlershared.Message("error.unauthorized"))
			c.Abort()
			return
		}
		if !allowed {
			logger.Warnw("admin_rbac_permission_denied",
				"user_id", userID,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"resource", authz.NormalizeObject(resource),
			)
			response.Forbidden(c, handlershared.Message("error.forbidden"))
			c.Abort()
			return
		}
		c.Next()
	}
}

func contextFlag(c *gin.Context, key string) bool {
	value, ok := c.Get(key)
	if !ok {
		return false
	}
	flag, ok := value.(bool)
	return ok && flag
}

func isIssuedAfterInvalidBeforeUnix(issuedAt *jwt.NumericDate, invalidBeforeUnix int64) bool {
	if invalidBeforeUnix <= 0 {
		return true
	}
	if issuedAt == nil {
		return false
	}
	return issuedAt.Time.Unix() >= invalidBeforeUnix
}
