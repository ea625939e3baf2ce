package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/blogicum/internal/authz"
	"github.com/blogicum/internal/cache"
	"github.com/blogicum/internal/config"
	adminhandlers "github.com/blogicum/internal/http/handlers/admin"
	publichandlers "github.com/blogicum/internal/http/handlers/public"
	"github.com/blogicum/internal/http/response"
	"github.com/blogicum/internal/logger"
	"github.com/blogicum/internal/provider"

	"github.com/gin-gonic/gin"
)

const defaultRedisPrefix = "blogicum"

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = defaultRedisPrefix
	}
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.login_too_many",
	}
	loginLimiter := RateLimitMiddleware(cache.Client(), loginRule, KeyByIPAndJSONField("username"))

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(TracingMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))
	r.Use(MetricsMiddleware())

	if strings.EqualFold(strings.TrimSpace(cfg.Upload.Driver), "local") || strings.TrimSpace(cfg.Upload.Driver) == "" {
		uploadDir := strings.TrimSpace(cfg.Upload.Dir)
		if uploadDir == "" {
			uploadDir = "./uploads"
		}
		r.Static("/uploads", uploadDir)
	}

	apiV1 := r.Group("/api/v1")
	{
		// 游客可访问，带 token 时识别作者本人
		browse := apiV1.Group("", OptionalUserJWTMiddleware(c.UserAuthService, c.UserRepo))
		{
			browse.GET("/posts", publicHandler.ListPosts)
			browse.GET("/posts/:post_id", publicHandler.GetPost)
			browse.GET("/category/:slug", publicHandler.GetCategoryPosts)
			browse.GET("/profile/:username", publicHandler.GetProfile)
		}

		public := apiV1.Group("/public")
		{
			public.GET("/categories", publicHandler.GetCategories)
			public.GET("/locations", publicHandler.GetLocations)
			public.GET("/captcha/image", publicHandler.GetImageCaptcha)
		}

		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", loginLimiter, publicHandler.UserRegister)
			auth.POST("/login", loginLimiter, publicHandler.UserLogin)
		}

		user := apiV1.Group("", UserJWTAuthMiddleware(c.UserAuthService, c.UserRepo))
		{
			user.POST("/posts", publicHandler.CreatePost)
			user.GET("/posts/:post_id/edit", publicHandler.GetPostForEdit)
			user.PUT("/posts/:post_id", publicHandler.UpdatePost)
			user.DELETE("/posts/:post_id", publicHandler.DeletePost)

			user.POST("/posts/:post_id/comments", publicHandler.AddComment)
			user.GET("/posts/:post_id/comments/:comment_id/edit", publicHandler.GetCommentForEdit)
			user.PUT("/posts/:post_id/comments/:comment_id", publicHandler.UpdateComment)
			user.DELETE("/posts/:post_id/comments/:comment_id", publicHandler.DeleteComment)

			user.GET("/me/profile", publicHandler.GetMyProfile)
			user.PUT("/me/profile", publicHandler.UpdateMyProfile)
			user.PUT("/me/password", publicHandler.ChangeMyPassword)
			user.GET("/me/login-logs", publicHandler.GetMyLoginLogs)
		}

		admin := apiV1.Group("/admin",
			UserJWTAuthMiddleware(c.UserAuthService, c.UserRepo),
			StaffMiddleware(),
			AdminRBACMiddleware(c.AuthzService),
		)
		{
			admin.GET("/categories", adminHandler.GetAdminCategories)
			admin.POST("/categories", adminHandler.CreateCategory)
			admin.PUT("/categories/:id", adminHandler.UpdateCategory)
			admin.DELETE("/categories/:id", adminHandler.DeleteCategory)

			admin.GET("/locations", adminHandler.GetAdminLocations)
			admin.POST("/locations", adminHandler.CreateLocation)
			admin.PUT("/locations/:id", adminHandler.UpdateLocation)
			admin.DELETE("/locations/:id", adminHandler.DeleteLocation)

			admin.GET("/posts", adminHandler.GetAdminPosts)
			admin.PATCH("/posts/:id", adminHandler.PatchAdminPost)
			admin.DELETE("/posts/:id", adminHandler.DeleteAdminPost)

			admin.GET("/comments", adminHandler.GetAdminComments)
			admin.DELETE("/comments/:id", adminHandler.DeleteAdminComment)

			admin.GET("/users", adminHandler.GetAdminUsers)
			admin.PUT("/users/:id/active", adminHandler.SetAdminUserActive)
			admin.PUT("/users/:id/staff", adminHandler.SetAdminUserStaff)
			admin.DELETE("/users/:id", adminHandler.DeleteAdminUser)
			admin.GET("/users/:id/roles", adminHandler.GetAdminUserRoles)
			admin.POST("/users/:id/roles", adminHandler.AssignAdminUserRole)
			admin.DELETE("/users/:id/roles", adminHandler.RevokeAdminUserRole)

			admin.GET("/authz/me", adminHandler.GetAuthzMe)
			admin.GET("/authz/roles", adminHandler.ListAuthzRoles)
			admin.POST("/authz/roles", adminHandler.CreateAuthzRole)
			admin.GET("/authz/roles/:role/policies", adminHandler.GetAuthzRolePolicies)
			admin.POST("/authz/policies", adminHandler.GrantAuthzPolicy)
			admin.DELETE("/authz/policies", adminHandler.RevokeAuthzPolicy)
			admin.GET("/authz/audit-logs", adminHandler.ListAuthzAuditLogs)
			admin.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
				response.Success(ctx, buildAdminPermissionCatalog(r))
			})

			admin.GET("/login-logs", adminHandler.GetUserLoginLogs)
			admin.POST("/upload", adminHandler.UploadFile)
			admin.POST("/email/test", adminHandler.TestEmailSend)
		}
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", MetricsHandler())

	return r
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

// buildAdminPermissionCatalog 从已注册路由生成可授权的后台权限清单
func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	if engine == nil {
		return []adminPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))
	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/admin/") {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, adminPermissionCatalogItem{
			Module:     permissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module != items[j].Module {
			return items[i].Module < items[j].Module
		}
		if items[i].Object != items[j].Object {
			return items[i].Object < items[j].Object
		}
		return items[i].Method < items[j].Method
	})
	return items
}

// permissionModule /admin/posts/:id -> posts
func permissionModule(object string) string {
	segments := strings.Split(strings.Trim(object, "/"), "/")
	if len(segments) >= 2 && segments[0] == "admin" {
		return segments[1]
	}
	if segments[0] == "" {
		return "system"
	}
	return segments[0]
}
