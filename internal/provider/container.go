package provider

import (
	"github.com/blogicum/internal/authz"
	"github.com/blogicum/internal/cache"
	"github.com/blogicum/internal/config"
	"github.com/blogicum/internal/logger"
	"github.com/blogicum/internal/models"
	"github.com/blogicum/internal/queue"
	"github.com/blogicum/internal/repository"
	"github.com/blogicum/internal/service"
	"github.com/blogicum/internal/storage"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	Storage     storage.Storage

	// Repositories
	UserRepo          repository.UserRepository
	CategoryRepo      repository.CategoryRepository
	LocationRepo      repository.LocationRepository
	PostRepo          repository.PostRepository
	CommentRepo       repository.CommentRepository
	UserLoginLogRepo  repository.UserLoginLogRepository
	AuthzAuditLogRepo repository.AuthzAuditLogRepository

	// Services
	AuthzService        *authz.Service
	UserAuthService     *service.UserAuthService
	EmailService        *service.EmailService
	CaptchaService      *service.CaptchaService
	UploadService       *service.UploadService
	PostService         *service.PostService
	CommentService      *service.CommentService
	CategoryService     *service.CategoryService
	LocationService     *service.LocationService
	UserLoginLogService *service.UserLoginLogService
	AuthzAuditService   *service.AuthzAuditService
}

// NewContainer 基于全局数据库初始化容器
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		logger.Errorw("provider_init_queue_client_failed", "error", err)
		queueClient, _ = queue.NewClient(nil)
	}

	store, err := storage.New(&cfg.Upload)
	if err != nil {
		logger.Errorw("provider_init_storage_failed", "driver", cfg.Upload.Driver, "error", err)
		panic(err)
	}

	return Build(cfg, models.DB, queueClient, store)
}

// Build 用给定依赖组装容器（测试中直接传入 sqlite 与本地存储）
func Build(cfg *config.Config, db *gorm.DB, queueClient *queue.Client, store storage.Storage) *Container {
	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
		Storage:     store,
	}
	c.initRepositories(db)
	c.initServices(db)
	return c
}

func (c *Container) initRepositories(db *gorm.DB) {
	c.UserRepo = repository.NewUserRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.LocationRepo = repository.NewLocationRepository(db)
	c.PostRepo = repository.NewPostRepository(db)
	c.CommentRepo = repository.NewCommentRepository(db)
	c.UserLoginLogRepo = repository.NewUserLoginLogRepository(db)
	c.AuthzAuditLogRepo = repository.NewAuthzAuditLogRepository(db)
}

func (c *Container) initServices(db *gorm.DB) {
	authzService, err := authz.NewService(db)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.UploadService = service.NewUploadService(c.Config.Upload, c.Storage)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo, c.CaptchaService)
	c.CommentService = service.NewCommentService(c.CommentRepo, c.PostRepo, c.UserRepo, c.QueueClient, c.EmailService)
	c.PostService = service.NewPostService(c.PostRepo, c.CategoryRepo, c.LocationRepo, c.UserRepo, c.CommentService, c.Config.Blog.PostsPerPage)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.LocationService = service.NewLocationService(c.LocationRepo)
	c.UserLoginLogService = service.NewUserLoginLogService(c.UserLoginLogRepo)
	c.AuthzAuditService = service.NewAuthzAuditService(c.AuthzAuditLogRepo)
}
