package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/blogicum/internal/config"
	"github.com/blogicum/internal/models"
	"github.com/blogicum/internal/queue"
	"github.com/blogicum/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type testServices struct {
	db       *gorm.DB
	posts    *PostService
	comments *CommentService
	category *CategoryService
	location *LocationService
	auth     *UserAuthService
}

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func newTestServices(t *testing.T, pageSize int) *testServices {
	t.Helper()
	db := setupServiceTestDB(t)
	postRepo := repository.NewPostRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	userRepo := repository.NewUserRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	cfg := &config.Config{
		UserJWT:  config.JWTConfig{SecretKey: "test-secret", ExpireHours: 1},
		Security: config.SecurityConfig{PasswordPolicy: config.PasswordPolicyConfig{MinLength: 8, RequireLetter: true}},
	}
	queueClient, err := queue.NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("queue client failed: %v", err)
	}
	emailService := NewEmailService(&config.EmailConfig{Enabled: false})

	comments := NewCommentService(commentRepo, postRepo, userRepo, queueClient, emailService)
	return &testServices{
		db:       db,
		posts:    NewPostService(postRepo, categoryRepo, locationRepo, userRepo, comments, pageSize),
		comments: comments,
		category: NewCategoryService(categoryRepo),
		location: NewLocationService(locationRepo),
		auth:     NewUserAuthService(cfg, userRepo, NewCaptchaService(config.CaptchaConfig{Enabled: false})),
	}
}

func mustCreate(t *testing.T, db *gorm.DB, value interface{}) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("create %T failed: %v", value, err)
	}
}

func newUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com", PasswordHash: "hash", IsActive: true}
	mustCreate(t, db, user)
	return user
}

func newPost(t *testing.T, db *gorm.DB, authorID uint, title string, pubDate time.Time, published bool, categoryID *uint) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:       title,
		Text:        title + " body",
		PubDate:     pubDate,
		AuthorID:    authorID,
		CategoryID:  categoryID,
		IsPublished: published,
	}
	mustCreate(t, db, post)
	return post
}

func uintPtr(v uint) *uint { return &v }

func boolPtr(v bool) *bool { return &v }
