//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/blogicum/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{
		&models.Comment{},
		&models.Post{},
		&models.Category{},
		&models.Location{},
		&models.User{},
	}
	_ = db.Migrator().DropTable(cleanupModels...)

	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestPostgresAdminPostSearchIsCaseInsensitive(t *testing.T) {
	db := setupPostgresIntegrationDB(t)

	author := &models.User{Username: "pg-author", PasswordHash: "x", IsActive: true}
	if err := db.Create(author).Error; err != nil {
		t.Fatalf("create author failed: %v", err)
	}
	repo := NewPostRepository(db)
	post := &models.Post{
		Title:       "Release Notes",
		Text:        "Rocket booster",
		PubDate:     time.Now().Add(-time.Hour),
		AuthorID:    author.ID,
		IsPublished: true,
	}
	if err := repo.Create(post); err != nil {
		t.Fatalf("create post failed: %v", err)
	}

	rows, total, err := repo.ListAdmin(AdminPostListFilter{Page: 1, PageSize: 10, Search: "BOOSTER"})
	if err != nil {
		t.Fatalf("admin search failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("admin search want 1 got total=%d len=%d", total, len(rows))
	}
}

func TestPostgresCategoryDeleteNullsPosts(t *testing.T) {
	db := setupPostgresIntegrationDB(t)

	author := &models.User{Username: "pg-cat-author", PasswordHash: "x", IsActive: true}
	if err := db.Create(author).Error; err != nil {
		t.Fatalf("create author failed: %v", err)
	}
	category := &models.Category{Title: "Travel", Slug: "travel", IsPublished: true}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	post := &models.Post{Title: "t", Text: "x", PubDate: time.Now(), AuthorID: author.ID, CategoryID: &category.ID, IsPublished: true}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("create post failed: %v", err)
	}

	if err := NewCategoryRepository(db).Delete(category.ID); err != nil {
		t.Fatalf("delete category failed: %v", err)
	}
	var reloaded models.Post
	if err := db.First(&reloaded, post.ID).Error; err != nil {
		t.Fatalf("post should survive category delete: %v", err)
	}
	if reloaded.CategoryID != nil {
		t.Fatalf("category_id should be null, got %v", *reloaded.CategoryID)
	}
}
