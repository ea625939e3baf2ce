package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/blogicum/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupRepositoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func mustCreate(t *testing.T, db *gorm.DB, value interface{}) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("create %T failed: %v", value, err)
	}
}

func newTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, PasswordHash: "hash", IsActive: true}
	mustCreate(t, db, user)
	return user
}

func newTestPost(t *testing.T, db *gorm.DB, authorID uint, title string, pubDate time.Time, categoryID *uint) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:       title,
		Text:        title + " text",
		PubDate:     pubDate,
		AuthorID:    authorID,
		CategoryID:  categoryID,
		IsPublished: true,
	}
	mustCreate(t, db, post)
	return post
}

func TestCategoryDeleteKeepsPostsWithNullCategory(t *testing.T) {
	db := setupRepositoryTestDB(t)
	author := newTestUser(t, db, "author")
	category := &models.Category{Title: "Travel", Slug: "travel", IsPublished: true}
	mustCreate(t, db, category)

	now := time.Now()
	for i := 0; i < 3; i++ {
		newTestPost(t, db, author.ID, fmt.Sprintf("post-%d", i), now.Add(-time.Duration(i)*time.Hour), &category.ID)
	}

	repo := NewCategoryRepository(db)
	if err := repo.Delete(category.ID); err != nil {
		t.Fatalf("delete category failed: %v", err)
	}

	var posts []models.Post
	if err := db.Find(&posts).Error; err != nil {
		t.Fatalf("list posts failed: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("posts should survive, got %d", len(posts))
	}
	for _, post := range posts {
		if post.CategoryID != nil {
			t.Fatalf("post %d category should be null", post.ID)
		}
	}
	got, err := repo.GetByID(category.ID)
	if err != nil || got != nil {
		t.Fatalf("category should be gone, got %+v err=%v", got, err)
	}
}

func TestLocationDeleteNullsPosts(t *testing.T) {
	db := setupRepositoryTestDB(t)
	author := newTestUser(t, db, "author")
	location := &models.Location{Name: "Moscow", IsPublished: true}
	mustCreate(t, db, location)
	post := newTestPost(t, db, author.ID, "p", time.Now(), nil)
	if err := db.Model(post).Update("location_id", location.ID).Error; err != nil {
		t.Fatalf("set location failed: %v", err)
	}

	if err := NewLocationRepository(db).Delete(location.ID); err != nil {
		t.Fatalf("delete location failed: %v", err)
	}
	var reloaded models.Post
	if err := db.First(&reloaded, post.ID).Error; err != nil {
		t.Fatalf("reload post failed: %v", err)
	}
	if reloaded.LocationID != nil {
		t.Fatalf("location should be null")
	}
}

func TestPostListIncludesCommentCountAndOrder(t *testing.T) {
	db := setupRepositoryTestDB(t)
	author := newTestUser(t, db, "author")
	now := time.Now()
	older := newTestPost(t, db, author.ID, "older", now.Add(-2*time.Hour), nil)
	newer := newTestPost(t, db, author.ID, "newer", now.Add(-time.Hour), nil)
	mustCreate(t, db, &models.Comment{Text: "a", PostID: older.ID, AuthorID: author.ID})
	mustCreate(t, db, &models.Comment{Text: "b", PostID: older.ID, AuthorID: author.ID})

	posts, err := NewPostRepository(db).ListAll()
	if err != nil {
		t.Fatalf("list posts failed: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("want 2 posts got %d", len(posts))
	}
	if posts[0].ID != newer.ID || posts[1].ID != older.ID {
		t.Fatalf("posts should be ordered by pub_date desc")
	}
	if posts[1].CommentCount != 2 || posts[0].CommentCount != 0 {
		t.Fatalf("unexpected comment counts: %d %d", posts[0].CommentCount, posts[1].CommentCount)
	}
	if posts[0].Author == nil || posts[0].Author.Username != "author" {
		t.Fatalf("author should be preloaded")
	}
}

func TestPostDeleteRemovesComments(t *testing.T) {
	db := setupRepositoryTestDB(t)
	author := newTestUser(t, db, "author")
	post := newTestPost(t, db, author.ID, "p", time.Now(), nil)
	mustCreate(t, db, &models.Comment{Text: "a", PostID: post.ID, AuthorID: author.ID})

	if err := NewPostRepository(db).Delete(post.ID); err != nil {
		t.Fatalf("delete post failed: %v", err)
	}
	var count int64
	db.Model(&models.Comment{}).Count(&count)
	if count != 0 {
		t.Fatalf("comments should be deleted with post, got %d", count)
	}
}

func TestCommentListByPostOrderedByCreation(t *testing.T) {
	db := setupRepositoryTestDB(t)
	author := newTestUser(t, db, "author")
	post := newTestPost(t, db, author.ID, "p", time.Now(), nil)
	base := time.Now().Add(-time.Hour)
	mustCreate(t, db, &models.Comment{Text: "second", PostID: post.ID, AuthorID: author.ID, CreatedAt: base.Add(time.Minute)})
	mustCreate(t, db, &models.Comment{Text: "first", PostID: post.ID, AuthorID: author.ID, CreatedAt: base})

	comments, err := NewCommentRepository(db).ListByPost(post.ID)
	if err != nil {
		t.Fatalf("list comments failed: %v", err)
	}
	if len(comments) != 2 || comments[0].Text != "first" || comments[1].Text != "second" {
		t.Fatalf("unexpected comment order: %+v", comments)
	}
	if comments[0].Author == nil {
		t.Fatalf("comment author should be preloaded")
	}
}

func TestUserDeleteCascades(t *testing.T) {
	db := setupRepositoryTestDB(t)
	author := newTestUser(t, db, "author")
	other := newTestUser(t, db, "other")
	authorPost := newTestPost(t, db, author.ID, "mine", time.Now(), nil)
	otherPost := newTestPost(t, db, other.ID, "theirs", time.Now(), nil)
	mustCreate(t, db, &models.Comment{Text: "on mine by other", PostID: authorPost.ID, AuthorID: other.ID})
	mustCreate(t, db, &models.Comment{Text: "on theirs by author", PostID: otherPost.ID, AuthorID: author.ID})
	mustCreate(t, db, &models.Comment{Text: "on theirs by other", PostID: otherPost.ID, AuthorID: other.ID})

	if err := NewUserRepository(db).Delete(author.ID); err != nil {
		t.Fatalf("delete user failed: %v", err)
	}

	var posts []models.Post
	db.Find(&posts)
	if len(posts) != 1 || posts[0].ID != otherPost.ID {
		t.Fatalf("only the other user's post should remain: %+v", posts)
	}
	var comments []models.Comment
	db.Find(&comments)
	if len(comments) != 1 || comments[0].Text != "on theirs by other" {
		t.Fatalf("unexpected remaining comments: %+v", comments)
	}
}

func TestAdminPostListSearchAndFilter(t *testing.T) {
	db := setupRepositoryTestDB(t)
	author := newTestUser(t, db, "author")
	newTestPost(t, db, author.ID, "Mountains", time.Now(), nil)
	draft := newTestPost(t, db, author.ID, "Sea", time.Now(), nil)
	if err := db.Model(draft).Update("is_published", false).Error; err != nil {
		t.Fatalf("unpublish failed: %v", err)
	}

	repo := NewPostRepository(db)
	rows, total, err := repo.ListAdmin(AdminPostListFilter{Page: 1, PageSize: 10, Search: "mountain"})
	if err != nil {
		t.Fatalf("admin list failed: %v", err)
	}
	if total != 1 || len(rows) != 1 || rows[0].Title != "Mountains" {
		t.Fatalf("search mismatch total=%d rows=%+v", total, rows)
	}

	unpublished := false
	rows, total, err = repo.ListAdmin(AdminPostListFilter{Page: 1, PageSize: 10, IsPublished: &unpublished})
	if err != nil {
		t.Fatalf("admin list failed: %v", err)
	}
	if total != 1 || rows[0].ID != draft.ID {
		t.Fatalf("filter mismatch total=%d", total)
	}
}

func TestUserCountByUsernameExcludesSelf(t *testing.T) {
	db := setupRepositoryTestDB(t)
	user := newTestUser(t, db, "alice")
	repo := NewUserRepository(db)

	count, err := repo.CountByUsername("alice", &user.ID)
	if err != nil || count != 0 {
		t.Fatalf("self should be excluded, count=%d err=%v", count, err)
	}
	count, err = repo.CountByUsername("alice", nil)
	if err != nil || count != 1 {
		t.Fatalf("want 1 got %d err=%v", count, err)
	}
}
