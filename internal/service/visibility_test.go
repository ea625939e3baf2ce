package service

import (
	"testing"
	"time"

	"github.com/blogicum/internal/models"
)

func TestIsPubliclyVisible(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	published := &models.Category{ID: 1, IsPublished: true}
	hidden := &models.Category{ID: 2, IsPublished: false}

	tests := []struct {
		name string
		post models.Post
		want bool
	}{
		{name: "published_no_category", post: models.Post{IsPublished: true, PubDate: now}, want: true},
		{name: "draft", post: models.Post{IsPublished: false, PubDate: now.Add(-time.Hour)}, want: false},
		{name: "future_pub_date", post: models.Post{IsPublished: true, PubDate: now.Add(time.Minute)}, want: false},
		{name: "published_category", post: models.Post{IsPublished: true, PubDate: now, CategoryID: &published.ID, Category: published}, want: true},
		{name: "hidden_category", post: models.Post{IsPublished: true, PubDate: now, CategoryID: &hidden.ID, Category: hidden}, want: false},
		{name: "category_not_loaded", post: models.Post{IsPublished: true, PubDate: now, CategoryID: &published.ID}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPubliclyVisible(tt.post, now); got != tt.want {
				t.Fatalf("IsPubliclyVisible() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterPostsOrdersByPubDateDescStable(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	same := now.Add(-2 * time.Hour)
	posts := []models.Post{
		{ID: 1, IsPublished: true, PubDate: same},
		{ID: 2, IsPublished: true, PubDate: now.Add(-time.Hour)},
		{ID: 3, IsPublished: false, PubDate: now.Add(-time.Hour)},
		{ID: 4, IsPublished: true, PubDate: same},
		{ID: 5, IsPublished: true, PubDate: now.Add(time.Hour)},
	}

	got := FilterPosts(posts, now)
	wantIDs := []uint{2, 1, 4}
	if len(got) != len(wantIDs) {
		t.Fatalf("want %d posts got %d", len(wantIDs), len(got))
	}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Fatalf("position %d: want post %d got %d", i, id, got[i].ID)
		}
	}
}

func TestCanViewPostAuthorSeesDraft(t *testing.T) {
	now := time.Now()
	draft := models.Post{AuthorID: 7, IsPublished: false, PubDate: now.Add(time.Hour)}
	if !CanViewPost(draft, 7, now) {
		t.Fatalf("author should see own draft")
	}
	if CanViewPost(draft, 8, now) {
		t.Fatalf("other user should not see draft")
	}
	if CanViewPost(draft, 0, now) {
		t.Fatalf("anonymous should not see draft")
	}
}

func TestProfilePostsSelfVersusOthers(t *testing.T) {
	now := time.Now()
	posts := []models.Post{
		{ID: 1, AuthorID: 3, IsPublished: true, PubDate: now.Add(-time.Hour)},
		{ID: 2, AuthorID: 3, IsPublished: false, PubDate: now.Add(-2 * time.Hour)},
		{ID: 3, AuthorID: 3, IsPublished: true, PubDate: now.Add(time.Hour)},
		{ID: 4, AuthorID: 9, IsPublished: true, PubDate: now},
	}

	own := ProfilePosts(posts, 3, 3, now)
	if len(own) != 3 || own[0].ID != 3 || own[2].ID != 2 {
		t.Fatalf("self profile should list all own posts newest first: %+v", own)
	}

	other := ProfilePosts(posts, 3, 9, now)
	if len(other) != 1 || other[0].ID != 1 {
		t.Fatalf("other viewer should only see visible posts: %+v", other)
	}

	anonymous := ProfilePosts(posts, 3, 0, now)
	if len(anonymous) != 1 {
		t.Fatalf("anonymous viewer should only see visible posts: %+v", anonymous)
	}
}
