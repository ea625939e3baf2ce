package service

import (
	"sort"
	"time"

	"github.com/blogicum/internal/models"
)

// IsPubliclyVisible 文章对非作者可见：已发布、发布时间不晚于 now、分类为空或已发布
func IsPubliclyVisible(post models.Post, now time.Time) bool {
	if !post.IsPublished || post.PubDate.After(now) {
		return false
	}
	if post.CategoryID == nil {
		return true
	}
	return post.Category != nil && post.Category.IsPublished
}

// FilterPosts 保留公开可见的文章，按发布时间倒序（同时间保持原顺序）
func FilterPosts(posts []models.Post, now time.Time) []models.Post {
	visible := make([]models.Post, 0, len(posts))
	for _, post := range posts {
		if IsPubliclyVisible(post, now) {
			visible = append(visible, post)
		}
	}
	sortByPubDateDesc(visible)
	return visible
}

// CanViewPost 作者可查看自己任意状态的文章，其他人需满足公开可见
func CanViewPost(post models.Post, viewerID uint, now time.Time) bool {
	if IsOwner(post, viewerID) {
		return true
	}
	return IsPubliclyVisible(post, now)
}

// ProfilePosts 个人主页文章：本人可见全部，其他人仅公开可见部分
func ProfilePosts(posts []models.Post, profileUserID, viewerID uint, now time.Time) []models.Post {
	authored := make([]models.Post, 0, len(posts))
	for _, post := range posts {
		if post.AuthorID == profileUserID {
			authored = append(authored, post)
		}
	}
	if viewerID != 0 && viewerID == profileUserID {
		sortByPubDateDesc(authored)
		return authored
	}
	return FilterPosts(authored, now)
}

func sortByPubDateDesc(posts []models.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].PubDate.After(posts[j].PubDate)
	})
}
