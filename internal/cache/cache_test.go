package cache

import (
	"context"
	"testing"
	"time"

	"github.com/blogicum/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupMiniRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	UseClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "test")
	t.Cleanup(func() { _ = Close() })
	return mr
}

func TestDisabledCacheIsNoop(t *testing.T) {
	_ = Close()
	var dest []string
	hit, err := GetJSON(context.Background(), "x", &dest)
	if hit || err != nil {
		t.Fatalf("disabled cache should miss silently, hit=%v err=%v", hit, err)
	}
	if err := SetJSON(context.Background(), "x", []string{"a"}, time.Minute); err != nil {
		t.Fatalf("disabled set should be noop: %v", err)
	}
}

func TestPublicCategoriesRoundTripAndInvalidate(t *testing.T) {
	mr := setupMiniRedis(t)
	ctx := context.Background()

	if err := SetPublicCategories(ctx, []string{"travel", "food"}); err != nil {
		t.Fatalf("set categories failed: %v", err)
	}
	if !mr.Exists("test:public:categories") {
		t.Fatalf("expected prefixed key to exist")
	}
	var got []string
	hit, err := GetPublicCategories(ctx, &got)
	if err != nil || !hit || len(got) != 2 {
		t.Fatalf("unexpected cache read hit=%v err=%v got=%v", hit, err, got)
	}

	if err := InvalidatePublicCategories(ctx); err != nil {
		t.Fatalf("invalidate failed: %v", err)
	}
	hit, _ = GetPublicCategories(ctx, &got)
	if hit {
		t.Fatalf("cache should be invalidated")
	}
}

func TestUserAuthStateSnapshot(t *testing.T) {
	mr := setupMiniRedis(t)
	ctx := context.Background()
	invalidBefore := time.Unix(1700000000, 0)
	user := &models.User{ID: 7, Username: "alice", IsActive: true, IsStaff: true, TokenVersion: 3, TokenInvalidBefore: &invalidBefore}

	if err := SetUserAuthState(ctx, BuildUserAuthState(user)); err != nil {
		t.Fatalf("set auth state failed: %v", err)
	}
	ttl := mr.TTL("test:auth:user:7")
	if ttl <= 0 || ttl > authStateCacheTTL {
		t.Fatalf("unexpected ttl %v", ttl)
	}

	state, hit, err := GetUserAuthState(ctx, 7)
	if err != nil || !hit {
		t.Fatalf("expected hit, err=%v", err)
	}
	if state.TokenVersion != 3 || !state.IsStaff || state.TokenInvalidBefore != invalidBefore.Unix() {
		t.Fatalf("unexpected state: %+v", state)
	}

	if err := DelUserAuthState(ctx, 7); err != nil {
		t.Fatalf("del failed: %v", err)
	}
	if _, hit, _ := GetUserAuthState(ctx, 7); hit {
		t.Fatalf("state should be deleted")
	}
}

func TestCaptchaStoreVerifyClearsAnswer(t *testing.T) {
	mr := setupMiniRedis(t)
	store := NewCaptchaStore(time.Minute)

	if err := store.Set("c1", "AbC12"); err != nil {
		t.Fatalf("set captcha failed: %v", err)
	}
	if !mr.Exists("test:captcha:c1") {
		t.Fatalf("captcha key should be prefixed")
	}
	if store.Verify("c1", "wrong", false) {
		t.Fatalf("wrong answer should fail")
	}
	if !store.Verify("c1", " abc12 ", true) {
		t.Fatalf("answer should match case-insensitively")
	}
	if store.Verify("c1", "abc12", true) {
		t.Fatalf("answer should be cleared after verify")
	}
}
