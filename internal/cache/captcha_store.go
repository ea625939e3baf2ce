package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const captchaKeyPattern = "captcha:%s"

// CaptchaStore 基于 Redis 的图片验证码存储，实现 base64Captcha.Store
type CaptchaStore struct {
	ttl     time.Duration
	timeout time.Duration
}

// NewCaptchaStore 创建验证码存储
func NewCaptchaStore(ttl time.Duration) *CaptchaStore {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CaptchaStore{ttl: ttl, timeout: 2 * time.Second}
}

// Set 保存验证码答案
func (s *CaptchaStore) Set(id string, value string) error {
	if !Enabled() {
		return errors.New("redis disabled")
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return redisClient.Set(ctx, Key(fmt.Sprintf(captchaKeyPattern, id)), value, s.ttl).Err()
}

// Get 读取验证码答案，clear 为 true 时读取后删除
func (s *CaptchaStore) Get(id string, clear bool) string {
	if !Enabled() {
		return ""
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	key := Key(fmt.Sprintf(captchaKeyPattern, id))
	var (
		value string
		err   error
	)
	if clear {
		value, err = redisClient.GetDel(ctx, key).Result()
	} else {
		value, err = redisClient.Get(ctx, key).Result()
	}
	if err != nil && !errors.Is(err, redis.Nil) {
		return ""
	}
	return value
}

// Verify 校验答案，大小写不敏感
func (s *CaptchaStore) Verify(id, answer string, clear bool) bool {
	stored := s.Get(id, clear)
	if stored == "" {
		return false
	}
	return strings.EqualFold(stored, strings.TrimSpace(answer))
}
