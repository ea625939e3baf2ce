package service

import (
	"strings"
	"time"

	"github.com/blogicum/internal/cache"
	"github.com/blogicum/internal/config"
	"github.com/blogicum/internal/constants"

	"github.com/mojocn/base64Captcha"
)

const captchaAlphabet = "23456789abcdefghjkmnpqrstuvwxyzABCDEFGHJKMNPQRSTUVWXYZ"

// CaptchaVerifyPayload 验证码校验请求载荷
type CaptchaVerifyPayload struct {
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

// CaptchaImageChallenge 图片验证码挑战
type CaptchaImageChallenge struct {
	CaptchaID   string `json:"captcha_id"`
	ImageBase64 string `json:"image_base64"`
}

// CaptchaService 图片验证码服务，Redis 可用时答案存入 Redis，否则使用进程内存
type CaptchaService struct {
	cfg   config.CaptchaConfig
	store base64Captcha.Store
}

// NewCaptchaService 创建验证码服务
func NewCaptchaService(cfg config.CaptchaConfig) *CaptchaService {
	cfg = normalizeCaptchaConfig(cfg)
	ttl := time.Duration(cfg.ExpireSeconds) * time.Second
	var store base64Captcha.Store
	if cache.Enabled() {
		store = cache.NewCaptchaStore(ttl)
	} else {
		store = base64Captcha.NewMemoryStore(cfg.MaxStore, ttl)
	}
	return &CaptchaService{cfg: cfg, store: store}
}

// Enabled 是否开启验证码
func (s *CaptchaService) Enabled() bool {
	return s != nil && s.cfg.Enabled
}

// GenerateImageChallenge 生成图片验证码
func (s *CaptchaService) GenerateImageChallenge() (*CaptchaImageChallenge, error) {
	if !s.Enabled() {
		return nil, ErrCaptchaConfigInvalid
	}
	driver := base64Captcha.NewDriverString(
		s.cfg.Height,
		s.cfg.Width,
		s.cfg.NoiseCount,
		s.cfg.ShowLine,
		s.cfg.Length,
		captchaAlphabet,
		nil,
		base64Captcha.DefaultEmbeddedFonts,
		nil,
	)
	id, b64s, _, err := base64Captcha.NewCaptcha(driver, s.store).Generate()
	if err != nil {
		return nil, err
	}
	return &CaptchaImageChallenge{
		CaptchaID:   strings.TrimSpace(id),
		ImageBase64: strings.TrimSpace(b64s),
	}, nil
}

// Verify 校验验证码，未开启时直接通过
func (s *CaptchaService) Verify(scene string, payload CaptchaVerifyPayload) error {
	if !s.Enabled() || !captchaSceneKnown(scene) {
		return nil
	}
	id := strings.TrimSpace(payload.CaptchaID)
	code := strings.TrimSpace(payload.CaptchaCode)
	if id == "" || code == "" {
		return ErrCaptchaRequired
	}
	if !s.store.Verify(id, code, true) {
		return ErrCaptchaInvalid
	}
	return nil
}

func captchaSceneKnown(scene string) bool {
	switch scene {
	case constants.CaptchaSceneRegister, constants.CaptchaSceneLogin:
		return true
	}
	return false
}

func normalizeCaptchaConfig(cfg config.CaptchaConfig) config.CaptchaConfig {
	if cfg.Length < 4 || cfg.Length > 8 {
		cfg.Length = 5
	}
	if cfg.Width <= 0 {
		cfg.Width = 240
	}
	if cfg.Height <= 0 {
		cfg.Height = 80
	}
	if cfg.NoiseCount < 0 {
		cfg.NoiseCount = 0
	}
	if cfg.ShowLine < 0 {
		cfg.ShowLine = 0
	}
	if cfg.ExpireSeconds <= 0 {
		cfg.ExpireSeconds = 300
	}
	if cfg.MaxStore <= 0 {
		cfg.MaxStore = 10240
	}
	return cfg
}
