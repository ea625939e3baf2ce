package service

import (
	"context"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/blogicum/internal/config"
	"github.com/blogicum/internal/constants"
	"github.com/blogicum/internal/storage"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

// UploadService 图片上传服务
type UploadService struct {
	cfg   config.UploadConfig
	store storage.Storage
	now   func() time.Time
}

// NewUploadService 创建上传服务
func NewUploadService(cfg config.UploadConfig, store storage.Storage) *UploadService {
	return &UploadService{cfg: cfg, store: store, now: time.Now}
}

// SaveImage 校验并保存上传图片，返回可访问地址
func (s *UploadService) SaveImage(ctx context.Context, file *multipart.FileHeader, scene string) (string, error) {
	if s.cfg.MaxSize > 0 && file.Size > s.cfg.MaxSize {
		return "", ErrUploadTooLarge
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if len(s.cfg.AllowedExtensions) > 0 && !isAllowedExtension(ext, s.cfg.AllowedExtensions) {
		return "", ErrUploadTypeNotAllowed
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	contentType, err := sniffContentType(src)
	if err != nil {
		return "", err
	}
	if len(s.cfg.AllowedTypes) > 0 && !containsFold(s.cfg.AllowedTypes, contentType) {
		return "", ErrUploadTypeNotAllowed
	}
	if err := s.checkDimensions(src); err != nil {
		return "", err
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	now := s.now()
	key := path.Join(normalizeUploadScene(scene), now.Format("2006"), now.Format("01"), uuid.New().String()+ext)
	return s.store.Put(ctx, key, src, contentType)
}

func (s *UploadService) checkDimensions(src io.ReadSeeker) error {
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return err
	}
	cfg, _, err := image.DecodeConfig(src)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUploadImageInvalid, err)
	}
	if s.cfg.MaxWidth > 0 && cfg.Width > s.cfg.MaxWidth {
		return fmt.Errorf("%w: width %d exceeds %d", ErrUploadImageInvalid, cfg.Width, s.cfg.MaxWidth)
	}
	if s.cfg.MaxHeight > 0 && cfg.Height > s.cfg.MaxHeight {
		return fmt.Errorf("%w: height %d exceeds %d", ErrUploadImageInvalid, cfg.Height, s.cfg.MaxHeight)
	}
	return nil
}

func sniffContentType(src io.ReadSeeker) (string, error) {
	buffer := make([]byte, 512)
	n, err := src.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return http.DetectContentType(buffer[:n]), nil
}

func normalizeUploadScene(raw string) string {
	switch value := strings.ToLower(strings.TrimSpace(raw)); value {
	case constants.UploadScenePost, constants.UploadSceneAvatar:
		return value
	default:
		return constants.UploadScenePost
	}
}

func isAllowedExtension(ext string, allowed []string) bool {
	if ext == "" {
		return false
	}
	for _, item := range allowed {
		normalized := strings.ToLower(strings.TrimSpace(item))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if ext == normalized {
			return true
		}
	}
	return false
}

func containsFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(strings.TrimSpace(v), target) {
			return true
		}
	}
	return false
}
