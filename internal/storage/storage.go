// Package storage 上传文件的持久化后端：本地磁盘或 S3 兼容对象存储。
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/blogicum/internal/config"
)

// Storage 文件存储后端
type Storage interface {
	// Put 写入对象并返回可访问的 URL 或路径
	Put(ctx context.Context, key string, body io.ReadSeeker, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// New 按配置选择存储后端
func New(cfg *config.UploadConfig) (Storage, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	switch driver {
	case "", "local":
		return NewLocal(cfg.Dir, "/uploads"), nil
	case "s3":
		return NewS3(cfg.S3)
	default:
		return nil, fmt.Errorf("unknown upload driver: %s", cfg.Driver)
	}
}
