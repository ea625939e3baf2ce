package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Local 本地磁盘存储，由路由以静态目录方式对外暴露
type Local struct {
	root      string
	urlPrefix string
}

// NewLocal 创建本地存储
func NewLocal(root, urlPrefix string) *Local {
	root = strings.TrimSpace(root)
	if root == "" {
		root = "uploads"
	}
	return &Local{root: root, urlPrefix: "/" + strings.Trim(urlPrefix, "/")}
}

// Root 存储根目录
func (l *Local) Root() string {
	return l.root
}

func (l *Local) Put(_ context.Context, key string, body io.ReadSeeker, _ string) (string, error) {
	target, err := l.resolve(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", err
	}
	dst, err := os.Create(target)
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, body); err != nil {
		return "", err
	}
	return path.Join(l.urlPrefix, key), nil
}

func (l *Local) Delete(_ context.Context, key string) error {
	target, err := l.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (l *Local) resolve(key string) (string, error) {
	clean := path.Clean("/" + strings.TrimSpace(key))
	if clean == "/" {
		return "", errors.New("empty storage key")
	}
	return filepath.Join(l.root, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}
