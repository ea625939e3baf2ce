package cache

import (
	"context"
	"time"
)

const (
	publicCategoriesKey = "public:categories"
	publicCategoriesTTL = 5 * time.Minute
)

// GetPublicCategories 读取公开分类列表缓存
func GetPublicCategories(ctx context.Context, dest interface{}) (bool, error) {
	return GetJSON(ctx, publicCategoriesKey, dest)
}

// SetPublicCategories 写入公开分类列表缓存
func SetPublicCategories(ctx context.Context, value interface{}) error {
	return SetJSON(ctx, publicCategoriesKey, value, publicCategoriesTTL)
}

// InvalidatePublicCategories 分类变更后清除缓存
func InvalidatePublicCategories(ctx context.Context) error {
	return Del(ctx, publicCategoriesKey)
}
