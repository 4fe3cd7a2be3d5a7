package cache

import (
	"context"
	"fmt"
	"time"
)

const catalogVersionKey = "catalog:version"

// CatalogListKey 公共目录列表缓存键，带目录版本号
func CatalogListKey(version int64, page, pageSize int, search, category, inStock string) string {
	return fmt.Sprintf("catalog:v%d:list:%d:%d:%s:%s:%s", version, page, pageSize, search, category, inStock)
}

// CatalogVersion 当前目录版本
func CatalogVersion(ctx context.Context) (int64, error) {
	return GetInt64(ctx, catalogVersionKey)
}

// BumpCatalogVersion 目录变更后递增版本，旧键自然过期
func BumpCatalogVersion(ctx context.Context) error {
	_, err := Incr(ctx, catalogVersionKey, 0)
	return err
}

// GetCatalogJSON 按版本读取目录缓存
func GetCatalogJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	return GetJSON(ctx, key, dest)
}

// SetCatalogJSON 写入目录缓存
func SetCatalogJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return SetJSON(ctx, key, value, ttl)
}
