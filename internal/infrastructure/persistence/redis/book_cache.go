package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/library/internal/domain/book"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// bookCacheTTL 图书详情缓存有效期
// 副本计数随借阅/归还频繁变化,写路径统一做失效,
// TTL只兜底失效消息丢失的场景
const bookCacheTTL = 10 * time.Minute

// BookCache 图书详情缓存(旁路缓存)
// Key设计: book:{book_id},值为JSON序列化的领域实体
type BookCache struct {
	client *redis.Client
}

// NewBookCache 创建图书缓存
func NewBookCache(client *redis.Client) *BookCache {
	return &BookCache{client: client}
}

// Get 读取缓存,未命中返回(nil, nil)
func (c *BookCache) Get(ctx context.Context, bookID uint) (*book.Book, error) {
	key := fmt.Sprintf("book:%d", bookID)

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, apperrors.Wrap(err, "读取图书缓存失败")
	}

	var b book.Book
	if err := json.Unmarshal(data, &b); err != nil {
		// 缓存内容损坏按未命中处理,顺手清掉
		c.client.Del(ctx, key)
		return nil, nil
	}
	return &b, nil
}

// Set 写入缓存
func (c *BookCache) Set(ctx context.Context, b *book.Book) error {
	data, err := json.Marshal(b)
	if err != nil {
		return apperrors.Wrap(err, "序列化图书缓存失败")
	}

	key := fmt.Sprintf("book:%d", b.ID)
	if err := c.client.Set(ctx, key, data, bookCacheTTL).Err(); err != nil {
		return apperrors.Wrap(err, "写入图书缓存失败")
	}
	return nil
}

// Invalidate 删除缓存(借阅/归还/修改/生命周期变更后调用)
func (c *BookCache) Invalidate(ctx context.Context, bookID uint) error {
	key := fmt.Sprintf("book:%d", bookID)
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return apperrors.Wrap(err, "删除图书缓存失败")
	}
	return nil
}
