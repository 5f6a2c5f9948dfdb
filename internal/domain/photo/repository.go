package photo

import (
	"context"
)

// Repository 图片仓储接口
type Repository interface {
	// Save 保存图片,回填ID
	Save(ctx context.Context, photo *Photo) error

	// FindByID 根据ID查找图片
	FindByID(ctx context.Context, id uint) (*Photo, error)

	// Update 替换图片内容(保持ID不变)
	Update(ctx context.Context, photo *Photo) error

	// Delete 物理删除图片
	Delete(ctx context.Context, id uint) error
}
