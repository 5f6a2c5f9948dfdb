package publisher

import (
	"context"
)

// Repository 出版社仓储接口(依赖倒置原则)
type Repository interface {
	// Create 创建出版社
	Create(ctx context.Context, publisher *Publisher) error

	// FindByID 根据ID查找出版社
	FindByID(ctx context.Context, id uint) (*Publisher, error)

	// FindByName 根据名称查找出版社
	FindByName(ctx context.Context, name string) (*Publisher, error)

	// ListActive 查询所有在册出版社
	ListActive(ctx context.Context) ([]*Publisher, error)

	// ListInactive 查询所有注销出版社
	ListInactive(ctx context.Context) ([]*Publisher, error)

	// Update 更新出版社
	Update(ctx context.Context, publisher *Publisher) error

	// Delete 物理删除出版社
	Delete(ctx context.Context, id uint) error

	// LockByID 悲观锁查询出版社(SELECT FOR UPDATE)
	LockByID(ctx context.Context, id uint) (*Publisher, error)
}
