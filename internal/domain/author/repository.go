package author

import (
	"context"
)

// Repository 作者仓储接口(依赖倒置原则)
type Repository interface {
	// Create 创建作者
	Create(ctx context.Context, author *Author) error

	// FindByID 根据ID查找作者
	FindByID(ctx context.Context, id uint) (*Author, error)

	// FindByName 根据姓名查找作者
	FindByName(ctx context.Context, name string) (*Author, error)

	// ListActive 查询所有在册作者
	ListActive(ctx context.Context) ([]*Author, error)

	// ListInactive 查询所有注销作者
	ListInactive(ctx context.Context) ([]*Author, error)

	// Update 更新作者
	Update(ctx context.Context, author *Author) error

	// Delete 物理删除作者
	Delete(ctx context.Context, id uint) error

	// LockByID 悲观锁查询作者(SELECT FOR UPDATE)
	// 级联操作自顶向下加锁:作者 → 图书 → 借阅记录
	LockByID(ctx context.Context, id uint) (*Author, error)
}
