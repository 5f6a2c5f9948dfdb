package member

import (
	"context"
)

// Repository 会员仓储接口(依赖倒置原则)
type Repository interface {
	// Create 创建会员
	Create(ctx context.Context, member *Member) error

	// FindByID 根据ID查找会员
	FindByID(ctx context.Context, id uint) (*Member, error)

	// FindByEmail 根据邮箱查找会员
	FindByEmail(ctx context.Context, email string) (*Member, error)

	// ListActive 查询所有启用会员
	ListActive(ctx context.Context) ([]*Member, error)

	// ListInactive 查询所有停用会员
	ListInactive(ctx context.Context) ([]*Member, error)

	// Update 更新会员
	Update(ctx context.Context, member *Member) error

	// LockByID 悲观锁查询会员(SELECT FOR UPDATE)
	// 借阅上限校验必须先锁定会员行,防止并发请求绕过4笔上限
	LockByID(ctx context.Context, id uint) (*Member, error)
}
