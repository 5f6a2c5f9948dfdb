package loan

import (
	"context"
)

// Repository 借阅仓储接口(依赖倒置原则)
// 所有方法通过context参与外部事务(TxManager注入事务DB)
type Repository interface {
	// Create 创建借阅记录
	Create(ctx context.Context, loan *Loan) error

	// FindByID 根据ID查找借阅记录
	FindByID(ctx context.Context, id uint) (*Loan, error)

	// FindByBook 查找某图书的全部借阅记录(含已归还)
	FindByBook(ctx context.Context, bookID uint) ([]*Loan, error)

	// FindActiveByBook 查找某图书的在借记录
	FindActiveByBook(ctx context.Context, bookID uint) ([]*Loan, error)

	// FindByMember 查找某会员的全部借阅记录
	FindByMember(ctx context.Context, memberID uint) ([]*Loan, error)

	// CountActiveByBook 统计某图书的在借数量(Resize时重新核算计数)
	CountActiveByBook(ctx context.Context, bookID uint) (int, error)

	// CountActiveByMember 统计某会员的在借数量(借阅上限校验)
	CountActiveByMember(ctx context.Context, memberID uint) (int, error)

	// ListActive 查询所有在借记录
	ListActive(ctx context.Context) ([]*Loan, error)

	// ListInactive 查询所有已归还记录
	ListInactive(ctx context.Context) ([]*Loan, error)

	// Update 更新借阅记录(续借/归还)
	Update(ctx context.Context, loan *Loan) error

	// Delete 物理删除借阅记录
	Delete(ctx context.Context, id uint) error
}
