package loan

import (
	"context"

	"github.com/xiebiao/library/internal/domain/loan"
)

// Queries 借阅查询用例(只读,不开启事务)
type Queries struct {
	loanRepo loan.Repository
}

// NewQueries 创建借阅查询用例
func NewQueries(loanRepo loan.Repository) *Queries {
	return &Queries{loanRepo: loanRepo}
}

// GetByID 查询单条借阅记录
func (q *Queries) GetByID(ctx context.Context, id uint) (*loan.Loan, error) {
	return q.loanRepo.FindByID(ctx, id)
}

// ListActive 查询所有在借记录
func (q *Queries) ListActive(ctx context.Context) ([]*loan.Loan, error) {
	return q.loanRepo.ListActive(ctx)
}

// ListInactive 查询所有已归还记录
func (q *Queries) ListInactive(ctx context.Context) ([]*loan.Loan, error) {
	return q.loanRepo.ListInactive(ctx)
}

// ListByMember 查询某会员的全部借阅记录
func (q *Queries) ListByMember(ctx context.Context, memberID uint) ([]*loan.Loan, error) {
	return q.loanRepo.FindByMember(ctx, memberID)
}

// ListByBook 查询某图书的全部借阅记录
func (q *Queries) ListByBook(ctx context.Context, bookID uint) ([]*loan.Loan, error) {
	return q.loanRepo.FindByBook(ctx, bookID)
}
