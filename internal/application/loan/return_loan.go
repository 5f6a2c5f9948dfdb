package loan

import (
	"context"
	"time"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/event"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/pkg/metrics"
)

// ReturnLoanUseCase 归还用例
// 设计说明:归还与副本释放必须在同一事务中完成,
// 先锁图书行再释放副本,保证计数与在借记录始终一致
type ReturnLoanUseCase struct {
	loanRepo  loan.Repository
	bookRepo  book.Repository
	txManager TxManager
	events    event.Publisher
	cache     BookCache
	now       func() time.Time
}

// NewReturnLoanUseCase 创建归还用例
func NewReturnLoanUseCase(
	loanRepo loan.Repository,
	bookRepo book.Repository,
	txManager TxManager,
	events event.Publisher,
	cache BookCache,
) *ReturnLoanUseCase {
	return &ReturnLoanUseCase{
		loanRepo:  loanRepo,
		bookRepo:  bookRepo,
		txManager: txManager,
		events:    events,
		cache:     cache,
		now:       time.Now,
	}
}

// Execute 执行归还用例
// 归还时间取当前时钟,不由调用方传入
func (uc *ReturnLoanUseCase) Execute(ctx context.Context, loanID uint) error {
	var returned *loan.Loan
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		l, err := uc.loanRepo.FindByID(txCtx, loanID)
		if err != nil {
			return err
		}
		if !l.Active {
			return loan.ErrLoanClosed
		}

		// 锁定图书行后释放副本
		b, err := uc.bookRepo.LockByID(txCtx, l.BookID)
		if err != nil {
			return err
		}
		if err := b.Release(); err != nil {
			return err
		}
		if err := uc.bookRepo.Update(txCtx, b); err != nil {
			return err
		}

		// 关闭借阅记录,归还时间取当前时间
		if err := l.Close(uc.now()); err != nil {
			return err
		}
		if err := uc.loanRepo.Update(txCtx, l); err != nil {
			return err
		}

		returned = l
		return nil
	})
	if err != nil {
		return err
	}

	metrics.IncLoansReturned()
	invalidateBookCache(ctx, uc.cache, returned.BookID)
	publishLoanEvent(ctx, uc.events, event.LoanReturned, returned, uc.now())
	return nil
}
