package loan

import (
	"context"
	"time"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/event"
	"github.com/xiebiao/library/internal/domain/loan"
)

// DeleteLoanUseCase 删除借阅记录用例(物理删除)
// 业务规则:
// - 记录仍在借时,先执行与归还相同的副本释放,再删除记录
// - 已归还的记录直接删除,不再触碰副本计数(归还时已释放)
type DeleteLoanUseCase struct {
	loanRepo  loan.Repository
	bookRepo  book.Repository
	txManager TxManager
	events    event.Publisher
	cache     BookCache
	now       func() time.Time
}

// NewDeleteLoanUseCase 创建删除借阅用例
func NewDeleteLoanUseCase(
	loanRepo loan.Repository,
	bookRepo book.Repository,
	txManager TxManager,
	events event.Publisher,
	cache BookCache,
) *DeleteLoanUseCase {
	return &DeleteLoanUseCase{
		loanRepo:  loanRepo,
		bookRepo:  bookRepo,
		txManager: txManager,
		events:    events,
		cache:     cache,
		now:       time.Now,
	}
}

// Execute 执行删除借阅用例
func (uc *DeleteLoanUseCase) Execute(ctx context.Context, loanID uint) error {
	var deleted *loan.Loan
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		l, err := uc.loanRepo.FindByID(txCtx, loanID)
		if err != nil {
			return err
		}

		if l.Active {
			// 在借记录:先释放副本(与归还相同的簿记),再删除
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
		}

		if err := uc.loanRepo.Delete(txCtx, l.ID); err != nil {
			return err
		}

		deleted = l
		return nil
	})
	if err != nil {
		return err
	}

	if deleted.Active {
		// 在借记录的删除动了副本计数,需要失效缓存
		invalidateBookCache(ctx, uc.cache, deleted.BookID)
	}
	publishLoanEvent(ctx, uc.events, event.LoanDeleted, deleted, uc.now())
	return nil
}
