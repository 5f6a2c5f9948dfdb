package loan

import (
	"context"
	"time"

	"github.com/xiebiao/library/internal/domain/event"
	"github.com/xiebiao/library/internal/domain/loan"
)

// RenewLoanUseCase 续借用例
// 业务规则:只能修改借出/应还两个日期,图书与会员的引用不可变,不影响副本计数
type RenewLoanUseCase struct {
	loanRepo  loan.Repository
	txManager TxManager
	events    event.Publisher
	now       func() time.Time
}

// NewRenewLoanUseCase 创建续借用例
func NewRenewLoanUseCase(loanRepo loan.Repository, txManager TxManager, events event.Publisher) *RenewLoanUseCase {
	return &RenewLoanUseCase{
		loanRepo:  loanRepo,
		txManager: txManager,
		events:    events,
		now:       time.Now,
	}
}

// RenewLoanRequest 续借请求DTO
type RenewLoanRequest struct {
	LoanID   uint      // 借阅记录ID
	LoanDate time.Time // 新的借出日期
	DueDate  time.Time // 新的应还日期
}

// Execute 执行续借用例
func (uc *RenewLoanUseCase) Execute(ctx context.Context, req RenewLoanRequest) error {
	// 日期校验提前,避免无谓开启事务
	if err := loan.ValidateDates(req.LoanDate, req.DueDate); err != nil {
		return err
	}

	var renewed *loan.Loan
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		l, err := uc.loanRepo.FindByID(txCtx, req.LoanID)
		if err != nil {
			return err
		}

		// 已归还的记录返回ErrLoanClosed(状态错误)
		if err := l.Renew(req.LoanDate, req.DueDate); err != nil {
			return err
		}

		if err := uc.loanRepo.Update(txCtx, l); err != nil {
			return err
		}

		renewed = l
		return nil
	})
	if err != nil {
		return err
	}

	publishLoanEvent(ctx, uc.events, event.LoanRenewed, renewed, uc.now())
	return nil
}
