package loan

import (
	"context"
	"log"
	"time"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/event"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/pkg/metrics"
)

// TxManager 事务边界(由mysql.TxManager实现)
// fn内的所有Repository操作在同一事务中执行,fn返回error时回滚
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// BookCache 图书缓存失效端口(由redis.BookCache实现)
// 借阅/归还/删除都改动副本计数,提交后必须失效图书缓存,
// 否则详情查询在TTL内一直返回过期的可借数
type BookCache interface {
	Invalidate(ctx context.Context, bookID uint) error
}

// CreateLoanUseCase 借阅准入用例
// 设计说明:这是整个系统最核心的用例之一
// 借阅前的两项准入校验必须在同一事务、同一把锁下完成:
// 1. 会员在借上限(4笔):先锁会员行,防止并发请求绕过上限
// 2. 副本可借校验:再锁图书行,防止最后一个副本被并发借出(超借)
type CreateLoanUseCase struct {
	loanRepo   loan.Repository
	bookRepo   book.Repository
	memberRepo member.Repository
	txManager  TxManager
	events     event.Publisher
	cache      BookCache
	now        func() time.Time
}

// NewCreateLoanUseCase 创建借阅用例
func NewCreateLoanUseCase(
	loanRepo loan.Repository,
	bookRepo book.Repository,
	memberRepo member.Repository,
	txManager TxManager,
	events event.Publisher,
	cache BookCache,
) *CreateLoanUseCase {
	return &CreateLoanUseCase{
		loanRepo:   loanRepo,
		bookRepo:   bookRepo,
		memberRepo: memberRepo,
		txManager:  txManager,
		events:     events,
		cache:      cache,
		now:        time.Now,
	}
}

// CreateLoanRequest 借阅请求DTO
type CreateLoanRequest struct {
	MemberID uint      // 会员ID(从JWT中提取或管理端指定)
	BookID   uint      // 图书ID
	LoanDate time.Time // 借出日期
	DueDate  time.Time // 应还日期
}

// CreateLoanResponse 借阅响应DTO
type CreateLoanResponse struct {
	LoanID   uint      `json:"loan_id"`
	LoanNo   string    `json:"loan_no"`
	BookID   uint      `json:"book_id"`
	MemberID uint      `json:"member_id"`
	LoanDate time.Time `json:"loan_date"`
	DueDate  time.Time `json:"due_date"`
}

// Execute 执行借阅用例
//
// 核心问题:副本超借
// 场景:某图书只剩1个可借副本,两个请求同时借阅
// 错误实现:先查询可借数、再判断、再扣减 —— 两个请求都会通过判断
// 正确实现:SELECT FOR UPDATE锁定图书行后再校验并扣减,事务提交后释放锁
//
// 会员上限同理:锁定会员行后统计在借数,保证并发请求串行通过上限校验
func (uc *CreateLoanUseCase) Execute(ctx context.Context, req CreateLoanRequest) (*CreateLoanResponse, error) {
	start := time.Now()

	// 1. 日期校验(纯校验,不进事务)
	if err := loan.ValidateDates(req.LoanDate, req.DueDate); err != nil {
		return nil, err
	}

	var result *loan.Loan
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 2. 锁定会员行(会员上限校验的串行化点)
		m, err := uc.memberRepo.LockByID(txCtx, req.MemberID)
		if err != nil {
			return err
		}
		if !m.Active {
			return member.ErrMemberInactive
		}

		// 3. 在借上限校验
		activeCount, err := uc.loanRepo.CountActiveByMember(txCtx, req.MemberID)
		if err != nil {
			return err
		}
		if activeCount >= loan.MaxActiveLoansPerMember {
			return loan.ErrLoanLimitReached
		}

		// 4. 锁定图书行(副本校验的串行化点)
		b, err := uc.bookRepo.LockByID(txCtx, req.BookID)
		if err != nil {
			return err
		}
		if !b.Active {
			return book.ErrBookInactive
		}

		// 5. 预留副本(无可借副本时返回ErrNoCopiesAvailable,事务回滚)
		if err := b.Reserve(); err != nil {
			return err
		}
		if err := uc.bookRepo.Update(txCtx, b); err != nil {
			return err
		}

		// 6. 创建借阅记录
		l := loan.NewLoan(loan.GenerateLoanNo(), req.BookID, req.MemberID, req.LoanDate, req.DueDate)
		if err := uc.loanRepo.Create(txCtx, l); err != nil {
			return err
		}

		result = l
		return nil
	})

	if err != nil {
		metrics.IncLoansFailed()
		return nil, err
	}

	metrics.IncLoansCreated()
	metrics.ObserveLoanCreation(time.Since(start).Seconds())
	invalidateBookCache(ctx, uc.cache, result.BookID)
	publishLoanEvent(ctx, uc.events, event.LoanCreated, result, uc.now())

	return &CreateLoanResponse{
		LoanID:   result.ID,
		LoanNo:   result.LoanNo,
		BookID:   result.BookID,
		MemberID: result.MemberID,
		LoanDate: result.LoanDate,
		DueDate:  result.DueDate,
	}, nil
}

// invalidateBookCache 提交后失效图书缓存(失败只记日志,下一次TTL到期兜底)
func invalidateBookCache(ctx context.Context, cache BookCache, bookID uint) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, bookID); err != nil {
		log.Printf("图书缓存失效失败 book_id=%d: %v", bookID, err)
	}
}

// publishLoanEvent 发布借阅事件(事务提交后尽力而为,失败只记日志)
func publishLoanEvent(ctx context.Context, events event.Publisher, routingKey string, l *loan.Loan, at time.Time) {
	if events == nil {
		return
	}
	payload := event.LoanEvent{
		LoanID:   l.ID,
		LoanNo:   l.LoanNo,
		BookID:   l.BookID,
		MemberID: l.MemberID,
		At:       at,
	}
	if err := events.Publish(ctx, routingKey, payload); err != nil {
		log.Printf("发布事件失败 routing_key=%s loan_no=%s: %v", routingKey, l.LoanNo, err)
	}
}
