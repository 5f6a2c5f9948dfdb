package catalog

import (
	"context"
	"log"

	"github.com/xiebiao/library/internal/domain/author"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/publisher"
)

// UpdateBookUseCase 图书修改用例
// 设计说明:副本总数的调整不信任图书行上的存量计数,
// 而是重新统计该图书当前的在借数(容忍历史漂移),
// 新总数小于在借数时拒绝修改
type UpdateBookUseCase struct {
	bookRepo      book.Repository
	authorRepo    author.Repository
	publisherRepo publisher.Repository
	loanRepo      loan.Repository
	txManager     TxManager
	cache         BookCache
}

// NewUpdateBookUseCase 创建图书修改用例
func NewUpdateBookUseCase(
	bookRepo book.Repository,
	authorRepo author.Repository,
	publisherRepo publisher.Repository,
	loanRepo loan.Repository,
	txManager TxManager,
	cache BookCache,
) *UpdateBookUseCase {
	return &UpdateBookUseCase{
		bookRepo:      bookRepo,
		authorRepo:    authorRepo,
		publisherRepo: publisherRepo,
		loanRepo:      loanRepo,
		txManager:     txManager,
		cache:         cache,
	}
}

// UpdateBookRequest 图书修改请求DTO
type UpdateBookRequest struct {
	BookID      uint
	ISBN        int64
	Title       string
	Year        int
	Description string
	TotalCopies int
	AuthorID    uint
	PublisherID uint
}

// Execute 执行图书修改
func (uc *UpdateBookUseCase) Execute(ctx context.Context, req UpdateBookRequest) error {
	if err := book.ValidateFields(req.ISBN, req.Title, req.Year, req.Description, req.TotalCopies); err != nil {
		return err
	}

	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 锁定图书行:副本总数调整与借阅/归还互斥
		b, err := uc.bookRepo.LockByID(txCtx, req.BookID)
		if err != nil {
			return err
		}

		// 归属方校验
		a, err := uc.authorRepo.FindByID(txCtx, req.AuthorID)
		if err != nil {
			return err
		}
		p, err := uc.publisherRepo.FindByID(txCtx, req.PublisherID)
		if err != nil {
			return err
		}

		// 重新统计在借数,基于实数调整副本
		activeCount, err := uc.loanRepo.CountActiveByBook(txCtx, req.BookID)
		if err != nil {
			return err
		}
		if err := b.Resize(req.TotalCopies, activeCount); err != nil {
			return err
		}

		b.UpdateInfo(req.ISBN, req.Title, req.Year, req.Description)
		b.AuthorID = req.AuthorID
		b.PublisherID = req.PublisherID

		// 在册图书的归属方必须在册:改挂到已注销的
		// 作者/出版社时将其恢复,与登记图书的规则一致
		if b.Active {
			if !a.Active {
				a.Activate()
				if err := uc.authorRepo.Update(txCtx, a); err != nil {
					return err
				}
			}
			if !p.Active {
				p.Activate()
				if err := uc.publisherRepo.Update(txCtx, p); err != nil {
					return err
				}
			}
		}

		return uc.bookRepo.Update(txCtx, b)
	})
	if err != nil {
		return err
	}

	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, req.BookID); err != nil {
			log.Printf("图书缓存失效失败 book_id=%d: %v", req.BookID, err)
		}
	}
	return nil
}
