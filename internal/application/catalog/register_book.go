package catalog

import (
	"context"
	"errors"

	"github.com/xiebiao/library/internal/domain/author"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/publisher"
)

// TxManager 事务边界(由mysql.TxManager实现)
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// RegisterBookUseCase 图书登记用例
type RegisterBookUseCase struct {
	bookRepo      book.Repository
	authorRepo    author.Repository
	publisherRepo publisher.Repository
	txManager     TxManager
}

// NewRegisterBookUseCase 创建图书登记用例
func NewRegisterBookUseCase(
	bookRepo book.Repository,
	authorRepo author.Repository,
	publisherRepo publisher.Repository,
	txManager TxManager,
) *RegisterBookUseCase {
	return &RegisterBookUseCase{
		bookRepo:      bookRepo,
		authorRepo:    authorRepo,
		publisherRepo: publisherRepo,
		txManager:     txManager,
	}
}

// RegisterBookRequest 图书登记请求DTO
type RegisterBookRequest struct {
	ISBN        int64
	Title       string
	Year        int
	Description string
	TotalCopies int
	AuthorID    uint
	PublisherID uint
}

// Execute 执行图书登记
// 业务规则:
// 1. 基础字段校验(正数ISBN/年份、必填书名/描述、非负副本数)
// 2. 作者与出版社必须已登记
// 3. ISBN不能重复(数据库唯一索引兜底)
// 4. 归属的作者/出版社若已注销,登记图书时将其一并恢复
//    (新书必须有在册的归属方)
func (uc *RegisterBookUseCase) Execute(ctx context.Context, req RegisterBookRequest) (*book.Book, error) {
	if err := book.ValidateFields(req.ISBN, req.Title, req.Year, req.Description, req.TotalCopies); err != nil {
		return nil, err
	}

	var result *book.Book
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		a, err := uc.authorRepo.FindByID(txCtx, req.AuthorID)
		if err != nil {
			return err
		}
		p, err := uc.publisherRepo.FindByID(txCtx, req.PublisherID)
		if err != nil {
			return err
		}

		// ISBN重复预检(并发窗口由唯一索引兜底,Create时再转换一次)
		existing, err := uc.bookRepo.FindByISBN(txCtx, req.ISBN)
		if err == nil && existing != nil {
			return book.ErrISBNDuplicate
		}
		if err != nil && !errors.Is(err, book.ErrBookNotFound) {
			return err
		}

		b := book.NewBook(req.ISBN, req.Title, req.Year, req.Description, req.TotalCopies, a.ID, p.ID)
		if err := uc.bookRepo.Create(txCtx, b); err != nil {
			return err
		}

		// 恢复已注销的归属方
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

		result = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
