package lifecycle

import (
	"context"
	"log"
	"time"

	"github.com/xiebiao/library/internal/domain/author"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/event"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/publisher"
)

// TxManager 事务边界(由mysql.TxManager实现)
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// BookCache 图书缓存失效端口(由redis.BookCache实现)
// 生命周期操作改变图书可见性,必须同步失效缓存
type BookCache interface {
	Invalidate(ctx context.Context, bookID uint) error
}

// Engine 生命周期级联引擎
// 设计说明:
// 1. 每个实体只有两个生命周期状态:在册(Active)与注销(Inactive),没有中间态
// 2. 级联方向固定:作者/出版社 → 图书 → 借阅记录,图谱无环,递归必然终止
// 3. 每个公开方法是一个完整事务:级联中途失败时全部回滚,
//    不会出现"部分借阅已关闭而图书仍在架"的中间状态
// 4. 锁获取顺序自顶向下(作者 → 图书 → 借阅),与归还等自底向上操作冲突时
//    由数据库事务层排队等待,不会留下部分生效的状态
// 5. 注销对已注销实体是无操作成功(幂等)
type Engine struct {
	authorRepo    author.Repository
	publisherRepo publisher.Repository
	bookRepo      book.Repository
	loanRepo      loan.Repository
	txManager     TxManager
	events        event.Publisher
	cache         BookCache
	now           func() time.Time
}

// NewEngine 创建生命周期引擎
func NewEngine(
	authorRepo author.Repository,
	publisherRepo publisher.Repository,
	bookRepo book.Repository,
	loanRepo loan.Repository,
	txManager TxManager,
	events event.Publisher,
	cache BookCache,
) *Engine {
	return &Engine{
		authorRepo:    authorRepo,
		publisherRepo: publisherRepo,
		bookRepo:      bookRepo,
		loanRepo:      loanRepo,
		txManager:     txManager,
		events:        events,
		cache:         cache,
		now:           time.Now,
	}
}

// =========================================
// 图书
// =========================================

// DeactivateBook 下架图书
// 级联规则:先对该图书的每笔在借记录执行与归还相同的簿记
// (释放副本+关闭记录),再下架图书。对已下架图书调用是无操作成功。
func (e *Engine) DeactivateBook(ctx context.Context, bookID uint) error {
	err := e.txManager.Transaction(ctx, func(txCtx context.Context) error {
		b, err := e.bookRepo.LockByID(txCtx, bookID)
		if err != nil {
			return err
		}
		return e.deactivateBookLocked(txCtx, b)
	})
	if err != nil {
		return err
	}

	e.invalidateBook(ctx, bookID)
	e.publishLifecycle(ctx, event.BookDeactivated, bookID)
	return nil
}

// ActivateBook 上架图书
// 级联规则:图书上架时,其作者/出版社若已注销则一并恢复
// (上架的图书必须有在册的归属方);不会重新打开已归还的借阅记录。
func (e *Engine) ActivateBook(ctx context.Context, bookID uint) error {
	err := e.txManager.Transaction(ctx, func(txCtx context.Context) error {
		b, err := e.bookRepo.LockByID(txCtx, bookID)
		if err != nil {
			return err
		}
		b.Activate()
		if err := e.bookRepo.Update(txCtx, b); err != nil {
			return err
		}

		// 向上恢复归属方(与自顶向下的级联方向相反,冲突由事务层排队处理)
		a, err := e.authorRepo.FindByID(txCtx, b.AuthorID)
		if err != nil {
			return err
		}
		if !a.Active {
			a.Activate()
			if err := e.authorRepo.Update(txCtx, a); err != nil {
				return err
			}
		}

		p, err := e.publisherRepo.FindByID(txCtx, b.PublisherID)
		if err != nil {
			return err
		}
		if !p.Active {
			p.Activate()
			if err := e.publisherRepo.Update(txCtx, p); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	e.invalidateBook(ctx, bookID)
	e.publishLifecycle(ctx, event.BookActivated, bookID)
	return nil
}

// DeleteBook 物理删除图书
// 级联规则:删除该图书的全部借阅记录(在借的先释放副本),再删除图书
func (e *Engine) DeleteBook(ctx context.Context, bookID uint) error {
	err := e.txManager.Transaction(ctx, func(txCtx context.Context) error {
		b, err := e.bookRepo.LockByID(txCtx, bookID)
		if err != nil {
			return err
		}
		return e.deleteBookLocked(txCtx, b)
	})
	if err != nil {
		return err
	}

	e.invalidateBook(ctx, bookID)
	e.publishLifecycle(ctx, event.BookDeleted, bookID)
	return nil
}

// =========================================
// 作者
// =========================================

// DeactivateAuthor 注销作者
// 级联规则:先下架其名下所有在架图书(进而关闭各图书的在借记录),再注销作者
func (e *Engine) DeactivateAuthor(ctx context.Context, authorID uint) error {
	var touched []uint
	err := e.txManager.Transaction(ctx, func(txCtx context.Context) error {
		a, err := e.authorRepo.LockByID(txCtx, authorID)
		if err != nil {
			return err
		}

		books, err := e.bookRepo.FindByAuthor(txCtx, authorID)
		if err != nil {
			return err
		}
		for _, b := range books {
			if !b.Active {
				continue
			}
			locked, err := e.bookRepo.LockByID(txCtx, b.ID)
			if err != nil {
				return err
			}
			if err := e.deactivateBookLocked(txCtx, locked); err != nil {
				return err
			}
			touched = append(touched, locked.ID)
		}

		a.Deactivate()
		return e.authorRepo.Update(txCtx, a)
	})
	if err != nil {
		return err
	}

	for _, id := range touched {
		e.invalidateBook(ctx, id)
	}
	e.publishLifecycle(ctx, event.AuthorDeactivated, authorID)
	return nil
}

// ActivateAuthor 恢复作者
// 只恢复作者本身,不级联上架其名下图书:图书上架是独立、显式的决策
func (e *Engine) ActivateAuthor(ctx context.Context, authorID uint) error {
	return e.txManager.Transaction(ctx, func(txCtx context.Context) error {
		a, err := e.authorRepo.LockByID(txCtx, authorID)
		if err != nil {
			return err
		}
		a.Activate()
		return e.authorRepo.Update(txCtx, a)
	})
}

// DeleteAuthor 物理删除作者
// 级联规则:先删除其名下所有图书(各自级联删除借阅记录),再删除作者
func (e *Engine) DeleteAuthor(ctx context.Context, authorID uint) error {
	var touched []uint
	err := e.txManager.Transaction(ctx, func(txCtx context.Context) error {
		a, err := e.authorRepo.LockByID(txCtx, authorID)
		if err != nil {
			return err
		}

		books, err := e.bookRepo.FindByAuthor(txCtx, authorID)
		if err != nil {
			return err
		}
		for _, b := range books {
			locked, err := e.bookRepo.LockByID(txCtx, b.ID)
			if err != nil {
				return err
			}
			if err := e.deleteBookLocked(txCtx, locked); err != nil {
				return err
			}
			touched = append(touched, locked.ID)
		}

		return e.authorRepo.Delete(txCtx, a.ID)
	})
	if err != nil {
		return err
	}

	for _, id := range touched {
		e.invalidateBook(ctx, id)
	}
	e.publishLifecycle(ctx, event.AuthorDeleted, authorID)
	return nil
}

// =========================================
// 出版社(与作者对称)
// =========================================

// DeactivatePublisher 注销出版社:先下架其名下所有在架图书,再注销出版社
func (e *Engine) DeactivatePublisher(ctx context.Context, publisherID uint) error {
	var touched []uint
	err := e.txManager.Transaction(ctx, func(txCtx context.Context) error {
		p, err := e.publisherRepo.LockByID(txCtx, publisherID)
		if err != nil {
			return err
		}

		books, err := e.bookRepo.FindByPublisher(txCtx, publisherID)
		if err != nil {
			return err
		}
		for _, b := range books {
			if !b.Active {
				continue
			}
			locked, err := e.bookRepo.LockByID(txCtx, b.ID)
			if err != nil {
				return err
			}
			if err := e.deactivateBookLocked(txCtx, locked); err != nil {
				return err
			}
			touched = append(touched, locked.ID)
		}

		p.Deactivate()
		return e.publisherRepo.Update(txCtx, p)
	})
	if err != nil {
		return err
	}

	for _, id := range touched {
		e.invalidateBook(ctx, id)
	}
	e.publishLifecycle(ctx, event.PublisherDeactivated, publisherID)
	return nil
}

// ActivatePublisher 恢复出版社(不级联上架名下图书)
func (e *Engine) ActivatePublisher(ctx context.Context, publisherID uint) error {
	return e.txManager.Transaction(ctx, func(txCtx context.Context) error {
		p, err := e.publisherRepo.LockByID(txCtx, publisherID)
		if err != nil {
			return err
		}
		p.Activate()
		return e.publisherRepo.Update(txCtx, p)
	})
}

// DeletePublisher 物理删除出版社:先删除其名下所有图书,再删除出版社
func (e *Engine) DeletePublisher(ctx context.Context, publisherID uint) error {
	var touched []uint
	err := e.txManager.Transaction(ctx, func(txCtx context.Context) error {
		p, err := e.publisherRepo.LockByID(txCtx, publisherID)
		if err != nil {
			return err
		}

		books, err := e.bookRepo.FindByPublisher(txCtx, publisherID)
		if err != nil {
			return err
		}
		for _, b := range books {
			locked, err := e.bookRepo.LockByID(txCtx, b.ID)
			if err != nil {
				return err
			}
			if err := e.deleteBookLocked(txCtx, locked); err != nil {
				return err
			}
			touched = append(touched, locked.ID)
		}

		return e.publisherRepo.Delete(txCtx, p.ID)
	})
	if err != nil {
		return err
	}

	for _, id := range touched {
		e.invalidateBook(ctx, id)
	}
	e.publishLifecycle(ctx, event.PublisherDeleted, publisherID)
	return nil
}

// =========================================
// 事务内级联辅助(调用方已持有图书行锁)
// =========================================

// deactivateBookLocked 下架已锁定的图书
// 对每笔在借记录执行归还簿记:释放副本、关闭记录、记录归还时间
func (e *Engine) deactivateBookLocked(txCtx context.Context, b *book.Book) error {
	if !b.Active {
		// 幂等:已下架直接成功
		return nil
	}

	activeLoans, err := e.loanRepo.FindActiveByBook(txCtx, b.ID)
	if err != nil {
		return err
	}
	returnedAt := e.now()
	for _, l := range activeLoans {
		if err := b.Release(); err != nil {
			return err
		}
		if err := l.Close(returnedAt); err != nil {
			return err
		}
		if err := e.loanRepo.Update(txCtx, l); err != nil {
			return err
		}
	}

	b.Deactivate()
	return e.bookRepo.Update(txCtx, b)
}

// deleteBookLocked 删除已锁定的图书及其全部借阅记录
// 在借记录先释放副本(与删除单笔借阅的簿记一致),再删除记录,最后删除图书
func (e *Engine) deleteBookLocked(txCtx context.Context, b *book.Book) error {
	loans, err := e.loanRepo.FindByBook(txCtx, b.ID)
	if err != nil {
		return err
	}
	for _, l := range loans {
		if l.Active {
			if err := b.Release(); err != nil {
				return err
			}
		}
		if err := e.loanRepo.Delete(txCtx, l.ID); err != nil {
			return err
		}
	}

	return e.bookRepo.Delete(txCtx, b.ID)
}

// =========================================
// 事务外副作用(缓存失效与事件,均尽力而为)
// =========================================

func (e *Engine) invalidateBook(ctx context.Context, bookID uint) {
	if e.cache == nil {
		return
	}
	if err := e.cache.Invalidate(ctx, bookID); err != nil {
		log.Printf("图书缓存失效失败 book_id=%d: %v", bookID, err)
	}
}

func (e *Engine) publishLifecycle(ctx context.Context, routingKey string, entityID uint) {
	if e.events == nil {
		return
	}
	payload := event.LifecycleEvent{EntityID: entityID, At: e.now()}
	if err := e.events.Publish(ctx, routingKey, payload); err != nil {
		log.Printf("发布事件失败 routing_key=%s entity_id=%d: %v", routingKey, entityID, err)
	}
}
