package catalog

import (
	"context"
	"log"

	"github.com/xiebiao/library/internal/domain/author"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/publisher"
)

// BookCache 图书详情缓存(由redis.BookCache实现)
// 旁路缓存:读未命中回源,写路径只做失效
type BookCache interface {
	Get(ctx context.Context, bookID uint) (*book.Book, error)
	Set(ctx context.Context, b *book.Book) error
	Invalidate(ctx context.Context, bookID uint) error
}

// Queries 目录查询服务
type Queries struct {
	authorRepo    author.Repository
	publisherRepo publisher.Repository
	bookRepo      book.Repository
	cache         BookCache
}

// NewQueries 创建目录查询服务
func NewQueries(
	authorRepo author.Repository,
	publisherRepo publisher.Repository,
	bookRepo book.Repository,
	cache BookCache,
) *Queries {
	return &Queries{
		authorRepo:    authorRepo,
		publisherRepo: publisherRepo,
		bookRepo:      bookRepo,
		cache:         cache,
	}
}

// GetBook 查询图书详情(缓存旁路)
func (q *Queries) GetBook(ctx context.Context, id uint) (*book.Book, error) {
	if q.cache != nil {
		if b, err := q.cache.Get(ctx, id); err == nil && b != nil {
			return b, nil
		}
	}

	b, err := q.bookRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if q.cache != nil {
		if err := q.cache.Set(ctx, b); err != nil {
			log.Printf("图书缓存写入失败 book_id=%d: %v", id, err)
		}
	}
	return b, nil
}

// GetBookByISBN 按ISBN查询图书
func (q *Queries) GetBookByISBN(ctx context.Context, isbn int64) (*book.Book, error) {
	return q.bookRepo.FindByISBN(ctx, isbn)
}

// ListActiveBooks 在册图书列表
func (q *Queries) ListActiveBooks(ctx context.Context) ([]*book.Book, error) {
	return q.bookRepo.ListActive(ctx)
}

// ListInactiveBooks 注销图书列表
func (q *Queries) ListInactiveBooks(ctx context.Context) ([]*book.Book, error) {
	return q.bookRepo.ListInactive(ctx)
}

// BooksByAuthor 按作者查询图书
func (q *Queries) BooksByAuthor(ctx context.Context, authorID uint) ([]*book.Book, error) {
	if _, err := q.authorRepo.FindByID(ctx, authorID); err != nil {
		return nil, err
	}
	return q.bookRepo.FindByAuthor(ctx, authorID)
}

// BooksByPublisher 按出版社查询图书
func (q *Queries) BooksByPublisher(ctx context.Context, publisherID uint) ([]*book.Book, error) {
	if _, err := q.publisherRepo.FindByID(ctx, publisherID); err != nil {
		return nil, err
	}
	return q.bookRepo.FindByPublisher(ctx, publisherID)
}

// GetAuthor 查询作者
func (q *Queries) GetAuthor(ctx context.Context, id uint) (*author.Author, error) {
	return q.authorRepo.FindByID(ctx, id)
}

// ListActiveAuthors 在册作者列表
func (q *Queries) ListActiveAuthors(ctx context.Context) ([]*author.Author, error) {
	return q.authorRepo.ListActive(ctx)
}

// ListInactiveAuthors 注销作者列表
func (q *Queries) ListInactiveAuthors(ctx context.Context) ([]*author.Author, error) {
	return q.authorRepo.ListInactive(ctx)
}

// GetPublisher 查询出版社
func (q *Queries) GetPublisher(ctx context.Context, id uint) (*publisher.Publisher, error) {
	return q.publisherRepo.FindByID(ctx, id)
}

// ListActivePublishers 在册出版社列表
func (q *Queries) ListActivePublishers(ctx context.Context) ([]*publisher.Publisher, error) {
	return q.publisherRepo.ListActive(ctx)
}

// ListInactivePublishers 注销出版社列表
func (q *Queries) ListInactivePublishers(ctx context.Context) ([]*publisher.Publisher, error) {
	return q.publisherRepo.ListInactive(ctx)
}
