package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/author"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/publisher"
)

// =========================================
// 内存仓储夹具
// =========================================

type fakeTxManager struct{}

func (m *fakeTxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeAuthorRepo struct {
	authors map[uint]*author.Author
}

func newFakeAuthorRepo(authors ...*author.Author) *fakeAuthorRepo {
	r := &fakeAuthorRepo{authors: make(map[uint]*author.Author)}
	for _, a := range authors {
		r.authors[a.ID] = a
	}
	return r
}

func (r *fakeAuthorRepo) Create(_ context.Context, a *author.Author) error {
	r.authors[a.ID] = a
	return nil
}
func (r *fakeAuthorRepo) FindByID(_ context.Context, id uint) (*author.Author, error) {
	a, ok := r.authors[id]
	if !ok {
		return nil, author.ErrAuthorNotFound
	}
	return a, nil
}
func (r *fakeAuthorRepo) FindByName(_ context.Context, _ string) (*author.Author, error) {
	return nil, author.ErrAuthorNotFound
}
func (r *fakeAuthorRepo) ListActive(_ context.Context) ([]*author.Author, error)   { return nil, nil }
func (r *fakeAuthorRepo) ListInactive(_ context.Context) ([]*author.Author, error) { return nil, nil }
func (r *fakeAuthorRepo) Update(_ context.Context, a *author.Author) error {
	r.authors[a.ID] = a
	return nil
}
func (r *fakeAuthorRepo) Delete(_ context.Context, id uint) error {
	delete(r.authors, id)
	return nil
}
func (r *fakeAuthorRepo) LockByID(ctx context.Context, id uint) (*author.Author, error) {
	return r.FindByID(ctx, id)
}

type fakePublisherRepo struct {
	publishers map[uint]*publisher.Publisher
}

func newFakePublisherRepo(publishers ...*publisher.Publisher) *fakePublisherRepo {
	r := &fakePublisherRepo{publishers: make(map[uint]*publisher.Publisher)}
	for _, p := range publishers {
		r.publishers[p.ID] = p
	}
	return r
}

func (r *fakePublisherRepo) Create(_ context.Context, p *publisher.Publisher) error {
	r.publishers[p.ID] = p
	return nil
}
func (r *fakePublisherRepo) FindByID(_ context.Context, id uint) (*publisher.Publisher, error) {
	p, ok := r.publishers[id]
	if !ok {
		return nil, publisher.ErrPublisherNotFound
	}
	return p, nil
}
func (r *fakePublisherRepo) FindByName(_ context.Context, _ string) (*publisher.Publisher, error) {
	return nil, publisher.ErrPublisherNotFound
}
func (r *fakePublisherRepo) ListActive(_ context.Context) ([]*publisher.Publisher, error) {
	return nil, nil
}
func (r *fakePublisherRepo) ListInactive(_ context.Context) ([]*publisher.Publisher, error) {
	return nil, nil
}
func (r *fakePublisherRepo) Update(_ context.Context, p *publisher.Publisher) error {
	r.publishers[p.ID] = p
	return nil
}
func (r *fakePublisherRepo) Delete(_ context.Context, id uint) error {
	delete(r.publishers, id)
	return nil
}
func (r *fakePublisherRepo) LockByID(ctx context.Context, id uint) (*publisher.Publisher, error) {
	return r.FindByID(ctx, id)
}

type fakeBookRepo struct {
	books  map[uint]*book.Book
	nextID uint
}

func newFakeBookRepo(books ...*book.Book) *fakeBookRepo {
	r := &fakeBookRepo{books: make(map[uint]*book.Book), nextID: 1}
	for _, b := range books {
		if b.ID >= r.nextID {
			r.nextID = b.ID + 1
		}
		r.books[b.ID] = b
	}
	return r
}

func (r *fakeBookRepo) Create(_ context.Context, b *book.Book) error {
	for _, existing := range r.books {
		if existing.ISBN == b.ISBN {
			return book.ErrISBNDuplicate
		}
	}
	b.ID = r.nextID
	r.nextID++
	r.books[b.ID] = b
	return nil
}
func (r *fakeBookRepo) FindByID(_ context.Context, id uint) (*book.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return b, nil
}
func (r *fakeBookRepo) FindByISBN(_ context.Context, isbn int64) (*book.Book, error) {
	for _, b := range r.books {
		if b.ISBN == isbn {
			return b, nil
		}
	}
	return nil, book.ErrBookNotFound
}
func (r *fakeBookRepo) FindByAuthor(_ context.Context, authorID uint) ([]*book.Book, error) {
	var out []*book.Book
	for _, b := range r.books {
		if b.AuthorID == authorID {
			out = append(out, b)
		}
	}
	return out, nil
}
func (r *fakeBookRepo) FindByPublisher(_ context.Context, publisherID uint) ([]*book.Book, error) {
	var out []*book.Book
	for _, b := range r.books {
		if b.PublisherID == publisherID {
			out = append(out, b)
		}
	}
	return out, nil
}
func (r *fakeBookRepo) ListActive(_ context.Context) ([]*book.Book, error)   { return nil, nil }
func (r *fakeBookRepo) ListInactive(_ context.Context) ([]*book.Book, error) { return nil, nil }
func (r *fakeBookRepo) Update(_ context.Context, b *book.Book) error         { r.books[b.ID] = b; return nil }
func (r *fakeBookRepo) Delete(_ context.Context, id uint) error {
	delete(r.books, id)
	return nil
}
func (r *fakeBookRepo) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	return r.FindByID(ctx, id)
}

type fakeLoanRepo struct {
	activeByBook map[uint]int
}

func (r *fakeLoanRepo) Create(_ context.Context, _ *loan.Loan) error { return nil }
func (r *fakeLoanRepo) FindByID(_ context.Context, _ uint) (*loan.Loan, error) {
	return nil, loan.ErrLoanNotFound
}
func (r *fakeLoanRepo) FindByBook(_ context.Context, _ uint) ([]*loan.Loan, error) {
	return nil, nil
}
func (r *fakeLoanRepo) FindActiveByBook(_ context.Context, _ uint) ([]*loan.Loan, error) {
	return nil, nil
}
func (r *fakeLoanRepo) FindByMember(_ context.Context, _ uint) ([]*loan.Loan, error) {
	return nil, nil
}
func (r *fakeLoanRepo) CountActiveByBook(_ context.Context, bookID uint) (int, error) {
	return r.activeByBook[bookID], nil
}
func (r *fakeLoanRepo) CountActiveByMember(_ context.Context, _ uint) (int, error) { return 0, nil }
func (r *fakeLoanRepo) ListActive(_ context.Context) ([]*loan.Loan, error)         { return nil, nil }
func (r *fakeLoanRepo) ListInactive(_ context.Context) ([]*loan.Loan, error)       { return nil, nil }
func (r *fakeLoanRepo) Update(_ context.Context, _ *loan.Loan) error               { return nil }
func (r *fakeLoanRepo) Delete(_ context.Context, _ uint) error                     { return nil }

func testAuthor(id uint) *author.Author {
	a := author.NewAuthor("测试作者")
	a.ID = id
	return a
}

func testPublisher(id uint) *publisher.Publisher {
	p := publisher.NewPublisher("测试出版社")
	p.ID = id
	return p
}

func validBookRequest() RegisterBookRequest {
	return RegisterBookRequest{
		ISBN:        9787111558422,
		Title:       "Go程序设计语言",
		Year:        2017,
		Description: "Go语言圣经中文版",
		TotalCopies: 3,
		AuthorID:    1,
		PublisherID: 1,
	}
}

// =========================================
// 图书登记测试
// =========================================

// TestRegisterBookUseCase 测试图书登记用例
func TestRegisterBookUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("正常登记", func(t *testing.T) {
		bookRepo := newFakeBookRepo()
		uc := NewRegisterBookUseCase(bookRepo, newFakeAuthorRepo(testAuthor(1)),
			newFakePublisherRepo(testPublisher(1)), &fakeTxManager{})

		b, err := uc.Execute(ctx, validBookRequest())
		require.NoError(t, err)

		assert.NotZero(t, b.ID)
		assert.Equal(t, 3, b.AvailableCopies, "新书全部副本可借")
		assert.True(t, b.Active)
	})

	t.Run("字段校验失败", func(t *testing.T) {
		uc := NewRegisterBookUseCase(newFakeBookRepo(), newFakeAuthorRepo(testAuthor(1)),
			newFakePublisherRepo(testPublisher(1)), &fakeTxManager{})

		req := validBookRequest()
		req.ISBN = -1
		_, err := uc.Execute(ctx, req)
		assert.ErrorIs(t, err, book.ErrInvalidISBN)

		req = validBookRequest()
		req.Title = ""
		_, err = uc.Execute(ctx, req)
		assert.ErrorIs(t, err, book.ErrInvalidTitle)

		req = validBookRequest()
		req.TotalCopies = -1
		_, err = uc.Execute(ctx, req)
		assert.ErrorIs(t, err, book.ErrInvalidCopies)
	})

	t.Run("作者不存在", func(t *testing.T) {
		uc := NewRegisterBookUseCase(newFakeBookRepo(), newFakeAuthorRepo(),
			newFakePublisherRepo(testPublisher(1)), &fakeTxManager{})

		_, err := uc.Execute(ctx, validBookRequest())
		assert.ErrorIs(t, err, author.ErrAuthorNotFound)
	})

	t.Run("出版社不存在", func(t *testing.T) {
		uc := NewRegisterBookUseCase(newFakeBookRepo(), newFakeAuthorRepo(testAuthor(1)),
			newFakePublisherRepo(), &fakeTxManager{})

		_, err := uc.Execute(ctx, validBookRequest())
		assert.ErrorIs(t, err, publisher.ErrPublisherNotFound)
	})

	t.Run("ISBN重复", func(t *testing.T) {
		bookRepo := newFakeBookRepo()
		uc := NewRegisterBookUseCase(bookRepo, newFakeAuthorRepo(testAuthor(1)),
			newFakePublisherRepo(testPublisher(1)), &fakeTxManager{})

		_, err := uc.Execute(ctx, validBookRequest())
		require.NoError(t, err)

		req := validBookRequest()
		req.Title = "另一本书"
		_, err = uc.Execute(ctx, req)
		assert.ErrorIs(t, err, book.ErrISBNDuplicate)
		assert.Len(t, bookRepo.books, 1, "重复登记不应该创建新记录")
	})

	t.Run("登记图书恢复已注销的归属方", func(t *testing.T) {
		a := testAuthor(1)
		a.Deactivate()
		p := testPublisher(1)
		p.Deactivate()
		uc := NewRegisterBookUseCase(newFakeBookRepo(), newFakeAuthorRepo(a),
			newFakePublisherRepo(p), &fakeTxManager{})

		_, err := uc.Execute(ctx, validBookRequest())
		require.NoError(t, err)

		assert.True(t, a.Active, "作者应该被恢复")
		assert.True(t, p.Active, "出版社应该被恢复")
	})
}

// TestUpdateBookUseCase 测试图书修改用例
func TestUpdateBookUseCase(t *testing.T) {
	ctx := context.Background()

	setup := func(totalCopies, activeLoans int) (*UpdateBookUseCase, *fakeBookRepo) {
		b := book.NewBook(9787111558422, "旧书名", 2017, "旧描述", totalCopies, 1, 1)
		b.ID = 1
		b.LentCopies = activeLoans
		b.AvailableCopies = totalCopies - activeLoans
		bookRepo := newFakeBookRepo(b)
		loanRepo := &fakeLoanRepo{activeByBook: map[uint]int{1: activeLoans}}
		uc := NewUpdateBookUseCase(bookRepo, newFakeAuthorRepo(testAuthor(1), testAuthor(2)),
			newFakePublisherRepo(testPublisher(1)), loanRepo, &fakeTxManager{}, nil)
		return uc, bookRepo
	}

	t.Run("正常修改", func(t *testing.T) {
		uc, bookRepo := setup(3, 1)

		err := uc.Execute(ctx, UpdateBookRequest{
			BookID: 1, ISBN: 9787111558422, Title: "新书名", Year: 2020,
			Description: "新描述", TotalCopies: 5, AuthorID: 2, PublisherID: 1,
		})
		require.NoError(t, err)

		b := bookRepo.books[1]
		assert.Equal(t, "新书名", b.Title)
		assert.Equal(t, uint(2), b.AuthorID, "应该允许改挂作者")
		assert.Equal(t, 5, b.TotalCopies)
		assert.Equal(t, 1, b.LentCopies, "在借数以重新统计为准")
		assert.Equal(t, 4, b.AvailableCopies)
	})

	t.Run("副本总数低于在借数时拒绝", func(t *testing.T) {
		uc, bookRepo := setup(5, 3)

		err := uc.Execute(ctx, UpdateBookRequest{
			BookID: 1, ISBN: 9787111558422, Title: "新书名", Year: 2020,
			Description: "新描述", TotalCopies: 2, AuthorID: 1, PublisherID: 1,
		})
		assert.ErrorIs(t, err, book.ErrCopiesBelowLoans)
		assert.Equal(t, 5, bookRepo.books[1].TotalCopies, "失败的修改不应该落库")
	})

	t.Run("图书不存在", func(t *testing.T) {
		uc, _ := setup(3, 0)

		err := uc.Execute(ctx, UpdateBookRequest{
			BookID: 99, ISBN: 9787111558422, Title: "新书名", Year: 2020,
			Description: "新描述", TotalCopies: 3, AuthorID: 1, PublisherID: 1,
		})
		assert.ErrorIs(t, err, book.ErrBookNotFound)
	})

	t.Run("改挂到已注销的归属方时将其恢复", func(t *testing.T) {
		b := book.NewBook(9787111558422, "书名", 2017, "描述", 3, 1, 1)
		b.ID = 1
		a2 := testAuthor(2)
		a2.Deactivate()
		p2 := testPublisher(2)
		p2.Deactivate()
		uc := NewUpdateBookUseCase(newFakeBookRepo(b), newFakeAuthorRepo(testAuthor(1), a2),
			newFakePublisherRepo(testPublisher(1), p2), &fakeLoanRepo{}, &fakeTxManager{}, nil)

		err := uc.Execute(ctx, UpdateBookRequest{
			BookID: 1, ISBN: 9787111558422, Title: "书名", Year: 2017,
			Description: "描述", TotalCopies: 3, AuthorID: 2, PublisherID: 2,
		})
		require.NoError(t, err)

		assert.True(t, a2.Active, "在册图书改挂后作者应该被恢复")
		assert.True(t, p2.Active, "在册图书改挂后出版社应该被恢复")
		assert.True(t, b.Active)
	})

	t.Run("注销图书改挂不恢复归属方", func(t *testing.T) {
		b := book.NewBook(9787111558422, "书名", 2017, "描述", 3, 1, 1)
		b.ID = 1
		b.Deactivate()
		a2 := testAuthor(2)
		a2.Deactivate()
		uc := NewUpdateBookUseCase(newFakeBookRepo(b), newFakeAuthorRepo(testAuthor(1), a2),
			newFakePublisherRepo(testPublisher(1)), &fakeLoanRepo{}, &fakeTxManager{}, nil)

		err := uc.Execute(ctx, UpdateBookRequest{
			BookID: 1, ISBN: 9787111558422, Title: "书名", Year: 2017,
			Description: "描述", TotalCopies: 3, AuthorID: 2, PublisherID: 1,
		})
		require.NoError(t, err)

		assert.False(t, a2.Active, "注销图书不受归属方在册约束,不应该连带恢复")
	})
}

// =========================================
// 查询服务测试
// =========================================

// recordingCache 记录读写的缓存桩
type recordingCache struct {
	store map[uint]*book.Book
	gets  int
	hits  int
	sets  int
}

func newRecordingCache() *recordingCache {
	return &recordingCache{store: make(map[uint]*book.Book)}
}

func (c *recordingCache) Get(_ context.Context, bookID uint) (*book.Book, error) {
	c.gets++
	if b, ok := c.store[bookID]; ok {
		c.hits++
		return b, nil
	}
	return nil, nil
}

func (c *recordingCache) Set(_ context.Context, b *book.Book) error {
	c.sets++
	c.store[b.ID] = b
	return nil
}

func (c *recordingCache) Invalidate(_ context.Context, bookID uint) error {
	delete(c.store, bookID)
	return nil
}

// TestQueries_GetBook 测试图书详情的旁路缓存
func TestQueries_GetBook(t *testing.T) {
	ctx := context.Background()

	b := book.NewBook(9787111558422, "测试图书", 2017, "描述", 3, 1, 1)
	b.ID = 1
	bookRepo := newFakeBookRepo(b)
	cache := newRecordingCache()
	q := NewQueries(newFakeAuthorRepo(testAuthor(1)), newFakePublisherRepo(testPublisher(1)), bookRepo, cache)

	// 第一次查询:未命中,回源并写缓存
	got, err := q.GetBook(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
	assert.Equal(t, 0, cache.hits, "首次查询应该未命中")
	assert.Equal(t, 1, cache.sets, "回源后应该写缓存")

	// 第二次查询:命中缓存
	_, err = q.GetBook(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits, "第二次查询应该命中缓存")
	assert.Equal(t, 1, cache.sets, "命中后不应该再写缓存")

	// 失效后再查询:重新回源
	require.NoError(t, cache.Invalidate(ctx, 1))
	_, err = q.GetBook(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, cache.sets, "失效后回源应该重新写缓存")

	// 不存在的图书
	_, err = q.GetBook(ctx, 99)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

// TestQueries_BooksByAuthor 测试按归属方查询
func TestQueries_BooksByAuthor(t *testing.T) {
	ctx := context.Background()

	b1 := book.NewBook(1001, "图书1", 2017, "描述", 3, 1, 1)
	b1.ID = 1
	b2 := book.NewBook(1002, "图书2", 2018, "描述", 2, 1, 1)
	b2.ID = 2
	bookRepo := newFakeBookRepo(b1, b2)
	q := NewQueries(newFakeAuthorRepo(testAuthor(1)), newFakePublisherRepo(testPublisher(1)), bookRepo, nil)

	t.Run("正常查询", func(t *testing.T) {
		books, err := q.BooksByAuthor(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, books, 2)
	})

	t.Run("作者不存在时报错而非空列表", func(t *testing.T) {
		_, err := q.BooksByAuthor(ctx, 99)
		assert.ErrorIs(t, err, author.ErrAuthorNotFound)
	})

	t.Run("出版社不存在时报错而非空列表", func(t *testing.T) {
		_, err := q.BooksByPublisher(ctx, 99)
		assert.ErrorIs(t, err, publisher.ErrPublisherNotFound)
	})
}
