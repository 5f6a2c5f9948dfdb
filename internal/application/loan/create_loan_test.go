package loan

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/member"
)

// =========================================
// 内存仓储(事务语义简化为直接执行,并发正确性由数据库锁保证,
// 这里只验证用例的业务编排)
// =========================================

type fakeTxManager struct{}

func (m *fakeTxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeBookRepo struct {
	books map[uint]*book.Book
}

func newFakeBookRepo(books ...*book.Book) *fakeBookRepo {
	r := &fakeBookRepo{books: make(map[uint]*book.Book)}
	for _, b := range books {
		r.books[b.ID] = b
	}
	return r
}

func (r *fakeBookRepo) Create(_ context.Context, b *book.Book) error { r.books[b.ID] = b; return nil }
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
	loans  map[uint]*loan.Loan
	nextID uint
}

func newFakeLoanRepo(loans ...*loan.Loan) *fakeLoanRepo {
	r := &fakeLoanRepo{loans: make(map[uint]*loan.Loan), nextID: 1}
	for _, l := range loans {
		if l.ID >= r.nextID {
			r.nextID = l.ID + 1
		}
		r.loans[l.ID] = l
	}
	return r
}

func (r *fakeLoanRepo) Create(_ context.Context, l *loan.Loan) error {
	l.ID = r.nextID
	r.nextID++
	r.loans[l.ID] = l
	return nil
}
func (r *fakeLoanRepo) FindByID(_ context.Context, id uint) (*loan.Loan, error) {
	l, ok := r.loans[id]
	if !ok {
		return nil, loan.ErrLoanNotFound
	}
	return l, nil
}
func (r *fakeLoanRepo) FindByBook(_ context.Context, bookID uint) ([]*loan.Loan, error) {
	var out []*loan.Loan
	for _, l := range r.loans {
		if l.BookID == bookID {
			out = append(out, l)
		}
	}
	return out, nil
}
func (r *fakeLoanRepo) FindActiveByBook(_ context.Context, bookID uint) ([]*loan.Loan, error) {
	var out []*loan.Loan
	for _, l := range r.loans {
		if l.BookID == bookID && l.Active {
			out = append(out, l)
		}
	}
	return out, nil
}
func (r *fakeLoanRepo) FindByMember(_ context.Context, memberID uint) ([]*loan.Loan, error) {
	var out []*loan.Loan
	for _, l := range r.loans {
		if l.MemberID == memberID {
			out = append(out, l)
		}
	}
	return out, nil
}
func (r *fakeLoanRepo) CountActiveByBook(_ context.Context, bookID uint) (int, error) {
	count := 0
	for _, l := range r.loans {
		if l.BookID == bookID && l.Active {
			count++
		}
	}
	return count, nil
}
func (r *fakeLoanRepo) CountActiveByMember(_ context.Context, memberID uint) (int, error) {
	count := 0
	for _, l := range r.loans {
		if l.MemberID == memberID && l.Active {
			count++
		}
	}
	return count, nil
}
func (r *fakeLoanRepo) ListActive(_ context.Context) ([]*loan.Loan, error)   { return nil, nil }
func (r *fakeLoanRepo) ListInactive(_ context.Context) ([]*loan.Loan, error) { return nil, nil }
func (r *fakeLoanRepo) Update(_ context.Context, l *loan.Loan) error {
	r.loans[l.ID] = l
	return nil
}
func (r *fakeLoanRepo) Delete(_ context.Context, id uint) error {
	delete(r.loans, id)
	return nil
}

type fakeMemberRepo struct {
	members map[uint]*member.Member
}

func newFakeMemberRepo(members ...*member.Member) *fakeMemberRepo {
	r := &fakeMemberRepo{members: make(map[uint]*member.Member)}
	for _, m := range members {
		r.members[m.ID] = m
	}
	return r
}

func (r *fakeMemberRepo) Create(_ context.Context, m *member.Member) error {
	r.members[m.ID] = m
	return nil
}
func (r *fakeMemberRepo) FindByID(_ context.Context, id uint) (*member.Member, error) {
	m, ok := r.members[id]
	if !ok {
		return nil, member.ErrMemberNotFound
	}
	return m, nil
}
func (r *fakeMemberRepo) FindByEmail(_ context.Context, _ string) (*member.Member, error) {
	return nil, member.ErrMemberNotFound
}
func (r *fakeMemberRepo) ListActive(_ context.Context) ([]*member.Member, error)   { return nil, nil }
func (r *fakeMemberRepo) ListInactive(_ context.Context) ([]*member.Member, error) { return nil, nil }
func (r *fakeMemberRepo) Update(_ context.Context, m *member.Member) error {
	r.members[m.ID] = m
	return nil
}
func (r *fakeMemberRepo) LockByID(ctx context.Context, id uint) (*member.Member, error) {
	return r.FindByID(ctx, id)
}

// =========================================
// 测试数据构造
// =========================================

func testBook(id uint, totalCopies int) *book.Book {
	b := book.NewBook(int64(9780000000000+id), "测试图书", 2020, "描述", totalCopies, 1, 1)
	b.ID = id
	return b
}

func testMember(id uint) *member.Member {
	m := member.NewMember("member@example.com", "hash", "测试会员")
	m.ID = id
	return m
}

func testDates() (time.Time, time.Time) {
	loanDate := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	return loanDate, loanDate.AddDate(0, 0, 14)
}

// =========================================
// 借阅准入测试
// =========================================

// TestCreateLoanUseCase 测试借阅准入用例
func TestCreateLoanUseCase(t *testing.T) {
	ctx := context.Background()
	loanDate, dueDate := testDates()

	t.Run("正常借阅", func(t *testing.T) {
		bookRepo := newFakeBookRepo(testBook(1, 3))
		loanRepo := newFakeLoanRepo()
		memberRepo := newFakeMemberRepo(testMember(10))
		uc := NewCreateLoanUseCase(loanRepo, bookRepo, memberRepo, &fakeTxManager{}, nil, nil)

		resp, err := uc.Execute(ctx, CreateLoanRequest{
			MemberID: 10, BookID: 1, LoanDate: loanDate, DueDate: dueDate,
		})
		require.NoError(t, err)

		assert.NotZero(t, resp.LoanID)
		assert.NotEmpty(t, resp.LoanNo)
		assert.Equal(t, uint(1), resp.BookID)
		assert.Equal(t, uint(10), resp.MemberID)

		b := bookRepo.books[1]
		assert.Equal(t, 1, b.LentCopies, "借阅成功应该预留一个副本")
		assert.Equal(t, 2, b.AvailableCopies)
	})

	t.Run("日期非法时不进事务", func(t *testing.T) {
		bookRepo := newFakeBookRepo(testBook(1, 3))
		loanRepo := newFakeLoanRepo()
		memberRepo := newFakeMemberRepo(testMember(10))
		uc := NewCreateLoanUseCase(loanRepo, bookRepo, memberRepo, &fakeTxManager{}, nil, nil)

		_, err := uc.Execute(ctx, CreateLoanRequest{
			MemberID: 10, BookID: 1, LoanDate: dueDate, DueDate: loanDate,
		})
		assert.ErrorIs(t, err, loan.ErrDatesOutOfOrder)
		assert.Empty(t, loanRepo.loans, "校验失败不应该创建记录")
	})

	t.Run("会员不存在", func(t *testing.T) {
		uc := NewCreateLoanUseCase(newFakeLoanRepo(), newFakeBookRepo(testBook(1, 3)),
			newFakeMemberRepo(), &fakeTxManager{}, nil, nil)

		_, err := uc.Execute(ctx, CreateLoanRequest{
			MemberID: 99, BookID: 1, LoanDate: loanDate, DueDate: dueDate,
		})
		assert.ErrorIs(t, err, member.ErrMemberNotFound)
	})

	t.Run("停用会员不能借阅", func(t *testing.T) {
		m := testMember(10)
		m.Deactivate()
		uc := NewCreateLoanUseCase(newFakeLoanRepo(), newFakeBookRepo(testBook(1, 3)),
			newFakeMemberRepo(m), &fakeTxManager{}, nil, nil)

		_, err := uc.Execute(ctx, CreateLoanRequest{
			MemberID: 10, BookID: 1, LoanDate: loanDate, DueDate: dueDate,
		})
		assert.ErrorIs(t, err, member.ErrMemberInactive)
	})

	t.Run("达到4笔在借上限时拒绝", func(t *testing.T) {
		bookRepo := newFakeBookRepo(testBook(1, 10))
		loanRepo := newFakeLoanRepo()
		memberRepo := newFakeMemberRepo(testMember(10))
		uc := NewCreateLoanUseCase(loanRepo, bookRepo, memberRepo, &fakeTxManager{}, nil, nil)

		// 前4笔借阅成功
		for i := 0; i < loan.MaxActiveLoansPerMember; i++ {
			_, err := uc.Execute(ctx, CreateLoanRequest{
				MemberID: 10, BookID: 1, LoanDate: loanDate, DueDate: dueDate,
			})
			require.NoError(t, err, "第%d笔借阅应该成功", i+1)
		}

		// 第5笔被拒
		_, err := uc.Execute(ctx, CreateLoanRequest{
			MemberID: 10, BookID: 1, LoanDate: loanDate, DueDate: dueDate,
		})
		assert.ErrorIs(t, err, loan.ErrLoanLimitReached)
		assert.Equal(t, 4, bookRepo.books[1].LentCopies, "被拒的借阅不应该占用副本")
	})

	t.Run("归还一笔后可以再借", func(t *testing.T) {
		bookRepo := newFakeBookRepo(testBook(1, 10))
		loanRepo := newFakeLoanRepo()
		memberRepo := newFakeMemberRepo(testMember(10))
		createUC := NewCreateLoanUseCase(loanRepo, bookRepo, memberRepo, &fakeTxManager{}, nil, nil)
		returnUC := NewReturnLoanUseCase(loanRepo, bookRepo, &fakeTxManager{}, nil, nil)

		var firstLoanID uint
		for i := 0; i < loan.MaxActiveLoansPerMember; i++ {
			resp, err := createUC.Execute(ctx, CreateLoanRequest{
				MemberID: 10, BookID: 1, LoanDate: loanDate, DueDate: dueDate,
			})
			require.NoError(t, err)
			if i == 0 {
				firstLoanID = resp.LoanID
			}
		}

		require.NoError(t, returnUC.Execute(ctx, firstLoanID))

		_, err := createUC.Execute(ctx, CreateLoanRequest{
			MemberID: 10, BookID: 1, LoanDate: loanDate, DueDate: dueDate,
		})
		assert.NoError(t, err, "归还后在借数降到3,应该允许新借阅")
	})

	t.Run("图书不存在", func(t *testing.T) {
		uc := NewCreateLoanUseCase(newFakeLoanRepo(), newFakeBookRepo(),
			newFakeMemberRepo(testMember(10)), &fakeTxManager{}, nil, nil)

		_, err := uc.Execute(ctx, CreateLoanRequest{
			MemberID: 10, BookID: 99, LoanDate: loanDate, DueDate: dueDate,
		})
		assert.ErrorIs(t, err, book.ErrBookNotFound)
	})

	t.Run("下架图书不能借阅", func(t *testing.T) {
		b := testBook(1, 3)
		b.Deactivate()
		uc := NewCreateLoanUseCase(newFakeLoanRepo(), newFakeBookRepo(b),
			newFakeMemberRepo(testMember(10)), &fakeTxManager{}, nil, nil)

		_, err := uc.Execute(ctx, CreateLoanRequest{
			MemberID: 10, BookID: 1, LoanDate: loanDate, DueDate: dueDate,
		})
		assert.ErrorIs(t, err, book.ErrBookInactive)
	})

	t.Run("无可借副本时拒绝", func(t *testing.T) {
		bookRepo := newFakeBookRepo(testBook(1, 1))
		loanRepo := newFakeLoanRepo()
		memberRepo := newFakeMemberRepo(testMember(10), testMember(11))
		uc := NewCreateLoanUseCase(loanRepo, bookRepo, memberRepo, &fakeTxManager{}, nil, nil)

		_, err := uc.Execute(ctx, CreateLoanRequest{
			MemberID: 10, BookID: 1, LoanDate: loanDate, DueDate: dueDate,
		})
		require.NoError(t, err, "唯一副本第一次借出应该成功")

		_, err = uc.Execute(ctx, CreateLoanRequest{
			MemberID: 11, BookID: 1, LoanDate: loanDate, DueDate: dueDate,
		})
		assert.ErrorIs(t, err, book.ErrNoCopiesAvailable)
	})
}

// TestReturnLoanUseCase 测试归还用例
func TestReturnLoanUseCase(t *testing.T) {
	ctx := context.Background()
	loanDate, dueDate := testDates()

	t.Run("正常归还", func(t *testing.T) {
		bookRepo := newFakeBookRepo(testBook(1, 3))
		loanRepo := newFakeLoanRepo()
		memberRepo := newFakeMemberRepo(testMember(10))
		createUC := NewCreateLoanUseCase(loanRepo, bookRepo, memberRepo, &fakeTxManager{}, nil, nil)
		returnUC := NewReturnLoanUseCase(loanRepo, bookRepo, &fakeTxManager{}, nil, nil)

		resp, err := createUC.Execute(ctx, CreateLoanRequest{
			MemberID: 10, BookID: 1, LoanDate: loanDate, DueDate: dueDate,
		})
		require.NoError(t, err)

		require.NoError(t, returnUC.Execute(ctx, resp.LoanID))

		l := loanRepo.loans[resp.LoanID]
		assert.False(t, l.Active, "归还后记录应该关闭")
		assert.NotNil(t, l.ReturnedAt)

		b := bookRepo.books[1]
		assert.Equal(t, 0, b.LentCopies, "归还应该释放副本")
		assert.Equal(t, 3, b.AvailableCopies)
	})

	t.Run("重复归还被拒", func(t *testing.T) {
		bookRepo := newFakeBookRepo(testBook(1, 3))
		loanRepo := newFakeLoanRepo()
		memberRepo := newFakeMemberRepo(testMember(10))
		createUC := NewCreateLoanUseCase(loanRepo, bookRepo, memberRepo, &fakeTxManager{}, nil, nil)
		returnUC := NewReturnLoanUseCase(loanRepo, bookRepo, &fakeTxManager{}, nil, nil)

		resp, err := createUC.Execute(ctx, CreateLoanRequest{
			MemberID: 10, BookID: 1, LoanDate: loanDate, DueDate: dueDate,
		})
		require.NoError(t, err)
		require.NoError(t, returnUC.Execute(ctx, resp.LoanID))

		err = returnUC.Execute(ctx, resp.LoanID)
		assert.ErrorIs(t, err, loan.ErrLoanClosed)
		assert.Equal(t, 0, bookRepo.books[1].LentCopies, "重复归还不应该再动计数")
	})

	t.Run("记录不存在", func(t *testing.T) {
		returnUC := NewReturnLoanUseCase(newFakeLoanRepo(), newFakeBookRepo(), &fakeTxManager{}, nil, nil)

		err := returnUC.Execute(ctx, 99)
		assert.ErrorIs(t, err, loan.ErrLoanNotFound)
	})
}

// TestRenewLoanUseCase 测试续借用例
func TestRenewLoanUseCase(t *testing.T) {
	ctx := context.Background()
	loanDate, dueDate := testDates()

	t.Run("正常续借", func(t *testing.T) {
		bookRepo := newFakeBookRepo(testBook(1, 3))
		loanRepo := newFakeLoanRepo()
		memberRepo := newFakeMemberRepo(testMember(10))
		createUC := NewCreateLoanUseCase(loanRepo, bookRepo, memberRepo, &fakeTxManager{}, nil, nil)
		renewUC := NewRenewLoanUseCase(loanRepo, &fakeTxManager{}, nil)

		resp, err := createUC.Execute(ctx, CreateLoanRequest{
			MemberID: 10, BookID: 1, LoanDate: loanDate, DueDate: dueDate,
		})
		require.NoError(t, err)

		newDueDate := dueDate.AddDate(0, 0, 14)
		err = renewUC.Execute(ctx, RenewLoanRequest{
			LoanID: resp.LoanID, LoanDate: dueDate, DueDate: newDueDate,
		})
		require.NoError(t, err)

		l := loanRepo.loans[resp.LoanID]
		assert.Equal(t, newDueDate, l.DueDate)
		assert.True(t, l.Active, "续借不改变在借状态")
		assert.Equal(t, 1, bookRepo.books[1].LentCopies, "续借不影响副本计数")
	})

	t.Run("已归还记录不能续借", func(t *testing.T) {
		bookRepo := newFakeBookRepo(testBook(1, 3))
		loanRepo := newFakeLoanRepo()
		memberRepo := newFakeMemberRepo(testMember(10))
		createUC := NewCreateLoanUseCase(loanRepo, bookRepo, memberRepo, &fakeTxManager{}, nil, nil)
		returnUC := NewReturnLoanUseCase(loanRepo, bookRepo, &fakeTxManager{}, nil, nil)
		renewUC := NewRenewLoanUseCase(loanRepo, &fakeTxManager{}, nil)

		resp, err := createUC.Execute(ctx, CreateLoanRequest{
			MemberID: 10, BookID: 1, LoanDate: loanDate, DueDate: dueDate,
		})
		require.NoError(t, err)
		require.NoError(t, returnUC.Execute(ctx, resp.LoanID))

		err = renewUC.Execute(ctx, RenewLoanRequest{
			LoanID: resp.LoanID, LoanDate: dueDate, DueDate: dueDate.AddDate(0, 0, 14),
		})
		assert.ErrorIs(t, err, loan.ErrLoanClosed)
	})
}

// TestDeleteLoanUseCase 测试删除借阅用例
func TestDeleteLoanUseCase(t *testing.T) {
	ctx := context.Background()
	loanDate, dueDate := testDates()

	t.Run("删除在借记录先释放副本", func(t *testing.T) {
		bookRepo := newFakeBookRepo(testBook(1, 3))
		loanRepo := newFakeLoanRepo()
		memberRepo := newFakeMemberRepo(testMember(10))
		createUC := NewCreateLoanUseCase(loanRepo, bookRepo, memberRepo, &fakeTxManager{}, nil, nil)
		deleteUC := NewDeleteLoanUseCase(loanRepo, bookRepo, &fakeTxManager{}, nil, nil)

		resp, err := createUC.Execute(ctx, CreateLoanRequest{
			MemberID: 10, BookID: 1, LoanDate: loanDate, DueDate: dueDate,
		})
		require.NoError(t, err)

		require.NoError(t, deleteUC.Execute(ctx, resp.LoanID))

		assert.Empty(t, loanRepo.loans, "记录应该被物理删除")
		assert.Equal(t, 0, bookRepo.books[1].LentCopies, "删除在借记录应该释放副本")
	})

	t.Run("删除已归还记录不动副本计数", func(t *testing.T) {
		bookRepo := newFakeBookRepo(testBook(1, 3))
		loanRepo := newFakeLoanRepo()
		memberRepo := newFakeMemberRepo(testMember(10))
		createUC := NewCreateLoanUseCase(loanRepo, bookRepo, memberRepo, &fakeTxManager{}, nil, nil)
		returnUC := NewReturnLoanUseCase(loanRepo, bookRepo, &fakeTxManager{}, nil, nil)
		deleteUC := NewDeleteLoanUseCase(loanRepo, bookRepo, &fakeTxManager{}, nil, nil)

		resp, err := createUC.Execute(ctx, CreateLoanRequest{
			MemberID: 10, BookID: 1, LoanDate: loanDate, DueDate: dueDate,
		})
		require.NoError(t, err)
		require.NoError(t, returnUC.Execute(ctx, resp.LoanID))

		require.NoError(t, deleteUC.Execute(ctx, resp.LoanID))

		assert.Empty(t, loanRepo.loans)
		assert.Equal(t, 3, bookRepo.books[1].AvailableCopies, "归还时已释放,删除不再释放")
	})

	t.Run("记录不存在", func(t *testing.T) {
		deleteUC := NewDeleteLoanUseCase(newFakeLoanRepo(), newFakeBookRepo(), &fakeTxManager{}, nil, nil)

		err := deleteUC.Execute(ctx, 99)
		assert.ErrorIs(t, err, loan.ErrLoanNotFound)
	})
}

// recordingBookCache 记录失效调用的缓存桩
type recordingBookCache struct {
	invalidated []uint
}

func (c *recordingBookCache) Invalidate(_ context.Context, bookID uint) error {
	c.invalidated = append(c.invalidated, bookID)
	return nil
}

// TestLoanCacheInvalidation 测试副本计数变化后的缓存失效
// 借阅/归还/删除都改动可借数,提交后不失效缓存的话,
// 详情查询会在TTL内一直读到过期数据
func TestLoanCacheInvalidation(t *testing.T) {
	ctx := context.Background()
	loanDate, dueDate := testDates()

	t.Run("借阅成功后失效图书缓存", func(t *testing.T) {
		cache := &recordingBookCache{}
		uc := NewCreateLoanUseCase(newFakeLoanRepo(), newFakeBookRepo(testBook(1, 3)),
			newFakeMemberRepo(testMember(10)), &fakeTxManager{}, nil, cache)

		_, err := uc.Execute(ctx, CreateLoanRequest{
			MemberID: 10, BookID: 1, LoanDate: loanDate, DueDate: dueDate,
		})
		require.NoError(t, err)
		assert.Equal(t, []uint{1}, cache.invalidated, "借阅改动可借数,应该失效缓存")
	})

	t.Run("借阅失败不触发失效", func(t *testing.T) {
		b := testBook(1, 3)
		b.Deactivate()
		cache := &recordingBookCache{}
		uc := NewCreateLoanUseCase(newFakeLoanRepo(), newFakeBookRepo(b),
			newFakeMemberRepo(testMember(10)), &fakeTxManager{}, nil, cache)

		_, err := uc.Execute(ctx, CreateLoanRequest{
			MemberID: 10, BookID: 1, LoanDate: loanDate, DueDate: dueDate,
		})
		assert.Error(t, err)
		assert.Empty(t, cache.invalidated, "事务回滚后计数未变,不应该失效缓存")
	})

	t.Run("归还后失效图书缓存", func(t *testing.T) {
		bookRepo := newFakeBookRepo(testBook(1, 3))
		loanRepo := newFakeLoanRepo()
		memberRepo := newFakeMemberRepo(testMember(10))
		cache := &recordingBookCache{}
		createUC := NewCreateLoanUseCase(loanRepo, bookRepo, memberRepo, &fakeTxManager{}, nil, nil)
		returnUC := NewReturnLoanUseCase(loanRepo, bookRepo, &fakeTxManager{}, nil, cache)

		resp, err := createUC.Execute(ctx, CreateLoanRequest{
			MemberID: 10, BookID: 1, LoanDate: loanDate, DueDate: dueDate,
		})
		require.NoError(t, err)

		require.NoError(t, returnUC.Execute(ctx, resp.LoanID))
		assert.Equal(t, []uint{1}, cache.invalidated, "归还释放副本,应该失效缓存")
	})

	t.Run("删除在借记录后失效图书缓存", func(t *testing.T) {
		bookRepo := newFakeBookRepo(testBook(1, 3))
		loanRepo := newFakeLoanRepo()
		memberRepo := newFakeMemberRepo(testMember(10))
		cache := &recordingBookCache{}
		createUC := NewCreateLoanUseCase(loanRepo, bookRepo, memberRepo, &fakeTxManager{}, nil, nil)
		deleteUC := NewDeleteLoanUseCase(loanRepo, bookRepo, &fakeTxManager{}, nil, cache)

		resp, err := createUC.Execute(ctx, CreateLoanRequest{
			MemberID: 10, BookID: 1, LoanDate: loanDate, DueDate: dueDate,
		})
		require.NoError(t, err)

		require.NoError(t, deleteUC.Execute(ctx, resp.LoanID))
		assert.Equal(t, []uint{1}, cache.invalidated, "删除在借记录释放副本,应该失效缓存")
	})

	t.Run("删除已归还记录不触发失效", func(t *testing.T) {
		bookRepo := newFakeBookRepo(testBook(1, 3))
		loanRepo := newFakeLoanRepo()
		memberRepo := newFakeMemberRepo(testMember(10))
		cache := &recordingBookCache{}
		createUC := NewCreateLoanUseCase(loanRepo, bookRepo, memberRepo, &fakeTxManager{}, nil, nil)
		returnUC := NewReturnLoanUseCase(loanRepo, bookRepo, &fakeTxManager{}, nil, nil)
		deleteUC := NewDeleteLoanUseCase(loanRepo, bookRepo, &fakeTxManager{}, nil, cache)

		resp, err := createUC.Execute(ctx, CreateLoanRequest{
			MemberID: 10, BookID: 1, LoanDate: loanDate, DueDate: dueDate,
		})
		require.NoError(t, err)
		require.NoError(t, returnUC.Execute(ctx, resp.LoanID))

		require.NoError(t, deleteUC.Execute(ctx, resp.LoanID))
		assert.Empty(t, cache.invalidated, "归还时已释放副本,删除不再动计数也不失效缓存")
	})
}
