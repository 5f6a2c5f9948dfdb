package member

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

// fakeMemberRepo 内存仓储,按邮箱索引
type fakeMemberRepo struct {
	members map[string]*Member
	nextID  uint
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: make(map[string]*Member), nextID: 1}
}

func (r *fakeMemberRepo) Create(_ context.Context, m *Member) error {
	if _, ok := r.members[m.Email]; ok {
		return apperrors.ErrEmailDuplicate
	}
	m.ID = r.nextID
	r.nextID++
	r.members[m.Email] = m
	return nil
}

func (r *fakeMemberRepo) FindByID(_ context.Context, id uint) (*Member, error) {
	for _, m := range r.members {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, ErrMemberNotFound
}

func (r *fakeMemberRepo) FindByEmail(_ context.Context, email string) (*Member, error) {
	m, ok := r.members[email]
	if !ok {
		return nil, ErrMemberNotFound
	}
	return m, nil
}

func (r *fakeMemberRepo) ListActive(_ context.Context) ([]*Member, error)   { return nil, nil }
func (r *fakeMemberRepo) ListInactive(_ context.Context) ([]*Member, error) { return nil, nil }
func (r *fakeMemberRepo) Update(_ context.Context, _ *Member) error         { return nil }
func (r *fakeMemberRepo) LockByID(ctx context.Context, id uint) (*Member, error) {
	return r.FindByID(ctx, id)
}

// TestService_Register 测试会员注册
func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("正常注册", func(t *testing.T) {
		svc := NewService(newFakeMemberRepo())

		m, err := svc.Register(ctx, "alice@example.com", "passw0rd123", "Alice")
		require.NoError(t, err)

		assert.NotZero(t, m.ID)
		assert.Equal(t, "alice@example.com", m.Email)
		assert.True(t, m.Active, "新会员默认启用")
		assert.NotEqual(t, "passw0rd123", m.Password, "不能存明文密码")

		// 哈希可以验证回原密码
		err = bcrypt.CompareHashAndPassword([]byte(m.Password), []byte("passw0rd123"))
		assert.NoError(t, err, "存储的应该是原密码的bcrypt哈希")
	})

	t.Run("邮箱格式非法", func(t *testing.T) {
		svc := NewService(newFakeMemberRepo())

		_, err := svc.Register(ctx, "not-an-email", "passw0rd123", "Alice")
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeInvalidParams, apperrors.GetAppError(err).Code)
	})

	t.Run("密码太短", func(t *testing.T) {
		svc := NewService(newFakeMemberRepo())

		_, err := svc.Register(ctx, "alice@example.com", "ab1", "Alice")
		assert.ErrorIs(t, err, apperrors.ErrWeakPassword)
	})

	t.Run("密码缺少数字", func(t *testing.T) {
		svc := NewService(newFakeMemberRepo())

		_, err := svc.Register(ctx, "alice@example.com", "onlyletters", "Alice")
		assert.ErrorIs(t, err, apperrors.ErrWeakPassword)
	})

	t.Run("密码缺少字母", func(t *testing.T) {
		svc := NewService(newFakeMemberRepo())

		_, err := svc.Register(ctx, "alice@example.com", "1234567890", "Alice")
		assert.ErrorIs(t, err, apperrors.ErrWeakPassword)
	})

	t.Run("姓名长度非法", func(t *testing.T) {
		svc := NewService(newFakeMemberRepo())

		_, err := svc.Register(ctx, "alice@example.com", "passw0rd123", "A")
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeInvalidParams, apperrors.GetAppError(err).Code)
	})

	t.Run("邮箱重复", func(t *testing.T) {
		svc := NewService(newFakeMemberRepo())

		_, err := svc.Register(ctx, "alice@example.com", "passw0rd123", "Alice")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "alice@example.com", "passw0rd456", "Alice2")
		assert.ErrorIs(t, err, apperrors.ErrEmailDuplicate)
	})
}

// TestService_Login 测试会员登录
func TestService_Login(t *testing.T) {
	ctx := context.Background()
	repo := newFakeMemberRepo()
	svc := NewService(repo)

	_, err := svc.Register(ctx, "bob@example.com", "passw0rd123", "Bob")
	require.NoError(t, err)

	t.Run("正常登录", func(t *testing.T) {
		m, err := svc.Login(ctx, "bob@example.com", "passw0rd123")
		require.NoError(t, err)
		assert.Equal(t, "bob@example.com", m.Email)
	})

	t.Run("邮箱不存在", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "passw0rd123")
		assert.ErrorIs(t, err, ErrMemberNotFound)
	})

	t.Run("密码错误", func(t *testing.T) {
		_, err := svc.Login(ctx, "bob@example.com", "wrongpass1")
		assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
	})

	t.Run("停用会员不能登录", func(t *testing.T) {
		m := repo.members["bob@example.com"]
		m.Deactivate()
		defer m.Activate()

		_, err := svc.Login(ctx, "bob@example.com", "passw0rd123")
		assert.ErrorIs(t, err, ErrMemberInactive)
	})
}
