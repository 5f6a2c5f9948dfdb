package member

import (
	"context"

	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/internal/domain/photo"
)

// TxManager 事务边界(由mysql.TxManager实现)
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// SetPhotoUseCase 会员头像设置用例
type SetPhotoUseCase struct {
	memberRepo member.Repository
	photoRepo  photo.Repository
	txManager  TxManager
}

// NewSetPhotoUseCase 创建头像设置用例
func NewSetPhotoUseCase(
	memberRepo member.Repository,
	photoRepo photo.Repository,
	txManager TxManager,
) *SetPhotoUseCase {
	return &SetPhotoUseCase{
		memberRepo: memberRepo,
		photoRepo:  photoRepo,
		txManager:  txManager,
	}
}

// Execute 上传并绑定头像,旧头像随之删除
func (uc *SetPhotoUseCase) Execute(ctx context.Context, memberID uint, name, mime string, content []byte) error {
	ph, err := photo.NewPhoto(name, mime, content)
	if err != nil {
		return err
	}

	return uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		m, err := uc.memberRepo.FindByID(txCtx, memberID)
		if err != nil {
			return err
		}

		oldPhotoID := m.PhotoID
		if err := uc.photoRepo.Save(txCtx, ph); err != nil {
			return err
		}

		m.SetPhoto(ph.ID)
		if err := uc.memberRepo.Update(txCtx, m); err != nil {
			return err
		}

		if oldPhotoID != 0 {
			return uc.photoRepo.Delete(txCtx, oldPhotoID)
		}
		return nil
	})
}

// SetActiveUseCase 会员启停用例(管理操作)
// 停用只拦截登录与新借阅,存量借阅不受影响
type SetActiveUseCase struct {
	memberRepo member.Repository
}

// NewSetActiveUseCase 创建会员启停用例
func NewSetActiveUseCase(memberRepo member.Repository) *SetActiveUseCase {
	return &SetActiveUseCase{memberRepo: memberRepo}
}

// Execute 设置会员启用状态
func (uc *SetActiveUseCase) Execute(ctx context.Context, memberID uint, active bool) error {
	m, err := uc.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return err
	}

	if active {
		m.Activate()
	} else {
		m.Deactivate()
	}
	return uc.memberRepo.Update(ctx, m)
}

// Queries 会员查询服务
type Queries struct {
	memberRepo member.Repository
}

// NewQueries 创建会员查询服务
func NewQueries(memberRepo member.Repository) *Queries {
	return &Queries{memberRepo: memberRepo}
}

// GetByID 按ID查询会员
func (q *Queries) GetByID(ctx context.Context, id uint) (*member.Member, error) {
	return q.memberRepo.FindByID(ctx, id)
}

// ListActive 在册会员列表
func (q *Queries) ListActive(ctx context.Context) ([]*member.Member, error) {
	return q.memberRepo.ListActive(ctx)
}

// ListInactive 停用会员列表
func (q *Queries) ListInactive(ctx context.Context) ([]*member.Member, error) {
	return q.memberRepo.ListInactive(ctx)
}
