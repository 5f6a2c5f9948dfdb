package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/library/internal/domain/member"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// memberRepository 会员仓储实现(MySQL)
type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository 创建会员仓储
func NewMemberRepository(db *gorm.DB) member.Repository {
	return &memberRepository{db: db}
}

// Create 创建会员
func (r *memberRepository) Create(ctx context.Context, m *member.Member) error {
	model := &MemberModel{
		Email:    m.Email,
		Password: m.Password,
		Name:     m.Name,
		Active:   m.Active,
		PhotoID:  m.PhotoID,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		// 邮箱唯一索引冲突 → 业务错误
		if isDuplicateError(err) {
			return apperrors.ErrEmailDuplicate
		}
		return apperrors.Wrap(err, "创建会员失败")
	}

	m.ID = model.ID
	m.CreatedAt = model.CreatedAt
	m.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找会员
func (r *memberRepository) FindByID(ctx context.Context, id uint) (*member.Member, error) {
	var model MemberModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, member.ErrMemberNotFound
		}
		return nil, apperrors.Wrap(err, "查询会员失败")
	}
	return toMemberEntity(&model), nil
}

// FindByEmail 根据邮箱查找会员
func (r *memberRepository) FindByEmail(ctx context.Context, email string) (*member.Member, error) {
	var model MemberModel
	err := getDB(ctx, r.db).Where("email = ?", email).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, member.ErrMemberNotFound
		}
		return nil, apperrors.Wrap(err, "查询会员失败")
	}
	return toMemberEntity(&model), nil
}

// ListActive 查询所有启用会员
func (r *memberRepository) ListActive(ctx context.Context) ([]*member.Member, error) {
	return r.listByActive(ctx, true)
}

// ListInactive 查询所有停用会员
func (r *memberRepository) ListInactive(ctx context.Context) ([]*member.Member, error) {
	return r.listByActive(ctx, false)
}

func (r *memberRepository) listByActive(ctx context.Context, active bool) ([]*member.Member, error) {
	var models []MemberModel
	err := getDB(ctx, r.db).Where("active = ?", active).Order("name ASC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询会员列表失败")
	}

	members := make([]*member.Member, len(models))
	for i := range models {
		members[i] = toMemberEntity(&models[i])
	}
	return members, nil
}

// Update 更新会员(全字段)
func (r *memberRepository) Update(ctx context.Context, m *member.Member) error {
	model := &MemberModel{
		ID:        m.ID,
		Email:     m.Email,
		Password:  m.Password,
		Name:      m.Name,
		Active:    m.Active,
		PhotoID:   m.PhotoID,
		CreatedAt: m.CreatedAt,
	}

	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		if isDuplicateError(err) {
			return apperrors.ErrEmailDuplicate
		}
		return apperrors.Wrap(err, "更新会员失败")
	}

	m.UpdatedAt = model.UpdatedAt
	return nil
}

// LockByID 悲观锁查询会员(SELECT FOR UPDATE)
// 借阅上限校验必须先锁定会员行,防止并发请求绕过上限
func (r *memberRepository) LockByID(ctx context.Context, id uint) (*member.Member, error) {
	var model MemberModel
	err := getDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, member.ErrMemberNotFound
		}
		return nil, apperrors.Wrap(err, "锁定会员失败")
	}
	return toMemberEntity(&model), nil
}

// toMemberEntity GORM模型 → 领域实体
func toMemberEntity(model *MemberModel) *member.Member {
	return &member.Member{
		ID:        model.ID,
		Email:     model.Email,
		Password:  model.Password,
		Name:      model.Name,
		Active:    model.Active,
		PhotoID:   model.PhotoID,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
