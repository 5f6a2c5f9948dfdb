package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/library/internal/domain/publisher"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// publisherRepository 出版社仓储实现(MySQL)
type publisherRepository struct {
	db *gorm.DB
}

// NewPublisherRepository 创建出版社仓储
func NewPublisherRepository(db *gorm.DB) publisher.Repository {
	return &publisherRepository{db: db}
}

// Create 创建出版社
func (r *publisherRepository) Create(ctx context.Context, p *publisher.Publisher) error {
	model := &PublisherModel{
		Name:   p.Name,
		Active: p.Active,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建出版社失败")
	}

	p.ID = model.ID
	p.CreatedAt = model.CreatedAt
	p.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找出版社
func (r *publisherRepository) FindByID(ctx context.Context, id uint) (*publisher.Publisher, error) {
	var model PublisherModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, publisher.ErrPublisherNotFound
		}
		return nil, apperrors.Wrap(err, "查询出版社失败")
	}
	return toPublisherEntity(&model), nil
}

// FindByName 根据名称查找出版社
func (r *publisherRepository) FindByName(ctx context.Context, name string) (*publisher.Publisher, error) {
	var model PublisherModel
	err := getDB(ctx, r.db).Where("name = ?", name).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, publisher.ErrPublisherNotFound
		}
		return nil, apperrors.Wrap(err, "查询出版社失败")
	}
	return toPublisherEntity(&model), nil
}

// ListActive 查询所有在册出版社
func (r *publisherRepository) ListActive(ctx context.Context) ([]*publisher.Publisher, error) {
	return r.listByActive(ctx, true)
}

// ListInactive 查询所有注销出版社
func (r *publisherRepository) ListInactive(ctx context.Context) ([]*publisher.Publisher, error) {
	return r.listByActive(ctx, false)
}

func (r *publisherRepository) listByActive(ctx context.Context, active bool) ([]*publisher.Publisher, error) {
	var models []PublisherModel
	err := getDB(ctx, r.db).Where("active = ?", active).Order("name ASC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询出版社列表失败")
	}

	publishers := make([]*publisher.Publisher, len(models))
	for i := range models {
		publishers[i] = toPublisherEntity(&models[i])
	}
	return publishers, nil
}

// Update 更新出版社(全字段)
func (r *publisherRepository) Update(ctx context.Context, p *publisher.Publisher) error {
	model := &PublisherModel{
		ID:        p.ID,
		Name:      p.Name,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
	}

	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新出版社失败")
	}

	p.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 物理删除出版社
func (r *publisherRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&PublisherModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除出版社失败")
	}
	if result.RowsAffected == 0 {
		return publisher.ErrPublisherNotFound
	}
	return nil
}

// LockByID 悲观锁查询出版社(SELECT FOR UPDATE)
func (r *publisherRepository) LockByID(ctx context.Context, id uint) (*publisher.Publisher, error) {
	var model PublisherModel
	err := getDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, publisher.ErrPublisherNotFound
		}
		return nil, apperrors.Wrap(err, "锁定出版社失败")
	}
	return toPublisherEntity(&model), nil
}

// toPublisherEntity GORM模型 → 领域实体
func toPublisherEntity(model *PublisherModel) *publisher.Publisher {
	return &publisher.Publisher{
		ID:        model.ID,
		Name:      model.Name,
		Active:    model.Active,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
