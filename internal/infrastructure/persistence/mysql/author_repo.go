package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/library/internal/domain/author"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// authorRepository 作者仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/author/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 所有读写通过getDB(ctx)参与外部事务
type authorRepository struct {
	db *gorm.DB
}

// NewAuthorRepository 创建作者仓储
func NewAuthorRepository(db *gorm.DB) author.Repository {
	return &authorRepository{db: db}
}

// Create 创建作者
func (r *authorRepository) Create(ctx context.Context, a *author.Author) error {
	model := &AuthorModel{
		Name:   a.Name,
		Active: a.Active,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建作者失败")
	}

	a.ID = model.ID
	a.CreatedAt = model.CreatedAt
	a.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找作者
func (r *authorRepository) FindByID(ctx context.Context, id uint) (*author.Author, error) {
	var model AuthorModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, apperrors.Wrap(err, "查询作者失败")
	}
	return toAuthorEntity(&model), nil
}

// FindByName 根据姓名查找作者
func (r *authorRepository) FindByName(ctx context.Context, name string) (*author.Author, error) {
	var model AuthorModel
	err := getDB(ctx, r.db).Where("name = ?", name).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, apperrors.Wrap(err, "查询作者失败")
	}
	return toAuthorEntity(&model), nil
}

// ListActive 查询所有在册作者
func (r *authorRepository) ListActive(ctx context.Context) ([]*author.Author, error) {
	return r.listByActive(ctx, true)
}

// ListInactive 查询所有注销作者
func (r *authorRepository) ListInactive(ctx context.Context) ([]*author.Author, error) {
	return r.listByActive(ctx, false)
}

func (r *authorRepository) listByActive(ctx context.Context, active bool) ([]*author.Author, error) {
	var models []AuthorModel
	err := getDB(ctx, r.db).Where("active = ?", active).Order("name ASC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询作者列表失败")
	}

	authors := make([]*author.Author, len(models))
	for i := range models {
		authors[i] = toAuthorEntity(&models[i])
	}
	return authors, nil
}

// Update 更新作者(全字段)
func (r *authorRepository) Update(ctx context.Context, a *author.Author) error {
	model := &AuthorModel{
		ID:        a.ID,
		Name:      a.Name,
		Active:    a.Active,
		CreatedAt: a.CreatedAt,
	}

	// Save更新全部字段;Active为false的归零值必须写入,不能用Updates
	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新作者失败")
	}

	a.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 物理删除作者
func (r *authorRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&AuthorModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除作者失败")
	}
	if result.RowsAffected == 0 {
		return author.ErrAuthorNotFound
	}
	return nil
}

// LockByID 悲观锁查询作者(SELECT FOR UPDATE)
func (r *authorRepository) LockByID(ctx context.Context, id uint) (*author.Author, error) {
	var model AuthorModel
	err := getDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, apperrors.Wrap(err, "锁定作者失败")
	}
	return toAuthorEntity(&model), nil
}

// toAuthorEntity GORM模型 → 领域实体
func toAuthorEntity(model *AuthorModel) *author.Author {
	return &author.Author{
		ID:        model.ID,
		Name:      model.Name,
		Active:    model.Active,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
