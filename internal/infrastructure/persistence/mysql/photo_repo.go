package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/photo"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// photoRepository 图片仓储实现(MySQL)
type photoRepository struct {
	db *gorm.DB
}

// NewPhotoRepository 创建图片仓储
func NewPhotoRepository(db *gorm.DB) photo.Repository {
	return &photoRepository{db: db}
}

// Save 保存图片,回填ID
func (r *photoRepository) Save(ctx context.Context, p *photo.Photo) error {
	model := &PhotoModel{
		Name:    p.Name,
		Mime:    p.Mime,
		Content: p.Content,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "保存图片失败")
	}

	p.ID = model.ID
	p.CreatedAt = model.CreatedAt
	p.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找图片
func (r *photoRepository) FindByID(ctx context.Context, id uint) (*photo.Photo, error) {
	var model PhotoModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, photo.ErrPhotoNotFound
		}
		return nil, apperrors.Wrap(err, "查询图片失败")
	}

	return &photo.Photo{
		ID:        model.ID,
		Name:      model.Name,
		Mime:      model.Mime,
		Content:   model.Content,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}, nil
}

// Update 替换图片内容(保持ID不变)
func (r *photoRepository) Update(ctx context.Context, p *photo.Photo) error {
	model := &PhotoModel{
		ID:        p.ID,
		Name:      p.Name,
		Mime:      p.Mime,
		Content:   p.Content,
		CreatedAt: p.CreatedAt,
	}

	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新图片失败")
	}

	p.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 物理删除图片
func (r *photoRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&PhotoModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除图片失败")
	}
	if result.RowsAffected == 0 {
		return photo.ErrPhotoNotFound
	}
	return nil
}
