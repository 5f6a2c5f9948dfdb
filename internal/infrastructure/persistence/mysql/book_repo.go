package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/library/internal/domain/book"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// bookRepository 图书仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 处理数据库特定的错误(如ISBN重复),转换为业务错误
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)
	model.ID = 0

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(err, "创建图书失败")
	}

	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return toBookEntity(&model), nil
}

// FindByISBN 根据ISBN查找图书
func (r *bookRepository) FindByISBN(ctx context.Context, isbn int64) (*book.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).Where("isbn = ?", isbn).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return toBookEntity(&model), nil
}

// FindByAuthor 查找某作者的全部图书
func (r *bookRepository) FindByAuthor(ctx context.Context, authorID uint) ([]*book.Book, error) {
	var models []BookModel
	err := getDB(ctx, r.db).Where("author_id = ?", authorID).Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询作者图书失败")
	}
	return toBookEntities(models), nil
}

// FindByPublisher 查找某出版社的全部图书
func (r *bookRepository) FindByPublisher(ctx context.Context, publisherID uint) ([]*book.Book, error) {
	var models []BookModel
	err := getDB(ctx, r.db).Where("publisher_id = ?", publisherID).Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询出版社图书失败")
	}
	return toBookEntities(models), nil
}

// ListActive 查询所有在架图书
func (r *bookRepository) ListActive(ctx context.Context) ([]*book.Book, error) {
	return r.listByActive(ctx, true)
}

// ListInactive 查询所有下架图书
func (r *bookRepository) ListInactive(ctx context.Context) ([]*book.Book, error) {
	return r.listByActive(ctx, false)
}

func (r *bookRepository) listByActive(ctx context.Context, active bool) ([]*book.Book, error) {
	var models []BookModel
	err := getDB(ctx, r.db).Where("active = ?", active).Order("title ASC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询图书列表失败")
	}
	return toBookEntities(models), nil
}

// Update 更新图书(全字段)
// 副本计数的变更必须在持有行锁的事务内调用
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)
	model.CreatedAt = b.CreatedAt

	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(err, "更新图书失败")
	}

	b.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 物理删除图书
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&BookModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除图书失败")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// LockByID 悲观锁查询图书(SELECT FOR UPDATE)
// 借阅/归还/下架等涉及副本计数的操作必须先锁行,防止并发超借
func (r *bookRepository) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "锁定图书失败")
	}
	return toBookEntity(&model), nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toBookModel 领域实体 → GORM模型
func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		ID:              b.ID,
		ISBN:            b.ISBN,
		Title:           b.Title,
		Year:            b.Year,
		Description:     b.Description,
		TotalCopies:     b.TotalCopies,
		LentCopies:      b.LentCopies,
		AvailableCopies: b.AvailableCopies,
		Active:          b.Active,
		AuthorID:        b.AuthorID,
		PublisherID:     b.PublisherID,
		CoverPhotoID:    b.CoverPhotoID,
	}
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:              model.ID,
		ISBN:            model.ISBN,
		Title:           model.Title,
		Year:            model.Year,
		Description:     model.Description,
		TotalCopies:     model.TotalCopies,
		LentCopies:      model.LentCopies,
		AvailableCopies: model.AvailableCopies,
		Active:          model.Active,
		AuthorID:        model.AuthorID,
		PublisherID:     model.PublisherID,
		CoverPhotoID:    model.CoverPhotoID,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}

func toBookEntities(models []BookModel) []*book.Book {
	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books
}
