package catalog

import (
	"context"
	"log"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/photo"
)

// SetBookCoverUseCase 设置图书封面用例
type SetBookCoverUseCase struct {
	bookRepo  book.Repository
	photoRepo photo.Repository
	txManager TxManager
	cache     BookCache
}

// NewSetBookCoverUseCase 创建设置封面用例
func NewSetBookCoverUseCase(
	bookRepo book.Repository,
	photoRepo photo.Repository,
	txManager TxManager,
	cache BookCache,
) *SetBookCoverUseCase {
	return &SetBookCoverUseCase{
		bookRepo:  bookRepo,
		photoRepo: photoRepo,
		txManager: txManager,
		cache:     cache,
	}
}

// Execute 为图书设置封面图片
// 旧封面图片在替换后删除,避免孤儿二进制数据堆积
func (uc *SetBookCoverUseCase) Execute(ctx context.Context, bookID uint, name, mime string, content []byte) error {
	ph, err := photo.NewPhoto(name, mime, content)
	if err != nil {
		return err
	}

	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		b, err := uc.bookRepo.FindByID(txCtx, bookID)
		if err != nil {
			return err
		}

		oldPhotoID := b.CoverPhotoID
		if err := uc.photoRepo.Save(txCtx, ph); err != nil {
			return err
		}

		b.SetCoverPhoto(ph.ID)
		if err := uc.bookRepo.Update(txCtx, b); err != nil {
			return err
		}

		if oldPhotoID != 0 {
			if err := uc.photoRepo.Delete(txCtx, oldPhotoID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, bookID); err != nil {
			log.Printf("图书缓存失效失败 book_id=%d: %v", bookID, err)
		}
	}
	return nil
}

// GetPhotoUseCase 图片读取用例
type GetPhotoUseCase struct {
	photoRepo photo.Repository
}

// NewGetPhotoUseCase 创建图片读取用例
func NewGetPhotoUseCase(photoRepo photo.Repository) *GetPhotoUseCase {
	return &GetPhotoUseCase{photoRepo: photoRepo}
}

// Execute 按ID读取图片
func (uc *GetPhotoUseCase) Execute(ctx context.Context, id uint) (*photo.Photo, error) {
	return uc.photoRepo.FindByID(ctx, id)
}
