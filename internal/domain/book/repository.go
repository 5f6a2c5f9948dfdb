package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 所有方法通过context参与外部事务(TxManager注入事务DB)
// 3. 便于Mock测试,不依赖具体数据库实现
type Repository interface {
	// Create 创建图书
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByISBN 根据ISBN查找图书
	FindByISBN(ctx context.Context, isbn int64) (*Book, error)

	// FindByAuthor 查找某作者的全部图书
	FindByAuthor(ctx context.Context, authorID uint) ([]*Book, error)

	// FindByPublisher 查找某出版社的全部图书
	FindByPublisher(ctx context.Context, publisherID uint) ([]*Book, error)

	// ListActive 查询所有在架图书
	ListActive(ctx context.Context) ([]*Book, error)

	// ListInactive 查询所有下架图书
	ListInactive(ctx context.Context) ([]*Book, error)

	// Update 更新图书(全字段)
	Update(ctx context.Context, book *Book) error

	// Delete 物理删除图书
	Delete(ctx context.Context, id uint) error

	// LockByID 悲观锁查询图书(SELECT FOR UPDATE)
	// 借阅/归还/下架等涉及副本计数的操作必须先锁行,防止并发超借
	LockByID(ctx context.Context, id uint) (*Book, error)
}
