package book

import (
	"time"
)

// Book 图书实体(聚合根)
// 设计说明:
// 1. Book是图书聚合的根实体,其一致性边界覆盖该图书的所有借阅记录
// 2. 副本计数永远满足: AvailableCopies = TotalCopies - LentCopies,
//    且 0 <= LentCopies <= TotalCopies
// 3. ISBN作为业务唯一标识(数据库层保证唯一性)
// 4. Active为false表示下架(软删除),与物理删除区分
// 5. CoverPhotoID是封面图片的不透明引用,图片内容由photo模块管理
type Book struct {
	ID              uint
	ISBN            int64  // ISBN号(国际标准书号)
	Title           string // 书名
	Year            int    // 出版年份
	Description     string // 图书描述
	TotalCopies     int    // 馆藏副本总数
	LentCopies      int    // 已借出副本数
	AvailableCopies int    // 可借副本数(冗余字段,与LentCopies同步维护)
	Active          bool   // 是否在架
	AuthorID        uint   // 作者ID
	PublisherID     uint   // 出版社ID
	CoverPhotoID    uint   // 封面图片ID(0表示无封面)
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewBook 创建新图书(工厂方法)
// 新图书默认在架,全部副本可借
func NewBook(isbn int64, title string, year int, description string, totalCopies int, authorID, publisherID uint) *Book {
	now := time.Now()
	return &Book{
		ISBN:            isbn,
		Title:           title,
		Year:            year,
		Description:     description,
		TotalCopies:     totalCopies,
		LentCopies:      0,
		AvailableCopies: totalCopies,
		Active:          true,
		AuthorID:        authorID,
		PublisherID:     publisherID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Reserve 预留一个副本(借出时调用)
// 业务规则:无可借副本时拒绝,防止超借
func (b *Book) Reserve() error {
	if b.AvailableCopies < 1 {
		return ErrNoCopiesAvailable
	}
	b.LentCopies++
	b.AvailableCopies = b.TotalCopies - b.LentCopies
	b.UpdatedAt = time.Now()
	return nil
}

// Release 归还一个副本(还书时调用)
// 业务规则:没有在借副本时拒绝,防止计数为负
func (b *Book) Release() error {
	if b.LentCopies < 1 {
		return ErrNoLentCopies
	}
	b.LentCopies--
	b.AvailableCopies = b.TotalCopies - b.LentCopies
	b.UpdatedAt = time.Now()
	return nil
}

// Resize 调整副本总数
// 设计说明:
// 1. activeLoanCount由调用方重新统计当前有效借阅数(不信任存量计数,容忍漂移)
// 2. 新总数小于有效借阅数时拒绝,保证已借出的副本都有归属
func (b *Book) Resize(newTotalCopies, activeLoanCount int) error {
	if newTotalCopies < 0 {
		return ErrInvalidCopies
	}
	if newTotalCopies < activeLoanCount {
		return ErrCopiesBelowLoans
	}
	b.TotalCopies = newTotalCopies
	b.LentCopies = activeLoanCount
	b.AvailableCopies = newTotalCopies - activeLoanCount
	b.UpdatedAt = time.Now()
	return nil
}

// Deactivate 下架图书(软删除)
// 对已下架图书重复调用是无操作
func (b *Book) Deactivate() {
	if !b.Active {
		return
	}
	b.Active = false
	b.UpdatedAt = time.Now()
}

// Activate 上架图书
func (b *Book) Activate() {
	if b.Active {
		return
	}
	b.Active = true
	b.UpdatedAt = time.Now()
}

// UpdateInfo 更新图书基本信息(不含副本数,副本数走Resize)
func (b *Book) UpdateInfo(isbn int64, title string, year int, description string) {
	b.ISBN = isbn
	b.Title = title
	b.Year = year
	b.Description = description
	b.UpdatedAt = time.Now()
}

// SetCoverPhoto 设置封面图片引用
func (b *Book) SetCoverPhoto(photoID uint) {
	b.CoverPhotoID = photoID
	b.UpdatedAt = time.Now()
}
