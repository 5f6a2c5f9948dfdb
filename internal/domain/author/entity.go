package author

import (
	"time"
)

// Author 作者实体(聚合根)
// 设计说明:
// 1. 作者与图书是一对多关系,图书侧持有AuthorID,作者实体不反向持有图书列表
//    (避免跨聚合引用,图书列表通过book.Repository.FindByAuthor查询)
// 2. Active为false表示注销(软删除):注销作者时其名下图书级联下架
type Author struct {
	ID        uint
	Name      string // 姓名
	Active    bool   // 是否在册
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAuthor 创建新作者(工厂方法),默认在册
func NewAuthor(name string) *Author {
	now := time.Now()
	return &Author{
		Name:      name,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Rename 修改姓名
func (a *Author) Rename(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	a.Name = name
	a.UpdatedAt = time.Now()
	return nil
}

// Deactivate 注销作者(软删除),重复调用是无操作
func (a *Author) Deactivate() {
	if !a.Active {
		return
	}
	a.Active = false
	a.UpdatedAt = time.Now()
}

// Activate 恢复作者
// 注意:只恢复作者本身,不级联上架其名下图书(图书上架是独立决策)
func (a *Author) Activate() {
	if a.Active {
		return
	}
	a.Active = true
	a.UpdatedAt = time.Now()
}

// ValidateName 姓名校验(纯函数)
func ValidateName(name string) error {
	if name == "" {
		return ErrInvalidName
	}
	return nil
}
