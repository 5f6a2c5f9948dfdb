package publisher

import (
	"time"
)

// Publisher 出版社实体(聚合根)
// 与作者对称:注销出版社时其名下图书级联下架,恢复时不级联上架
type Publisher struct {
	ID        uint
	Name      string // 名称
	Active    bool   // 是否在册
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewPublisher 创建新出版社(工厂方法),默认在册
func NewPublisher(name string) *Publisher {
	now := time.Now()
	return &Publisher{
		Name:      name,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Rename 修改名称
func (p *Publisher) Rename(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	p.Name = name
	p.UpdatedAt = time.Now()
	return nil
}

// Deactivate 注销出版社(软删除),重复调用是无操作
func (p *Publisher) Deactivate() {
	if !p.Active {
		return
	}
	p.Active = false
	p.UpdatedAt = time.Now()
}

// Activate 恢复出版社(不级联上架名下图书)
func (p *Publisher) Activate() {
	if p.Active {
		return
	}
	p.Active = true
	p.UpdatedAt = time.Now()
}

// ValidateName 名称校验(纯函数)
func ValidateName(name string) error {
	if name == "" {
		return ErrInvalidName
	}
	return nil
}
