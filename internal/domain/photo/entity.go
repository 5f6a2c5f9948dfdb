package photo

import (
	"time"
)

// Photo 图片实体
// 设计说明:
// 1. 图书封面/会员头像以不透明引用(Photo.ID)挂在各自实体上,
//    核心业务不解析图片内容,只透传字节
// 2. 图片内容直接存储在数据库(与接口解耦,后续可替换为对象存储实现)
type Photo struct {
	ID        uint
	Name      string // 原始文件名
	Mime      string // MIME类型(image/jpeg等)
	Content   []byte // 图片字节
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewPhoto 创建新图片(工厂方法),内容为空时拒绝
func NewPhoto(name, mime string, content []byte) (*Photo, error) {
	if len(content) == 0 {
		return nil, ErrEmptyContent
	}
	now := time.Now()
	return &Photo{
		Name:      name,
		Mime:      mime,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
