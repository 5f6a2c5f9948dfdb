package member

import (
	"time"
)

// Member 会员实体(聚合根)
// 设计说明:
// 1. Password存储bcrypt哈希,不存明文
// 2. Active为false表示停用:停用会员不能登录,也无法通过准入校验发起新借阅;
//    存量借阅记录不受影响(借阅记录对会员的引用不可变)
// 3. PhotoID是头像图片的不透明引用
type Member struct {
	ID        uint
	Email     string // 邮箱(业务唯一标识)
	Password  string // 密码(bcrypt哈希)
	Name      string // 姓名
	Active    bool   // 是否启用
	PhotoID   uint   // 头像图片ID(0表示无头像)
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewMember 创建新会员(工厂方法),默认启用
func NewMember(email, hashedPassword, name string) *Member {
	now := time.Now()
	return &Member{
		Email:     email,
		Password:  hashedPassword,
		Name:      name,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Deactivate 停用会员,重复调用是无操作
func (m *Member) Deactivate() {
	if !m.Active {
		return
	}
	m.Active = false
	m.UpdatedAt = time.Now()
}

// Activate 启用会员
func (m *Member) Activate() {
	if m.Active {
		return
	}
	m.Active = true
	m.UpdatedAt = time.Now()
}

// SetPhoto 设置头像图片引用
func (m *Member) SetPhoto(photoID uint) {
	m.PhotoID = photoID
	m.UpdatedAt = time.Now()
}
