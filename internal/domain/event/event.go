package event

import (
	"context"
	"time"
)

// 领域事件路由键
// 事件发布是事务提交后的尽力而为操作,绝不参与事务本身:
// 发布失败只记录日志,不回滚业务
const (
	LoanCreated          = "loan.created"
	LoanRenewed          = "loan.renewed"
	LoanReturned         = "loan.returned"
	LoanDeleted          = "loan.deleted"
	BookDeactivated      = "book.deactivated"
	BookActivated        = "book.activated"
	BookDeleted          = "book.deleted"
	AuthorDeactivated    = "author.deactivated"
	AuthorDeleted        = "author.deleted"
	PublisherDeactivated = "publisher.deactivated"
	PublisherDeleted     = "publisher.deleted"
)

// LoanEvent 借阅事件负载
type LoanEvent struct {
	LoanID   uint      `json:"loan_id"`
	LoanNo   string    `json:"loan_no"`
	BookID   uint      `json:"book_id"`
	MemberID uint      `json:"member_id"`
	At       time.Time `json:"at"`
}

// LifecycleEvent 生命周期事件负载(上架/下架/删除)
type LifecycleEvent struct {
	EntityID uint      `json:"entity_id"`
	At       time.Time `json:"at"`
}

// Publisher 事件发布端口
// infrastructure层提供RabbitMQ实现;测试中可注入空实现
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
}
