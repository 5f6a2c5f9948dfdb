package event

import (
	"context"
	"log"
	"time"

	"github.com/xiebiao/library/internal/domain/event"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/pkg/circuitbreaker"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/mq"
)

// RabbitMQPublisher 事件发布器(RabbitMQ实现)
// 设计说明:
// 1. 实现domain/event.Publisher接口
// 2. 发布路径套一层熔断器:Broker故障时快速失败,
//    调用方(应用层)对发布失败只记日志,不回滚业务事务
// 3. 事件发布必须在事务提交之后,不参与事务
type RabbitMQPublisher struct {
	publisher *mq.Publisher
	breaker   *circuitbreaker.CircuitBreaker
}

// NewRabbitMQPublisher 创建事件发布器
func NewRabbitMQPublisher(cfg *config.Config) (*RabbitMQPublisher, error) {
	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType)
	if err != nil {
		return nil, err
	}

	breaker := circuitbreaker.NewCircuitBreaker("event-publisher", circuitbreaker.Config{
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	breaker.SetStateChangeCallback(func(name string, from, to circuitbreaker.State) {
		log.Printf("熔断器状态变化: %s %s → %s", name, from, to)
		metrics.SetCircuitBreakerState(name, float64(to))
	})

	return &RabbitMQPublisher{
		publisher: publisher,
		breaker:   breaker,
	}, nil
}

// Publish 发布事件
// 熔断器打开时直接返回ErrOpenState,不触碰Broker
func (p *RabbitMQPublisher) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	err := p.breaker.Execute(func() error {
		return p.publisher.Publish(ctx, routingKey, payload)
	})
	if err != nil {
		metrics.IncCircuitBreakerRequest("event-publisher", "failure")
		return err
	}

	metrics.IncCircuitBreakerRequest("event-publisher", "success")
	return nil
}

// Close 关闭底层连接
func (p *RabbitMQPublisher) Close() error {
	return p.publisher.Close()
}

// 编译期断言:RabbitMQPublisher实现domain层接口
var _ event.Publisher = (*RabbitMQPublisher)(nil)
