package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/xiebiao/library/internal/domain/event"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/pkg/mq"
)

// main 事件审计Worker
// 订阅借阅与生命周期事件并落审计日志,与API进程分开部署。
// 消息处理失败时Nack重新入队,由Broker负责重试。
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	consumer, err := mq.NewConsumer(
		cfg.MQ.URL,
		cfg.MQ.Exchange,
		cfg.MQ.ExchangeType,
		"library.audit",
		[]string{"loan.*", "book.*", "author.*", "publisher.*"},
	)
	if err != nil {
		log.Fatalf("创建消费者失败: %v", err)
	}
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// SIGINT/SIGTERM优雅退出
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Printf("收到信号%v,开始退出", sig)
		cancel()
	}()

	if err := consumer.Consume(ctx, handleEvent); err != nil {
		log.Fatalf("消费失败: %v", err)
	}
}

// handleEvent 审计事件处理
// 借阅事件与生命周期事件负载不同,按字段探测区分
func handleEvent(body []byte) error {
	var loanEvt event.LoanEvent
	if err := json.Unmarshal(body, &loanEvt); err == nil && loanEvt.LoanNo != "" {
		log.Printf("[审计] 借阅事件 loan_no=%s book_id=%d member_id=%d at=%s",
			loanEvt.LoanNo, loanEvt.BookID, loanEvt.MemberID, loanEvt.At.Format("2006-01-02 15:04:05"))
		return nil
	}

	var lifecycleEvt event.LifecycleEvent
	if err := json.Unmarshal(body, &lifecycleEvt); err != nil {
		// 无法解析的消息不重试,记录后丢弃
		log.Printf("[审计] 无法解析的事件负载: %s", string(body))
		return nil
	}
	log.Printf("[审计] 生命周期事件 entity_id=%d at=%s",
		lifecycleEvt.EntityID, lifecycleEvt.At.Format("2006-01-02 15:04:05"))
	return nil
}
