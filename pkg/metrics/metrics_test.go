package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// getCounterValue 读取Counter当前值
func getCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	m := &dto.Metric{}
	if err := c.Write(m); err != nil {
		t.Fatalf("读取指标失败: %v", err)
	}
	return m.GetCounter().GetValue()
}

// TestHelpersBeforeInit 测试未初始化时的nil保护
// 单元测试与应用层代码可以在不调用InitMetrics的情况下安全使用Inc*函数
func TestHelpersBeforeInit(t *testing.T) {
	if initialized {
		t.Skip("指标已被其他测试初始化")
	}

	// 不应该panic
	IncLoansCreated()
	IncLoansFailed()
	IncLoansReturned()
	ObserveLoanCreation(0.1)
	SetCircuitBreakerState("test", 0)
	IncCircuitBreakerRequest("test", "success")
	IncMessagePublished("library.events", "loan.created")
	IncMessageConsumed("test-queue", "success")
}

// TestInitMetrics 测试指标初始化
func TestInitMetrics(t *testing.T) {
	InitMetrics()

	if HTTPRequestsTotal == nil {
		t.Error("HTTPRequestsTotal未初始化")
	}
	if HTTPRequestDuration == nil {
		t.Error("HTTPRequestDuration未初始化")
	}
	if HTTPRequestsInProgress == nil {
		t.Error("HTTPRequestsInProgress未初始化")
	}
	if LoansCreatedTotal == nil {
		t.Error("LoansCreatedTotal未初始化")
	}
	if CircuitBreakerState == nil {
		t.Error("CircuitBreakerState未初始化")
	}
	if MessagesPublishedTotal == nil {
		t.Error("MessagesPublishedTotal未初始化")
	}

	// 重复初始化是无操作(promauto重复注册会panic)
	InitMetrics()
}

// TestLoanCounters 测试借阅业务计数器
func TestLoanCounters(t *testing.T) {
	InitMetrics()

	before := getCounterValue(t, LoansCreatedTotal)
	IncLoansCreated()
	IncLoansCreated()
	after := getCounterValue(t, LoansCreatedTotal)

	if after-before != 2 {
		t.Errorf("期望计数增加2，实际增加%f", after-before)
	}

	failedBefore := getCounterValue(t, LoansFailedTotal)
	IncLoansFailed()
	if getCounterValue(t, LoansFailedTotal)-failedBefore != 1 {
		t.Error("失败计数应该增加1")
	}
}

// TestMessageCounters 测试消息指标的标签维度
func TestMessageCounters(t *testing.T) {
	InitMetrics()

	IncMessagePublished("library.events", "loan.created")
	IncMessagePublished("library.events", "loan.created")
	IncMessagePublished("library.events", "book.deactivated")

	created := getCounterValue(t, MessagesPublishedTotal.WithLabelValues("library.events", "loan.created"))
	if created < 2 {
		t.Errorf("loan.created发布计数期望>=2，实际%f", created)
	}

	deactivated := getCounterValue(t, MessagesPublishedTotal.WithLabelValues("library.events", "book.deactivated"))
	if deactivated < 1 {
		t.Errorf("book.deactivated发布计数期望>=1，实际%f", deactivated)
	}
}
