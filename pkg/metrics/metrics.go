// Package metrics 提供基于Prometheus的指标收集
//
// 指标分三组:
//   - HTTP请求: 总数/耗时/在途数,由gin中间件记录
//   - 借阅业务: 借出/失败/归还计数,由应用层用例记录
//   - 基础设施: 熔断器状态、消息发布/消费计数
//
// 命名遵循Prometheus惯例: Counter以_total结尾,Histogram以单位结尾
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initialized 标记是否已初始化(防止重复注册)
	initialized bool

	// HTTP请求指标

	// HTTPRequestsTotal HTTP请求总数
	// 标签: method(GET/POST)、path(/api/v1/loans)、status(200/500)
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// 借阅业务指标

	// LoansCreatedTotal 借阅创建总数
	LoansCreatedTotal prometheus.Counter

	// LoansFailedTotal 借阅失败总数(无副本、超限、日期非法等)
	LoansFailedTotal prometheus.Counter

	// LoansReturnedTotal 归还总数
	LoansReturnedTotal prometheus.Counter

	// LoanCreationDuration 借阅创建耗时
	LoanCreationDuration prometheus.Histogram

	// 熔断器指标

	// CircuitBreakerState 熔断器状态(0=CLOSED, 1=OPEN, 2=HALF_OPEN)
	CircuitBreakerState *prometheus.GaugeVec

	// CircuitBreakerRequests 熔断器请求总数
	// 标签: name、result(success/failure/rejected)
	CircuitBreakerRequests *prometheus.CounterVec

	// 消息队列指标

	// MessagesPublishedTotal 消息发布总数
	MessagesPublishedTotal *prometheus.CounterVec

	// MessagesConsumedTotal 消息消费总数
	MessagesConsumedTotal *prometheus.CounterVec
)

// InitMetrics 初始化所有Prometheus指标
// 必须在程序启动时调用一次,注册所有指标到默认Registry
func InitMetrics() {
	if initialized {
		return
	}
	initialized = true

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP请求耗时（秒）",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	LoansCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loans_created_total",
			Help: "借阅创建总数",
		},
	)

	LoansFailedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loans_failed_total",
			Help: "借阅失败总数",
		},
	)

	LoansReturnedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loans_returned_total",
			Help: "归还总数",
		},
	)

	LoanCreationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "loan_creation_duration_seconds",
			Help:    "借阅创建耗时（秒）",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "熔断器请求总数",
		},
		[]string{"name", "result"},
	)

	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "消息发布总数",
		},
		[]string{"exchange", "routing_key"},
	)

	MessagesConsumedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_consumed_total",
			Help: "消息消费总数",
		},
		[]string{"queue", "result"},
	)
}

// 以下Inc*函数对未初始化的指标做nil保护,
// 让应用层代码与单元测试无需先调用InitMetrics

// IncLoansCreated 递增借阅创建计数
func IncLoansCreated() {
	if LoansCreatedTotal != nil {
		LoansCreatedTotal.Inc()
	}
}

// IncLoansFailed 递增借阅失败计数
func IncLoansFailed() {
	if LoansFailedTotal != nil {
		LoansFailedTotal.Inc()
	}
}

// IncLoansReturned 递增归还计数
func IncLoansReturned() {
	if LoansReturnedTotal != nil {
		LoansReturnedTotal.Inc()
	}
}

// ObserveLoanCreation 记录借阅创建耗时
func ObserveLoanCreation(seconds float64) {
	if LoanCreationDuration != nil {
		LoanCreationDuration.Observe(seconds)
	}
}

// SetCircuitBreakerState 更新熔断器状态
func SetCircuitBreakerState(name string, state float64) {
	if CircuitBreakerState != nil {
		CircuitBreakerState.WithLabelValues(name).Set(state)
	}
}

// IncCircuitBreakerRequest 递增熔断器请求计数
func IncCircuitBreakerRequest(name, result string) {
	if CircuitBreakerRequests != nil {
		CircuitBreakerRequests.WithLabelValues(name, result).Inc()
	}
}

// IncMessagePublished 递增消息发布计数
func IncMessagePublished(exchange, routingKey string) {
	if MessagesPublishedTotal != nil {
		MessagesPublishedTotal.WithLabelValues(exchange, routingKey).Inc()
	}
}

// IncMessageConsumed 递增消息消费计数
func IncMessageConsumed(queue, result string) {
	if MessagesConsumedTotal != nil {
		MessagesConsumedTotal.WithLabelValues(queue, result).Inc()
	}
}
