package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/library/pkg/metrics"
)

// Metrics HTTP请求指标中间件
// 记录请求总数(按方法/路径/状态码)、耗时分布与在途请求数。
// path使用FullPath()(路由模板,如/api/v1/books/:id),
// 避免真实URL导致标签基数爆炸
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		if metrics.HTTPRequestsTotal == nil {
			// 未InitMetrics(如测试环境),直接放行
			c.Next()
			return
		}

		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unknown" // 未匹配路由(404)
		}

		metrics.HTTPRequestsInProgress.Inc()
		defer metrics.HTTPRequestsInProgress.Dec()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).
			Observe(time.Since(start).Seconds())
	}
}
