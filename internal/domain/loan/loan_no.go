package loan

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateLoanNo 生成借阅单号
// 设计原则:
// 1. 全局唯一(避免冲突)
// 2. 时间有序(便于归档查询)
// 3. 不可预测(防止恶意遍历)
//
// 格式:LN + 时间戳(秒) + 6位随机数
// 示例:LN1699248000123456
func GenerateLoanNo() string {
	timestamp := time.Now().Unix()
	random := rand.Intn(1000000)
	return fmt.Sprintf("LN%d%06d", timestamp, random)
}
