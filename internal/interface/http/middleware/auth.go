package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/library/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/library/pkg/jwt"
	"github.com/xiebiao/library/pkg/response"
)

// AuthMiddleware JWT认证中间件
// 设计说明：
// 1. 从Header提取Token
// 2. 验证Token有效性
// 3. 检查Token黑名单
// 4. 将会员信息注入Context
type AuthMiddleware struct {
	jwtManager   *jwt.Manager
	sessionStore *redis.SessionStore
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(jwtManager *jwt.Manager, sessionStore *redis.SessionStore) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
	}
}

// RequireAuth 要求登录
// 使用方式：
//
//	authorized := r.Group("/api/v1")
//	authorized.Use(authMiddleware.RequireAuth())
//	authorized.POST("/loans", handler.Create)
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 格式：Authorization: Bearer <token>
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.ErrorWithCode(c, 40100, "请先登录")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.ErrorWithCode(c, 40101, "Token格式错误")
			c.Abort()
			return
		}

		tokenString := parts[1]

		// 黑名单检查:已登出或被强制失效的Token拒绝通行
		isBlacklisted, err := m.sessionStore.IsInBlacklist(c.Request.Context(), tokenString)
		if err != nil {
			response.ErrorWithCode(c, 50000, "验证Token失败")
			c.Abort()
			return
		}
		if isBlacklisted {
			response.ErrorWithCode(c, 40102, "Token已失效，请重新登录")
			c.Abort()
			return
		}

		claims, err := m.jwtManager.ParseToken(tokenString)
		if err != nil {
			response.Error(c, err) // 自动处理ErrTokenExpired、ErrInvalidToken
			c.Abort()
			return
		}

		// 将会员信息注入Context,后续Handler可用
		c.Set("member_id", claims.MemberID)
		c.Set("email", claims.Email)
		c.Set("name", claims.Name)
		c.Set("access_token", tokenString)

		c.Next()
	}
}

// OptionalAuth 可选登录
// 有Token则验证，没有则作为匿名请求继续
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			tokenString := parts[1]
			claims, err := m.jwtManager.ParseToken(tokenString)
			if err == nil {
				c.Set("member_id", claims.MemberID)
				c.Set("email", claims.Email)
				c.Set("name", claims.Name)
				c.Set("access_token", tokenString)
			}
		}

		c.Next()
	}
}

// =========================================
// Context辅助函数（供Handler使用）
// =========================================

// GetMemberID 从Context获取当前登录会员ID,未登录返回0
func GetMemberID(c *gin.Context) uint {
	if memberID, exists := c.Get("member_id"); exists {
		if id, ok := memberID.(uint); ok {
			return id
		}
	}
	return 0
}

// GetEmail 从Context获取当前登录会员邮箱
func GetEmail(c *gin.Context) string {
	if email, exists := c.Get("email"); exists {
		if e, ok := email.(string); ok {
			return e
		}
	}
	return ""
}

// GetAccessToken 从Context获取当前请求的Token(登出时加入黑名单)
func GetAccessToken(c *gin.Context) string {
	if token, exists := c.Get("access_token"); exists {
		if t, ok := token.(string); ok {
			return t
		}
	}
	return ""
}

// MustGetMemberID 从Context获取会员ID（不存在则panic）
// 仅用于已经通过RequireAuth中间件的Handler
func MustGetMemberID(c *gin.Context) uint {
	memberID := GetMemberID(c)
	if memberID == 0 {
		panic("member_id not found in context")
	}
	return memberID
}
