package member

import (
	"context"
	"log"
	"time"

	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/library/pkg/jwt"
)

// LoginUseCase 会员登录用例
// 设计说明：
// 1. 验证邮箱密码（领域服务负责,含在册状态检查）
// 2. 生成JWT Token对
// 3. 保存会话到Redis
type LoginUseCase struct {
	memberService member.Service
	jwtManager    *jwt.Manager
	sessionStore  *redis.SessionStore
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(
	memberService member.Service,
	jwtManager *jwt.Manager,
	sessionStore *redis.SessionStore,
) *LoginUseCase {
	return &LoginUseCase{
		memberService: memberService,
		jwtManager:    jwtManager,
		sessionStore:  sessionStore,
	}
}

// Execute 执行登录
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	m, err := uc.memberService.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	tokenPair, err := uc.jwtManager.GenerateToken(m.ID, m.Email, m.Name)
	if err != nil {
		return nil, err
	}

	sessionData := map[string]interface{}{
		"member_id": m.ID,
		"email":     m.Email,
		"name":      m.Name,
		"login_at":  time.Now().Unix(),
	}

	// 会话有效期 = Refresh Token有效期；保存失败不阻断登录
	if err := uc.sessionStore.SaveSession(ctx, m.ID, sessionData, 7*24*time.Hour); err != nil {
		log.Printf("会话保存失败 member_id=%d: %v", m.ID, err)
	}

	return &LoginResponse{
		Member: MemberInfo{
			ID:    m.ID,
			Email: m.Email,
			Name:  m.Name,
		},
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

// LogoutUseCase 会员登出用例
type LogoutUseCase struct {
	sessionStore *redis.SessionStore
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(sessionStore *redis.SessionStore) *LogoutUseCase {
	return &LogoutUseCase{sessionStore: sessionStore}
}

// Execute 执行登出
// Access Token加入黑名单,防止过期前继续使用
func (uc *LogoutUseCase) Execute(ctx context.Context, memberID uint, accessToken string) error {
	if err := uc.sessionStore.DeleteSession(ctx, memberID); err != nil {
		return err
	}

	if err := uc.sessionStore.AddToBlacklist(ctx, accessToken, 2*time.Hour); err != nil {
		return err
	}

	return nil
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string
	Password string
}

// LoginResponse 登录响应
type LoginResponse struct {
	Member       MemberInfo `json:"member"`
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	ExpiresIn    int64      `json:"expires_in"` // Access Token过期时间（秒）
}

// MemberInfo 会员信息
type MemberInfo struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
