package member

import (
	"context"

	"github.com/xiebiao/library/internal/domain/member"
)

// RegisterUseCase 会员注册用例
type RegisterUseCase struct {
	memberService member.Service
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(memberService member.Service) *RegisterUseCase {
	return &RegisterUseCase{
		memberService: memberService,
	}
}

// Execute 执行注册
// 返回应用层DTO而非领域实体,领域模型变更不影响API契约
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	m, err := uc.memberService.Register(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		return nil, err
	}

	return &RegisterResponse{
		ID:    m.ID,
		Email: m.Email,
		Name:  m.Name,
	}, nil
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email    string
	Password string
	Name     string
}

// RegisterResponse 注册响应（不含密码字段）
type RegisterResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
