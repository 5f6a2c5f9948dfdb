package member

import (
	"context"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

// Service 会员领域服务
// 设计说明：
// 1. Service包含不属于单个实体的业务逻辑（如密码加密、验证）
// 2. Service依赖Repository接口，不依赖具体实现（依赖倒置）
// 3. Service不处理HTTP请求，只处理业务逻辑
type Service interface {
	// Register 会员注册
	Register(ctx context.Context, email, password, name string) (*Member, error)

	// Login 会员登录
	Login(ctx context.Context, email, password string) (*Member, error)

	// ValidatePassword 验证密码
	ValidatePassword(hashedPassword, plainPassword string) error
}

type service struct {
	repo Repository
}

// NewService 创建会员服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Register 会员注册
// 业务规则：
// 1. 邮箱格式校验
// 2. 密码强度校验（8-20位，包含字母和数字）
// 3. 密码bcrypt加密（cost=12）
// 4. 邮箱唯一性由数据库UNIQUE索引保证
func (s *service) Register(ctx context.Context, email, password, name string) (*Member, error) {
	if !isValidEmail(email) {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "邮箱格式不正确")
	}

	if err := validatePasswordStrength(password); err != nil {
		return nil, err
	}

	if len(name) < 2 || len(name) > 50 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "姓名长度应为2-50个字符")
	}

	// bcrypt自动加盐,cost=12平衡安全性与性能
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, apperrors.Wrap(err, "密码加密失败")
	}

	m := NewMember(email, string(hashedPassword), name)

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err // Repository已转换为业务错误
	}

	return m, nil
}

// Login 会员登录
// 业务规则：
// 1. 邮箱必须存在且会员处于启用状态
// 2. 密码必须正确
func (s *service) Login(ctx context.Context, email, password string) (*Member, error) {
	m, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err // Repository已转换为ErrMemberNotFound
	}

	if !m.Active {
		return nil, ErrMemberInactive
	}

	if err := s.ValidatePassword(m.Password, password); err != nil {
		return nil, err
	}

	return m, nil
}

// ValidatePassword 验证明文密码与哈希值是否匹配
func (s *service) ValidatePassword(hashedPassword, plainPassword string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	if err != nil {
		if err == bcrypt.ErrMismatchedHashAndPassword {
			return apperrors.ErrInvalidPassword
		}
		return apperrors.Wrap(err, "密码验证失败")
	}
	return nil
}

// =========================================
// 辅助函数：业务规则校验
// =========================================

// isValidEmail 邮箱格式校验
func isValidEmail(email string) bool {
	pattern := `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	matched, _ := regexp.MatchString(pattern, email)
	return matched
}

// validatePasswordStrength 密码强度校验
// 规则：8-20位，至少包含一个字母和一个数字
func validatePasswordStrength(password string) error {
	if len(password) < 8 || len(password) > 20 {
		return apperrors.ErrWeakPassword
	}

	hasLetter, _ := regexp.MatchString(`[a-zA-Z]`, password)
	hasDigit, _ := regexp.MatchString(`[0-9]`, password)
	if !hasLetter || !hasDigit {
		return apperrors.ErrWeakPassword
	}

	return nil
}
