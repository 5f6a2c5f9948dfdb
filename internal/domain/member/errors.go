package member

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 会员领域错误定义
var (
	// ErrMemberNotFound 会员不存在
	ErrMemberNotFound = apperrors.New(apperrors.ErrCodeMemberNotFound, "会员不存在")

	// ErrMemberInactive 会员已停用
	ErrMemberInactive = apperrors.New(apperrors.ErrCodeInvalidState, "会员已停用")

	// ErrEmailDuplicate 邮箱已存在
	ErrEmailDuplicate = apperrors.New(apperrors.ErrCodeEmailDuplicate, "邮箱已被注册")
)
