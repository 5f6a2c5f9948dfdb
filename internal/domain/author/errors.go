package author

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 作者领域错误定义
var (
	// ErrAuthorNotFound 作者不存在
	ErrAuthorNotFound = apperrors.New(apperrors.ErrCodeAuthorNotFound, "作者不存在")

	// ErrInvalidName 无效的姓名
	ErrInvalidName = apperrors.New(apperrors.ErrCodeInvalidParams, "作者姓名不能为空")
)
