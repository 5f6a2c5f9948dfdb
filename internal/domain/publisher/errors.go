package publisher

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 出版社领域错误定义
var (
	// ErrPublisherNotFound 出版社不存在
	ErrPublisherNotFound = apperrors.New(apperrors.ErrCodePublisherNotFound, "出版社不存在")

	// ErrInvalidName 无效的名称
	ErrInvalidName = apperrors.New(apperrors.ErrCodeInvalidParams, "出版社名称不能为空")
)
