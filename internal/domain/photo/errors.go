package photo

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 图片领域错误定义
var (
	// ErrPhotoNotFound 图片不存在
	ErrPhotoNotFound = apperrors.New(apperrors.ErrCodePhotoNotFound, "图片不存在")

	// ErrEmptyContent 图片内容为空
	ErrEmptyContent = apperrors.New(apperrors.ErrCodeInvalidParams, "图片内容不能为空")
)
