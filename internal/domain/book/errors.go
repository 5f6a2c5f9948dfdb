package book

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrISBNDuplicate ISBN已存在
	ErrISBNDuplicate = apperrors.New(apperrors.ErrCodeISBNDuplicate, "ISBN号已存在")

	// ErrInvalidISBN 无效的ISBN
	ErrInvalidISBN = apperrors.New(apperrors.ErrCodeInvalidParams, "ISBN必须为正数")

	// ErrInvalidTitle 无效的书名
	ErrInvalidTitle = apperrors.New(apperrors.ErrCodeInvalidParams, "书名不能为空")

	// ErrInvalidYear 无效的出版年份
	ErrInvalidYear = apperrors.New(apperrors.ErrCodeInvalidParams, "出版年份必须为正数")

	// ErrInvalidDescription 无效的描述
	ErrInvalidDescription = apperrors.New(apperrors.ErrCodeInvalidParams, "描述不能为空且不能超过255个字符")

	// ErrInvalidCopies 无效的副本数
	ErrInvalidCopies = apperrors.New(apperrors.ErrCodeInvalidParams, "副本数不能为负数")

	// ErrNoCopiesAvailable 无可借副本
	ErrNoCopiesAvailable = apperrors.New(apperrors.ErrCodeNoCopiesAvailable, "没有可借的副本")

	// ErrNoLentCopies 没有在借副本(归还时计数已为0)
	ErrNoLentCopies = apperrors.New(apperrors.ErrCodeInvalidState, "该图书没有在借的副本")

	// ErrCopiesBelowLoans 副本总数小于有效借阅数
	ErrCopiesBelowLoans = apperrors.New(apperrors.ErrCodeNoCopiesAvailable, "副本总数不能小于当前有效借阅数")

	// ErrBookInactive 图书已下架
	ErrBookInactive = apperrors.New(apperrors.ErrCodeInvalidState, "图书已下架,无法借阅")
)
