package loan

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 借阅领域错误定义
var (
	// ErrLoanNotFound 借阅记录不存在
	ErrLoanNotFound = apperrors.New(apperrors.ErrCodeLoanNotFound, "借阅记录不存在")

	// ErrInvalidLoanDate 无效的借出日期
	ErrInvalidLoanDate = apperrors.New(apperrors.ErrCodeInvalidParams, "借出日期不能为空")

	// ErrInvalidDueDate 无效的应还日期
	ErrInvalidDueDate = apperrors.New(apperrors.ErrCodeInvalidParams, "应还日期不能为空")

	// ErrDatesOutOfOrder 借出日期晚于应还日期
	ErrDatesOutOfOrder = apperrors.New(apperrors.ErrCodeInvalidParams, "借出日期不能晚于应还日期")

	// ErrLoanClosed 借阅记录已归还
	ErrLoanClosed = apperrors.New(apperrors.ErrCodeInvalidState, "该借阅记录已归还")

	// ErrLoanLimitReached 会员在借数量达到上限
	ErrLoanLimitReached = apperrors.New(apperrors.ErrCodeLoanLimitReached, "已达到4笔在借上限,请先归还后再借阅")
)
