package book

// 纯校验函数:只依赖入参,返回类型化错误,可脱离持久化独立调用

// ValidateFields 校验图书的基础字段
// 业务规则:
// - ISBN必须为正数
// - 书名不能为空
// - 出版年份必须为正数
// - 描述必填且不超过255个字符
// - 副本数不能为负数
func ValidateFields(isbn int64, title string, year int, description string, totalCopies int) error {
	if isbn <= 0 {
		return ErrInvalidISBN
	}
	if title == "" {
		return ErrInvalidTitle
	}
	if year <= 0 {
		return ErrInvalidYear
	}
	if description == "" || len(description) > 255 {
		return ErrInvalidDescription
	}
	if totalCopies < 0 {
		return ErrInvalidCopies
	}
	return nil
}
