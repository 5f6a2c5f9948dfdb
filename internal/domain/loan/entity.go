package loan

import (
	"time"
)

// MaxActiveLoansPerMember 单个会员同时在借的最大数量(固定策略)
const MaxActiveLoansPerMember = 4

// Loan 借阅记录实体(属于图书聚合的一致性边界)
// 设计说明:
// 1. BookID/MemberID在创建后不可变,续借只能修改两个日期
// 2. Active为true表示在借,false表示已归还(ReturnedAt记录归还时间)
// 3. LoanNo是业务单号(全局唯一),与数据库自增ID分离
type Loan struct {
	ID         uint
	LoanNo     string     // 借阅单号(业务主键,全局唯一)
	BookID     uint       // 图书ID(创建后不可变)
	MemberID   uint       // 会员ID(创建后不可变)
	LoanDate   time.Time  // 借出日期
	DueDate    time.Time  // 应还日期
	ReturnedAt *time.Time // 实际归还时间(在借时为nil)
	Active     bool       // 是否在借
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewLoan 创建新借阅记录(工厂方法)
// 调用方负责先通过ValidateDates校验日期,再完成副本预留
func NewLoan(loanNo string, bookID, memberID uint, loanDate, dueDate time.Time) *Loan {
	now := time.Now()
	return &Loan{
		LoanNo:    loanNo,
		BookID:    bookID,
		MemberID:  memberID,
		LoanDate:  loanDate,
		DueDate:   dueDate,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Renew 续借:仅更新借出与应还日期
// 业务规则:已归还的记录不能续借
func (l *Loan) Renew(loanDate, dueDate time.Time) error {
	if !l.Active {
		return ErrLoanClosed
	}
	if err := ValidateDates(loanDate, dueDate); err != nil {
		return err
	}
	l.LoanDate = loanDate
	l.DueDate = dueDate
	l.UpdatedAt = time.Now()
	return nil
}

// Close 归还:关闭借阅记录并记录归还时间
// 业务规则:已归还的记录不能重复归还
func (l *Loan) Close(returnedAt time.Time) error {
	if !l.Active {
		return ErrLoanClosed
	}
	l.Active = false
	l.ReturnedAt = &returnedAt
	l.UpdatedAt = time.Now()
	return nil
}

// ValidateDates 日期校验(纯函数)
// 业务规则:两个日期均必填,且借出日期不能晚于应还日期
func ValidateDates(loanDate, dueDate time.Time) error {
	if loanDate.IsZero() {
		return ErrInvalidLoanDate
	}
	if dueDate.IsZero() {
		return ErrInvalidDueDate
	}
	if loanDate.After(dueDate) {
		return ErrDatesOutOfOrder
	}
	return nil
}
