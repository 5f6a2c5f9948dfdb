package dto

import "time"

// CreateLoanRequest 借阅创建请求
// 日期使用RFC3339格式(如2026-08-28T00:00:00Z)
type CreateLoanRequest struct {
	BookID   uint      `json:"book_id" binding:"required"`
	MemberID uint      `json:"member_id" binding:"required"`
	LoanDate time.Time `json:"loan_date" binding:"required"`
	DueDate  time.Time `json:"due_date" binding:"required"`
}

// RenewLoanRequest 续借请求
type RenewLoanRequest struct {
	LoanDate time.Time `json:"loan_date" binding:"required"`
	DueDate  time.Time `json:"due_date" binding:"required"`
}

// LoanResponse 借阅响应
type LoanResponse struct {
	ID         uint       `json:"id"`
	LoanNo     string     `json:"loan_no"`
	BookID     uint       `json:"book_id"`
	MemberID   uint       `json:"member_id"`
	LoanDate   time.Time  `json:"loan_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
	Active     bool       `json:"active"`
}
