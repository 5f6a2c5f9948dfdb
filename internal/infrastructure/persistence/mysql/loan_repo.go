package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/loan"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// loanRepository 借阅仓储实现(MySQL)
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository 创建借阅仓储
func NewLoanRepository(db *gorm.DB) loan.Repository {
	return &loanRepository{db: db}
}

// Create 创建借阅记录
func (r *loanRepository) Create(ctx context.Context, l *loan.Loan) error {
	model := toLoanModel(l)
	model.ID = 0

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return apperrors.New(apperrors.ErrCodeDuplicateEntry, "借阅单号已存在")
		}
		return apperrors.Wrap(err, "创建借阅记录失败")
	}

	l.ID = model.ID
	l.CreatedAt = model.CreatedAt
	l.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找借阅记录
func (r *loanRepository) FindByID(ctx context.Context, id uint) (*loan.Loan, error) {
	var model LoanModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loan.ErrLoanNotFound
		}
		return nil, apperrors.Wrap(err, "查询借阅记录失败")
	}
	return toLoanEntity(&model), nil
}

// FindByBook 查找某图书的全部借阅记录(含已归还)
func (r *loanRepository) FindByBook(ctx context.Context, bookID uint) ([]*loan.Loan, error) {
	var models []LoanModel
	err := getDB(ctx, r.db).Where("book_id = ?", bookID).Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询图书借阅记录失败")
	}
	return toLoanEntities(models), nil
}

// FindActiveByBook 查找某图书的在借记录
func (r *loanRepository) FindActiveByBook(ctx context.Context, bookID uint) ([]*loan.Loan, error) {
	var models []LoanModel
	err := getDB(ctx, r.db).Where("book_id = ? AND active = ?", bookID, true).Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询图书在借记录失败")
	}
	return toLoanEntities(models), nil
}

// FindByMember 查找某会员的全部借阅记录
func (r *loanRepository) FindByMember(ctx context.Context, memberID uint) ([]*loan.Loan, error) {
	var models []LoanModel
	err := getDB(ctx, r.db).Where("member_id = ?", memberID).Order("created_at DESC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询会员借阅记录失败")
	}
	return toLoanEntities(models), nil
}

// CountActiveByBook 统计某图书的在借数量
func (r *loanRepository) CountActiveByBook(ctx context.Context, bookID uint) (int, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&LoanModel{}).
		Where("book_id = ? AND active = ?", bookID, true).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计图书在借数失败")
	}
	return int(count), nil
}

// CountActiveByMember 统计某会员的在借数量(借阅上限校验)
// 调用方必须已通过memberRepo.LockByID持有会员行锁,
// 否则并发请求可以绕过上限
func (r *loanRepository) CountActiveByMember(ctx context.Context, memberID uint) (int, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&LoanModel{}).
		Where("member_id = ? AND active = ?", memberID, true).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计会员在借数失败")
	}
	return int(count), nil
}

// ListActive 查询所有在借记录
func (r *loanRepository) ListActive(ctx context.Context) ([]*loan.Loan, error) {
	return r.listByActive(ctx, true)
}

// ListInactive 查询所有已归还记录
func (r *loanRepository) ListInactive(ctx context.Context) ([]*loan.Loan, error) {
	return r.listByActive(ctx, false)
}

func (r *loanRepository) listByActive(ctx context.Context, active bool) ([]*loan.Loan, error) {
	var models []LoanModel
	err := getDB(ctx, r.db).Where("active = ?", active).Order("created_at DESC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询借阅列表失败")
	}
	return toLoanEntities(models), nil
}

// Update 更新借阅记录(续借/归还)
func (r *loanRepository) Update(ctx context.Context, l *loan.Loan) error {
	model := toLoanModel(l)
	model.CreatedAt = l.CreatedAt

	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新借阅记录失败")
	}

	l.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 物理删除借阅记录
func (r *loanRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&LoanModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除借阅记录失败")
	}
	if result.RowsAffected == 0 {
		return loan.ErrLoanNotFound
	}
	return nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toLoanModel 领域实体 → GORM模型
func toLoanModel(l *loan.Loan) *LoanModel {
	return &LoanModel{
		ID:         l.ID,
		LoanNo:     l.LoanNo,
		BookID:     l.BookID,
		MemberID:   l.MemberID,
		LoanDate:   l.LoanDate,
		DueDate:    l.DueDate,
		ReturnedAt: l.ReturnedAt,
		Active:     l.Active,
	}
}

// toLoanEntity GORM模型 → 领域实体
func toLoanEntity(model *LoanModel) *loan.Loan {
	return &loan.Loan{
		ID:         model.ID,
		LoanNo:     model.LoanNo,
		BookID:     model.BookID,
		MemberID:   model.MemberID,
		LoanDate:   model.LoanDate,
		DueDate:    model.DueDate,
		ReturnedAt: model.ReturnedAt,
		Active:     model.Active,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

func toLoanEntities(models []LoanModel) []*loan.Loan {
	loans := make([]*loan.Loan, len(models))
	for i := range models {
		loans[i] = toLoanEntity(&models[i])
	}
	return loans
}
