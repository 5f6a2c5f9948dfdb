package catalog

import (
	"context"

	"github.com/xiebiao/library/internal/domain/author"
)

// RegisterAuthorUseCase 作者登记用例
type RegisterAuthorUseCase struct {
	authorRepo author.Repository
}

// NewRegisterAuthorUseCase 创建作者登记用例
func NewRegisterAuthorUseCase(authorRepo author.Repository) *RegisterAuthorUseCase {
	return &RegisterAuthorUseCase{authorRepo: authorRepo}
}

// Execute 登记新作者
// 业务规则:姓名必填;新作者默认在册
func (uc *RegisterAuthorUseCase) Execute(ctx context.Context, name string) (*author.Author, error) {
	if err := author.ValidateName(name); err != nil {
		return nil, err
	}

	a := author.NewAuthor(name)
	if err := uc.authorRepo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateAuthorUseCase 作者改名用例
type UpdateAuthorUseCase struct {
	authorRepo author.Repository
}

// NewUpdateAuthorUseCase 创建作者改名用例
func NewUpdateAuthorUseCase(authorRepo author.Repository) *UpdateAuthorUseCase {
	return &UpdateAuthorUseCase{authorRepo: authorRepo}
}

// Execute 修改作者姓名(生命周期状态不在此处变更,走lifecycle.Engine)
func (uc *UpdateAuthorUseCase) Execute(ctx context.Context, id uint, name string) error {
	a, err := uc.authorRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := a.Rename(name); err != nil {
		return err
	}
	return uc.authorRepo.Update(ctx, a)
}
