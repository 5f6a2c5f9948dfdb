package catalog

import (
	"context"

	"github.com/xiebiao/library/internal/domain/publisher"
)

// RegisterPublisherUseCase 出版社登记用例
type RegisterPublisherUseCase struct {
	publisherRepo publisher.Repository
}

// NewRegisterPublisherUseCase 创建出版社登记用例
func NewRegisterPublisherUseCase(publisherRepo publisher.Repository) *RegisterPublisherUseCase {
	return &RegisterPublisherUseCase{publisherRepo: publisherRepo}
}

// Execute 登记新出版社
func (uc *RegisterPublisherUseCase) Execute(ctx context.Context, name string) (*publisher.Publisher, error) {
	if err := publisher.ValidateName(name); err != nil {
		return nil, err
	}

	p := publisher.NewPublisher(name)
	if err := uc.publisherRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdatePublisherUseCase 出版社改名用例
type UpdatePublisherUseCase struct {
	publisherRepo publisher.Repository
}

// NewUpdatePublisherUseCase 创建出版社改名用例
func NewUpdatePublisherUseCase(publisherRepo publisher.Repository) *UpdatePublisherUseCase {
	return &UpdatePublisherUseCase{publisherRepo: publisherRepo}
}

// Execute 修改出版社名称
func (uc *UpdatePublisherUseCase) Execute(ctx context.Context, id uint, name string) error {
	p, err := uc.publisherRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := p.Rename(name); err != nil {
		return err
	}
	return uc.publisherRepo.Update(ctx, p)
}
