package interactor

import (
	"context"
	"github.com/crowdtide/payeer-gateway/internal/domain/repositories"
)

type ProjectInteractor struct {
	transactionRepository repositories.TransactionRepository
	projectRepository     repositories.ProjectRepository
}

func NewProjectInteractor(transactionRepository repositories.TransactionRepository, projectRepository repositories.ProjectRepository) *ProjectInteractor {
	return &ProjectInteractor{
		transactionRepository: transactionRepository,
		projectRepository:     projectRepository,
	}
}

func (p *ProjectInteractor) ExistsByID(ctx context.Context, id int64) (bool, error) {
	project, err := p.projectRepository.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return project != nil, nil
}

func (p *ProjectInteractor) GetFunds(ctx context.Context, id int64) (float64, error) {
	funds, err := p.transactionRepository.GetProjectFunds(ctx, id)
	if err != nil {
		return 0.0, err
	}
	f, _ := funds.Float64()
	return f, nil
}
