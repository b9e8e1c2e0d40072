package repositories

import (
	"context"
	"github.com/crowdtide/payeer-gateway/internal/domain/models"
)

type ProjectRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Project, error)
	// GetCurrency resolves the currency code the project collects in.
	GetCurrency(ctx context.Context, projectID int64) (string, error)
}
