package repositories

import (
	"context"
	"errors"

	"github.com/crowdtide/payeer-gateway/internal/domain/models"
	"github.com/crowdtide/payeer-gateway/internal/domain/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProjectRepositoryImpl struct {
	db *pgxpool.Pool
}

func NewProjectRepositoryImpl(db *pgxpool.Pool) repositories.ProjectRepository {
	return &ProjectRepositoryImpl{
		db: db,
	}
}

func (r *ProjectRepositoryImpl) GetByID(ctx context.Context, id int64) (*models.Project, error) {
	project := &models.Project{}
	err := r.db.QueryRow(
		ctx,
		"SELECT id, user_id, title, goal, funded, currency FROM projects WHERE id = $1",
		id,
	).Scan(&project.ID, &project.UserID, &project.Title, &project.Goal, &project.Funded, &project.Currency)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return project, nil
}

func (r *ProjectRepositoryImpl) GetCurrency(ctx context.Context, projectID int64) (string, error) {
	var currency string
	err := r.db.QueryRow(
		ctx,
		"SELECT currency FROM projects WHERE id = $1",
		projectID,
	).Scan(&currency)

	if err != nil {
		return "", err
	}

	return currency, nil
}
