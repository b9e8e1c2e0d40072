package repositories

import (
	"context"
	"errors"

	"github.com/crowdtide/payeer-gateway/internal/domain/models"
	"github.com/crowdtide/payeer-gateway/internal/domain/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RewardRepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRewardRepositoryImpl(db *pgxpool.Pool) repositories.RewardRepository {
	return &RewardRepositoryImpl{
		db: db,
	}
}

func (r *RewardRepositoryImpl) GetByID(ctx context.Context, id int64) (*models.Reward, error) {
	reward := &models.Reward{}
	err := r.db.QueryRow(
		ctx,
		"SELECT id, project_id, number, distributed FROM rewards WHERE id = $1",
		id,
	).Scan(&reward.ID, &reward.ProjectID, &reward.Number, &reward.Distributed)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return reward, nil
}
