package repositories

import (
	"context"
	"github.com/crowdtide/payeer-gateway/internal/domain/models"
)

type RewardRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Reward, error)
}
