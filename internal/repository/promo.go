package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const promoKeyPrefix = "promo:"

// PromoRepository remembers issued promo codes until they expire.
// A zero ttl keeps the code forever.
type PromoRepository interface {
	Save(ctx context.Context, code string, ttl time.Duration) error
	Exists(ctx context.Context, code string) (bool, error)
}

type dbPromo struct {
	client *redis.Client
}

func NewPromoRepository(client *redis.Client) PromoRepository {
	return &dbPromo{
		client: client,
	}
}

func (that *dbPromo) Save(ctx context.Context, code string, ttl time.Duration) error {
	issuedAt := time.Now().UTC().Format(time.RFC3339)

	if err := that.client.Set(ctx, promoKeyPrefix+code, issuedAt, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set promo code: %w", err)
	}

	return nil
}

func (that *dbPromo) Exists(ctx context.Context, code string) (bool, error) {
	count, err := that.client.Exists(ctx, promoKeyPrefix+code).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check promo code: %w", err)
	}

	return count == 1, nil
}
