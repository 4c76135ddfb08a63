// internal/repository/rediscache/stake_redis.go
package rediscache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"bettracker/internal/repository"
)

// StakeMemory implements repository.StakeMemory on Redis. Keys live without
// a TTL: the remembered stake stays useful until overwritten by the next
// create for that sport.
type StakeMemory struct {
	client *redis.Client
}

// NewStakeMemory creates a Redis-backed StakeMemory.
func NewStakeMemory(client *redis.Client) repository.StakeMemory {
	return &StakeMemory{client: client}
}

func stakeKey(sport string) string {
	return "last_stake:" + sport
}

// Get returns the remembered stake for a sport.
func (s *StakeMemory) Get(ctx context.Context, sport string) (decimal.Decimal, bool, error) {
	val, err := s.client.Get(ctx, stakeKey(sport)).Result()
	if err == redis.Nil {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("failed to get last stake for %s: %w", sport, err)
	}

	amount, err := decimal.NewFromString(val)
	if err != nil || amount.LessThanOrEqual(decimal.Zero) {
		// Treat a corrupt or non-positive stored value as unset.
		return decimal.Zero, false, nil
	}
	return amount, true, nil
}

// Set remembers the stake for a sport. Non-positive amounts are ignored.
func (s *StakeMemory) Set(ctx context.Context, sport string, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil
	}
	if err := s.client.Set(ctx, stakeKey(sport), amount.String(), 0).Err(); err != nil {
		return fmt.Errorf("failed to set last stake for %s: %w", sport, err)
	}
	return nil
}
