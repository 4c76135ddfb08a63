// internal/repository/memstore/stake_mem.go
package memstore

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"bettracker/internal/repository"
)

// StakeMemory is an in-process repository.StakeMemory used when no Redis
// address is configured, and in tests. Contents are lost on restart, which
// is acceptable for a pre-populate convenience.
type StakeMemory struct {
	mu     sync.RWMutex
	stakes map[string]decimal.Decimal
}

// NewStakeMemory creates an empty in-memory StakeMemory.
func NewStakeMemory() repository.StakeMemory {
	return &StakeMemory{stakes: make(map[string]decimal.Decimal)}
}

// Get returns the remembered stake for a sport.
func (s *StakeMemory) Get(ctx context.Context, sport string) (decimal.Decimal, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	amount, ok := s.stakes[sport]
	if !ok || amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, false, nil
	}
	return amount, true, nil
}

// Set remembers the stake for a sport. Non-positive amounts are ignored.
func (s *StakeMemory) Set(ctx context.Context, sport string, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.stakes[sport] = amount
	return nil
}
