// internal/repository/stake_memory.go
package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// StakeMemory remembers the last stake amount entered per sport so the entry
// flow can pre-populate its stake/payout field. It is a convenience cache,
// not authoritative data: losing it costs nothing but a default.
type StakeMemory interface {
	// Get returns the remembered stake for a sport. ok is false when no
	// positive amount has been remembered.
	Get(ctx context.Context, sport string) (amount decimal.Decimal, ok bool, err error)
	// Set remembers the stake for a sport. Non-positive amounts are ignored.
	Set(ctx context.Context, sport string, amount decimal.Decimal) error
}
