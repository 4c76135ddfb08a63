// internal/repository/bet_repo.go
package repository

import (
	"context"

	"github.com/google/uuid"

	"bettracker/internal/domain"
)

// BetRepository defines the interface for bet data operations.
// All methods receive a DBExecutor so they can run either against the plain
// connection or inside a transaction.
type BetRepository interface {
	// CreateBet adds a new bet record to the database.
	CreateBet(ctx context.Context, q DBExecutor, bet *domain.Bet) error
	// GetBetByID retrieves a bet by its ID.
	GetBetByID(ctx context.Context, q DBExecutor, id uuid.UUID) (*domain.Bet, error)
	// ListBets retrieves the full bet collection, ordered by creation time.
	ListBets(ctx context.Context, q DBExecutor) ([]domain.Bet, error)
	// UpdateSettlement persists the bet's payout_amount, net, and settled_at
	// as a single statement so settlement state is never half-visible.
	UpdateSettlement(ctx context.Context, q DBExecutor, bet *domain.Bet) error
	// DeleteBet removes a bet by ID.
	DeleteBet(ctx context.Context, q DBExecutor, id uuid.UUID) error
}
