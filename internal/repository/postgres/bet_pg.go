// internal/repository/postgres/bet_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"bettracker/internal/domain"
	"bettracker/internal/repository"
	"bettracker/internal/util"
)

// BetRepository implements repository.BetRepository for PostgreSQL.
type BetRepository struct {
	// Methods receive a DBExecutor directly, so no connection is held here.
}

// NewBetRepository creates a new BetRepository.
func NewBetRepository(db *sqlx.DB) repository.BetRepository {
	return &BetRepository{}
}

// CreateBet inserts a new bet record using the provided DBExecutor.
func (r *BetRepository) CreateBet(ctx context.Context, q repository.DBExecutor, bet *domain.Bet) error {
	query := `INSERT INTO bets (id, created_at, event_date, settled_at, sport, wager_text, bet_amount, payout_amount, original_payout_amount, net)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := q.ExecContext(ctx, query,
		bet.ID,
		bet.CreatedAt,
		bet.EventDate,
		bet.SettledAt,
		bet.Sport,
		bet.WagerText,
		bet.BetAmount,
		bet.PayoutAmount,
		bet.OriginalPayoutAmount,
		bet.Net,
	)
	if err != nil {
		return fmt.Errorf("failed to create bet: %w", err)
	}
	return nil
}

// GetBetByID retrieves a bet by its ID using the provided DBExecutor.
func (r *BetRepository) GetBetByID(ctx context.Context, q repository.DBExecutor, id uuid.UUID) (*domain.Bet, error) {
	var bet domain.Bet
	query := `SELECT id, created_at, event_date, settled_at, sport, wager_text, bet_amount, payout_amount, original_payout_amount, net
              FROM bets WHERE id = $1`
	err := q.GetContext(ctx, &bet, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrBetNotFound
		}
		return nil, fmt.Errorf("failed to get bet by ID %s: %w", id, err)
	}
	return &bet, nil
}

// ListBets retrieves all bets ordered by creation time using the provided DBExecutor.
// The classifier derives every view from this collection in memory.
func (r *BetRepository) ListBets(ctx context.Context, q repository.DBExecutor) ([]domain.Bet, error) {
	bets := []domain.Bet{}
	query := `SELECT id, created_at, event_date, settled_at, sport, wager_text, bet_amount, payout_amount, original_payout_amount, net
              FROM bets ORDER BY created_at ASC`
	if err := q.SelectContext(ctx, &bets, query); err != nil {
		return nil, fmt.Errorf("failed to list bets: %w", err)
	}
	return bets, nil
}

// UpdateSettlement writes the bet's settlement state in a single statement.
// payout_amount, net, and settled_at change together so a reader never sees
// a half-settled record.
func (r *BetRepository) UpdateSettlement(ctx context.Context, q repository.DBExecutor, bet *domain.Bet) error {
	query := `UPDATE bets SET payout_amount = $1, net = $2, settled_at = $3 WHERE id = $4`
	result, err := q.ExecContext(ctx, query, bet.PayoutAmount, bet.Net, bet.SettledAt, bet.ID)
	if err != nil {
		return fmt.Errorf("failed to update settlement for bet %s: %w", bet.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating bet %s: %w", bet.ID, err)
	}
	if rowsAffected == 0 {
		return util.ErrBetNotFound
	}
	return nil
}

// DeleteBet removes a bet by ID using the provided DBExecutor.
// Deleting an unknown ID returns util.ErrBetNotFound.
func (r *BetRepository) DeleteBet(ctx context.Context, q repository.DBExecutor, id uuid.UUID) error {
	result, err := q.ExecContext(ctx, `DELETE FROM bets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete bet %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after deleting bet %s: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrBetNotFound
	}
	return nil
}
