// internal/service/bet_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bettracker/internal/domain"
	"bettracker/internal/parse"
	"bettracker/internal/query"
	"bettracker/internal/repository"
	"bettracker/pkg/db"
)

// Scope selects the record set a summary is computed over.
type Scope string

const (
	ScopeToday   Scope = "today"
	ScopeAllTime Scope = "all"
)

// CreateBetInput carries the validated fields for a new bet.
type CreateBetInput struct {
	Sport     string
	WagerText string
	Stake     decimal.Decimal
	Payout    decimal.Decimal
	EventDate time.Time
}

// SportStats pairs a sport label with its summary aggregates.
type SportStats struct {
	Sport string      `json:"sport"`
	Stats query.Stats `json:"stats"`
}

// SummaryReport is the summary view model: overall aggregates plus a
// per-sport breakdown.
type SummaryReport struct {
	Scope   Scope        `json:"scope"`
	Overall query.Stats  `json:"overall"`
	BySport []SportStats `json:"by_sport"`
}

// BetService defines the interface for bet-related business logic.
type BetService interface {
	CreateBet(ctx context.Context, input CreateBetInput) (*domain.Bet, error)
	CreateQuickBet(ctx context.Context, sport, text string) (*domain.Bet, error)
	SettleWin(ctx context.Context, id uuid.UUID) (*domain.Bet, error)
	SettleLoss(ctx context.Context, id uuid.UUID) (*domain.Bet, error)
	SettlePush(ctx context.Context, id uuid.UUID) (*domain.Bet, error)
	CashOut(ctx context.Context, id uuid.UUID, received decimal.Decimal) (*domain.Bet, error)
	ResetBet(ctx context.Context, id uuid.UUID) (*domain.Bet, error)
	DeleteBet(ctx context.Context, id uuid.UUID) error
	ListToday(ctx context.Context, now time.Time, sport string) (query.TodayBuckets, error)
	ListUpcoming(ctx context.Context, now time.Time, sport string) ([]domain.Bet, error)
	ListSettled(ctx context.Context, now time.Time, sport string, daysBack int) ([]domain.Bet, error)
	Summary(ctx context.Context, scope Scope, now time.Time, sport string) (*SummaryReport, error)
	LastStake(ctx context.Context, sport string) (decimal.Decimal, bool, error)
}

// betService implements the BetService interface.
type betService struct {
	dbBeginner  db.DBTxBeginner       // For starting transactions (e.g. *sqlx.DB)
	dbExecutor  repository.DBExecutor // For non-transactional operations (e.g. *sqlx.DB)
	betRepo     repository.BetRepository
	stakeMemory repository.StakeMemory
	beginTx     db.BeginTxFunc
	commitTx    db.CommitTxFunc
	rollbackTx  db.RollbackTxFunc
}

// NewBetService creates a new instance of BetService.
func NewBetService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	betRepo repository.BetRepository,
	stakeMemory repository.StakeMemory,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) BetService {
	return &betService{
		dbBeginner:  dbBeginner,
		dbExecutor:  dbExecutor,
		betRepo:     betRepo,
		stakeMemory: stakeMemory,
		beginTx:     beginTx,
		commitTx:    commitTx,
		rollbackTx:  rollbackTx,
	}
}

// CreateBet validates and stores a new pending bet, and remembers the stake
// for the sport so the next entry can be pre-populated.
func (s *betService) CreateBet(ctx context.Context, input CreateBetInput) (*domain.Bet, error) {
	bet, err := domain.NewBet(input.Sport, input.WagerText, input.Stake, input.Payout, input.EventDate)
	if err != nil {
		return nil, err
	}

	if err := s.betRepo.CreateBet(ctx, s.dbExecutor, bet); err != nil {
		return nil, fmt.Errorf("create bet: %w", err)
	}

	// Stake memory is a convenience cache; a failure here must not fail the create.
	_ = s.stakeMemory.Set(ctx, input.Sport, input.Stake)

	return bet, nil
}

// CreateQuickBet parses a free-text "bet X to win Y" line and stores the
// resulting bet with today's event date.
func (s *betService) CreateQuickBet(ctx context.Context, sport, text string) (*domain.Bet, error) {
	entry, err := parse.ParseQuickEntry(text)
	if err != nil {
		return nil, err
	}

	return s.CreateBet(ctx, CreateBetInput{
		Sport:     sport,
		WagerText: entry.Wager,
		Stake:     entry.Stake,
		Payout:    entry.Payout,
		EventDate: time.Now().UTC(),
	})
}

// SettleWin settles the bet as a full win.
func (s *betService) SettleWin(ctx context.Context, id uuid.UUID) (*domain.Bet, error) {
	return s.settle(ctx, id, func(b *domain.Bet) error {
		b.ApplyWin()
		return nil
	})
}

// SettleLoss settles the bet as a loss.
func (s *betService) SettleLoss(ctx context.Context, id uuid.UUID) (*domain.Bet, error) {
	return s.settle(ctx, id, func(b *domain.Bet) error {
		b.ApplyLoss()
		return nil
	})
}

// SettlePush settles the bet as a push.
func (s *betService) SettlePush(ctx context.Context, id uuid.UUID) (*domain.Bet, error) {
	return s.settle(ctx, id, func(b *domain.Bet) error {
		b.ApplyPush()
		return nil
	})
}

// CashOut settles the bet early for the received amount.
func (s *betService) CashOut(ctx context.Context, id uuid.UUID, received decimal.Decimal) (*domain.Bet, error) {
	return s.settle(ctx, id, func(b *domain.Bet) error {
		return b.ApplyCashout(received)
	})
}

// ResetBet reverts the bet to pending, restoring the original payout.
func (s *betService) ResetBet(ctx context.Context, id uuid.UUID) (*domain.Bet, error) {
	return s.settle(ctx, id, func(b *domain.Bet) error {
		b.ResetToPending()
		return nil
	})
}

// settle loads the bet inside a transaction, applies the given settlement
// action, and persists net, settled_at, and payout_amount as one unit.
func (s *betService) settle(ctx context.Context, id uuid.UUID, apply func(*domain.Bet) error) (*domain.Bet, error) {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("settle: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("settle: transaction controller does not implement DBExecutor")
	}

	bet, err := s.betRepo.GetBetByID(ctx, txExecutor, id)
	if err != nil {
		return nil, fmt.Errorf("settle: failed to get bet %s: %w", id, err)
	}

	if err := apply(bet); err != nil {
		return nil, err
	}

	if err := s.betRepo.UpdateSettlement(ctx, txExecutor, bet); err != nil {
		return nil, fmt.Errorf("settle: failed to update bet %s: %w", id, err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("settle: failed to commit transaction: %w", err)
	}

	return bet, nil
}

// DeleteBet removes a bet. Deleting an unknown ID returns util.ErrBetNotFound.
func (s *betService) DeleteBet(ctx context.Context, id uuid.UUID) error {
	if err := s.betRepo.DeleteBet(ctx, s.dbExecutor, id); err != nil {
		return fmt.Errorf("delete bet: %w", err)
	}
	return nil
}

// ListToday returns today's bets bucketed by result.
func (s *betService) ListToday(ctx context.Context, now time.Time, sport string) (query.TodayBuckets, error) {
	bets, err := s.betRepo.ListBets(ctx, s.dbExecutor)
	if err != nil {
		return query.TodayBuckets{}, fmt.Errorf("list today: %w", err)
	}
	return query.Today(bets, now, sport), nil
}

// ListUpcoming returns pending bets with event dates after now.
func (s *betService) ListUpcoming(ctx context.Context, now time.Time, sport string) ([]domain.Bet, error) {
	bets, err := s.betRepo.ListBets(ctx, s.dbExecutor)
	if err != nil {
		return nil, fmt.Errorf("list upcoming: %w", err)
	}
	return query.Upcoming(bets, now, sport), nil
}

// ListSettled returns settled bets, most recently settled first.
func (s *betService) ListSettled(ctx context.Context, now time.Time, sport string, daysBack int) ([]domain.Bet, error) {
	bets, err := s.betRepo.ListBets(ctx, s.dbExecutor)
	if err != nil {
		return nil, fmt.Errorf("list settled: %w", err)
	}
	return query.Settled(bets, now, sport, daysBack), nil
}

// Summary computes aggregates over the selected scope, overall and per sport.
// The today scope covers bets entered since the start of now's day.
func (s *betService) Summary(ctx context.Context, scope Scope, now time.Time, sport string) (*SummaryReport, error) {
	bets, err := s.betRepo.ListBets(ctx, s.dbExecutor)
	if err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}

	scoped := bets
	if scope == ScopeToday {
		dayStart := domain.StartOfDay(now)
		scoped = []domain.Bet{}
		for _, b := range bets {
			if !b.CreatedAt.Before(dayStart) {
				scoped = append(scoped, b)
			}
		}
	}
	scoped = query.FilterSport(scoped, sport)

	report := &SummaryReport{
		Scope:   scope,
		Overall: query.Summarize(scoped),
	}

	sports := domain.KnownSports
	if sport != "" {
		sports = []string{sport}
	}
	for _, sp := range sports {
		report.BySport = append(report.BySport, SportStats{
			Sport: sp,
			Stats: query.Summarize(query.FilterSport(scoped, sp)),
		})
	}

	return report, nil
}

// LastStake returns the remembered stake amount for a sport, if any.
func (s *betService) LastStake(ctx context.Context, sport string) (decimal.Decimal, bool, error) {
	amount, ok, err := s.stakeMemory.Get(ctx, sport)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("last stake: %w", err)
	}
	return amount, ok, nil
}
