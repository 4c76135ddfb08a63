// internal/domain/bet.go
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal" // For precise monetary calculations

	"bettracker/internal/util"
)

// Sport labels used by the entry flow and the per-sport summary breakdown.
// The Sport field on a bet is a plain string, so free-form labels are accepted too.
const (
	SportNHL  = "NHL"
	SportNFL  = "NFL"
	SportMLB  = "MLB"
	SportCFB  = "CFB"
	SportCBB  = "CBB"
	SportProp = "PROP"
)

// KnownSports lists the built-in sport labels in display order.
var KnownSports = []string{SportNHL, SportNFL, SportMLB, SportCFB, SportCBB, SportProp}

// Bet represents one logged wager.
//
// A pending bet has Net == nil and SettledAt == nil; the two are always set
// and cleared together. PayoutAmount tracks the currently effective payout:
// it only ever diverges from OriginalPayoutAmount after a cash-out, and
// ResetToPending restores it.
type Bet struct {
	ID                   uuid.UUID        `db:"id" json:"id"`                                         // Primary key, UUID in DB
	CreatedAt            time.Time        `db:"created_at" json:"created_at"`                         // Timestamp of record creation
	EventDate            time.Time        `db:"event_date" json:"event_date"`                         // Start of the event's calendar day (UTC)
	SettledAt            *time.Time       `db:"settled_at" json:"settled_at"`                         // nil while pending
	Sport                string           `db:"sport" json:"sport"`                                   // e.g. "NHL", "NFL", or free string
	WagerText            string           `db:"wager_text" json:"wager_text"`                         // Uppercase description, non-empty
	BetAmount            decimal.Decimal  `db:"bet_amount" json:"bet_amount"`                         // Stake, NUMERIC(20, 4) in DB
	PayoutAmount         decimal.Decimal  `db:"payout_amount" json:"payout_amount"`                   // Currently effective payout
	OriginalPayoutAmount decimal.Decimal  `db:"original_payout_amount" json:"original_payout_amount"` // Payout quoted at creation, never mutated
	Net                  *decimal.Decimal `db:"net" json:"net"`                                       // nil = pending; signed settlement result
}

// NewBet creates a new pending Bet instance.
// It returns util.ErrEmptyWagerText when the trimmed wager text is empty and
// util.ErrNonPositiveAmount when stake or payout is not strictly positive.
func NewBet(sport, wagerText string, stake, payout decimal.Decimal, eventDate time.Time) (*Bet, error) {
	wagerText = strings.ToUpper(strings.TrimSpace(wagerText))
	if wagerText == "" {
		return nil, util.ErrEmptyWagerText
	}
	if stake.LessThanOrEqual(decimal.Zero) || payout.LessThanOrEqual(decimal.Zero) {
		return nil, util.ErrNonPositiveAmount
	}

	now := time.Now().UTC()
	return &Bet{
		ID:                   uuid.New(),
		CreatedAt:            now,
		EventDate:            StartOfDay(eventDate),
		Sport:                sport,
		WagerText:            wagerText,
		BetAmount:            stake,
		PayoutAmount:         payout,
		OriginalPayoutAmount: payout,
	}, nil
}

// Pending reports whether the bet has no settlement result yet.
func (b *Bet) Pending() bool {
	return b.Net == nil
}

// StartOfDay truncates a timestamp to midnight UTC of its calendar day.
// Event dates are stored at day granularity only.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
