// internal/domain/settlement.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"bettracker/internal/util"
)

// Settlement operations. Each one overwrites any prior result (re-settling a
// settled bet replaces the outcome, nothing accumulates) and stamps SettledAt
// with the current time. ResetToPending is the inverse of all of them:
// OriginalPayoutAmount exists solely so a cash-out followed by a reset gets
// the original payout quote back.

// ApplyWin settles the bet as a full win: Net = PayoutAmount - BetAmount.
func (b *Bet) ApplyWin() {
	net := b.PayoutAmount.Sub(b.BetAmount)
	b.settle(net)
}

// ApplyLoss settles the bet as a loss: Net = -BetAmount.
func (b *Bet) ApplyLoss() {
	net := b.BetAmount.Neg()
	b.settle(net)
}

// ApplyPush settles the bet as a push: the stake is returned, Net = 0.
func (b *Bet) ApplyPush() {
	b.settle(decimal.Zero)
}

// ApplyCashout settles the bet early for the given received amount.
// This is the only operation that mutates PayoutAmount. A zero amount is a
// valid cash-out (full loss taken early); a negative one is rejected with
// util.ErrNegativeCashout and leaves the bet untouched.
func (b *Bet) ApplyCashout(received decimal.Decimal) error {
	if received.IsNegative() {
		return util.ErrNegativeCashout
	}
	b.PayoutAmount = received
	b.settle(received.Sub(b.BetAmount))
	return nil
}

// ResetToPending clears the settlement result and restores the payout quoted
// at creation, regardless of which settlement actions preceded it.
func (b *Bet) ResetToPending() {
	b.Net = nil
	b.SettledAt = nil
	b.PayoutAmount = b.OriginalPayoutAmount
}

// settle assigns Net and SettledAt together so a bet is never observed with
// one set and the other absent.
func (b *Bet) settle(net decimal.Decimal) {
	now := time.Now().UTC()
	b.Net = &net
	b.SettledAt = &now
}
