// internal/query/classify_test.go
package query

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bettracker/internal/domain"
)

// now is a fixed reference instant: mid-day so same-day event dates are in the past.
var now = time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC)

// makeBet builds a bet directly so tests control every timestamp.
func makeBet(sport string, createdAt, eventDate time.Time, net *decimal.Decimal, settledAt *time.Time) domain.Bet {
	payout := decimal.RequireFromString("9.32")
	return domain.Bet{
		ID:                   uuid.New(),
		CreatedAt:            createdAt,
		EventDate:            domain.StartOfDay(eventDate),
		SettledAt:            settledAt,
		Sport:                sport,
		WagerText:            "BOS ML",
		BetAmount:            decimal.NewFromInt(5),
		PayoutAmount:         payout,
		OriginalPayoutAmount: payout,
		Net:                  net,
	}
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func ts(t time.Time) *time.Time { return &t }

func TestToday(t *testing.T) {
	today := domain.StartOfDay(now)
	yesterday := today.AddDate(0, 0, -1)
	tomorrow := today.AddDate(0, 0, 1)

	pending := makeBet(domain.SportNHL, now.Add(-4*time.Hour), today, nil, nil)
	win := makeBet(domain.SportNHL, now.Add(-3*time.Hour), today, dec("4.32"), ts(now))
	loss := makeBet(domain.SportNFL, now.Add(-2*time.Hour), today, dec("-5"), ts(now))
	push := makeBet(domain.SportNHL, now.Add(-1*time.Hour), today, dec("0"), ts(now))
	old := makeBet(domain.SportNHL, now.Add(-30*time.Hour), yesterday, nil, nil)
	future := makeBet(domain.SportNHL, now.Add(-1*time.Hour), tomorrow, nil, nil)

	bets := []domain.Bet{push, loss, win, pending, old, future}

	t.Run("BucketsPartitionTodaysRecords", func(t *testing.T) {
		buckets := Today(bets, now, "")

		require.Len(t, buckets.Pending, 1)
		require.Len(t, buckets.Wins, 1)
		require.Len(t, buckets.Losses, 1)
		require.Len(t, buckets.Pushes, 1)

		assert.Equal(t, pending.ID, buckets.Pending[0].ID)
		assert.Equal(t, win.ID, buckets.Wins[0].ID)
		assert.Equal(t, loss.ID, buckets.Losses[0].ID)
		assert.Equal(t, push.ID, buckets.Pushes[0].ID)
	})

	t.Run("SportFilter", func(t *testing.T) {
		buckets := Today(bets, now, domain.SportNFL)

		assert.Empty(t, buckets.Pending)
		assert.Empty(t, buckets.Wins)
		assert.Empty(t, buckets.Pushes)
		require.Len(t, buckets.Losses, 1)
		assert.Equal(t, loss.ID, buckets.Losses[0].ID)
	})

	t.Run("EntryOrderWithinBucket", func(t *testing.T) {
		later := makeBet(domain.SportNHL, now.Add(-30*time.Minute), today, nil, nil)
		buckets := Today([]domain.Bet{later, pending}, now, "")

		require.Len(t, buckets.Pending, 2)
		assert.Equal(t, pending.ID, buckets.Pending[0].ID, "oldest entry first")
		assert.Equal(t, later.ID, buckets.Pending[1].ID)
	})
}

func TestUpcoming(t *testing.T) {
	today := domain.StartOfDay(now)
	tomorrow := today.AddDate(0, 0, 1)
	nextWeek := today.AddDate(0, 0, 7)

	t.Run("StrictlyAfterNow", func(t *testing.T) {
		// An event dated today is not after the mid-day instant: once
		// its day has begun the bet drops out of Upcoming.
		sameDay := makeBet(domain.SportNHL, now.Add(-time.Hour), today, nil, nil)
		future := makeBet(domain.SportNHL, now.Add(-time.Hour), tomorrow, nil, nil)

		out := Upcoming([]domain.Bet{sameDay, future}, now, "")
		require.Len(t, out, 1)
		assert.Equal(t, future.ID, out[0].ID)
	})

	t.Run("ExcludesSettled", func(t *testing.T) {
		settledFuture := makeBet(domain.SportNHL, now.Add(-time.Hour), tomorrow, dec("4.32"), ts(now))
		out := Upcoming([]domain.Bet{settledFuture}, now, "")
		assert.Empty(t, out)
	})

	t.Run("OrderedByEventDateThenCreatedAt", func(t *testing.T) {
		farLater := makeBet(domain.SportNHL, now.Add(-3*time.Hour), nextWeek, nil, nil)
		soonSecond := makeBet(domain.SportNHL, now.Add(-1*time.Hour), tomorrow, nil, nil)
		soonFirst := makeBet(domain.SportNHL, now.Add(-2*time.Hour), tomorrow, nil, nil)

		out := Upcoming([]domain.Bet{farLater, soonSecond, soonFirst}, now, "")
		require.Len(t, out, 3)
		assert.Equal(t, soonFirst.ID, out[0].ID)
		assert.Equal(t, soonSecond.ID, out[1].ID)
		assert.Equal(t, farLater.ID, out[2].ID)
	})

	t.Run("SportFilter", func(t *testing.T) {
		nhl := makeBet(domain.SportNHL, now, tomorrow, nil, nil)
		mlb := makeBet(domain.SportMLB, now, tomorrow, nil, nil)

		out := Upcoming([]domain.Bet{nhl, mlb}, now, domain.SportMLB)
		require.Len(t, out, 1)
		assert.Equal(t, mlb.ID, out[0].ID)
	})
}

func TestSettled(t *testing.T) {
	today := domain.StartOfDay(now)

	recent := makeBet(domain.SportNHL, now.Add(-50*time.Hour), today, dec("4.32"), ts(now.Add(-1*time.Hour)))
	lastWeek := makeBet(domain.SportNFL, now.AddDate(0, 0, -8), today, dec("-5"), ts(now.AddDate(0, 0, -7)))
	lastMonth := makeBet(domain.SportNHL, now.AddDate(0, 0, -21), today, dec("0"), ts(now.AddDate(0, 0, -20)))
	pending := makeBet(domain.SportNHL, now, today, nil, nil)
	noTimestamp := makeBet(domain.SportNHL, now.Add(-60*time.Hour), today, dec("1.00"), nil)

	bets := []domain.Bet{lastMonth, recent, pending, lastWeek, noTimestamp}

	t.Run("MostRecentlySettledFirst", func(t *testing.T) {
		out := Settled(bets, now, "", 0)

		require.Len(t, out, 4, "pending bets are excluded")
		assert.Equal(t, recent.ID, out[0].ID)
		assert.Equal(t, lastWeek.ID, out[1].ID)
		assert.Equal(t, lastMonth.ID, out[2].ID)
		assert.Equal(t, noTimestamp.ID, out[3].ID, "missing settled_at sorts as oldest")
	})

	t.Run("DaysBackBound", func(t *testing.T) {
		out := Settled(bets, now, "", 10)

		require.Len(t, out, 2)
		assert.Equal(t, recent.ID, out[0].ID)
		assert.Equal(t, lastWeek.ID, out[1].ID)
	})

	t.Run("SportFilter", func(t *testing.T) {
		out := Settled(bets, now, domain.SportNFL, 0)
		require.Len(t, out, 1)
		assert.Equal(t, lastWeek.ID, out[0].ID)
	})
}

func TestSummarize(t *testing.T) {
	today := domain.StartOfDay(now)

	t.Run("MixedResults", func(t *testing.T) {
		bets := []domain.Bet{
			makeBet(domain.SportNHL, now, today, dec("4.32"), ts(now)),
			makeBet(domain.SportNHL, now, today, dec("2.00"), ts(now)),
			makeBet(domain.SportNFL, now, today, dec("-5"), ts(now)),
			makeBet(domain.SportNHL, now, today, dec("0"), ts(now)),
			makeBet(domain.SportNHL, now, today, nil, nil),
		}

		stats := Summarize(bets)

		assert.Equal(t, 5, stats.Total)
		assert.Equal(t, 4, stats.SettledCount)
		assert.Equal(t, 2, stats.Wins)
		assert.Equal(t, 1, stats.Losses)
		assert.Equal(t, 1, stats.Pushes)
		require.NotNil(t, stats.WinPct)
		assert.True(t, stats.WinPct.Equal(decimal.RequireFromString("2").Div(decimal.RequireFromString("3"))),
			"pushes are excluded from the win-percentage denominator")
		assert.True(t, stats.NetTotal.Equal(decimal.RequireFromString("1.32")), "pending bets contribute 0")
	})

	t.Run("NoWinsOrLossesHasNoWinPct", func(t *testing.T) {
		bets := []domain.Bet{
			makeBet(domain.SportNHL, now, today, nil, nil),
			makeBet(domain.SportNHL, now, today, dec("0"), ts(now)),
		}

		stats := Summarize(bets)
		assert.Nil(t, stats.WinPct, "all pending or all pushes means no win percentage")
		assert.True(t, stats.NetTotal.IsZero())
	})

	t.Run("Empty", func(t *testing.T) {
		stats := Summarize(nil)
		assert.Zero(t, stats.Total)
		assert.Nil(t, stats.WinPct)
		assert.True(t, stats.NetTotal.IsZero())
	})
}
