// internal/query/classify.go

// Package query derives the named read models (Today, Upcoming, Settled,
// Summary) from a slice of bets. Everything here is a pure function of the
// collection plus a reference instant and an optional sport filter, so views
// can be recomputed freely on every read.
package query

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"bettracker/internal/domain"
)

// TodayBuckets splits today's bets into the four result groups a Today view
// renders. For a fixed instant the buckets partition today's records exactly.
type TodayBuckets struct {
	Pending []domain.Bet `json:"pending"`
	Wins    []domain.Bet `json:"wins"`
	Losses  []domain.Bet `json:"losses"`
	Pushes  []domain.Bet `json:"pushes"`
}

// Today returns the bets whose event date falls on now's calendar day,
// optionally filtered by sport, bucketed by result. Each bucket is ordered by
// CreatedAt ascending (entry order).
func Today(bets []domain.Bet, now time.Time, sport string) TodayBuckets {
	dayStart := domain.StartOfDay(now)
	dayEnd := dayStart.Add(24 * time.Hour)

	var out TodayBuckets
	for _, b := range bets {
		if b.EventDate.Before(dayStart) || !b.EventDate.Before(dayEnd) {
			continue
		}
		if sport != "" && b.Sport != sport {
			continue
		}
		switch {
		case b.Net == nil:
			out.Pending = append(out.Pending, b)
		case b.Net.IsPositive():
			out.Wins = append(out.Wins, b)
		case b.Net.IsNegative():
			out.Losses = append(out.Losses, b)
		default:
			out.Pushes = append(out.Pushes, b)
		}
	}

	for _, bucket := range [][]domain.Bet{out.Pending, out.Wins, out.Losses, out.Pushes} {
		sortByCreatedAt(bucket)
	}
	return out
}

// Upcoming returns pending bets whose event date is strictly after now (the
// instant, not the day: an event dated today drops out once its day has
// begun). Ordered by EventDate ascending, ties broken by CreatedAt ascending.
func Upcoming(bets []domain.Bet, now time.Time, sport string) []domain.Bet {
	out := []domain.Bet{}
	for _, b := range bets {
		if b.Net != nil || !b.EventDate.After(now) {
			continue
		}
		if sport != "" && b.Sport != sport {
			continue
		}
		out = append(out, b)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].EventDate.Equal(out[j].EventDate) {
			return out[i].EventDate.Before(out[j].EventDate)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Settled returns settled bets, optionally filtered by sport and bounded to
// the last daysBack days by SettledAt (daysBack <= 0 means unbounded).
// Ordered by SettledAt descending; a missing SettledAt sorts as oldest.
func Settled(bets []domain.Bet, now time.Time, sport string, daysBack int) []domain.Bet {
	var cutoff time.Time
	if daysBack > 0 {
		cutoff = now.AddDate(0, 0, -daysBack)
	}

	out := []domain.Bet{}
	for _, b := range bets {
		if b.Net == nil {
			continue
		}
		if sport != "" && b.Sport != sport {
			continue
		}
		if daysBack > 0 && (b.SettledAt == nil || b.SettledAt.Before(cutoff)) {
			continue
		}
		out = append(out, b)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return settleKey(out[i]).After(settleKey(out[j]))
	})
	return out
}

// settleKey is the sort key for settled ordering. The zero time puts records
// without a settlement timestamp at the very end.
func settleKey(b domain.Bet) time.Time {
	if b.SettledAt == nil {
		return time.Time{}
	}
	return *b.SettledAt
}

// Stats are the summary aggregates for a set of bets.
type Stats struct {
	Total        int              `json:"total"`
	SettledCount int              `json:"settled"`
	Wins         int              `json:"wins"`
	Losses       int              `json:"losses"`
	Pushes       int              `json:"pushes"`
	WinPct       *decimal.Decimal `json:"win_pct"` // nil when there are no wins and no losses
	NetTotal     decimal.Decimal  `json:"net_total"`
}

// Summarize computes aggregate statistics over the given bets. Pending bets
// count toward Total but contribute nothing to NetTotal. Pushes are excluded
// from the win-percentage denominator; with zero wins and zero losses WinPct
// is nil rather than a division by zero.
func Summarize(bets []domain.Bet) Stats {
	stats := Stats{Total: len(bets), NetTotal: decimal.Zero}

	for _, b := range bets {
		if b.Net == nil {
			continue
		}
		stats.SettledCount++
		stats.NetTotal = stats.NetTotal.Add(*b.Net)
		switch {
		case b.Net.IsPositive():
			stats.Wins++
		case b.Net.IsNegative():
			stats.Losses++
		default:
			stats.Pushes++
		}
	}

	if denom := stats.Wins + stats.Losses; denom > 0 {
		pct := decimal.NewFromInt(int64(stats.Wins)).Div(decimal.NewFromInt(int64(denom)))
		stats.WinPct = &pct
	}
	return stats
}

// FilterSport returns the bets matching the given sport; an empty sport
// returns the input unchanged.
func FilterSport(bets []domain.Bet, sport string) []domain.Bet {
	if sport == "" {
		return bets
	}
	out := []domain.Bet{}
	for _, b := range bets {
		if b.Sport == sport {
			out = append(out, b)
		}
	}
	return out
}

func sortByCreatedAt(bets []domain.Bet) {
	sort.SliceStable(bets, func(i, j int) bool {
		return bets[i].CreatedAt.Before(bets[j].CreatedAt)
	})
}
