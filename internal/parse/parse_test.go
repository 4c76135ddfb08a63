// internal/parse/parse_test.go
package parse

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bettracker/internal/util"
)

func TestParseStakePayout(t *testing.T) {
	t.Run("Plain", func(t *testing.T) {
		stake, payout, err := ParseStakePayout("5/9.32")
		require.NoError(t, err)
		assert.True(t, stake.Equal(decimal.NewFromInt(5)))
		assert.True(t, payout.Equal(decimal.RequireFromString("9.32")))
	})

	t.Run("CurrencyMarkersAndWhitespace", func(t *testing.T) {
		stake, payout, err := ParseStakePayout("$5 / $9.32")
		require.NoError(t, err)
		assert.True(t, stake.Equal(decimal.NewFromInt(5)))
		assert.True(t, payout.Equal(decimal.RequireFromString("9.32")))
	})

	t.Run("Decimals", func(t *testing.T) {
		stake, payout, err := ParseStakePayout("2.50/4.75")
		require.NoError(t, err)
		assert.True(t, stake.Equal(decimal.RequireFromString("2.5")))
		assert.True(t, payout.Equal(decimal.RequireFromString("4.75")))
	})

	failures := map[string]string{
		"ZeroPayout":    "5/0",
		"ZeroStake":     "0/9.32",
		"NotNumbers":    "abc",
		"MissingSlash":  "5 9.32",
		"TooManyParts":  "5/9.32/1",
		"EmptyInput":    "",
		"NegativeStake": "-5/9.32",
	}
	for name, input := range failures {
		t.Run(name, func(t *testing.T) {
			_, _, err := ParseStakePayout(input)
			assert.ErrorIs(t, err, util.ErrParse)
		})
	}
}

func TestParseQuickEntry(t *testing.T) {
	t.Run("WagerWithPhrase", func(t *testing.T) {
		entry, err := ParseQuickEntry("SEA ML bet 5 to win 9.32")
		require.NoError(t, err)
		assert.True(t, entry.Stake.Equal(decimal.NewFromInt(5)))
		assert.True(t, entry.Payout.Equal(decimal.RequireFromString("9.32")))
		assert.Equal(t, "SEA ML", entry.Wager)
	})

	t.Run("CaseInsensitiveWithDollars", func(t *testing.T) {
		entry, err := ParseQuickEntry("over 6.5 BET $2 TO WIN $3.80")
		require.NoError(t, err)
		assert.True(t, entry.Stake.Equal(decimal.NewFromInt(2)))
		assert.True(t, entry.Payout.Equal(decimal.RequireFromString("3.80")))
		assert.Equal(t, "OVER 6.5", entry.Wager)
	})

	t.Run("PhraseOnlyDefaultsWager", func(t *testing.T) {
		entry, err := ParseQuickEntry("bet 5 to win 9.32")
		require.NoError(t, err)
		assert.Equal(t, "BET", entry.Wager)
	})

	t.Run("NoPhrase", func(t *testing.T) {
		_, err := ParseQuickEntry("BOS ML 5/9.32")
		assert.ErrorIs(t, err, util.ErrParse)
	})

	t.Run("ZeroAmount", func(t *testing.T) {
		_, err := ParseQuickEntry("bet 0 to win 9.32")
		assert.ErrorIs(t, err, util.ErrParse)
	})
}
