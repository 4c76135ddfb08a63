// internal/parse/parse.go

// Package parse turns quick-entry text into validated stake/payout pairs.
// The rest of the application only depends on the success contract (two
// strictly positive decimals), never on the pattern-matching rules here.
package parse

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"bettracker/internal/util"
)

// quickEntryRe matches free text like "bet 5 to win 9.32" or "BET $5 TO WIN $9.32".
var quickEntryRe = regexp.MustCompile(`(?i)\bbet\s*\$?([0-9]+(?:\.[0-9]+)?)\s*to\s*win\s*\$?([0-9]+(?:\.[0-9]+)?)\b`)

// ParseStakePayout parses the compact "stake/payout" entry format,
// e.g. "5/9.32" or "$5 / $9.32". Currency markers and whitespace are
// stripped before parsing. Both numbers must be strictly positive decimals;
// any other shape fails with util.ErrParse.
func ParseStakePayout(input string) (stake, payout decimal.Decimal, err error) {
	cleaned := strings.NewReplacer("$", "", " ", "").Replace(strings.TrimSpace(input))

	parts := strings.Split(cleaned, "/")
	if len(parts) != 2 {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: expected stake/payout, got %q", util.ErrParse, input)
	}

	stake, err = decimal.NewFromString(parts[0])
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: invalid stake %q", util.ErrParse, parts[0])
	}
	payout, err = decimal.NewFromString(parts[1])
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: invalid payout %q", util.ErrParse, parts[1])
	}
	if stake.LessThanOrEqual(decimal.Zero) || payout.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: stake and payout must be greater than zero", util.ErrParse)
	}

	return stake, payout, nil
}

// QuickEntry is the result of parsing a free-text wager line.
type QuickEntry struct {
	Stake  decimal.Decimal
	Payout decimal.Decimal
	Wager  string // leftover text with the amount phrase removed, uppercased
}

// ParseQuickEntry extracts a (stake, payout) pair from free text containing a
// "bet X to win Y" phrase and returns the remaining text as the wager
// description. When nothing is left after removing the phrase the wager
// defaults to "BET". Fails with util.ErrParse when no phrase is found or
// either amount is not strictly positive.
func ParseQuickEntry(input string) (*QuickEntry, error) {
	m := quickEntryRe.FindStringSubmatchIndex(input)
	if m == nil {
		return nil, fmt.Errorf("%w: no \"bet X to win Y\" phrase in %q", util.ErrParse, input)
	}

	stake, err := decimal.NewFromString(input[m[2]:m[3]])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid stake in %q", util.ErrParse, input)
	}
	payout, err := decimal.NewFromString(input[m[4]:m[5]])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid payout in %q", util.ErrParse, input)
	}
	if stake.LessThanOrEqual(decimal.Zero) || payout.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: stake and payout must be greater than zero", util.ErrParse)
	}

	wager := strings.TrimSpace(input[:m[0]] + input[m[1]:])
	if wager == "" {
		wager = "BET"
	}

	return &QuickEntry{
		Stake:  stake,
		Payout: payout,
		Wager:  strings.ToUpper(wager),
	}, nil
}
