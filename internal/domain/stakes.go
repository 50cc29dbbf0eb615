package domain

import "fmt"

// Stakes represents the forced-bet structure of a poker session. The small
// blind must be strictly below the big blind and all components share one
// currency.
type Stakes struct {
	smallBlind Money
	bigBlind   Money
	ante       *Money
}

// NewStakes creates a new stakes value
func NewStakes(smallBlind, bigBlind Money, ante *Money) (Stakes, error) {
	if smallBlind.Currency() != bigBlind.Currency() {
		return Stakes{}, NewCurrencyMismatchError(smallBlind.Currency(), bigBlind.Currency())
	}
	if !smallBlind.Amount().LessThan(bigBlind.Amount()) {
		return Stakes{}, NewValidationError("stakes", "small blind must be less than big blind")
	}
	if ante != nil {
		if ante.Currency() != bigBlind.Currency() {
			return Stakes{}, NewCurrencyMismatchError(ante.Currency(), bigBlind.Currency())
		}
		if ante.IsNegative() {
			return Stakes{}, NewValidationError("stakes", "ante cannot be negative")
		}
		a := *ante
		ante = &a
	}
	return Stakes{smallBlind: smallBlind, bigBlind: bigBlind, ante: ante}, nil
}

// SmallBlind returns the small blind
func (s Stakes) SmallBlind() Money {
	return s.smallBlind
}

// BigBlind returns the big blind
func (s Stakes) BigBlind() Money {
	return s.bigBlind
}

// Ante returns the ante, if any
func (s Stakes) Ante() *Money {
	if s.ante == nil {
		return nil
	}
	a := *s.ante
	return &a
}

// Currency returns the shared currency of the stakes
func (s Stakes) Currency() string {
	return s.bigBlind.Currency()
}

// String formats the stakes as "<sb>/<bb> <currency>"
func (s Stakes) String() string {
	return fmt.Sprintf("%s/%s %s", s.smallBlind.Amount().String(), s.bigBlind.Amount().String(), s.Currency())
}
