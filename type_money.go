package retroprice

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M returns a Money of value in currency (an ISO 4217 code like "USD").
func M[T float64 | int | int64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

func newDecimal[T float64 | int | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the string representation of the money value, e.g. "$1,299.99".
func (m Money) String() string {
	cur := m.currency()
	dec := m.Round().value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

// Round returns m rounded to the currency's minor unit.
func (m Money) Round() Money {
	return Money{value: m.value.Round(int32(m.currency().Fraction)), cur: m.cur}
}

// Amount returns the rounded amount as a plain decimal string, e.g. "1299.99".
func (m Money) Amount() string {
	return m.value.StringFixed(int32(m.currency().Fraction))
}

func (m Money) IsPositive() bool             { return m.value.IsPositive() }
func (m Money) LessThan(n Money) bool        { return m.value.LessThan(n.value) }
func (m Money) Ratio(n Money) decimal.Decimal { return m.value.Div(n.value) }
