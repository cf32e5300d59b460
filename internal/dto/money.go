package dto

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Money is a decimal rendered as a JSON number with exactly two decimal places.
// It accepts either a JSON number or a numeric string on input.
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.StringFixed(2)), nil
}

// UnmarshalJSON treats only a bare null as zero.
func (m *Money) UnmarshalJSON(data []byte) error {
	raw := string(bytes.TrimSpace(data))
	if raw == "null" {
		m.Decimal = decimal.Zero
		return nil
	}

	if len(raw) > 0 && raw[0] == '"' {
		unquoted, err := strconv.Unquote(raw)
		if err != nil {
			return fmt.Errorf("invalid monetary value %s", raw)
		}
		raw = unquoted
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("invalid monetary value %q", raw)
	}
	m.Decimal = d
	return nil
}
