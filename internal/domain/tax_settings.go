package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

var DefaultGSTRate = decimal.RequireFromString("18.00")

type TaxSettings struct {
	OwnerID    string
	GSTEnabled bool
	GSTRate    decimal.Decimal
	UpdatedAt  time.Time
}

// DefaultTaxSettings applies to accounts that never saved their tax configuration.
func DefaultTaxSettings(ownerID string) TaxSettings {
	return TaxSettings{
		OwnerID:    ownerID,
		GSTEnabled: false,
		GSTRate:    DefaultGSTRate,
	}
}
