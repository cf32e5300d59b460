package domain

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Column limits: order amounts are DECIMAL(10,2) and delivery cost DECIMAL(8,2).
var (
	MaxOrderAmount  = decimal.RequireFromString("99999999.99")
	MaxDeliveryCost = decimal.RequireFromString("999999.99")
)

// RoundMoney rounds half away from zero to two decimal places.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

type PricedLine struct {
	ItemID   uint64
	Price    decimal.Decimal
	Quantity int
}

type Totals struct {
	Subtotal     decimal.Decimal
	Tax          decimal.Decimal
	TaxRate      decimal.Decimal
	DeliveryCost decimal.Decimal
	Total        decimal.Decimal
}

// ComputeTotals keeps total == subtotal + tax + deliveryCost exactly at two decimal places.
func ComputeTotals(lines []PricedLine, tax TaxSettings, deliveryCost decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	subtotal = RoundMoney(subtotal)

	taxAmount := decimal.Zero
	rate := decimal.Zero
	if tax.GSTEnabled {
		rate = RoundMoney(tax.GSTRate)
		taxAmount = RoundMoney(subtotal.Mul(rate).Div(hundred))
	}

	deliveryCost = RoundMoney(deliveryCost)

	return Totals{
		Subtotal:     subtotal,
		Tax:          taxAmount,
		TaxRate:      rate,
		DeliveryCost: deliveryCost,
		Total:        subtotal.Add(taxAmount).Add(deliveryCost),
	}
}
