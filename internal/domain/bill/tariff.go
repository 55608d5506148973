package bill

import "github.com/shopspring/decimal"

// Tariff holds the constants applied to every bill.
type Tariff struct {
	WaterRate     decimal.Decimal // per cubic meter
	PaybillNumber string
	AccountPrefix string
	Currency      string
}

// DefaultTariff returns the standard tariff: KES 200 per m³, paybill 522533.
func DefaultTariff() Tariff {
	return Tariff{
		WaterRate:     decimal.NewFromInt(200),
		PaybillNumber: "522533",
		AccountPrefix: "7944442",
		Currency:      "KES",
	}
}

// AccountReference builds the paybill account number for an apartment.
func (t Tariff) AccountReference(apartment string) string {
	return t.AccountPrefix + "#" + apartment
}
