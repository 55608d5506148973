// Package bill holds the monthly rental bill: the tenant's inputs, the derived
// water and total amounts, and the receipt rendered from them.
package bill

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Tenant is what intake collects for one bill.
type Tenant struct {
	Name            string
	Apartment       string
	Rent            decimal.Decimal
	PreviousReading decimal.Decimal
	CurrentReading  decimal.Decimal
	Phone           string // international form, empty when none was given
}

// Bill is a tenant plus the derived amounts.
//
// WaterUsage is not clamped: readings entered in the wrong order yield a
// negative usage and a reduced total.
type Bill struct {
	Tenant
	Tariff Tariff

	WaterUsage decimal.Decimal
	WaterBill  decimal.Decimal
	Total      decimal.Decimal

	// IssuedAt is set when the receipt is rendered and names the billing period.
	IssuedAt time.Time
}

// Calculate derives water usage, water bill and total due.
func Calculate(t Tenant, tariff Tariff) Bill {
	usage := t.CurrentReading.Sub(t.PreviousReading)
	water := usage.Mul(tariff.WaterRate)
	return Bill{
		Tenant:     t,
		Tariff:     tariff,
		WaterUsage: usage,
		WaterBill:  water,
		Total:      t.Rent.Add(water),
	}
}

// Issue stamps the bill with its billing timestamp.
func (b Bill) Issue(at time.Time) Bill {
	b.IssuedAt = at
	return b
}

// Period is the billing month, e.g. "October 2026".
func (b Bill) Period() string { return b.IssuedAt.Format("January 2006") }

// AccountReference is the paybill account number for this apartment.
func (b Bill) AccountReference() string { return b.Tariff.AccountReference(b.Apartment) }

// FileName is the receipt file name. One tenant bills into the same file
// for the whole month.
func (b Bill) FileName() string {
	return fmt.Sprintf("Bill_%s_%s.txt", b.Apartment, b.IssuedAt.Format("January_2006"))
}

// Amount formats a money value with the tariff currency, e.g. "KES 17500.00".
func (b Bill) Amount(v decimal.Decimal) string {
	return b.Tariff.Currency + " " + Fixed(v, 2)
}

// Usage is the water usage in m³ with one decimal place.
func (b Bill) Usage() string { return Fixed(b.WaterUsage, 1) }

// Fixed formats v with the given decimal places. Ties round to even
// (0.125 -> "0.12") and a negative value that rounds to zero keeps its
// sign (-0.04 -> "-0.0").
func Fixed(v decimal.Decimal, places int32) string {
	s := v.StringFixedBank(places)
	if v.IsNegative() && !strings.HasPrefix(s, "-") {
		s = "-" + s
	}
	return s
}
