// Package billing normalizes recurring charges with different billing
// cycles into comparable monthly and yearly amounts.
//
// Everything here is pure: no I/O, no shared state. Results are left
// unrounded; two-decimal display is up to the caller.
package billing

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

var (
	weeksPerMonth = decimal.NewFromInt(4)
	weeksPerYear  = decimal.NewFromInt(52)
	monthsPerYear = decimal.NewFromInt(12)
)

// Charge is the billing view of a recurring item.
type Charge struct {
	Price  decimal.Decimal
	Cycle  Cycle
	Active bool
}

// Charger is implemented by anything that can be totalled.
type Charger interface {
	Charge() Charge
}

// Monthly returns the monthly equivalent of the charge. Inactive charges
// and charges without a cycle contribute zero.
func (c Charge) Monthly() decimal.Decimal {
	if !c.Active {
		return decimal.Zero
	}
	switch c.Cycle {
	case Weekly:
		return c.Price.Mul(weeksPerMonth)
	case Monthly:
		return c.Price
	case Yearly:
		return c.Price.Div(monthsPerYear)
	}
	return decimal.Zero
}

// Yearly returns the yearly equivalent of the charge.
func (c Charge) Yearly() decimal.Decimal {
	if !c.Active {
		return decimal.Zero
	}
	switch c.Cycle {
	case Weekly:
		return c.Price.Mul(weeksPerYear)
	case Monthly:
		return c.Price.Mul(monthsPerYear)
	case Yearly:
		return c.Price
	}
	return decimal.Zero
}

// MonthlyTotal sums the monthly equivalents of the active items.
func MonthlyTotal[S ~[]E, E Charger](items S) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Charge().Monthly())
	}
	return total
}

// YearlyTotal sums the yearly equivalents of the active items.
func YearlyTotal[S ~[]E, E Charger](items S) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Charge().Yearly())
	}
	return total
}

// Summary holds the spend figures shown on a dashboard.
type Summary struct {
	MonthlyTotal decimal.Decimal `json:"monthlyTotal"`
	YearlyTotal  decimal.Decimal `json:"yearlyTotal"`
	ActiveCount  int             `json:"activeCount"`
	TotalCount   int             `json:"totalCount"`
}

// MarshalJSON writes both totals as JSON numbers.
func (s Summary) MarshalJSON() ([]byte, error) {
	type plain Summary
	return json.Marshal(struct {
		plain
		MonthlyTotal json.Number `json:"monthlyTotal"`
		YearlyTotal  json.Number `json:"yearlyTotal"`
	}{
		plain:        plain(s),
		MonthlyTotal: json.Number(s.MonthlyTotal.String()),
		YearlyTotal:  json.Number(s.YearlyTotal.String()),
	})
}

// Summarize computes both totals and counts in a single pass.
func Summarize[S ~[]E, E Charger](items S) Summary {
	summary := Summary{
		MonthlyTotal: decimal.Zero,
		YearlyTotal:  decimal.Zero,
		TotalCount:   len(items),
	}
	for _, item := range items {
		charge := item.Charge()
		if charge.Active {
			summary.ActiveCount++
		}
		summary.MonthlyTotal = summary.MonthlyTotal.Add(charge.Monthly())
		summary.YearlyTotal = summary.YearlyTotal.Add(charge.Yearly())
	}
	return summary
}
