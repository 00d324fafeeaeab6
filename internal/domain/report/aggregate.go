package report

import (
	"time"

	"github.com/rml/bookkeeper/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// Pure aggregation primitives over collection snapshots. Deterministic given
// their inputs; the snapshots are never mutated.

// Sum adds an amount over a record set. Decoders have already coerced
// malformed amounts to zero, so a bad record contributes nothing.
func Sum[T any](items []T, amount func(T) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(amount(item))
	}
	return total
}

// MaxByAmount returns the record with the largest amount. Ties keep the first
// occurrence in iteration order. The second return is false for an empty set.
func MaxByAmount[T any](items []T, amount func(T) decimal.Decimal) (T, bool) {
	var best T
	if len(items) == 0 {
		return best, false
	}
	best = items[0]
	max := amount(items[0])
	for _, item := range items[1:] {
		if a := amount(item); a.GreaterThan(max) {
			best, max = item, a
		}
	}
	return best, true
}

// Oldest returns the record with the earliest timestamp, skipping records
// whose timestamp is missing. Ties keep the first occurrence.
func Oldest[T any](items []T, created func(T) time.Time) (T, bool) {
	var best T
	found := false
	var min time.Time
	for _, item := range items {
		t := created(item)
		if t.IsZero() {
			continue
		}
		if !found || t.Before(min) {
			best, min, found = item, t, true
		}
	}
	return best, found
}

// ProductIndex resolves product ids to product records
type ProductIndex map[string]ledger.Product

// IndexProducts builds a lookup from a products snapshot
func IndexProducts(products []ledger.Product) ProductIndex {
	idx := make(ProductIndex, len(products))
	for _, p := range products {
		idx[p.ID] = p
	}
	return idx
}

// DebtsForProduct keeps the debts whose product resolves to the exact product
// name. Debts with a dangling product reference fall into no category.
func DebtsForProduct(debts []ledger.Debt, idx ProductIndex, name string) []ledger.Debt {
	out := make([]ledger.Debt, 0, len(debts))
	for _, d := range debts {
		if p, ok := idx[d.ProductID]; ok && p.Name == name {
			out = append(out, d)
		}
	}
	return out
}

// SalesForProduct keeps the sales whose product resolves to the exact product name
func SalesForProduct(sales []ledger.Sale, idx ProductIndex, name string) []ledger.Sale {
	out := make([]ledger.Sale, 0, len(sales))
	for _, s := range sales {
		if p, ok := idx[s.Product.ProductID]; ok && p.Name == name {
			out = append(out, s)
		}
	}
	return out
}

// DebtsPaidOn returns the debts that received a payment on the given calendar
// day: lastPaidAmount > 0 and updatedAt falls on that day.
func DebtsPaidOn(debts []ledger.Debt, day time.Time) []ledger.Debt {
	out := make([]ledger.Debt, 0, len(debts))
	for _, d := range debts {
		if d.LastPaidAmount.GreaterThan(decimal.Zero) && SameDay(d.UpdatedAt, day) {
			out = append(out, d)
		}
	}
	return out
}

// OutstandingTotal sums the unpaid remainder over a set of sales
func OutstandingTotal(sales []ledger.Sale) decimal.Decimal {
	return Sum(sales, func(s ledger.Sale) decimal.Decimal { return s.Outstanding() })
}
