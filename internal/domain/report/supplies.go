package report

import (
	"sort"
	"time"

	"github.com/rml/bookkeeper/internal/domain/ledger"
)

// SupplyRollupRow reconciles units supplied against units sold for one
// product and supply type
type SupplyRollupRow struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	SupplyType  string `json:"supply_type"`
	Supplied    int    `json:"supplied"`
	Sold        int    `json:"sold"`
	Balance     int    `json:"balance"`
}

// SuppliesReportData is the aggregated input for a supplies report document
type SuppliesReportData struct {
	GeneratedAt   time.Time         `json:"generated_at"`
	Filter        DateFilter        `json:"filter"`
	Rows          []SupplyRollupRow `json:"rows"`
	TotalSupplied int               `json:"total_supplied"`
	TotalSold     int               `json:"total_sold"`
}

type rollupKey struct {
	productID  string
	supplyType string
}

// BuildSupplyRollup matches supplies against sales per product and supply
// type. Supply types compare case-insensitively. Entries whose product id no
// longer resolves are skipped, and rows with nothing supplied and nothing
// sold are dropped.
func BuildSupplyRollup(
	supplies []ledger.Supply,
	sales []ledger.Sale,
	products []ledger.Product,
	filter DateFilter,
	now time.Time,
) SuppliesReportData {
	byID := make(map[string]ledger.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	supplied := make(map[rollupKey]int)
	for _, s := range FilterByDate(supplies, supplyDate, filter, now) {
		if _, ok := byID[s.ProductID]; !ok {
			continue
		}
		key := rollupKey{s.ProductID, ledger.NormalizeSupplyType(s.SupplyType)}
		supplied[key] += s.Quantity
	}

	sold := make(map[rollupKey]int)
	for _, s := range FilterByDate(sales, saleDate, filter, now) {
		if _, ok := byID[s.Product.ProductID]; !ok {
			continue
		}
		key := rollupKey{s.Product.ProductID, ledger.NormalizeSupplyType(s.Product.SupplyType)}
		sold[key] += s.Product.Quantity
	}

	keys := make(map[rollupKey]struct{}, len(supplied)+len(sold))
	for k := range supplied {
		keys[k] = struct{}{}
	}
	for k := range sold {
		keys[k] = struct{}{}
	}

	data := SuppliesReportData{GeneratedAt: now, Filter: filter}
	for key := range keys {
		in, out := supplied[key], sold[key]
		if in == 0 && out == 0 {
			continue
		}
		data.Rows = append(data.Rows, SupplyRollupRow{
			ProductID:   key.productID,
			ProductName: byID[key.productID].Name,
			SupplyType:  ledger.DisplaySupplyType(key.supplyType),
			Supplied:    in,
			Sold:        out,
			Balance:     in - out,
		})
		data.TotalSupplied += in
		data.TotalSold += out
	}
	sort.Slice(data.Rows, func(i, j int) bool {
		if data.Rows[i].ProductName != data.Rows[j].ProductName {
			return data.Rows[i].ProductName < data.Rows[j].ProductName
		}
		return data.Rows[i].SupplyType < data.Rows[j].SupplyType
	})
	return data
}

func supplyDate(s ledger.Supply) (time.Time, bool) {
	return s.Date, !s.Date.IsZero()
}

func saleDate(s ledger.Sale) (time.Time, bool) {
	return s.Date, !s.Date.IsZero()
}
