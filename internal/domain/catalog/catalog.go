// Package catalog resolves marketplace line items to the fixed kit catalog.
//
// The shop sells four kit sizes under stable SKUs. Anything else folds into
// the catch-all "Outros" entry, which keeps the original SKU but carries no
// unit price (the marketplace value is used downstream instead).
package catalog

import "strings"

// Kit identifies one catalog entry: the Bling SKU, the unit price and the
// shipping package measures used for rate quotes.
type Kit struct {
	SKU   string
	Name  string
	Price float64

	// Package measures for the carrier quote.
	Weight float64 // kg
	Height float64 // cm
	Width  float64 // cm
	Length float64 // cm
}

// CatchAll is the kit name unmatched products resolve to.
const CatchAll = "Outros"

// KitNames lists every kit name in display order, catch-all last.
// The aggregator keys its unit counters on this set.
var KitNames = []string{"Kit 5 Panos", "Kit 10 Panos", "Kit 15 Panos", "Kit 20 Panos", CatchAll}

var kits = []Kit{
	{SKU: "566-PVLC", Name: "Kit 5 Panos", Price: 14.10, Weight: 0.125, Height: 22, Width: 19, Length: 5},
	{SKU: "567-PVLC", Name: "Kit 10 Panos", Price: 25.90, Weight: 0.190, Height: 22, Width: 19, Length: 5},
	{SKU: "568-PVLC", Name: "Kit 15 Panos", Price: 37.70, Weight: 0.250, Height: 19, Width: 22, Length: 7},
	{SKU: "569-PVLC", Name: "Kit 20 Panos", Price: 49.50, Weight: 0.300, Height: 19, Width: 22, Length: 7},
}

// Package measures for products outside the catalog.
var catchAllKit = Kit{Name: CatchAll, Price: 0.00, Weight: 0.125, Height: 20, Width: 20, Length: 5}

// Keywords searched in free-text product names when no SKU column exists.
// Longer piece counts first so "15 panos" is not claimed by "5 panos".
var nameKeywords = []struct {
	token string
	sku   string
}{
	{"20 panos", "569-PVLC"},
	{"15 panos", "568-PVLC"},
	{"10 panos", "567-PVLC"},
	{"5 panos", "566-PVLC"},
}

// ResolveSKU maps a SKU to its kit identity. Matching is exact after
// trimming and uppercasing. Unknown SKUs resolve to the catch-all entry
// with the original SKU preserved.
func ResolveSKU(sku string) Kit {
	normalized := strings.ToUpper(strings.TrimSpace(sku))
	for _, k := range kits {
		if k.SKU == normalized {
			return k
		}
	}

	out := catchAllKit
	out.SKU = sku
	return out
}

// ResolveName maps a free-text product name to its kit identity by keyword
// search, for export variants that carry no reliable SKU column.
func ResolveName(produto string) Kit {
	normalized := strings.ToLower(produto)
	for _, kw := range nameKeywords {
		if strings.Contains(normalized, kw.token) {
			return ResolveSKU(kw.sku)
		}
	}

	out := catchAllKit
	return out
}

// Resolve picks the authoritative identifying attribute for a line item:
// the SKU when populated, else the product display name.
func Resolve(sku, produto string) Kit {
	if strings.TrimSpace(sku) != "" {
		return ResolveSKU(sku)
	}
	return ResolveName(produto)
}

// Dimensions returns the shipping package measures for a kit name,
// falling back to the catch-all package for unknown names.
func Dimensions(kitName string) Kit {
	for _, k := range kits {
		if k.Name == kitName {
			return k
		}
	}
	return catchAllKit
}
