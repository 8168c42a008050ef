// Package stats computes run-wide statistics over the record collection.
//
// The summary is always recomputed from scratch; it has no identity of its
// own and caching it across collection edits would let it go stale.
package stats

import (
	"github.com/pvlabs/yampi2bling/internal/domain/catalog"
	"github.com/pvlabs/yampi2bling/internal/domain/pedido"
)

// Summary holds the aggregate view of the current record collection.
type Summary struct {
	TotalPedidos int `json:"total_pedidos"`

	// Unit counts per kit name, catch-all included. Every kit key is
	// always present, zero or not.
	Kits map[string]float64 `json:"kits"`

	TotalProdutos float64 `json:"total_produtos"`
	TotalFrete    float64 `json:"total_frete"`
	TotalDesconto float64 `json:"total_desconto"`
	ValorTotal    float64 `json:"valor_total"`
}

// Compute aggregates the record collection into a Summary. Quantity,
// freight and discount all go through the shared coercion, and freight
// prefers the selected quote when one exists. Sums are plain additions;
// rounding happens only at display time.
func Compute(records []pedido.Record) Summary {
	summary := Summary{
		TotalPedidos: len(records),
		Kits:         make(map[string]float64, len(catalog.KitNames)),
	}
	for _, name := range catalog.KitNames {
		summary.Kits[name] = 0
	}

	for i := range records {
		rec := &records[i]
		kit := catalog.Resolve(rec.SKU, rec.Produto)
		qty := rec.Quantity()
		freight := rec.Freight()
		discount := rec.Discount()

		if _, ok := summary.Kits[kit.Name]; ok {
			summary.Kits[kit.Name] += qty
		} else {
			summary.Kits[catalog.CatchAll] += qty
		}

		summary.TotalProdutos += kit.Price * qty
		summary.TotalFrete += freight
		summary.TotalDesconto += discount
	}

	summary.ValorTotal = summary.TotalProdutos + summary.TotalFrete - summary.TotalDesconto
	return summary
}
