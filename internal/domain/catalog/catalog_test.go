package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveSKU(t *testing.T) {
	tests := []struct {
		name          string
		sku           string
		expectedName  string
		expectedPrice float64
	}{
		{"kit 5 exact", "566-PVLC", "Kit 5 Panos", 14.10},
		{"kit 10 exact", "567-PVLC", "Kit 10 Panos", 25.90},
		{"kit 15 exact", "568-PVLC", "Kit 15 Panos", 37.70},
		{"kit 20 exact", "569-PVLC", "Kit 20 Panos", 49.50},
		{"lowercase", "566-pvlc", "Kit 5 Panos", 14.10},
		{"surrounding whitespace", "  566-PVLC  ", "Kit 5 Panos", 14.10},
		{"unknown sku", "999-XYZ", CatchAll, 0.00},
		{"empty sku", "", CatchAll, 0.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kit := ResolveSKU(tt.sku)
			assert.Equal(t, tt.expectedName, kit.Name)
			assert.Equal(t, tt.expectedPrice, kit.Price)
		})
	}
}

func TestResolveSKU_PreservesOriginalSKUOnMiss(t *testing.T) {
	kit := ResolveSKU("ABC-123")
	assert.Equal(t, "ABC-123", kit.SKU)
	assert.Equal(t, CatchAll, kit.Name)
}

func TestResolveName(t *testing.T) {
	tests := []struct {
		name         string
		produto      string
		expectedName string
	}{
		{"5 pieces keyword", "Kit 5 Panos de Limpeza Multiuso", "Kit 5 Panos"},
		{"10 pieces keyword", "PROMOÇÃO kit 10 panos", "Kit 10 Panos"},
		{"15 not claimed by 5", "Kit 15 Panos Premium", "Kit 15 Panos"},
		{"20 pieces keyword", "Combo 20 Panos", "Kit 20 Panos"},
		{"no keyword", "Toalha Avulsa", CatchAll},
		{"empty name", "", CatchAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedName, ResolveName(tt.produto).Name)
		})
	}
}

func TestResolve_SKUTakesPrecedence(t *testing.T) {
	// SKU says kit 5, name says kit 20. SKU is authoritative when populated.
	kit := Resolve("566-PVLC", "Combo 20 Panos")
	assert.Equal(t, "Kit 5 Panos", kit.Name)

	// Blank SKU falls back to the name.
	kit = Resolve("   ", "Combo 20 Panos")
	assert.Equal(t, "Kit 20 Panos", kit.Name)
}

func TestDimensions(t *testing.T) {
	kit := Dimensions("Kit 15 Panos")
	assert.Equal(t, 0.250, kit.Weight)
	assert.Equal(t, 19.0, kit.Height)
	assert.Equal(t, 22.0, kit.Width)
	assert.Equal(t, 7.0, kit.Length)

	fallback := Dimensions("Algo Inexistente")
	assert.Equal(t, 0.125, fallback.Weight)
	assert.Equal(t, 20.0, fallback.Height)
}
