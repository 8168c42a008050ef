package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUF(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"accented full name", "São Paulo", "SP"},
		{"unaccented full name", "Sao Paulo", "SP"},
		{"accented parana", "Paraná", "PR"},
		{"unaccented parana", "Parana", "PR"},
		{"espirito santo accented", "Espírito Santo", "ES"},
		{"multi word", "Rio Grande do Sul", "RS"},
		{"rio grande do norte", "Rio Grande do Norte", "RN"},
		{"lowercase input", "minas gerais", "MG"},
		{"already a code", "SP", "SP"},
		{"lowercase code", "rj", "RJ"},
		{"unknown text truncates", "Xablau", "XA"},
		{"surrounding whitespace", "  Bahia  ", "BA"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, UF(tt.input))
		})
	}
}

func TestUF_Idempotent(t *testing.T) {
	// Feeding a normalized code back through must not change it.
	for _, estado := range []string{"São Paulo", "Ceará", "Tocantins", "MG"} {
		code := UF(estado)
		assert.Equal(t, code, UF(code), "UF(%q) not idempotent", estado)
	}
}
