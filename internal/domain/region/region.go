// Package region normalizes free-text Brazilian state names to UF codes.
package region

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ufByName covers all 27 federative units, keyed by lowercase unaccented
// spelling. Accented input is folded before lookup.
var ufByName = map[string]string{
	"acre":                "AC",
	"alagoas":             "AL",
	"amapa":               "AP",
	"amazonas":            "AM",
	"bahia":               "BA",
	"ceara":               "CE",
	"distrito federal":    "DF",
	"espirito santo":      "ES",
	"goias":               "GO",
	"maranhao":            "MA",
	"mato grosso":         "MT",
	"mato grosso do sul":  "MS",
	"minas gerais":        "MG",
	"para":                "PA",
	"paraiba":             "PB",
	"parana":              "PR",
	"pernambuco":          "PE",
	"piaui":               "PI",
	"rio de janeiro":      "RJ",
	"rio grande do norte": "RN",
	"rio grande do sul":   "RS",
	"rondonia":            "RO",
	"roraima":             "RR",
	"santa catarina":      "SC",
	"sao paulo":           "SP",
	"sergipe":             "SE",
	"tocantins":           "TO",
}

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// UF maps a free-text state name to its two-letter code.
//
// Full state names match regardless of accents and casing. Input that is
// already a UF code passes through unchanged. Anything else unrecognized
// is truncated to its first two characters, uppercased. Empty input yields
// empty output.
func UF(estado string) string {
	trimmed := strings.TrimSpace(estado)
	if trimmed == "" {
		return ""
	}

	folded, _, err := transform.String(stripAccents, strings.ToLower(trimmed))
	if err != nil {
		folded = strings.ToLower(trimmed)
	}

	if uf, ok := ufByName[folded]; ok {
		return uf
	}

	runes := []rune(trimmed)
	if len(runes) > 2 {
		runes = runes[:2]
	}
	return strings.ToUpper(string(runes))
}
