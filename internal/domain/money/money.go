// Package money handles the two numeric representations that show up in
// marketplace exports: locale-formatted strings with a comma decimal
// separator ("12,50") and native numbers (12.5).
//
// Every component that consumes a quantity, freight or discount value goes
// through Parse or Flex.Float so the coercion rule cannot diverge between
// the quote engine, the aggregator and the export mapper.
package money

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Parse coerces a locale-formatted numeric string to a float64.
// Comma decimal separators are accepted ("2,5" == 2.5). Empty or
// unparseable input yields fallback.
func Parse(s string, fallback float64) float64 {
	cleaned := strings.TrimSpace(s)
	if cleaned == "" {
		return fallback
	}

	// "12,50" is a decimal comma, "1.234,50" a thousands dot before it.
	if strings.Contains(cleaned, ",") {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return fallback
	}
	return v
}

// Flex is a scalar that may arrive as a JSON string or a JSON number.
// It is stored as the raw textual form so records round-trip through the
// backup file without loss.
type Flex string

// UnmarshalJSON accepts both string and number tokens.
func (f *Flex) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = Flex(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = Flex(n.String())
	return nil
}

// MarshalJSON emits the raw textual form as a JSON string.
func (f Flex) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(f))
}

// String returns the raw textual form.
func (f Flex) String() string {
	return string(f)
}

// Float applies the shared coercion rule to the raw value.
func (f Flex) Float(fallback float64) float64 {
	return Parse(string(f), fallback)
}
