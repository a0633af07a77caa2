package sheetdata

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ParseAmount reads a pt-BR formatted numeric cell ("1.234,56", "R$ 900").
// Dots are thousand separators and are dropped before the comma becomes the
// decimal point. Malformed input yields 0, never an error.
func ParseAmount(v string) float64 {
	s := strings.TrimSpace(v)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")

	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}

	n, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return n
}

// AmountEntry is one company -> expected amount pair from the Esperado(json)
// cell. Order follows the JSON text, which matters for argmax tie-breaking.
type AmountEntry struct {
	Empresa string
	Valor   float64
}

// ParseAmountEntries decodes a JSON-object cell into ordered entries.
// Any malformed content yields an empty result; string values go through
// ParseAmount, non-numeric values count as 0.
func ParseAmountEntries(cell string) []AmountEntry {
	s := strings.TrimSpace(cell)
	if s == "" {
		return nil
	}

	dec := json.NewDecoder(strings.NewReader(s))
	tok, err := dec.Token()
	if err != nil || tok != json.Delim('{') {
		return nil
	}

	var out []AmountEntry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil
		}
		key, _ := keyTok.(string)

		var v any
		if err := dec.Decode(&v); err != nil {
			return nil
		}
		if key == "" {
			continue
		}

		switch t := v.(type) {
		case float64:
			out = append(out, AmountEntry{Empresa: key, Valor: t})
		case string:
			out = append(out, AmountEntry{Empresa: key, Valor: ParseAmount(t)})
		default:
			out = append(out, AmountEntry{Empresa: key, Valor: 0})
		}
	}
	return out
}
