// Package money provides an integer minor-unit monetary type for benefit
// face values, plus the heuristic parser that turns catalog display labels
// into amounts.
package money

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Centavos is a monetary amount in Brazilian centavos (minor units).
type Centavos int64

// Reais returns the amount as a float64 in reais. Display only.
func (c Centavos) Reais() float64 {
	return float64(c) / 100
}

// MarshalJSON emits the amount as decimal reais with two places, the
// layout the portal has always persisted ("valor": 125.00).
func (c Centavos) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(c.Reais(), 'f', 2, 64)), nil
}

// UnmarshalJSON accepts a decimal reais number
func (c *Centavos) UnmarshalJSON(data []byte) error {
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid monetary amount %s: %w", string(data), err)
	}
	*c = FromReais(v)
	return nil
}

// FormatBRL renders the amount as a pt-BR currency string, e.g. "R$ 125,00".
func (c Centavos) FormatBRL() string {
	neg := c < 0
	if neg {
		c = -c
	}
	whole := int64(c) / 100
	frac := int64(c) % 100
	s := fmt.Sprintf("R$ %s,%02d", groupThousands(whole), frac)
	if neg {
		return "-" + s
	}
	return s
}

func groupThousands(n int64) string {
	digits := strconv.FormatInt(n, 10)
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FromReais converts a decimal reais amount to centavos, rounding half away
// from zero.
func FromReais(v float64) Centavos {
	if v < 0 {
		return Centavos(v*100 - 0.5)
	}
	return Centavos(v*100 + 0.5)
}

var numericToken = regexp.MustCompile(`[\d.,]+`)

// ParseValorLabel extracts the leading numeric token from a catalog value
// label ("R$ 125,00", "Máx R$ 300,00") and converts it to centavos. The
// label uses pt-BR formatting with a comma decimal separator. A label with
// no parseable numeric token ("Consultar valor") contributes zero.
//
// This is a heuristic over display strings, not a financial-grade parser:
// labels like "Máx R$ 300,00" yield the ceiling amount, and thousands
// separators are only handled for the plain "1.234,56" form.
func ParseValorLabel(label string) Centavos {
	tok := numericToken.FindString(label)
	if tok == "" {
		return 0
	}
	// "1.234,56" -> "1234.56"
	if strings.Contains(tok, ",") {
		tok = strings.ReplaceAll(tok, ".", "")
		tok = strings.Replace(tok, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0
	}
	return FromReais(v)
}
