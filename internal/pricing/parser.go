// Package pricing implements the price normalization core: extraction of a
// numeric price and currency from free-text listings, record validation
// against quality rules, and the normalizer that turns raw scrape/search hits
// into standardized, comparable records.
//
// All operations are pure functions of their inputs; lookup tables (currency
// symbols, exchange rates, validation limits) are injected at construction so
// tests can substitute alternates.
package pricing

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// numberPattern couples a price-token pattern with the numeric interpretation
// of its match. Patterns are tried in order and the first one that produces a
// parseable number wins; within a pattern the leftmost match is taken. The
// order encodes a priority for the most specific, least ambiguous format
// first, so a bare-integer pattern cannot greedily grab noise (ratings,
// review counts) before a well-formed price token.
type numberPattern struct {
	re    *regexp.Regexp
	parse func(token string) (float64, error)
}

//nolint: gochecknoglobals
var (
	// fillerWordsRE matches marketing filler around price tokens.
	fillerWordsRE = regexp.MustCompile(`(?i)\b(price|cost|each|per|from|starting|at)\b`)

	numberPatterns = []numberPattern{
		// thousands-grouped with a 2-digit fraction: 1,234.56
		{re: regexp.MustCompile(`\d{1,3}(?:,\d{3})+\.\d{2}`), parse: parseGrouped},
		// plain 2-digit fraction: 123.45
		{re: regexp.MustCompile(`\d+\.\d{2}`), parse: parsePlain},
		// comma as decimal separator with exactly two fractional digits: 123,45
		{re: regexp.MustCompile(`\d+,\d{2}\b`), parse: parseCommaDecimal},
		// thousands-grouped integer: 1,234
		{re: regexp.MustCompile(`\d{1,3}(?:,\d{3})+`), parse: parseGrouped},
		// bare integer digits
		{re: regexp.MustCompile(`\d+`), parse: parsePlain},
	}
)

func parsePlain(token string) (float64, error) {
	return strconv.ParseFloat(token, 64)
}

// parseGrouped strips grouping commas: "1,234.56" -> 1234.56, "1,234" -> 1234.
func parseGrouped(token string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(token, ",", ""), 64)
}

// parseCommaDecimal treats the comma as a decimal point (European
// convention): "123,45" -> 123.45.
func parseCommaDecimal(token string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(token, ",", "."), 64)
}

// Parser extracts a numeric price and a currency code from one raw price
// string. It holds only immutable configuration and is safe for concurrent
// use.
type Parser struct {
	currencies []CurrencySymbol
}

// NewParser creates a Parser with the given ordered currency symbol table.
func NewParser(currencies []CurrencySymbol) *Parser {
	return &Parser{currencies: currencies}
}

// Extract returns the first price-like numeric token found in raw and the
// detected currency code. ok is false when no parseable number is present;
// callers must treat that as "price not found", not as an error.
//
// Known limitation: a comma with no period is read as a decimal point only
// when exactly two digits follow it; a European thousands-grouped integer
// like "1.234" is misread under this ordering (see package tests).
func (p *Parser) Extract(raw string) (price float64, currency string, ok bool) {
	if strings.TrimSpace(raw) == "" {
		return 0, "", false
	}

	// flatten accented/typographic variants (fullwidth digits, NBSP, ...)
	text := norm.NFKD.String(raw)

	code := p.detectCurrency(text)
	cleaned := stripNoise(text)

	for _, pat := range numberPatterns {
		token := pat.re.FindString(cleaned)
		if token == "" {
			continue
		}
		v, err := pat.parse(token)
		if err != nil {
			// fall through to the next, more permissive pattern
			continue
		}

		return v, code, true
	}

	return 0, "", false
}

// detectCurrency scans the ordered symbol table; the first entry whose symbol
// occurs anywhere in the text wins, defaulting to USD.
func (p *Parser) detectCurrency(text string) string {
	for _, cs := range p.currencies {
		if strings.Contains(text, cs.Symbol) {
			return cs.Code
		}
	}

	return DefaultCurrency
}

// stripNoise removes filler words and every character that is not a digit,
// comma, period or whitespace, then trims the result.
func stripNoise(text string) string {
	text = fillerWordsRE.ReplaceAllString(text, " ")

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r >= '0' && r <= '9', r == ',', r == '.', r == ' ', r == '\t', r == '\n':
			b.WriteRune(r)
		}
	}

	return strings.TrimSpace(b.String())
}
