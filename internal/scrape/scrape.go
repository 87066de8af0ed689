// Package scrape extracts values from rendered storefront text.
//
// The storefront exposes no API, so counts, totals and references are read
// from presentation text. Every extractor has a best-effort contract: when the
// pattern is absent it returns a sentinel instead of an error, so a scrape
// failure shows up as an assertion mismatch in the scenario.
package scrape

import "regexp"

// Sentinels returned when a pattern does not match
const (
	Zero  = "0"
	Empty = ""
)

var (
	parenCountPattern = regexp.MustCompile(`\((\d+)\)`)
	digitsPattern     = regexp.MustCompile(`(\d+)`)
	itemCountPattern  = regexp.MustCompile(`(\d+)\s+item`)
	euroAmountPattern = regexp.MustCompile(`€(\d+\.\d+)`)
	referencePattern  = regexp.MustCompile(`#([A-Z0-9]+)`)
)

// First returns the first capture group of re in text, or fallback
func First(re *regexp.Regexp, text, fallback string) string {
	m := re.FindStringSubmatch(text)
	if len(m) < 2 {
		return fallback
	}
	return m[1]
}

// CartBadge reads the count from a "Cart (2)" style label
func CartBadge(text string) string {
	return First(parenCountPattern, text, Zero)
}

// Digits reads the first run of digits, used for icon-only cart badges
func Digits(text string) string {
	return First(digitsPattern, text, Zero)
}

// ItemCount reads the count from "There are 2 items in your cart" or "2 items"
func ItemCount(text string) string {
	return First(itemCountPattern, text, Zero)
}

// EuroAmount reads the numeric portion of a euro amount, "Total: €45.00" → "45.00"
func EuroAmount(text string) string {
	return First(euroAmountPattern, text, Zero)
}

// OrderReference reads the token after '#', "Order reference: #XKBKNABJK" → "XKBKNABJK"
func OrderReference(text string) string {
	return First(referencePattern, text, Empty)
}
