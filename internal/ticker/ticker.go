// Package ticker converts user-supplied ticker input into the symbol format
// the market-data provider expects.
//
// The mapping is a heuristic, not a resolver: it only distinguishes
// all-numeric Japanese codes, "CODE.SUFFIX" forms, and plain US-style symbols.
// Anything outside those shapes (European listings, dotted suffixes other
// than ".T", share classes, ...) will map to a symbol the provider may not
// recognize. Known limitation; callers surface the symbol actually used so
// the mismatch is at least visible.
package ticker

import "strings"

// Normalized is the provider symbol derived from one raw input.
type Normalized struct {
	Raw    string // input as received
	Symbol string // provider-formatted symbol, e.g. "7203 JT EQUITY"
	Market string // inferred market code ("JT", "US", or "" when unknown)
}

// Normalize applies the mapping rules in order, first match wins:
//
//  1. digits only            -> "<raw> JT EQUITY"        (assumed Japanese equity)
//  2. contains "."           -> "<code> JT EQUITY" when the suffix is "T",
//     otherwise "<code> EQUITY" (best-effort guess, likely incomplete)
//  3. anything else          -> "<RAW> US EQUITY"        (assumed US equity)
func Normalize(raw string) Normalized {
	if isNumeric(raw) {
		return Normalized{Raw: raw, Symbol: raw + " JT EQUITY", Market: "JT"}
	}
	if strings.Contains(raw, ".") {
		parts := strings.Split(raw, ".")
		code, suffix := parts[0], parts[1]
		if strings.ToUpper(suffix) == "T" {
			return Normalized{Raw: raw, Symbol: code + " JT EQUITY", Market: "JT"}
		}
		// Unknown market suffix: drop it and hope the bare code resolves.
		return Normalized{Raw: raw, Symbol: code + " EQUITY", Market: ""}
	}
	return Normalized{Raw: raw, Symbol: strings.ToUpper(raw) + " US EQUITY", Market: "US"}
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
