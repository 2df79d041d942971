package ticker

import "strings"

// DefaultSymbols seeds the ticker search box.
var DefaultSymbols = []string{"spy", "spxl", "^skew", "tlt", "gld", "gldm"}

// Catalog is a fixed, searchable list of ticker symbols.
type Catalog struct {
	symbols []string
}

// NewCatalog copies symbols, dropping blanks and duplicates. A nil or empty
// list falls back to DefaultSymbols.
func NewCatalog(symbols []string) *Catalog {
	if len(symbols) == 0 {
		symbols = DefaultSymbols
	}
	seen := make(map[string]bool, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return &Catalog{symbols: out}
}

// Symbols returns a copy of the catalog in declaration order.
func (c *Catalog) Symbols() []string {
	out := make([]string, len(c.symbols))
	copy(out, c.symbols)
	return out
}

// Defaults is the initial selection: the first symbol.
func (c *Catalog) Defaults() []string {
	if len(c.symbols) == 0 {
		return []string{}
	}
	return []string{c.symbols[0]}
}

// Contains reports whether symbol is in the catalog, ignoring case.
func (c *Catalog) Contains(symbol string) bool {
	for _, s := range c.symbols {
		if strings.EqualFold(s, symbol) {
			return true
		}
	}
	return false
}

// Search returns catalog symbols containing query (case-insensitive),
// skipping those already selected.
func (c *Catalog) Search(query string, selected []string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	skip := make(map[string]bool, len(selected))
	for _, s := range selected {
		skip[strings.ToLower(strings.TrimSpace(s))] = true
	}

	out := []string{}
	for _, s := range c.symbols {
		key := strings.ToLower(s)
		if skip[key] {
			continue
		}
		if q == "" || strings.Contains(key, q) {
			out = append(out, s)
		}
	}
	return out
}
