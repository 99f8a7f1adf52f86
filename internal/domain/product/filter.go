package product

import "strings"

// Filter returns the products whose name, description, or currency contains
// query, case-insensitively. An empty (or all-whitespace) query returns the
// input slice unchanged, preserving order. Filtering is purely local; it
// never re-fetches.
func Filter(products []Product, query string) []Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return products
	}

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			strings.Contains(strings.ToLower(p.Currency), q) {
			out = append(out, p)
		}
	}
	return out
}
