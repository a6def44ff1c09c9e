package properties

import (
	"sort"    // Result ordering
	"strings" // Case-insensitive matching

	"estate_crm/internal/domain" // Domain models
)

// Query holds the public listing filters. All filters compose with AND.
type Query struct {
	Search string // Case-insensitive substring match on title; empty = no filter
	Type   string // Exact property_type match; empty = no filter
	Budget string // Accepted for interface compatibility but never applied (known gap)
}

// Filter returns the subset of properties matching q, ordered newest-created
// first with identity as the tie-break for equal timestamps.
func Filter(all []domain.Property, q Query) []domain.Property {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]domain.Property, 0, len(all))
	for _, p := range all {
		if search != "" && !strings.Contains(strings.ToLower(p.Title), search) {
			continue
		}
		if q.Type != "" && p.PropertyType != q.Type {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}
