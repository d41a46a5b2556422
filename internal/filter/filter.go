// Package filter narrows content listings by category chip and free-text
// search term.
package filter

import (
	"net/url"
	"strings"
)

// All is the category that matches every item.
const All = "All"

// Facets are the fields a filter looks at.
type Facets struct {
	Category string
	Title    string
	Excerpt  string
}

// Item is anything that can expose its facets to the filter.
type Item interface {
	Facets() Facets
}

// Criteria holds the selected category and free-text term.
type Criteria struct {
	Category string
	Term     string
}

// Default returns the criteria that keep every item.
func Default() Criteria {
	return Criteria{Category: All}
}

// IsZero reports whether the criteria keep every item.
func (c Criteria) IsZero() bool {
	return isAll(c.Category) && strings.TrimSpace(c.Term) == ""
}

// Match reports whether an item with the given facets passes the criteria.
func Match(f Facets, c Criteria) bool {
	if !isAll(c.Category) && f.Category != c.Category {
		return false
	}
	term := strings.ToLower(strings.TrimSpace(c.Term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(f.Title), term) ||
		strings.Contains(strings.ToLower(f.Excerpt), term)
}

// Apply returns the items that pass the criteria, in their original order.
// The input slice is never modified.
func Apply[T Item](items []T, c Criteria) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if Match(it.Facets(), c) {
			out = append(out, it)
		}
	}
	return out
}

// Page is a capped view over a filtered result.
type Page[T any] struct {
	Items  []T
	Total  int
	Hidden int
}

// Truncated reports whether the cap dropped any items.
func (p Page[T]) Truncated() bool { return p.Hidden > 0 }

// Cap keeps the first n items. n <= 0 disables the cap.
func Cap[T any](items []T, n int) Page[T] {
	total := len(items)
	if n <= 0 || n >= total {
		return Page[T]{Items: append([]T(nil), items...), Total: total}
	}
	return Page[T]{Items: append([]T(nil), items[:n]...), Total: total, Hidden: total - n}
}

// FromQuery reads "category" and "q" from the query string. Categories not in
// the allowed list fall back to All.
func FromQuery(q url.Values, categories []string) Criteria {
	c := Criteria{Category: All, Term: strings.TrimSpace(q.Get("q"))}
	want := strings.TrimSpace(q.Get("category"))
	for _, cat := range categories {
		if strings.EqualFold(cat, want) {
			c.Category = cat
			break
		}
	}
	return c
}

// Query encodes the criteria back into query values, omitting defaults.
func (c Criteria) Query() url.Values {
	v := url.Values{}
	if !isAll(c.Category) {
		v.Set("category", c.Category)
	}
	if t := strings.TrimSpace(c.Term); t != "" {
		v.Set("q", t)
	}
	return v
}

func isAll(category string) bool {
	return category == "" || category == All
}
