package handlers

import (
	"net/url"
	"strconv"

	"kalakrutiassociates.com/web/internal/content"
	"kalakrutiassociates.com/web/internal/disclosure"
	"kalakrutiassociates.com/web/internal/filter"
)

// Accordion is one disclosure group rendered as question/answer items.
type Accordion struct {
	Group string
	Title string
	Items []AccordionItem
}

// AccordionItem is one expandable entry. ToggleHref encodes the state after
// clicking it, so the accordion works without JavaScript.
type AccordionItem struct {
	ID         string
	Question   string
	Answer     string
	Open       bool
	ToggleHref string
	// MoreHref links unanswered entries to the FAQ page.
	MoreHref string
}

// BuildAccordion renders faqs as group under the page at path, with the open
// item taken from st. q is the current query, preserved in toggle links.
func BuildAccordion(group string, faqs []content.FAQ, st disclosure.State, path string, q url.Values) Accordion {
	a := Accordion{Group: group, Items: make([]AccordionItem, 0, len(faqs))}
	for i, f := range faqs {
		id := group + "-" + strconv.Itoa(i)
		a.Items = append(a.Items, AccordionItem{
			ID:         id,
			Question:   f.Question,
			Answer:     f.Answer,
			Open:       st.IsOpen(group, i),
			ToggleHref: Href(path, disclosure.ToggleQuery(q, st, group, i)) + "#" + id,
		})
	}
	return a
}

// Chip is a category filter button.
type Chip struct {
	Label  string
	Href   string
	Active bool
}

// BuildChips renders one chip per category. The search term is kept and any
// open accordion is dropped since the listing changes underneath it.
func BuildChips(categories []string, c filter.Criteria, path string) []Chip {
	chips := make([]Chip, 0, len(categories))
	for _, cat := range categories {
		next := filter.Criteria{Category: cat, Term: c.Term}
		active := cat == c.Category || (cat == filter.All && (c.Category == "" || c.Category == filter.All))
		chips = append(chips, Chip{Label: cat, Href: Href(path, next.Query()), Active: active})
	}
	return chips
}

// Href joins path and an encoded query.
func Href(path string, q url.Values) string {
	if enc := q.Encode(); enc != "" {
		return path + "?" + enc
	}
	return path
}

// Search is the search box view model. Category is kept as a hidden field
// so searching does not reset the selected chip.
type Search struct {
	ID          string
	Action      string
	Category    string
	Term        string
	Placeholder string
}

// BuildSearch renders the search box for c.
func BuildSearch(id, action, placeholder string, c filter.Criteria) Search {
	s := Search{ID: id, Action: action, Term: c.Term, Placeholder: placeholder}
	if !c.IsZero() && c.Category != filter.All {
		s.Category = c.Category
	}
	return s
}
