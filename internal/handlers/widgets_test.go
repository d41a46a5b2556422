package handlers

import (
	"html/template"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"kalakrutiassociates.com/web/internal/content"
	"kalakrutiassociates.com/web/internal/disclosure"
	"kalakrutiassociates.com/web/internal/filter"
)

var faqs = []content.FAQ{
	{Question: "How long?", Answer: "45 days."},
	{Question: "Warranty?", Answer: "10 years."},
	{Question: "Vastu?", Answer: "Yes."},
}

func TestBuildAccordionToggles(t *testing.T) {
	q := url.Values{"q": {"kitchen"}}
	a := BuildAccordion("faq", faqs, disclosure.State{}, "/faq", q)
	require.Len(t, a.Items, 3)
	for _, it := range a.Items {
		require.False(t, it.Open)
	}
	require.Equal(t, "/faq?open=faq%3A1&q=kitchen#faq-1", a.Items[1].ToggleHref)

	open := disclosure.Parse("faq:1")
	a = BuildAccordion("faq", faqs, open, "/faq", url.Values{disclosure.QueryKey: {"faq:1"}})
	require.True(t, a.Items[1].Open)
	require.Equal(t, "/faq#faq-1", a.Items[1].ToggleHref, "clicking the open item closes it")
	require.Equal(t, "/faq?open=faq%3A2#faq-2", a.Items[2].ToggleHref, "opening another item replaces it")
}

func TestBuildChips(t *testing.T) {
	chips := BuildChips([]string{"All", "Vastu", "Cost"}, filter.Criteria{Category: "Vastu", Term: "tips"}, "/blog")
	require.Equal(t, []Chip{
		{Label: "All", Href: "/blog?q=tips"},
		{Label: "Vastu", Href: "/blog?category=Vastu&q=tips", Active: true},
		{Label: "Cost", Href: "/blog?category=Cost&q=tips"},
	}, chips)

	chips = BuildChips([]string{"All", "Vastu"}, filter.Default(), "/blog")
	require.True(t, chips[0].Active)
	require.Equal(t, "/blog", chips[0].Href)
}

func TestContactLinksFor(t *testing.T) {
	l := ContactLinksFor(content.Business{})
	require.Equal(t, template.URL("tel:+919876543210"), l.Call)

	l = ContactLinksFor(content.Business{
		Phone:    "+91 99370 00000",
		WhatsApp: "919937000000",
		Email:    "studio@example.com",
		Address:  content.Address{Street: "Plot 7", Locality: "Patia"},
	})
	require.Equal(t, template.URL("tel:+919937000000"), l.Call)
	require.Equal(t, "https://wa.me/919937000000?text=Hi%20Kalakruti%20Associates%2C%20I%20need%20interior%20design%20consultation", l.WhatsApp)
	require.Equal(t, "mailto:studio@example.com", l.Email)
	require.Equal(t, "https://maps.google.com/?q=Plot+7+Patia", l.Map)
}

func TestBuildSearchKeepsCategory(t *testing.T) {
	s := BuildSearch("blog", "/blog", "Search articles", filter.Criteria{Category: "Cost"})
	require.Equal(t, "Cost", s.Category)
	require.Empty(t, s.Term)

	s = BuildSearch("blog", "/blog", "Search articles", filter.Criteria{Category: filter.All, Term: "vastu"})
	require.Empty(t, s.Category)
	require.Equal(t, "vastu", s.Term)
}
