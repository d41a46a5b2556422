package main

import (
	"net/url"

	"kalakrutiassociates.com/web/internal/content"
	"kalakrutiassociates.com/web/internal/disclosure"
	"kalakrutiassociates.com/web/internal/filter"
	"kalakrutiassociates.com/web/internal/format"
	handlersPkg "kalakrutiassociates.com/web/internal/handlers"
	"kalakrutiassociates.com/web/internal/seo"
)

const (
	blogPillarCount   = 6
	blogUpcomingLimit = 12
)

// PostCard is a post teaser with display labels.
type PostCard struct {
	content.Post
	DateLabel string
	DateISO   string
	ReadLabel string
	Words     string
}

func postCards(ps []content.Post) []PostCard {
	out := make([]PostCard, 0, len(ps))
	for _, p := range ps {
		c := PostCard{
			Post:      p,
			DateLabel: format.Date(p.Published),
			DateISO:   format.ISODate(p.Published),
			ReadLabel: format.ReadTime(p.ReadTime),
		}
		if p.WordCount > 0 {
			c.Words = format.Count(p.WordCount) + " words"
		}
		out = append(out, c)
	}
	return out
}

// BlogView is the blog page payload. Filtering applies to the upcoming
// posts; pillars and recent posts are always shown.
type BlogView struct {
	Criteria filter.Criteria
	Chips    []handlersPkg.Chip
	Search   handlersPkg.Search
	Pillars  []PostCard
	Upcoming filter.Page[PostCard]
	Recent   []PostCard
	FAQ      handlersPkg.Accordion
	Filtered bool
}

// Empty reports whether the filter matched nothing.
func (v BlogView) Empty() bool { return v.Upcoming.Total == 0 }

func (a *app) buildBlogView(vm *handlersPkg.PageData, q url.Values) BlogView {
	page := a.store.Blog()
	c := filter.FromQuery(q, page.Categories)
	matched := filter.Apply(page.Upcoming, c)

	vm.AddJSONLD(
		seo.Blog(vm.Business, vm.Copy.Heading, vm.Copy.Description, vm.SEO.Canonical, page.Recent),
		seo.FAQPage(page.FAQs),
	)
	return BlogView{
		Criteria: c,
		Chips:    handlersPkg.BuildChips(page.Categories, c, vm.Path),
		Search:   handlersPkg.BuildSearch("blog", vm.Path, "Search articles...", c),
		Pillars:  postCards(page.Pillars(blogPillarCount)),
		Upcoming: filter.Cap(postCards(matched), blogUpcomingLimit),
		Recent:   postCards(page.Recent),
		FAQ:      handlersPkg.BuildAccordion("blog-faq", page.FAQs, disclosure.FromQuery(q), vm.Path, q),
		Filtered: !c.IsZero(),
	}
}
