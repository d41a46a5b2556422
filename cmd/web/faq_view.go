package main

import (
	"net/url"
	"strings"

	"kalakrutiassociates.com/web/internal/disclosure"
	"kalakrutiassociates.com/web/internal/filter"
	handlersPkg "kalakrutiassociates.com/web/internal/handlers"
	"kalakrutiassociates.com/web/internal/nav"
	"kalakrutiassociates.com/web/internal/seo"
)

// FAQView is the FAQ page payload: every section as its own accordion,
// narrowed by the search term.
type FAQView struct {
	Search   handlersPkg.Search
	Term     string
	Sections []handlersPkg.Accordion
	Matches  int
	Total    int
}

// Empty reports whether the search matched nothing.
func (v FAQView) Empty() bool { return len(v.Sections) == 0 }

func (a *app) buildFAQView(vm *handlersPkg.PageData, q url.Values) FAQView {
	page := a.store.FAQ()
	term := strings.TrimSpace(q.Get("q"))
	st := disclosure.FromQuery(q)

	view := FAQView{
		Search: handlersPkg.BuildSearch("faq", vm.Path, "Search questions...", filter.Criteria{Term: term}),
		Term:   term,
		Total:  len(page.Entries()),
	}
	for _, sec := range filter.Sections(page.Sections, term) {
		acc := handlersPkg.BuildAccordion(sec.Key, sec.Entries, st, vm.Path, q)
		acc.Title = sec.Title
		view.Sections = append(view.Sections, acc)
		view.Matches += len(sec.Entries)
	}
	// An open answer adds its section to the trail.
	for _, sec := range view.Sections {
		if _, ok := st.Open(sec.Group); ok {
			vm.Breadcrumbs = nav.Breadcrumbs(nav.FAQ, sec.Group)
			break
		}
	}
	if term != "" {
		vm.SEO.Robots = "noindex,follow"
	}
	vm.AddJSONLD(seo.FAQPage(page.Entries()))
	return view
}
