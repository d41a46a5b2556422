package main

import (
	"net/url"

	"kalakrutiassociates.com/web/internal/content"
	"kalakrutiassociates.com/web/internal/disclosure"
	"kalakrutiassociates.com/web/internal/filter"
	"kalakrutiassociates.com/web/internal/format"
	handlersPkg "kalakrutiassociates.com/web/internal/handlers"
	"kalakrutiassociates.com/web/internal/nav"
	"kalakrutiassociates.com/web/internal/seo"
)

// Price band advertised in LocalBusiness structured data, in rupees.
const (
	priceFrom = 80000
	priceTo   = 2500000
)

func priceRange() string {
	return format.Rupees(priceFrom) + " - " + format.Rupees(priceTo)
}

// HomeView is the landing page payload.
type HomeView struct {
	HeroImage string
	Services  []content.Service
	Features  []content.Feature
	Projects  []ProjectCard
	FAQ       handlersPkg.Accordion
	Years     int
}

func (a *app) buildHomeView(vm *handlersPkg.PageData, q url.Values) HomeView {
	home := a.store.Home()
	st := disclosure.FromQuery(q)
	projects := a.store.Portfolio().Projects
	if len(projects) > 3 {
		projects = projects[:3]
	}
	faq := handlersPkg.BuildAccordion("home-faq", home.FooterFAQs, st, vm.Path, q)
	for i := range faq.Items {
		if faq.Items[i].Answer == "" {
			faq.Items[i].MoreHref = nav.FAQ.Path()
		}
	}

	biz := vm.Business
	vm.AddJSONLD(
		seo.LocalBusiness(biz, vm.SEO.Canonical, priceRange()),
		seo.WebSite(biz.Name, vm.SEO.Canonical, a.absolute(nav.FAQ.Path())+"?q="),
	)
	return HomeView{
		HeroImage: home.HeroImage,
		Services:  home.Services,
		Features:  home.Features,
		Projects:  projectCards(projects),
		FAQ:       faq,
		Years:     vm.Year - biz.Founded,
	}
}

// ServicesView is the services page payload.
type ServicesView struct {
	Services   []content.Service
	Process    []content.ProcessStep
	FAQ        handlersPkg.Accordion
	Categories []handlersPkg.Accordion
}

func (a *app) buildServicesView(vm *handlersPkg.PageData, q url.Values) ServicesView {
	page := a.store.Services()
	st := disclosure.FromQuery(q)
	cats := make([]handlersPkg.Accordion, 0, len(page.CategoryFAQs))
	for _, sec := range page.CategoryFAQs {
		acc := handlersPkg.BuildAccordion(sec.Key, sec.Entries, st, vm.Path, q)
		acc.Title = sec.Title
		cats = append(cats, acc)
	}
	vm.AddJSONLD(
		seo.Services(vm.Business, page.Services),
		seo.FAQPage(page.FAQs),
	)
	return ServicesView{
		Services:   page.Services,
		Process:    page.Process,
		FAQ:        handlersPkg.BuildAccordion("services-faq", page.FAQs, st, vm.Path, q),
		Categories: cats,
	}
}

// ProjectCard is a portfolio project with display labels.
type ProjectCard struct {
	content.Project
	Area string
}

func projectCards(ps []content.Project) []ProjectCard {
	out := make([]ProjectCard, 0, len(ps))
	for _, p := range ps {
		out = append(out, ProjectCard{Project: p, Area: format.Area(p.AreaSqFt)})
	}
	return out
}

// PortfolioView is the portfolio page payload.
type PortfolioView struct {
	Criteria      filter.Criteria
	Chips         []handlersPkg.Chip
	Search        handlersPkg.Search
	Projects      []ProjectCard
	Total         int
	Neighborhoods []content.Neighborhood
	FAQ           handlersPkg.Accordion
}

// Empty reports whether the filter matched nothing.
func (v PortfolioView) Empty() bool { return len(v.Projects) == 0 }

func (a *app) buildPortfolioView(vm *handlersPkg.PageData, q url.Values) PortfolioView {
	page := a.store.Portfolio()
	c := filter.FromQuery(q, page.Categories)
	st := disclosure.FromQuery(q)
	matched := filter.Apply(page.Projects, c)

	vm.AddJSONLD(
		seo.CollectionPage(vm.Title, vm.SEO.Canonical, page.Projects),
		seo.FAQPage(page.FAQs),
	)
	return PortfolioView{
		Criteria:      c,
		Chips:         handlersPkg.BuildChips(page.Categories, c, vm.Path),
		Search:        handlersPkg.BuildSearch("portfolio", vm.Path, "Search projects or locations...", c),
		Projects:      projectCards(matched),
		Total:         len(page.Projects),
		Neighborhoods: page.Neighborhoods,
		FAQ:           handlersPkg.BuildAccordion("portfolio-faq", page.FAQs, st, vm.Path, q),
	}
}

// AboutView is the about page payload.
type AboutView struct {
	Team       []content.TeamMember
	Awards     []content.Award
	Highlights []content.Highlight
	FAQ        handlersPkg.Accordion
	Years      int
}

func (a *app) buildAboutView(vm *handlersPkg.PageData, q url.Values) AboutView {
	page := a.store.About()
	vm.AddJSONLD(
		seo.AboutPage(vm.Business, vm.SEO.Canonical, page.Team),
		seo.FAQPage(page.FAQs),
	)
	return AboutView{
		Team:       page.Team,
		Awards:     page.Awards,
		Highlights: page.Highlights,
		FAQ:        handlersPkg.BuildAccordion("about-faq", page.FAQs, disclosure.FromQuery(q), vm.Path, q),
		Years:      vm.Year - vm.Business.Founded,
	}
}
