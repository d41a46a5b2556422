package main

import (
	"net/http"

	mw "kalakrutiassociates.com/web/internal/middleware"
	"kalakrutiassociates.com/web/internal/nav"
)

// PageHandler renders whichever page the path (or ?page= key) resolves to.
func (a *app) PageHandler(w http.ResponseWriter, r *http.Request) {
	p := nav.FromPath(r.URL.Path, r.URL.Query())
	a.servePage(w, r, p, http.StatusOK)
}

// NotFoundHandler falls back to the home page with a 404 status so visitors
// still land somewhere useful.
func (a *app) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		mw.WriteError(w, r, http.StatusNotFound, "not found")
		return
	}
	a.servePage(w, r, nav.Home, http.StatusNotFound)
}

func (a *app) servePage(w http.ResponseWriter, r *http.Request, p nav.Page, code int) {
	vm := a.buildLayout(r, p)
	if code == http.StatusNotFound {
		vm.SEO.Robots = "noindex,follow"
	}
	q := r.URL.Query()
	switch vm.Page {
	case nav.Services:
		vm.Content = a.buildServicesView(&vm, q)
	case nav.Portfolio:
		vm.Content = a.buildPortfolioView(&vm, q)
	case nav.About:
		vm.Content = a.buildAboutView(&vm, q)
	case nav.Blog:
		vm.Content = a.buildBlogView(&vm, q)
	case nav.FAQ:
		vm.Content = a.buildFAQView(&vm, q)
	case nav.Contact:
		vm.Content = a.buildContactView(&vm, mw.GetSession(r).InquirySnapshot(), nil)
	default:
		vm.Content = a.buildHomeView(&vm, q)
	}
	a.renderPage(w, r, string(vm.Page), vm, code)
}
