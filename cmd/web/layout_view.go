package main

import (
	"net/http"

	handlersPkg "kalakrutiassociates.com/web/internal/handlers"
	mw "kalakrutiassociates.com/web/internal/middleware"
	"kalakrutiassociates.com/web/internal/nav"
	"kalakrutiassociates.com/web/internal/seo"
)

// menuQueryKey opens the mobile menu without JavaScript: "?menu=open".
const menuQueryKey = "menu"

// buildLayout fills the fields every page shares: title, canonical and Open
// Graph metadata, menu, breadcrumbs and the business footer.
func (a *app) buildLayout(r *http.Request, p nav.Page) handlersPkg.PageData {
	var st nav.State
	res := a.router.Navigate(&st, string(p))
	if r.URL.Query().Get(menuQueryKey) == "open" {
		st.ToggleMenu()
	}

	pageCopy, _ := a.store.Copy(string(res.Page))
	biz := a.store.Business()
	meta := seo.NewMeta(res.Title, pageCopy.Description, res.Canonical, a.store.Home().HeroImage)

	vm := handlersPkg.PageData{
		Title:       res.Title,
		Lang:        "en-IN",
		SEO:         meta,
		Analytics:   a.analytics,
		Page:        res.Page,
		Path:        res.Page.Path(),
		Nav:         nav.Build(res.Page),
		Breadcrumbs: nav.Breadcrumbs(res.Page),
		MenuOpen:    st.MenuOpen,
		Business:    biz,
		Contact:     handlersPkg.ContactLinksFor(biz),
		Copy:        pageCopy,
		CSRFToken:   mw.CSRFToken(r),
		Year:        a.now().Year(),
	}
	if res.Page != nav.Home {
		items := make([]seo.BreadcrumbItem, 0, len(vm.Breadcrumbs))
		for _, c := range vm.Breadcrumbs {
			items = append(items, seo.BreadcrumbItem{Name: c.Label, Item: a.absolute(c.Href)})
		}
		vm.AddJSONLD(seo.BreadcrumbList(items))
	}
	return vm
}

// absolute resolves a site path against the configured origin.
func (a *app) absolute(path string) string {
	if path == "/" {
		return a.router.Canonical(nav.Home)
	}
	return a.router.Canonical(nav.Home) + path[1:]
}
