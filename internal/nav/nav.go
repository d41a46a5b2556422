// Package nav resolves the site's seven pages: keys, canonical paths, document
// titles and the menu/breadcrumb view models built from them.
package nav

import (
	"net/url"
	"path"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Page is a symbolic page key. The set is closed.
type Page string

const (
	Home      Page = "home"
	Services  Page = "services"
	Portfolio Page = "portfolio"
	About     Page = "about"
	Blog      Page = "blog"
	FAQ       Page = "faq"
	Contact   Page = "contact"
)

// BaseURL is the production origin canonical links are built on.
const BaseURL = "https://kalakrutiassociates.com"

// PageQueryKey selects a page by key on any path, e.g. "/?page=faq".
const PageQueryKey = "page"

type entry struct {
	path  string
	alias string
	label string
	title string
}

// menu order
var order = []Page{Home, Services, Portfolio, Blog, FAQ, About, Contact}

var table = map[Page]entry{
	Home: {
		path:  "/",
		label: "Home",
		title: "Interior Designer Bhubaneswar | Kalakruti Associates",
	},
	Services: {
		path:  "/services",
		label: "Services",
		title: "Interior Design Services Bhubaneswar | Kalakruti Associates",
	},
	Portfolio: {
		path:  "/portfolio",
		label: "Portfolio",
		title: "Interior Design Portfolio Bhubaneswar | Kalakruti Associates",
	},
	About: {
		path:  "/about-kalakruti-associates-interior-designers-bhubaneswar",
		alias: "/about",
		label: "About",
		title: "About Kalakruti Associates | Interior Experts Bhubaneswar",
	},
	Blog: {
		path:  "/interior-design-blog-bhubaneswar",
		alias: "/blog",
		label: "Blog",
		title: "Interior Design Blog Bhubaneswar | Kalakruti Associates",
	},
	FAQ: {
		path:  "/frequently-asked-questions",
		alias: "/faq",
		label: "FAQ",
		title: "Interior Design FAQ Bhubaneswar | Kalakruti Associates",
	},
	Contact: {
		path:  "/contact",
		label: "Contact",
		title: "Contact Kalakruti Associates | Interior Design Bhubaneswar",
	},
}

// Pages returns every page in menu order.
func Pages() []Page {
	out := make([]Page, len(order))
	copy(out, order)
	return out
}

// ParsePage maps a key to a page ignoring case and surrounding space. Unknown
// keys resolve to Home.
func ParsePage(key string) Page {
	p := Page(strings.ToLower(strings.TrimSpace(key)))
	if _, ok := table[p]; ok {
		return p
	}
	return Home
}

func (p Page) entry() entry {
	if e, ok := table[p]; ok {
		return e
	}
	return table[Home]
}

// Path is the canonical path of the page.
func (p Page) Path() string { return p.entry().path }

// Title is the document title of the page.
func (p Page) Title() string { return p.entry().title }

// Label is the menu label of the page.
func (p Page) Label() string { return p.entry().label }

// State is the navigation state of one visitor.
type State struct {
	Page     Page
	MenuOpen bool
}

// ToggleMenu flips the mobile menu.
func (s *State) ToggleMenu() { s.MenuOpen = !s.MenuOpen }

// Result describes the side effects of a navigation: the new document title,
// the canonical link and the scroll the shell should perform.
type Result struct {
	Page           Page
	Title          string
	Canonical      string
	ScrollTop      bool
	ScrollBehavior string
}

// Router builds canonical links against a base URL.
type Router struct {
	BaseURL string
}

// Default routes against the production origin.
var Default = Router{BaseURL: BaseURL}

// Canonical returns the absolute canonical URL of p.
func (r Router) Canonical(p Page) string {
	base := strings.TrimRight(r.BaseURL, "/")
	if base == "" {
		base = BaseURL
	}
	if p.Path() == "/" {
		return base + "/"
	}
	return base + p.Path()
}

// Navigate moves s to the page named by key, closes the menu and returns the
// document updates. It cannot fail: unknown keys land on Home.
func (r Router) Navigate(s *State, key string) Result {
	p := ParsePage(key)
	s.Page = p
	s.MenuOpen = false
	return Result{
		Page:           p,
		Title:          p.Title(),
		Canonical:      r.Canonical(p),
		ScrollTop:      true,
		ScrollBehavior: "smooth",
	}
}

// Navigate is Default.Navigate.
func Navigate(s *State, key string) Result { return Default.Navigate(s, key) }

// FromPath resolves a request path to a page. The canonical path, the short
// alias, and the ?page= key are recognised; anything else is Home.
func FromPath(p string, q url.Values) Page {
	if key := q.Get(PageQueryKey); key != "" {
		return ParsePage(key)
	}
	clean := path.Clean("/" + strings.TrimSpace(p))
	if clean != "/" {
		clean = strings.TrimRight(clean, "/")
	}
	for _, pg := range order {
		e := table[pg]
		if clean == e.path || (e.alias != "" && clean == e.alias) {
			return pg
		}
	}
	return Home
}

// Aliases returns short path → page for pages that have one.
func Aliases() map[string]Page {
	out := map[string]Page{}
	for _, pg := range order {
		if a := table[pg].alias; a != "" {
			out[a] = pg
		}
	}
	return out
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Key    Page
	Href   string
	Label  string
	Active bool
}

// Build renders the menu with the current page marked active.
func Build(current Page) []RenderedItem {
	items := make([]RenderedItem, 0, len(order))
	for _, p := range order {
		items = append(items, RenderedItem{
			Key:    p,
			Href:   p.Path(),
			Label:  p.Label(),
			Active: p == current,
		})
	}
	return items
}

// Crumb is a breadcrumb entry.
type Crumb struct {
	Href   string
	Label  string
	Active bool
}

// Breadcrumbs builds Home → page. Extra trailing segments (e.g. an anchor
// section) are appended title-cased.
func Breadcrumbs(p Page, trail ...string) []Crumb {
	crumbs := []Crumb{{Href: "/", Label: Home.Label(), Active: p == Home && len(trail) == 0}}
	if p != Home {
		crumbs = append(crumbs, Crumb{Href: p.Path(), Label: p.Label(), Active: len(trail) == 0})
	}
	for i, seg := range trail {
		crumbs = append(crumbs, Crumb{
			Href:   p.Path() + "#" + seg,
			Label:  titleFromSegment(seg),
			Active: i == len(trail)-1,
		})
	}
	return crumbs
}

func titleFromSegment(seg string) string {
	s := strings.NewReplacer("-", " ", "_", " ").Replace(seg)
	// Casers keep state; one per call.
	return cases.Title(language.English).String(strings.TrimSpace(s))
}
