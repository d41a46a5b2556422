package handlers

import (
	"html/template"

	"kalakrutiassociates.com/web/internal/content"
	"kalakrutiassociates.com/web/internal/links"
	"kalakrutiassociates.com/web/internal/nav"
	"kalakrutiassociates.com/web/internal/seo"
)

// PageData is the view model every page renders through the shared layout.
type PageData struct {
	Title     string
	Lang      string
	SEO       seo.Meta
	JSONLD    []template.JS
	Analytics Analytics

	Page        nav.Page
	Path        string
	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb
	MenuOpen    bool

	Business  content.Business
	Contact   ContactLinks
	Copy      content.Copy
	CSRFToken string
	Year      int

	// Per-page view model payload
	Content any
}

// AddJSONLD appends structured data blocks.
func (p *PageData) AddJSONLD(blocks ...map[string]any) {
	for _, b := range blocks {
		p.JSONLD = append(p.JSONLD, seo.Script(b))
	}
}

// ContactLinks are the deep links behind the call, WhatsApp, email and map
// buttons. html/template rewrites tel: URLs it does not trust, so Call is
// marked safe; it is only ever built by links.Tel.
type ContactLinks struct {
	Call         template.URL
	WhatsApp     string
	Email        string
	Map          string
	PhoneDisplay string
	EmailDisplay string
}

// ContactLinksFor derives the links from the business record, falling back to
// the built-in contact details for empty fields.
func ContactLinksFor(b content.Business) ContactLinks {
	l := ContactLinks{
		Call:         template.URL(links.CallHref),
		WhatsApp:     links.WhatsAppHref,
		Email:        links.EmailHref,
		Map:          links.MapHref,
		PhoneDisplay: links.PhoneDisplay,
		EmailDisplay: links.Email,
	}
	if b.Phone != "" {
		l.Call = template.URL(links.Tel(b.Phone))
	}
	if b.PhoneDisplay != "" {
		l.PhoneDisplay = b.PhoneDisplay
	}
	if b.WhatsApp != "" {
		msg := b.WhatsAppMessage
		if msg == "" {
			msg = links.WhatsAppMessage
		}
		l.WhatsApp = links.WhatsApp(b.WhatsApp, msg)
	}
	if b.Email != "" {
		l.Email = links.Mailto(b.Email)
		l.EmailDisplay = b.Email
	}
	if b.Address.Street != "" {
		l.Map = links.MapSearch(b.Address.Street + " " + b.Address.Locality)
	}
	return l
}
