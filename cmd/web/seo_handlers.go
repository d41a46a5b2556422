package main

import (
	"encoding/xml"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"kalakrutiassociates.com/web/internal/format"
	"kalakrutiassociates.com/web/internal/nav"
	"kalakrutiassociates.com/web/internal/observability"
)

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

var sitemapPriority = map[nav.Page]string{
	nav.Home:     "1.0",
	nav.Services: "0.9",
	nav.Contact:  "0.9",
}

// SitemapHandler lists every canonical page URL.
func (a *app) SitemapHandler(w http.ResponseWriter, r *http.Request) {
	lastmod := format.ISODate(a.now())
	set := sitemapURLSet{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, p := range nav.Pages() {
		prio := sitemapPriority[p]
		if prio == "" {
			prio = "0.8"
		}
		freq := "monthly"
		if p == nav.Blog {
			freq = "weekly"
		}
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        a.router.Canonical(p),
			LastMod:    lastmod,
			ChangeFreq: freq,
			Priority:   prio,
		})
	}
	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		observability.FromContext(r.Context()).Error("sitemap", zap.Error(err))
		http.Error(w, "sitemap unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write([]byte(xml.Header))
	_, _ = w.Write(out)
}

// RobotsHandler allows everything and points at the sitemap.
func (a *app) RobotsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "User-agent: *\nAllow: /\n\nSitemap: %s\n", a.absolute("/sitemap.xml"))
}
