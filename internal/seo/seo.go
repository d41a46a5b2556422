package seo

import "strings"

type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	URL         string
	SiteName    string
	Locale      string
}

type Twitter struct {
	Card  string
	Site  string
	Image string
}

type Meta struct {
	Title       string
	Description string
	Canonical   string
	Robots      string
	Keywords    []string
	OG          OpenGraph
	Twitter     Twitter
}

// NewMeta fills the Open Graph and Twitter blocks from the page basics.
func NewMeta(title, description, canonical, image string) Meta {
	return Meta{
		Title:       title,
		Description: description,
		Canonical:   canonical,
		Robots:      "index,follow",
		OG: OpenGraph{
			Title:       title,
			Description: description,
			Image:       image,
			Type:        "website",
			URL:         canonical,
			SiteName:    "Kalakruti Associates",
			Locale:      "en_IN",
		},
		Twitter: Twitter{Card: "summary_large_image", Image: image},
	}
}

// KeywordList joins keywords for the meta keywords tag.
func (m Meta) KeywordList() string {
	return strings.Join(m.Keywords, ", ")
}
