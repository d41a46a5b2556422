package seo

import (
	"encoding/json"
	"html/template"

	"kalakrutiassociates.com/web/internal/content"
)

const schemaContext = "https://schema.org"

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Script renders v for a <script type="application/ld+json"> body. The
// encoder escapes <, > and & so the payload cannot close the script element.
func Script(v any) template.JS {
	return template.JS(JSON(v))
}

// Organization returns a minimal Organization schema.
func Organization(name, url, logoURL string) map[string]any {
	m := map[string]any{
		"@context": schemaContext,
		"@type":    "Organization",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if logoURL != "" {
		m["logo"] = map[string]any{"@type": "ImageObject", "url": logoURL}
	}
	return m
}

// WebSite returns a minimal WebSite schema with optional SearchAction.
func WebSite(name, url, searchActionURL string) map[string]any {
	m := map[string]any{
		"@context": schemaContext,
		"@type":    "WebSite",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if searchActionURL != "" {
		m["potentialAction"] = map[string]any{
			"@type":       "SearchAction",
			"target":      searchActionURL + "{search_term_string}",
			"query-input": "required name=search_term_string",
		}
	}
	return m
}

// PostalAddress maps a content address.
func PostalAddress(a content.Address) map[string]any {
	return map[string]any{
		"@type":           "PostalAddress",
		"streetAddress":   a.Street,
		"addressLocality": a.Locality,
		"addressRegion":   a.Region,
		"postalCode":      a.PostalCode,
		"addressCountry":  a.Country,
	}
}

// LocalBusiness describes the studio. url is the page the business is
// presented on.
func LocalBusiness(b content.Business, url, priceRange string) map[string]any {
	areas := make([]map[string]any, 0, len(b.AreasServed))
	for _, a := range b.AreasServed {
		areas = append(areas, map[string]any{"@type": "City", "name": a})
	}
	m := map[string]any{
		"@context":     schemaContext,
		"@type":        "LocalBusiness",
		"name":         b.Name,
		"telephone":    b.Phone,
		"email":        b.Email,
		"address":      PostalAddress(b.Address),
		"openingHours": b.OpeningHours,
		"areaServed":   areas,
	}
	if url != "" {
		m["url"] = url
	}
	if b.Logo != "" {
		m["image"] = b.Logo
	}
	if priceRange != "" {
		m["priceRange"] = priceRange
	}
	if b.Founded > 0 {
		m["foundingDate"] = b.Founded
	}
	return m
}

// ContactPage wraps the business as the page's main entity.
func ContactPage(b content.Business, url string) map[string]any {
	biz := LocalBusiness(b, url, "")
	delete(biz, "@context")
	return map[string]any{
		"@context":   schemaContext,
		"@type":      "ContactPage",
		"url":        url,
		"mainEntity": biz,
	}
}

// AboutPage describes the business and its team.
func AboutPage(b content.Business, url string, team []content.TeamMember) map[string]any {
	people := make([]map[string]any, 0, len(team))
	for _, t := range team {
		people = append(people, map[string]any{
			"@type":    "Person",
			"name":     t.Name,
			"jobTitle": t.Role,
		})
	}
	org := Organization(b.Name, url, b.Logo)
	delete(org, "@context")
	org["employee"] = people
	return map[string]any{
		"@context":   schemaContext,
		"@type":      "AboutPage",
		"url":        url,
		"mainEntity": org,
	}
}

// FAQPage builds the FAQPage schema. Entries without an answer are skipped.
func FAQPage(faqs []content.FAQ) map[string]any {
	qs := make([]map[string]any, 0, len(faqs))
	for _, f := range faqs {
		if f.Answer == "" {
			continue
		}
		qs = append(qs, map[string]any{
			"@type": "Question",
			"name":  f.Question,
			"acceptedAnswer": map[string]any{
				"@type": "Answer",
				"text":  f.Answer,
			},
		})
	}
	return map[string]any{
		"@context":   schemaContext,
		"@type":      "FAQPage",
		"mainEntity": qs,
	}
}

// Blog lists post teasers as BlogPosting entries.
func Blog(b content.Business, name, description, url string, posts []content.Post) map[string]any {
	entries := make([]map[string]any, 0, len(posts))
	for _, p := range posts {
		a := Article(p.Title, url+"#"+p.ID, p.Image, b.Name, p.Published.Format("2006-01-02"))
		delete(a, "@context")
		a["@type"] = "BlogPosting"
		a["articleSection"] = p.Category
		entries = append(entries, a)
	}
	pub := Organization(b.Name, "", b.Logo)
	delete(pub, "@context")
	return map[string]any{
		"@context":         schemaContext,
		"@type":            "Blog",
		"name":             name,
		"description":      description,
		"url":              url,
		"publisher":        pub,
		"mainEntityOfPage": map[string]any{"@type": "WebPage", "@id": url},
		"blogPost":         entries,
	}
}

// CollectionPage lists portfolio projects.
func CollectionPage(name, url string, projects []content.Project) map[string]any {
	items := make([]map[string]any, 0, len(projects))
	for i, p := range projects {
		items = append(items, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"item": map[string]any{
				"@type":           "CreativeWork",
				"name":            p.Title,
				"image":           p.Image,
				"locationCreated": p.Location,
				"dateCreated":     p.Year,
				"genre":           p.Category,
			},
		})
	}
	return map[string]any{
		"@context": schemaContext,
		"@type":    "CollectionPage",
		"name":     name,
		"url":      url,
		"mainEntity": map[string]any{
			"@type":           "ItemList",
			"itemListElement": items,
		},
	}
}

// Services lists the services offered by the business.
func Services(b content.Business, services []content.Service) map[string]any {
	items := make([]map[string]any, 0, len(services))
	for i, s := range services {
		items = append(items, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"item": map[string]any{
				"@type":       "Service",
				"name":        s.Title,
				"description": s.Description,
				"provider":    map[string]any{"@type": "LocalBusiness", "name": b.Name},
				"areaServed":  b.AreasServed,
			},
		})
	}
	return map[string]any{
		"@context":        schemaContext,
		"@type":           "ItemList",
		"itemListElement": items,
	}
}

// BreadcrumbItem maps name and absolute item URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList builds schema.org BreadcrumbList.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
			"item":     it.Item,
		})
	}
	return map[string]any{
		"@context":        schemaContext,
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}

// Article returns a minimal Article schema payload.
func Article(headline, url, imageURL, authorName, datePublished string) map[string]any {
	m := map[string]any{
		"@context": schemaContext,
		"@type":    "Article",
		"headline": headline,
	}
	if url != "" {
		m["url"] = url
	}
	if imageURL != "" {
		m["image"] = imageURL
	}
	if authorName != "" {
		m["author"] = map[string]any{"@type": "Organization", "name": authorName}
	}
	if datePublished != "" {
		m["datePublished"] = datePublished
	}
	return m
}
