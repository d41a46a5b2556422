// Package content holds the site's static records: services, projects, posts,
// FAQs, team and contact details. Everything is loaded once at start-up from
// YAML and markdown and never mutated afterwards; accessors hand out copies.
package content

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"kalakrutiassociates.com/web/internal/filter"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("content: not found")

//go:embed data
var embedded embed.FS

// Store is the immutable content set. It is safe for concurrent use.
type Store struct {
	business  Business
	home      Home
	services  ServicesPage
	portfolio PortfolioPage
	about     AboutPage
	blog      BlogPage
	faq       FAQPage
	contact   ContactPage
	copies    map[string]Copy
}

// Embedded loads the content compiled into the binary.
func Embedded() (*Store, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, err
	}
	return Load(sub)
}

// LoadDir loads content from a directory laid out like the embedded data.
// An empty dir falls back to the embedded content.
func LoadDir(dir string) (*Store, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return Embedded()
	}
	return Load(os.DirFS(dir))
}

// MustEmbedded is Embedded for tests and program start-up.
func MustEmbedded() *Store {
	s, err := Embedded()
	if err != nil {
		panic(err)
	}
	return s
}

// Load reads every record file from fsys.
func Load(fsys fs.FS) (*Store, error) {
	s := &Store{copies: map[string]Copy{}}
	files := []struct {
		name string
		dst  any
	}{
		{"business.yaml", &s.business},
		{"home.yaml", &s.home},
		{"services.yaml", &s.services},
		{"portfolio.yaml", &s.portfolio},
		{"about.yaml", &s.about},
		{"blog.yaml", &s.blog},
		{"faq.yaml", &s.faq},
		{"contact.yaml", &s.contact},
	}
	for _, f := range files {
		if err := decodeYAML(fsys, f.name, f.dst); err != nil {
			return nil, err
		}
	}

	r := newRenderer()
	mds, err := fs.Glob(fsys, "pages/*.md")
	if err != nil {
		return nil, fmt.Errorf("content: list pages: %w", err)
	}
	for _, name := range mds {
		src, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("content: read %s: %w", name, err)
		}
		key := strings.TrimSuffix(strings.TrimPrefix(name, "pages/"), ".md")
		c, err := r.parseCopy(key, src)
		if err != nil {
			return nil, err
		}
		s.copies[key] = c
	}
	s.home.Copy = s.copies["home"]
	s.services.Copy = s.copies["services"]
	s.portfolio.Copy = s.copies["portfolio"]
	s.about.Copy = s.copies["about"]
	s.blog.Copy = s.copies["blog"]
	s.faq.Copy = s.copies["faq"]
	s.contact.Copy = s.copies["contact"]

	if err := s.normalize(); err != nil {
		return nil, err
	}
	return s, nil
}

func decodeYAML(fsys fs.FS, name string, dst any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("content: read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("content: parse %s: %w", name, err)
	}
	return nil
}

// normalize parses dates and checks every categorised record against its
// page's category list.
func (s *Store) normalize() error {
	for _, list := range [][]Post{s.blog.Upcoming, s.blog.Recent} {
		for i := range list {
			p := &list[i]
			p.Published = parseContentDate(p.Date)
			if p.Published.IsZero() {
				return fmt.Errorf("content: post %s: bad date %q", p.ID, p.Date)
			}
			if !knownCategory(s.blog.Categories, p.Category) {
				return fmt.Errorf("content: post %s: unknown category %q", p.ID, p.Category)
			}
		}
	}
	for _, p := range s.portfolio.Projects {
		if !knownCategory(s.portfolio.Categories, p.Category) {
			return fmt.Errorf("content: project %s: unknown category %q", p.ID, p.Category)
		}
	}
	return nil
}

func knownCategory(categories []string, c string) bool {
	return c != filter.All && slices.Contains(categories, c)
}

func parseContentDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"January 2, 2006",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Business returns the business identity.
func (s *Store) Business() Business {
	b := s.business
	b.HoursDisplay = slices.Clone(b.HoursDisplay)
	b.AreasServed = slices.Clone(b.AreasServed)
	b.FooterServices = slices.Clone(b.FooterServices)
	return b
}

func (s *Store) Home() Home {
	h := s.home
	h.Services = cloneServices(h.Services)
	h.Features = slices.Clone(h.Features)
	h.FooterFAQs = slices.Clone(h.FooterFAQs)
	return h
}

func (s *Store) Services() ServicesPage {
	p := s.services
	p.Services = cloneServices(p.Services)
	p.Process = slices.Clone(p.Process)
	p.FAQs = slices.Clone(p.FAQs)
	p.CategoryFAQs = cloneSections(p.CategoryFAQs)
	p.FooterFAQs = slices.Clone(p.FooterFAQs)
	return p
}

func (s *Store) Portfolio() PortfolioPage {
	p := s.portfolio
	p.Categories = slices.Clone(p.Categories)
	p.Projects = slices.Clone(p.Projects)
	p.Neighborhoods = slices.Clone(p.Neighborhoods)
	p.FAQs = slices.Clone(p.FAQs)
	return p
}

func (s *Store) About() AboutPage {
	p := s.about
	p.Team = slices.Clone(p.Team)
	p.Awards = slices.Clone(p.Awards)
	p.Highlights = slices.Clone(p.Highlights)
	p.FAQs = slices.Clone(p.FAQs)
	return p
}

func (s *Store) Blog() BlogPage {
	p := s.blog
	p.Categories = slices.Clone(p.Categories)
	p.Upcoming = slices.Clone(p.Upcoming)
	p.Recent = slices.Clone(p.Recent)
	p.FAQs = slices.Clone(p.FAQs)
	return p
}

func (s *Store) FAQ() FAQPage {
	p := s.faq
	p.Sections = cloneSections(p.Sections)
	return p
}

func (s *Store) Contact() ContactPage {
	p := s.contact
	p.Methods = slices.Clone(p.Methods)
	p.ServiceAreas = slices.Clone(p.ServiceAreas)
	p.Stats = slices.Clone(p.Stats)
	return p
}

// Copy returns the prose block for a page key.
func (s *Store) Copy(key string) (Copy, error) {
	c, ok := s.copies[key]
	if !ok {
		return Copy{}, ErrNotFound
	}
	return c, nil
}

func cloneServices(in []Service) []Service {
	out := slices.Clone(in)
	for i := range out {
		out[i].Features = slices.Clone(out[i].Features)
	}
	return out
}

func cloneSections(in []FAQSection) []FAQSection {
	out := slices.Clone(in)
	for i := range out {
		out[i].Entries = slices.Clone(out[i].Entries)
	}
	return out
}
