package content

import (
	"strings"
	"time"

	"kalakrutiassociates.com/web/internal/filter"
)

// FAQ is a question with its answer. Footer FAQs have no answer and link to
// the FAQ page instead.
type FAQ struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

// SearchText implements filter.Entry.
func (f FAQ) SearchText() (string, string) { return f.Question, f.Answer }

// FAQSection is a titled group of FAQs; Key doubles as the accordion group.
type FAQSection = filter.Section[FAQ]

// Post is a blog article teaser.
type Post struct {
	ID        string    `yaml:"id"`
	Title     string    `yaml:"title"`
	Excerpt   string    `yaml:"excerpt"`
	Category  string    `yaml:"category"`
	Date      string    `yaml:"date"`
	Published time.Time `yaml:"-"`
	ReadTime  int       `yaml:"read_time"`
	Image     string    `yaml:"image"`
	Alt       string    `yaml:"alt"`
	Featured  bool      `yaml:"featured"`
	Pillar    bool      `yaml:"pillar"`
	WordCount int       `yaml:"word_count"`
}

// Facets implements filter.Item.
func (p Post) Facets() filter.Facets {
	return filter.Facets{Category: p.Category, Title: p.Title, Excerpt: p.Excerpt}
}

// Project is a completed portfolio project.
type Project struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	Category string `yaml:"category"`
	Location string `yaml:"location"`
	AreaSqFt int    `yaml:"area_sqft"`
	Year     int    `yaml:"year"`
	Image    string `yaml:"image"`
	Alt      string `yaml:"alt"`
	Summary  string `yaml:"summary"`
}

// Facets implements filter.Item. The location is searchable alongside the
// summary so "patia" finds the Patia apartment.
func (p Project) Facets() filter.Facets {
	return filter.Facets{
		Category: p.Category,
		Title:    p.Title,
		Excerpt:  strings.TrimSpace(p.Location + " " + p.Summary),
	}
}

type Service struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Icon        string   `yaml:"icon"`
	Features    []string `yaml:"features"`
}

type Feature struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
}

type ProcessStep struct {
	Step        int    `yaml:"step"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type Neighborhood struct {
	Name     string `yaml:"name"`
	Projects int    `yaml:"projects"`
	Type     string `yaml:"type"`
}

type TeamMember struct {
	Name           string `yaml:"name"`
	Role           string `yaml:"role"`
	Experience     string `yaml:"experience"`
	Specialization string `yaml:"specialization"`
}

type Award struct {
	Title        string `yaml:"title"`
	Organization string `yaml:"organization"`
	Year         int    `yaml:"year"`
}

type Highlight struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// ContactMethod is one of the call / WhatsApp / email cards.
type ContactMethod struct {
	Kind     string `yaml:"kind"`
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	Details  string `yaml:"details"`
	Action   string `yaml:"action"`
}

type Stat struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

// Address is a postal address.
type Address struct {
	Street     string `yaml:"street"`
	Locality   string `yaml:"locality"`
	Region     string `yaml:"region"`
	PostalCode string `yaml:"postal_code"`
	Country    string `yaml:"country"`
}

// String renders the address on one line.
func (a Address) String() string {
	return a.Street + ", " + a.Locality + ", " + a.Region + " " + a.PostalCode
}

// Business is the identity shown in the layout and structured data.
type Business struct {
	Name            string   `yaml:"name"`
	Tagline         string   `yaml:"tagline"`
	TaglineOdia     string   `yaml:"tagline_odia"`
	Founded         int      `yaml:"founded"`
	Phone           string   `yaml:"phone"`
	PhoneDisplay    string   `yaml:"phone_display"`
	WhatsApp        string   `yaml:"whatsapp"`
	WhatsAppMessage string   `yaml:"whatsapp_message"`
	Email           string   `yaml:"email"`
	Logo            string   `yaml:"logo"`
	Address         Address  `yaml:"address"`
	OpeningHours    string   `yaml:"opening_hours"`
	HoursDisplay    []string `yaml:"hours_display"`
	AreasServed     []string `yaml:"areas_served"`
	FooterServices  []string `yaml:"footer_services"`
}

type Home struct {
	HeroImage  string    `yaml:"hero_image"`
	Services   []Service `yaml:"services"`
	Features   []Feature `yaml:"features"`
	FooterFAQs []FAQ     `yaml:"footer_faqs"`
	Copy       Copy      `yaml:"-"`
}

type ServicesPage struct {
	Services     []Service     `yaml:"services"`
	Process      []ProcessStep `yaml:"process"`
	FAQs         []FAQ         `yaml:"faqs"`
	CategoryFAQs []FAQSection  `yaml:"category_faqs"`
	FooterFAQs   []FAQ         `yaml:"footer_faqs"`
	Copy         Copy          `yaml:"-"`
}

type PortfolioPage struct {
	Categories    []string       `yaml:"categories"`
	Projects      []Project      `yaml:"projects"`
	Neighborhoods []Neighborhood `yaml:"neighborhoods"`
	FAQs          []FAQ          `yaml:"faqs"`
	Copy          Copy           `yaml:"-"`
}

type AboutPage struct {
	Team       []TeamMember `yaml:"team"`
	Awards     []Award      `yaml:"awards"`
	Highlights []Highlight  `yaml:"highlights"`
	FAQs       []FAQ        `yaml:"faqs"`
	Copy       Copy         `yaml:"-"`
}

type BlogPage struct {
	Categories []string `yaml:"categories"`
	Upcoming   []Post   `yaml:"upcoming"`
	Recent     []Post   `yaml:"recent"`
	FAQs       []FAQ    `yaml:"faqs"`
	Copy       Copy     `yaml:"-"`
}

// Pillars returns up to n pillar posts from the upcoming list, in order.
func (b BlogPage) Pillars(n int) []Post {
	var out []Post
	for _, p := range b.Upcoming {
		if !p.Pillar {
			continue
		}
		out = append(out, p)
		if n > 0 && len(out) == n {
			break
		}
	}
	return out
}

type FAQPage struct {
	Sections []FAQSection `yaml:"sections"`
	Copy     Copy         `yaml:"-"`
}

// Entries returns every FAQ across sections.
func (f FAQPage) Entries() []FAQ {
	var out []FAQ
	for _, s := range f.Sections {
		out = append(out, s.Entries...)
	}
	return out
}

type ContactPage struct {
	Methods      []ContactMethod `yaml:"methods"`
	ServiceAreas []string        `yaml:"service_areas"`
	Stats        []Stat          `yaml:"stats"`
	Copy         Copy            `yaml:"-"`
}
