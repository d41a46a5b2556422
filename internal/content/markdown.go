package content

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// Copy is the prose block of a page: hero heading, meta description and the
// introductory body rendered from markdown.
type Copy struct {
	Key         string
	Heading     string
	Subheading  string
	Description string
	Body        template.HTML
}

type copyFrontMatter struct {
	Heading     string `yaml:"heading"`
	Subheading  string `yaml:"subheading"`
	Description string `yaml:"description"`
}

// renderer converts page markdown to sanitized HTML.
type renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func newRenderer() *renderer {
	return &renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Typographer),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
		policy: newCopyHTMLPolicy(),
	}
}

func newCopyHTMLPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").OnElements("p", "span", "strong")
	policy.AllowAttrs("loading").OnElements("img")
	policy.RequireNoFollowOnLinks(true)
	return policy
}

// parseCopy splits front matter from the markdown body and renders it.
func (r *renderer) parseCopy(key string, src []byte) (Copy, error) {
	var fm copyFrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(src), &fm)
	if err != nil {
		return Copy{}, fmt.Errorf("content: front matter %s: %w", key, err)
	}
	html, err := r.render(body)
	if err != nil {
		return Copy{}, fmt.Errorf("content: render %s: %w", key, err)
	}
	c := Copy{
		Key:         key,
		Heading:     strings.TrimSpace(fm.Heading),
		Subheading:  strings.TrimSpace(fm.Subheading),
		Description: strings.TrimSpace(fm.Description),
		Body:        html,
	}
	if c.Heading == "" {
		c.Heading = prettifySlug(key)
	}
	return c, nil
}

func (r *renderer) render(src []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(src, &buf); err != nil {
		return "", err
	}
	// sanitized above; safe to hand to templates
	return template.HTML(r.policy.SanitizeBytes(buf.Bytes())), nil
}

func prettifySlug(slug string) string {
	parts := strings.Split(strings.TrimSpace(slug), "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}
