package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"kalakrutiassociates.com/web/internal/config"
	"kalakrutiassociates.com/web/internal/content"
	"kalakrutiassociates.com/web/internal/filter"
	"kalakrutiassociates.com/web/internal/inquiry"
	mw "kalakrutiassociates.com/web/internal/middleware"
	"kalakrutiassociates.com/web/internal/nav"
)

var testNow = time.Date(2025, 10, 1, 9, 30, 0, 0, time.UTC)

// newTestApp builds an app over the embedded content and the repo templates
// with an instant submitter.
func newTestApp(t *testing.T) *app {
	t.Helper()
	store, err := content.Embedded()
	require.NoError(t, err)
	ts, err := newTemplateSet("../../templates")
	require.NoError(t, err)
	log := zaptest.NewLogger(t)
	sessions, err := mw.NewSessions(mw.SessionConfig{
		HashKey: []byte("test-session-key-0123456789abcdef"),
		Logger:  log,
	})
	require.NoError(t, err)
	return &app{
		cfg: config.Config{
			Addr:         ":0",
			BaseURL:      nav.BaseURL,
			TemplatesDir: "../../templates",
			PublicDir:    "../../public",
			Env:          "dev",
		},
		log:       log,
		store:     store,
		router:    nav.Router{BaseURL: nav.BaseURL},
		templates: ts,
		sessions:  sessions,
		submitter: inquiry.SubmitterFunc(func(ctx context.Context, _ inquiry.Form) error { return ctx.Err() }),
		now:       func() time.Time { return testNow },
	}
}

// browser replays cookies between requests the way a browser would.
type browser struct {
	t       *testing.T
	h       http.Handler
	cookies map[string]*http.Cookie
}

func newBrowser(t *testing.T) *browser {
	return &browser{t: t, h: newTestApp(t).routes(), cookies: map[string]*http.Cookie{}}
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	b.t.Helper()
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	b.h.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		b.cookies[c.Name] = c
	}
	return rec
}

func (b *browser) get(target string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	return b.do(req)
}

func (b *browser) post(target string, form url.Values, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	return b.do(req)
}

// csrf loads the contact page and returns the token embedded in it.
func (b *browser) csrf() string {
	b.t.Helper()
	doc := parse(b.t, b.get("/contact"))
	token, ok := doc.Find(`meta[name="csrf-token"]`).Attr("content")
	require.True(b.t, ok)
	require.NotEmpty(b.t, token)
	return token
}

func parse(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	return doc
}

func validInquiry(token string) url.Values {
	return url.Values{
		"csrf_token": {token},
		"name":       {"Priya Das"},
		"phone":      {"+91 98765 43210"},
		"email":      {"priya@example.com"},
		"service":    {string(inquiry.ServiceModularKitchen)},
		"budget":     {string(inquiry.Budget5To10)},
		"message":    {"3BHK in Patia, kitchen first."},
	}
}

func TestHealthz(t *testing.T) {
	rec := newBrowser(t).get("/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", strings.TrimSpace(rec.Body.String()))
}

func TestPagesRender(t *testing.T) {
	b := newBrowser(t)
	for _, p := range nav.Pages() {
		t.Run(string(p), func(t *testing.T) {
			rec := b.get(p.Path())
			require.Equal(t, http.StatusOK, rec.Code)
			doc := parse(t, rec)
			assert.Equal(t, p.Title(), doc.Find("title").Text())
			canonical, _ := doc.Find(`link[rel="canonical"]`).Attr("href")
			assert.Equal(t, nav.Default.Canonical(p), canonical)
			assert.Equal(t, string(p), doc.Find("main#main").AttrOr("data-page", ""))
			assert.Equal(t, 1, doc.Find(`#site-menu a[aria-current="page"]`).Length())
			assert.NotZero(t, doc.Find(`script[type="application/ld+json"]`).Length())
			assert.Equal(t, 1, doc.Find("#final-cta").Length())
		})
	}
}

func TestCallLinksSurviveEscaping(t *testing.T) {
	b := newBrowser(t)
	for _, path := range []string{"/", nav.Services.Path(), nav.Contact.Path()} {
		rec := b.get(path)
		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.NotContains(t, rec.Body.String(), "ZgotmplZ", path)
		doc := parse(t, rec)
		assert.NotZero(t, doc.Find(`a.fab-call[href^="tel:"]`).Length(), path)
		assert.NotZero(t, doc.Find(`#final-cta a[href^="tel:"]`).Length(), path)
	}
	doc := parse(t, b.get(nav.Contact.Path()))
	assert.Equal(t, 1, doc.Find(`#contact-methods a.method-call[href^="tel:"]`).Length())
}

func TestAliasRedirects(t *testing.T) {
	b := newBrowser(t)
	for alias, p := range nav.Aliases() {
		rec := b.get(alias + "?q=vastu")
		require.Equal(t, http.StatusMovedPermanently, rec.Code, alias)
		assert.Equal(t, p.Path()+"?q=vastu", rec.Header().Get("Location"))
	}
}

func TestPageQueryKey(t *testing.T) {
	doc := parse(t, newBrowser(t).get("/?page=FAQ"))
	assert.Equal(t, nav.FAQ.Title(), doc.Find("title").Text())
	action, _ := doc.Find("form.search").Attr("action")
	assert.Equal(t, nav.FAQ.Path(), action)
}

func TestHTMXNavigationReturnsMain(t *testing.T) {
	rec := newBrowser(t).get(nav.Services.Path(), "HX-Request", "true", "HX-Target", "main")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(strings.TrimSpace(body), `<main id="main"`), body[:min(len(body), 80)])
	assert.NotContains(t, body, "<html")
	assert.Equal(t, nav.Services.Path(), rec.Header().Get("HX-Push-Url"))
	assert.Contains(t, rec.Header().Values("Vary"), "HX-Request")

	var trigger map[string]navChanged
	require.NoError(t, json.Unmarshal([]byte(rec.Header().Get("HX-Trigger")), &trigger))
	ev := trigger["nav:changed"]
	assert.Equal(t, string(nav.Services), ev.Page)
	assert.Equal(t, nav.Services.Title(), ev.Title)
	assert.Equal(t, "top", ev.Scroll)
	assert.Equal(t, "smooth", ev.Behavior)
	assert.Equal(t, nav.Router{BaseURL: nav.BaseURL}.Canonical(nav.Services), ev.Canonical)
}

func TestHTMXNavigationPushesCanonicalPath(t *testing.T) {
	rec := newBrowser(t).get("/?page=faq&menu=open&q=vastu", "HX-Request", "true", "HX-Target", "main")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, nav.FAQ.Path()+"?q=vastu", rec.Header().Get("HX-Push-Url"))

	var trigger map[string]navChanged
	require.NoError(t, json.Unmarshal([]byte(rec.Header().Get("HX-Trigger")), &trigger))
	assert.Equal(t, string(nav.FAQ), trigger["nav:changed"].Page)
}

func TestHTMXFragmentSwapSkipsNavEvent(t *testing.T) {
	rec := newBrowser(t).get(nav.Blog.Path()+"?category=Vastu", "HX-Request", "true", "HX-Target", "listing")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("HX-Trigger"))
	assert.Equal(t, nav.Blog.Path()+"?category=Vastu", rec.Header().Get("HX-Push-Url"))
}

func TestBlogCategoryFilter(t *testing.T) {
	store := content.MustEmbedded()
	want := 0
	for _, p := range store.Blog().Upcoming {
		if p.Category == "Vastu" {
			want++
		}
	}
	require.NotZero(t, want)

	doc := parse(t, newBrowser(t).get(nav.Blog.Path()+"?category=vastu"))
	cards := doc.Find("#listing .post-card")
	assert.Equal(t, min(want, blogUpcomingLimit), cards.Length())
	cards.Each(func(_ int, s *goquery.Selection) {
		assert.Equal(t, "Vastu", s.Find(".badge").First().Text())
	})
	assert.Equal(t, "Vastu", strings.TrimSpace(doc.Find("#chips .chip.is-active").Text()))
}

func TestBlogEmptySearch(t *testing.T) {
	doc := parse(t, newBrowser(t).get(nav.Blog.Path()+"?q=zzzz-no-such-post"))
	assert.Equal(t, 0, doc.Find("#listing .post-card").Length())
	assert.Equal(t, 1, doc.Find("#listing .empty").Length())
	// pillars sit outside the filtered listing
	assert.NotZero(t, doc.Find("#pillar-guides .post-card").Length())
}

func TestFAQSearch(t *testing.T) {
	want := 0
	for _, sec := range filter.Sections(content.MustEmbedded().FAQ().Sections, "Vastu") {
		want += len(sec.Entries)
	}
	require.NotZero(t, want)

	doc := parse(t, newBrowser(t).get(nav.FAQ.Path()+"?q=vastu"))
	assert.Equal(t, want, doc.Find("#listing .accordion-item").Length())
	robots, _ := doc.Find(`meta[name="robots"]`).Attr("content")
	assert.Equal(t, "noindex,follow", robots)
	assert.Contains(t, doc.Find(".result-count").Text(), `match "vastu"`)
}

func TestFAQAccordionOpen(t *testing.T) {
	doc := parse(t, newBrowser(t).get(nav.FAQ.Path()+"?open=general-interior-design:1"))
	open := doc.Find(".accordion-item.is-open")
	require.Equal(t, 1, open.Length())
	assert.Equal(t, "general-interior-design-1", open.AttrOr("id", ""))

	// toggling the open item closes it
	href, _ := open.Find(".accordion-toggle").Attr("href")
	assert.Equal(t, nav.FAQ.Path()+"#general-interior-design-1", href)

	// the open section extends the breadcrumb trail
	assert.Equal(t, "General Interior Design", doc.Find(".breadcrumbs li").Last().Text())
}

func TestContactInvalidHTMX(t *testing.T) {
	b := newBrowser(t)
	token := b.csrf()

	form := url.Values{"csrf_token": {token}, "name": {"Priya"}, "email": {"not-an-email"}}
	rec := b.post("/contact", form, "HX-Request", "true", "HX-Target", "inquiry")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	doc := parse(t, rec)
	assert.Equal(t, "idle", doc.Find("#inquiry").AttrOr("data-status", ""))
	assert.Equal(t, "Priya", doc.Find("#inq-name").AttrOr("value", ""))
	assert.Equal(t, "true", doc.Find("#inq-phone").AttrOr("aria-invalid", ""))
	assert.Equal(t, 1, doc.Find("#inq-email-err").Length())
	assert.Equal(t, 0, doc.Find("#inq-name-err").Length())
}

func TestContactInvalidPlainPostRendersPage(t *testing.T) {
	b := newBrowser(t)
	token := b.csrf()

	rec := b.post("/contact", url.Values{"csrf_token": {token}})
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parse(t, rec)
	assert.Equal(t, nav.Contact.Title(), doc.Find("title").Text())
	assert.NotZero(t, doc.Find(".field-error").Length())
}

func TestContactSubmitRedirectsAndKeepsSuccess(t *testing.T) {
	b := newBrowser(t)
	token := b.csrf()

	rec := b.post("/contact", validInquiry(token))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/contact#inquiry", rec.Header().Get("Location"))

	doc := parse(t, b.get("/contact"))
	inq := doc.Find("#inquiry")
	assert.Equal(t, "success", inq.AttrOr("data-status", ""))
	assert.Contains(t, inq.Text(), "Reference:")
	assert.Equal(t, 0, inq.Find("form.inquiry-form").Length())

	// a second submit leaves the finished request alone
	rec = b.post("/contact", validInquiry(token), "HX-Request", "true")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", parse(t, rec).Find("#inquiry").AttrOr("data-status", ""))

	rec = b.post("/contact/reset", url.Values{"csrf_token": {token}}, "HX-Request", "true")
	require.Equal(t, http.StatusOK, rec.Code)
	idle := parse(t, rec)
	assert.Equal(t, "idle", idle.Find("#inquiry").AttrOr("data-status", ""))
	assert.Equal(t, "", idle.Find("#inq-name").AttrOr("value", "x"))
}

func TestContactSubmitFailureOffersDirectContact(t *testing.T) {
	a := newTestApp(t)
	a.submitter = inquiry.SubmitterFunc(func(context.Context, inquiry.Form) error {
		return errors.New("mail relay down")
	})
	b := &browser{t: t, h: a.routes(), cookies: map[string]*http.Cookie{}}
	token := b.csrf()

	rec := b.post("/contact", validInquiry(token), "HX-Request", "true")
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parse(t, rec)
	assert.Equal(t, "error", doc.Find("#inquiry").AttrOr("data-status", ""))
	assert.Equal(t, 1, doc.Find(`#inquiry a[href^="tel:"]`).Length())
	assert.Equal(t, 1, doc.Find(`#inquiry a[href^="https://wa.me/"]`).Length())
}

func TestContactResubmitAfterFinishShowsResult(t *testing.T) {
	a := newTestApp(t)
	calls := 0
	a.submitter = inquiry.SubmitterFunc(func(context.Context, inquiry.Form) error {
		calls++
		return errors.New("mail relay down")
	})
	b := &browser{t: t, h: a.routes(), cookies: map[string]*http.Cookie{}}
	token := b.csrf()

	rec := b.post("/contact", validInquiry(token), "HX-Request", "true")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, calls)

	for range 2 {
		rec = b.post("/contact", validInquiry(token), "HX-Request", "true")
		require.Equal(t, http.StatusOK, rec.Code, "a finished request is shown again, not rejected")
		assert.Equal(t, "error", parse(t, rec).Find("#inquiry").AttrOr("data-status", ""))
	}
	assert.Equal(t, 1, calls, "only reset re-arms the form")
}

func TestContactFailureKeepsLongInputAcrossRedirect(t *testing.T) {
	a := newTestApp(t)
	a.submitter = inquiry.SubmitterFunc(func(context.Context, inquiry.Form) error {
		return errors.New("mail relay down")
	})
	b := &browser{t: t, h: a.routes(), cookies: map[string]*http.Cookie{}}
	token := b.csrf()

	form := validInquiry(token)
	form.Set("message", strings.Repeat("କ", 1000))
	rec := b.post("/contact", form)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	var sessionSet bool
	for _, c := range rec.Result().Cookies() {
		sessionSet = sessionSet || c.Name == "KALAKRUTI_WEB_SESSION"
	}
	require.True(t, sessionSet, "failed submission must be persisted")

	doc := parse(t, b.get("/contact"))
	assert.Equal(t, "error", doc.Find("#inquiry").AttrOr("data-status", ""))

	rec = b.post("/contact/reset", url.Values{"csrf_token": {token}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	doc = parse(t, b.get("/contact"))
	assert.Equal(t, "idle", doc.Find("#inquiry").AttrOr("data-status", ""))
	assert.Equal(t, "Priya Das", doc.Find("#inq-name").AttrOr("value", ""))
	assert.True(t, strings.HasPrefix(strings.Repeat("କ", 1000), doc.Find("#inq-message").Text()))
	assert.NotEmpty(t, doc.Find("#inq-message").Text())
}

func TestContactRequiresCSRF(t *testing.T) {
	b := newBrowser(t)
	_ = b.csrf()

	rec := b.post("/contact", url.Values{"name": {"x"}})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = b.post("/contact", url.Values{"csrf_token": {"forged"}}, "HX-Request", "true")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
}

func TestSitemap(t *testing.T) {
	rec := newBrowser(t).get("/sitemap.xml")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "xml")
	body := rec.Body.String()
	for _, p := range nav.Pages() {
		assert.Contains(t, body, "<loc>"+nav.Default.Canonical(p)+"</loc>")
	}
}

func TestRobots(t *testing.T) {
	rec := newBrowser(t).get("/robots.txt")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sitemap: "+nav.BaseURL+"/sitemap.xml")
}

func TestRevealAnnotation(t *testing.T) {
	b := newBrowser(t)

	doc := parse(t, b.get("/"))
	assert.NotZero(t, doc.Find("[data-reveal-id]").Length())
	// only the eager hero is revealed before the client observes anything
	assert.Equal(t, 1, doc.Find("[data-reveal-id].animate-in").Length())
	assert.True(t, doc.Find("#hero").HasClass("animate-in"))

	crawled := parse(t, b.get("/", "User-Agent", "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)"))
	all := crawled.Find("[data-reveal-id]").Length()
	assert.NotZero(t, all)
	assert.Equal(t, all, crawled.Find("[data-reveal-id].animate-in").Length())
}

func TestUnknownPathFallsBackToHome(t *testing.T) {
	rec := newBrowser(t).get("/no-such-page")
	require.Equal(t, http.StatusNotFound, rec.Code)
	doc := parse(t, rec)
	assert.Equal(t, nav.Home.Title(), doc.Find("title").Text())
	robots, _ := doc.Find(`meta[name="robots"]`).Attr("content")
	assert.Equal(t, "noindex,follow", robots)

	rec = newBrowser(t).post("/no-such-page", url.Values{})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMenuOpenWithoutJS(t *testing.T) {
	doc := parse(t, newBrowser(t).get("/services?menu=open"))
	assert.True(t, doc.Find("#site-menu").HasClass("is-open"))
	href, _ := doc.Find(".menu-toggle").Attr("href")
	assert.Equal(t, "/services?menu=closed", href)
}

func TestAssetsServed(t *testing.T) {
	rec := newBrowser(t).get("/assets/js/site.js")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("ETag"))
	assert.Contains(t, rec.Body.String(), "nav:changed")
}

func TestPrintRoutes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printRoutes(&buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, len(nav.Pages())+1)
	assert.Equal(t, []string{"KEY", "PATH", "ALIAS", "TITLE"}, strings.Fields(lines[0]))
	assert.Contains(t, buf.String(), "/faq")
	assert.Contains(t, buf.String(), nav.Blog.Path())
}
