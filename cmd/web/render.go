package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	handlersPkg "kalakrutiassociates.com/web/internal/handlers"
	"kalakrutiassociates.com/web/internal/format"
	mw "kalakrutiassociates.com/web/internal/middleware"
	"kalakrutiassociates.com/web/internal/nav"
	"kalakrutiassociates.com/web/internal/observability"
	"kalakrutiassociates.com/web/internal/reveal"
)

// templateSet holds the shared layout/partials plus one clone per page.
type templateSet struct {
	dir string

	mu     sync.RWMutex
	shared *template.Template
	pages  map[string]*template.Template
}

func newTemplateSet(dir string) (*templateSet, error) {
	ts := &templateSet{dir: dir}
	if err := ts.reload(); err != nil {
		return nil, err
	}
	return ts, nil
}

func (ts *templateSet) reload() error {
	shared, pages, err := parseTemplates(ts.dir)
	if err != nil {
		return err
	}
	ts.mu.Lock()
	ts.shared, ts.pages = shared, pages
	ts.mu.Unlock()
	return nil
}

func (ts *templateSet) page(name string) (*template.Template, error) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	t, ok := ts.pages[name]
	if !ok {
		return nil, fmt.Errorf("template page %q not found", name)
	}
	return t, nil
}

func (ts *templateSet) fragments() *template.Template {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.shared
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"now":      time.Now,
		"date":     format.Date,
		"isodate":  format.ISODate,
		"readtime": format.ReadTime,
		"area":     format.Area,
		"rupees":   format.Rupees,
		"join":     strings.Join,
		"lower":    strings.ToLower,
		"add":      func(a, b int) int { return a + b },
	}
}

// parseTemplates discovers every .tmpl file under dir. Files under pages/
// each define "content" and are parsed into their own clone of the shared
// layouts and partials. ParseGlob doesn't support **, hence the walk.
func parseTemplates(dir string) (*template.Template, map[string]*template.Template, error) {
	var shared, pageFiles []string
	if err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".tmpl") {
			return nil
		}
		rel, _ := filepath.Rel(dir, path)
		if strings.HasPrefix(filepath.ToSlash(rel), "pages/") {
			pageFiles = append(pageFiles, path)
		} else {
			shared = append(shared, path)
		}
		return nil
	}); err != nil {
		return nil, nil, err
	}
	if len(shared) == 0 || len(pageFiles) == 0 {
		return nil, nil, fmt.Errorf("no templates found under %s", dir)
	}
	root, err := template.New("_root").Funcs(templateFuncs()).ParseFiles(shared...)
	if err != nil {
		return nil, nil, err
	}
	pages := make(map[string]*template.Template, len(pageFiles))
	for _, f := range pageFiles {
		clone, err := root.Clone()
		if err != nil {
			return nil, nil, err
		}
		if _, err := clone.ParseFiles(f); err != nil {
			return nil, nil, err
		}
		pages[strings.TrimSuffix(filepath.Base(f), ".tmpl")] = clone
	}
	return root, pages, nil
}

// watchTemplates reparses ts whenever a file under its directory changes. It
// returns when ctx is done.
func watchTemplates(ctx context.Context, ts *templateSet, log *zap.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("template watcher: %w", err)
	}
	defer watcher.Close()

	// fsnotify is not recursive; add each directory.
	if err := filepath.WalkDir(ts.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return err
		}
		return watcher.Add(path)
	}); err != nil {
		return fmt.Errorf("template watcher: %w", err)
	}
	log.Info("watching templates", zap.String("dir", ts.dir))

	const debounce = 150 * time.Millisecond
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					_ = watcher.Add(ev.Name)
				}
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				if err := ts.reload(); err != nil {
					log.Error("template reload failed", zap.Error(err))
					return
				}
				log.Info("templates reloaded")
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("template watcher", zap.Error(err))
		}
	}
}

// navChanged is the HX-Trigger payload sent when htmx swaps the whole main
// element, so the client can update the document title and scroll.
type navChanged struct {
	Page      string `json:"page"`
	Title     string `json:"title"`
	Canonical string `json:"canonical"`
	Scroll    string `json:"scroll,omitempty"`
	Behavior  string `json:"behavior,omitempty"`
}

func navChangedFor(res nav.Result) navChanged {
	ev := navChanged{
		Page:      string(res.Page),
		Title:     res.Title,
		Canonical: res.Canonical,
		Behavior:  res.ScrollBehavior,
	}
	if res.ScrollTop {
		ev.Scroll = "top"
	}
	return ev
}

// pushURL is the canonical path of the rendered page with the request's
// filter and disclosure parameters. The ?page= key and menu state are
// dropped: the path already names the page and navigation closes the menu.
func pushURL(r *http.Request, p nav.Page) string {
	q := r.URL.Query()
	q.Del(nav.PageQueryKey)
	q.Del(menuQueryKey)
	return handlersPkg.Href(p.Path(), q)
}

// renderPage executes the layout for a full request, or just the main
// element for htmx requests, then marks revealable sections.
func (a *app) renderPage(w http.ResponseWriter, r *http.Request, name string, vm handlersPkg.PageData, code int) {
	log := observability.FromContext(r.Context())
	t, err := a.templates.page(name)
	if err != nil {
		log.Error("render", zap.Error(err))
		mw.WriteError(w, r, http.StatusInternalServerError, "template not initialized")
		return
	}

	entry := "base"
	if mw.IsHTMX(r.Context()) {
		entry = "main"
		w.Header().Set("HX-Push-Url", pushURL(r, vm.Page))
		if mw.HTMXTarget(r) == "main" {
			var st nav.State
			payload := map[string]navChanged{"nav:changed": navChangedFor(a.router.Navigate(&st, string(vm.Page)))}
			if raw, err := json.Marshal(payload); err == nil {
				w.Header().Set("HX-Trigger", string(raw))
			}
		}
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, entry, vm); err != nil {
		log.Error("template exec", zap.String("page", name), zap.Error(err))
		mw.WriteError(w, r, http.StatusInternalServerError, "template exec error")
		return
	}
	out, err := annotate(buf.Bytes(), mw.IsCrawler(r.Context()))
	if err != nil {
		log.Error("reveal annotate", zap.Error(err))
		out = buf.Bytes()
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(out)
}

// renderTemplate executes a shared fragment.
func (a *app) renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any, code int) {
	var buf bytes.Buffer
	if err := a.templates.fragments().ExecuteTemplate(&buf, name, data); err != nil {
		observability.FromContext(r.Context()).Error("template exec", zap.String("fragment", name), zap.Error(err))
		mw.WriteError(w, r, http.StatusInternalServerError, "template exec error")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(buf.Bytes())
}

// annotate registers revealable sections with a fresh observer. Crawlers
// never scroll, so for them every section is revealed up front.
func annotate(doc []byte, crawler bool) ([]byte, error) {
	obs := reveal.NewObserver(reveal.DefaultOptions(), nil)
	if crawler {
		ids, err := reveal.Scan(bytes.NewReader(doc))
		if err != nil {
			return nil, err
		}
		obs.Observe(ids...)
		obs.RevealAll()
	}
	return reveal.AnnotateBytes(doc, obs)
}
