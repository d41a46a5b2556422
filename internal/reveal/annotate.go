package reveal

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

const (
	// AnimateClass marks elements whose reveal transition has fired.
	AnimateClass = "animate-in"
	// MarkerClass flags an element as revealable.
	MarkerClass = "scroll-animate"

	attrReveal    = "data-reveal"
	attrRevealID  = "data-reveal-id"
	attrThreshold = "data-reveal-threshold"
	attrMargin    = "data-reveal-margin"
	eagerValue    = "eager"
)

// Scan returns the ids of revealable elements in document order. Elements
// without an id get a positional one ("reveal-1", "reveal-2", ...).
func Scan(r io.Reader) ([]string, error) {
	var ids []string
	err := walk(io.Discard, r, func(t *html.Token, seq *int) bool {
		if id, _, ok := revealable(t, seq); ok {
			ids = append(ids, id)
		}
		return false
	})
	return ids, err
}

// Annotate copies HTML from r to w. Every revealable element is registered
// with obs and stamped with data-reveal-id; elements marked
// data-reveal="eager" are revealed immediately; elements obs already reports
// as revealed get the animate-in class. The <main> element carries the
// observer options for the browser-side watcher.
func Annotate(w io.Writer, r io.Reader, obs *Observer) error {
	opts := obs.Options()
	return walk(w, r, func(t *html.Token, seq *int) bool {
		changed := false
		if t.Data == "main" {
			setAttr(t, attrThreshold, strconv.FormatFloat(opts.Threshold, 'g', -1, 64))
			setAttr(t, attrMargin, opts.RootMargin.String())
			changed = true
		}
		id, eager, ok := revealable(t, seq)
		if !ok {
			return changed
		}
		obs.Observe(id)
		if eager {
			obs.Reveal(id)
		}
		setAttr(t, attrRevealID, id)
		if obs.Revealed(id) {
			addClass(t, AnimateClass)
		}
		return true
	})
}

// AnnotateBytes is Annotate over an in-memory document.
func AnnotateBytes(src []byte, obs *Observer) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(len(src) + len(src)/16)
	if err := Annotate(&buf, bytes.NewReader(src), obs); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// walk streams tokens from r to w. visit sees every start tag and returns true
// when it modified the token, in which case the token is re-serialized;
// everything else is copied through unchanged.
func walk(w io.Writer, r io.Reader, visit func(t *html.Token, seq *int) bool) error {
	z := html.NewTokenizer(r)
	seq := 0
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return err
			}
			return nil
		case html.StartTagToken, html.SelfClosingTagToken:
			raw := append([]byte(nil), z.Raw()...)
			tok := z.Token()
			if visit(&tok, &seq) {
				if _, err := io.WriteString(w, tok.String()); err != nil {
					return err
				}
				continue
			}
			if _, err := w.Write(raw); err != nil {
				return err
			}
		default:
			if _, err := w.Write(z.Raw()); err != nil {
				return err
			}
		}
	}
}

func revealable(t *html.Token, seq *int) (id string, eager bool, ok bool) {
	mode, flagged := attr(t, attrReveal)
	if !flagged && !hasClass(t, MarkerClass) {
		return "", false, false
	}
	*seq++
	if v, has := attr(t, attrRevealID); has && v != "" {
		id = v
	} else if v, has := attr(t, "id"); has && v != "" {
		id = v
	} else {
		id = "reveal-" + strconv.Itoa(*seq)
	}
	return id, strings.EqualFold(mode, eagerValue), true
}

func attr(t *html.Token, key string) (string, bool) {
	for _, a := range t.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(t *html.Token, key, val string) {
	for i, a := range t.Attr {
		if a.Namespace == "" && a.Key == key {
			t.Attr[i].Val = val
			return
		}
	}
	t.Attr = append(t.Attr, html.Attribute{Key: key, Val: val})
}

func hasClass(t *html.Token, class string) bool {
	v, _ := attr(t, "class")
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

func addClass(t *html.Token, class string) {
	if hasClass(t, class) {
		return
	}
	v, _ := attr(t, "class")
	setAttr(t, "class", strings.TrimSpace(v+" "+class))
}
