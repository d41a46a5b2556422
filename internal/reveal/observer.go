// Package reveal implements reveal-on-scroll state: a one-way latch per
// element that flips the first time the element intersects the viewport.
package reveal

import (
	"fmt"
	"math"
	"sync"
)

// Rect is an axis-aligned box in CSS pixels.
type Rect struct {
	X, Y, Width, Height float64
}

func (r Rect) area() float64 {
	if r.Width <= 0 || r.Height <= 0 {
		return 0
	}
	return r.Width * r.Height
}

// Margin grows (positive) or shrinks (negative) the root box before
// intersecting, in the same order as the CSS rootMargin shorthand.
type Margin struct {
	Top, Right, Bottom, Left float64
}

// String renders the margin as a CSS rootMargin value.
func (m Margin) String() string {
	return fmt.Sprintf("%gpx %gpx %gpx %gpx", m.Top, m.Right, m.Bottom, m.Left)
}

// Options configures when an element counts as visible.
type Options struct {
	// Threshold is the visible fraction of the element that triggers a reveal.
	Threshold  float64
	RootMargin Margin
}

// DefaultOptions fires once 10% of an element is visible, 50px before it
// reaches the bottom edge.
func DefaultOptions() Options {
	return Options{Threshold: 0.1, RootMargin: Margin{Bottom: -50}}
}

// Entry is one intersection observation for a target element.
type Entry struct {
	Target         string
	IsIntersecting bool
	Ratio          float64
}

// Compute intersects target with the root box adjusted by the root margin.
func Compute(id string, root, target Rect, opts Options) Entry {
	m := opts.RootMargin
	r := Rect{
		X:      root.X - m.Left,
		Y:      root.Y - m.Top,
		Width:  root.Width + m.Left + m.Right,
		Height: root.Height + m.Top + m.Bottom,
	}
	x0 := math.Max(r.X, target.X)
	y0 := math.Max(r.Y, target.Y)
	x1 := math.Min(r.X+r.Width, target.X+target.Width)
	y1 := math.Min(r.Y+r.Height, target.Y+target.Height)

	e := Entry{Target: id}
	if x1 < x0 || y1 < y0 {
		return e
	}
	if target.area() == 0 {
		// a zero-size element inside the root is fully visible
		e.Ratio = 1
	} else {
		e.Ratio = Rect{Width: x1 - x0, Height: y1 - y0}.area() / target.area()
	}
	e.IsIntersecting = e.Ratio > 0 && e.Ratio >= opts.Threshold
	return e
}

// Observer holds the reveal latch for a set of elements. It is safe for
// concurrent use; entries for different elements may arrive in any order.
type Observer struct {
	mu       sync.Mutex
	opts     Options
	watching map[string]struct{}
	revealed map[string]struct{}
	closed   bool
	onReveal func(id string)
}

// NewObserver returns an observer. onReveal, when non-nil, runs once per
// element the first time it is revealed.
func NewObserver(opts Options, onReveal func(id string)) *Observer {
	return &Observer{
		opts:     opts,
		watching: map[string]struct{}{},
		revealed: map[string]struct{}{},
		onReveal: onReveal,
	}
}

// Options returns the observer configuration.
func (o *Observer) Options() Options { return o.opts }

// Observe starts watching ids. Already revealed ids stay revealed and are not
// watched again.
func (o *Observer) Observe(ids ...string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	for _, id := range ids {
		if _, done := o.revealed[id]; done || id == "" {
			continue
		}
		o.watching[id] = struct{}{}
	}
}

// Deliver applies intersection entries and returns the ids revealed by this
// call. Entries for unwatched or already revealed elements are ignored.
func (o *Observer) Deliver(entries ...Entry) []string {
	var fired []string
	o.mu.Lock()
	for _, e := range entries {
		if !e.IsIntersecting {
			continue
		}
		if o.latchLocked(e.Target) {
			fired = append(fired, e.Target)
		}
	}
	o.mu.Unlock()
	o.notify(fired)
	return fired
}

// Reveal latches a watched element without an intersection, e.g. content
// above the fold. It reports whether the element was newly revealed.
func (o *Observer) Reveal(id string) bool {
	o.mu.Lock()
	ok := o.latchLocked(id)
	o.mu.Unlock()
	if ok {
		o.notify([]string{id})
	}
	return ok
}

// RevealAll latches every watched element.
func (o *Observer) RevealAll() []string {
	o.mu.Lock()
	fired := make([]string, 0, len(o.watching))
	for id := range o.watching {
		if o.latchLocked(id) {
			fired = append(fired, id)
		}
	}
	o.mu.Unlock()
	o.notify(fired)
	return fired
}

// Revealed reports whether the element has been revealed.
func (o *Observer) Revealed(id string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, ok := o.revealed[id]
	return ok
}

// Watching returns the number of elements still waiting to be revealed.
func (o *Observer) Watching() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.watching)
}

// Disconnect stops watching every element. Later deliveries are ignored;
// reveal state already latched is kept.
func (o *Observer) Disconnect() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.closed = true
	o.watching = map[string]struct{}{}
}

func (o *Observer) latchLocked(id string) bool {
	if o.closed {
		return false
	}
	if _, ok := o.watching[id]; !ok {
		return false
	}
	delete(o.watching, id)
	o.revealed[id] = struct{}{}
	return true
}

func (o *Observer) notify(ids []string) {
	if o.onReveal == nil {
		return
	}
	for _, id := range ids {
		o.onReveal(id)
	}
}
