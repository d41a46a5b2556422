package reveal

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

var viewport = Rect{X: 0, Y: 0, Width: 1280, Height: 800}

func TestComputeThresholdAndMargin(t *testing.T) {
	t.Parallel()
	opts := DefaultOptions()

	tests := []struct {
		name   string
		target Rect
		want   bool
	}{
		{"fully visible", Rect{Y: 100, Width: 400, Height: 200}, true},
		{"below the fold", Rect{Y: 900, Width: 400, Height: 200}, false},
		// 60px of a 200px box overlaps the viewport, but the -50px bottom
		// margin leaves only 10px: 5% < 10%.
		{"margin delays reveal", Rect{Y: 740, Width: 400, Height: 200}, false},
		// 110px overlap minus the 50px margin leaves 60px: 30%.
		{"past the margin", Rect{Y: 690, Width: 400, Height: 200}, true},
		{"scrolled past above", Rect{Y: -500, Width: 400, Height: 200}, false},
		{"zero size inside root", Rect{X: 10, Y: 10}, true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := Compute("el", viewport, tt.target, opts)
			require.Equal(t, tt.want, e.IsIntersecting, "ratio=%v", e.Ratio)
			require.Equal(t, "el", e.Target)
		})
	}
}

func TestMarginString(t *testing.T) {
	require.Equal(t, "0px 0px -50px 0px", DefaultOptions().RootMargin.String())
}

func TestObserverLatchIsOneShot(t *testing.T) {
	var fired []string
	obs := NewObserver(DefaultOptions(), func(id string) { fired = append(fired, id) })
	obs.Observe("hero", "services")
	require.Equal(t, 2, obs.Watching())

	got := obs.Deliver(Entry{Target: "hero", IsIntersecting: true, Ratio: 0.5})
	require.Equal(t, []string{"hero"}, got)
	require.True(t, obs.Revealed("hero"))
	require.Equal(t, 1, obs.Watching(), "revealed elements are no longer watched")

	// scrolling out and back in does not fire again
	obs.Deliver(Entry{Target: "hero", IsIntersecting: false})
	require.True(t, obs.Revealed("hero"), "latch never reverts")
	require.Empty(t, obs.Deliver(Entry{Target: "hero", IsIntersecting: true, Ratio: 1}))
	require.Equal(t, []string{"hero"}, fired)

	obs.Observe("hero")
	require.Equal(t, 1, obs.Watching(), "re-observing a revealed element is a no-op")
}

func TestObserverIgnoresUnwatchedAndNonIntersecting(t *testing.T) {
	obs := NewObserver(DefaultOptions(), nil)
	obs.Observe("a")
	require.Empty(t, obs.Deliver(Entry{Target: "a", IsIntersecting: false, Ratio: 0.05}))
	require.Empty(t, obs.Deliver(Entry{Target: "zzz", IsIntersecting: true, Ratio: 1}))
	require.False(t, obs.Revealed("zzz"))
}

func TestObserverDisconnect(t *testing.T) {
	obs := NewObserver(DefaultOptions(), nil)
	obs.Observe("a", "b")
	obs.Deliver(Entry{Target: "a", IsIntersecting: true, Ratio: 1})
	obs.Disconnect()

	require.Zero(t, obs.Watching())
	require.Empty(t, obs.Deliver(Entry{Target: "b", IsIntersecting: true, Ratio: 1}))
	require.False(t, obs.Reveal("b"))
	require.True(t, obs.Revealed("a"), "latched state survives disconnect")

	obs.Observe("c")
	require.Zero(t, obs.Watching())
}

func TestObserverConcurrentDelivery(t *testing.T) {
	var mu sync.Mutex
	counts := map[string]int{}
	obs := NewObserver(DefaultOptions(), func(id string) {
		mu.Lock()
		counts[id]++
		mu.Unlock()
	})
	ids := []string{"a", "b", "c", "d"}
	obs.Observe(ids...)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			obs.Deliver(Entry{Target: ids[i%len(ids)], IsIntersecting: true, Ratio: 1})
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		require.Equal(t, 1, counts[id], "element %s revealed once", id)
	}
}

func TestRevealAll(t *testing.T) {
	obs := NewObserver(DefaultOptions(), nil)
	obs.Observe("a", "b")
	require.ElementsMatch(t, []string{"a", "b"}, obs.RevealAll())
	require.Zero(t, obs.Watching())
}

const page = `<!doctype html><html><head><script type="application/ld+json">{"a":"<b>"}</script></head>
<body><main id="main">
<section id="hero" data-reveal="eager" class="hero">Hero</section>
<section class="scroll-animate opacity-0">One</section>
<div class="card scroll-animate" data-reveal-id="card-x">Two</div>
<p class="plain">Three</p>
</main></body></html>`

func TestScan(t *testing.T) {
	ids, err := Scan(strings.NewReader(page))
	require.NoError(t, err)
	require.Equal(t, []string{"hero", "reveal-2", "card-x"}, ids)
}

func TestAnnotate(t *testing.T) {
	obs := NewObserver(DefaultOptions(), nil)
	out, err := AnnotateBytes([]byte(page), obs)
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(out))
	require.NoError(t, err)

	main := doc.Find("main")
	require.Equal(t, "0.1", main.AttrOr("data-reveal-threshold", ""))
	require.Equal(t, "0px 0px -50px 0px", main.AttrOr("data-reveal-margin", ""))

	hero := doc.Find("#hero")
	require.Equal(t, "hero", hero.AttrOr("data-reveal-id", ""))
	require.True(t, hero.HasClass(AnimateClass), "eager elements render revealed")

	second := doc.Find(`[data-reveal-id="reveal-2"]`)
	require.Equal(t, 1, second.Length())
	require.False(t, second.HasClass(AnimateClass))

	require.Equal(t, 2, obs.Watching())
	require.True(t, obs.Revealed("hero"))

	require.Contains(t, string(out), `{"a":"<b>"}`, "script bodies pass through untouched")
	require.Contains(t, string(out), `<p class="plain">Three</p>`)
}

func TestAnnotateRevealAllForCrawlers(t *testing.T) {
	obs := NewObserver(DefaultOptions(), nil)
	ids, err := Scan(strings.NewReader(page))
	require.NoError(t, err)
	obs.Observe(ids...)
	obs.RevealAll()

	out, err := AnnotateBytes([]byte(page), obs)
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(out))
	require.NoError(t, err)
	require.Equal(t, 3, doc.Find("."+AnimateClass).Length())
}
