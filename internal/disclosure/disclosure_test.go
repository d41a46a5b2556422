package disclosure

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToggleScenario(t *testing.T) {
	var s State
	_, open := s.Open("faq")
	require.False(t, open, "groups start closed")

	s.Toggle("faq", 2)
	i, open := s.Open("faq")
	require.True(t, open)
	require.Equal(t, 2, i)

	s.Toggle("faq", 0)
	i, open = s.Open("faq")
	require.True(t, open)
	require.Equal(t, 0, i)

	s.Toggle("faq", 0)
	_, open = s.Open("faq")
	require.False(t, open)
}

func TestToggleTwiceCloses(t *testing.T) {
	for _, group := range []string{"faq", "residential", "footer"} {
		for i := 0; i < 5; i++ {
			var s State
			s.Toggle(group, i)
			s.Toggle(group, i)
			_, open := s.Open(group)
			require.False(t, open, "group %s index %d", group, i)
		}
	}
}

func TestAtMostOneOpenPerGroup(t *testing.T) {
	var s State
	for _, i := range []int{3, 1, 4, 0, 2} {
		s.Toggle("faq", i)
	}
	for i := 0; i < 5; i++ {
		require.Equal(t, i == 2, s.IsOpen("faq", i), "index %d", i)
	}
}

func TestGroupsAreIndependent(t *testing.T) {
	var s State
	s.Toggle("residential", 1)
	s.Toggle("kitchen", 0)
	s.Toggle("residential", 3)

	require.True(t, s.IsOpen("kitchen", 0))
	require.True(t, s.IsOpen("residential", 3))
	require.False(t, s.IsOpen("residential", 1))
}

func TestNegativeIndexIgnored(t *testing.T) {
	var s State
	s.Toggle("faq", -1)
	require.Empty(t, s.Encode())
}

func TestEncodeParseRoundTrip(t *testing.T) {
	var s State
	s.Toggle("kitchen", 0)
	s.Toggle("faq", 2)
	require.Equal(t, "faq:2,kitchen:0", s.Encode())

	parsed := Parse(s.Encode())
	require.True(t, parsed.IsOpen("faq", 2))
	require.True(t, parsed.IsOpen("kitchen", 0))
}

func TestParseSkipsMalformedPairs(t *testing.T) {
	s := Parse("faq:1,,bad,Upper:2,x:-1,y:z,faq:3")
	require.Equal(t, "faq:3", s.Encode())
}

func TestToggleQueryPreservesOtherParams(t *testing.T) {
	base := url.Values{"category": {"Vastu"}, QueryKey: {"faq:1"}}
	s := FromQuery(base)

	next := ToggleQuery(base, s, "faq", 4)
	require.Equal(t, "Vastu", next.Get("category"))
	require.Equal(t, "faq:4", next.Get(QueryKey))

	closed := ToggleQuery(base, s, "faq", 1)
	require.Empty(t, closed.Get(QueryKey))
	_, present := closed[QueryKey]
	require.False(t, present)

	require.True(t, s.IsOpen("faq", 1), "toggling a query must not mutate the source state")
	require.Equal(t, "faq:1", base.Get(QueryKey))
}
