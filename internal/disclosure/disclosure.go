// Package disclosure tracks accordion state: for each named group, at most one
// item index is open.
package disclosure

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// QueryKey is the query parameter carrying the encoded state.
const QueryKey = "open"

// State maps a group to its open index. Groups absent from the map are closed.
// The zero value is ready to use.
type State struct {
	open map[string]int
}

// Toggle closes the group when i is already open, otherwise opens i and
// implicitly closes whatever was open before.
func (s *State) Toggle(group string, i int) {
	if i < 0 {
		return
	}
	if cur, ok := s.open[group]; ok && cur == i {
		delete(s.open, group)
		return
	}
	if s.open == nil {
		s.open = map[string]int{}
	}
	s.open[group] = i
}

// Open returns the open index of a group.
func (s State) Open(group string) (int, bool) {
	i, ok := s.open[group]
	return i, ok
}

// IsOpen reports whether item i of group is expanded.
func (s State) IsOpen(group string, i int) bool {
	cur, ok := s.open[group]
	return ok && cur == i
}

// Close collapses a group.
func (s *State) Close(group string) {
	delete(s.open, group)
}

// Clone returns an independent copy.
func (s State) Clone() State {
	if len(s.open) == 0 {
		return State{}
	}
	cp := make(map[string]int, len(s.open))
	for k, v := range s.open {
		cp[k] = v
	}
	return State{open: cp}
}

// Encode renders the state as "group:index" pairs sorted by group, e.g.
// "faq:2,kitchen:0". Closed state encodes to "".
func (s State) Encode() string {
	if len(s.open) == 0 {
		return ""
	}
	groups := make([]string, 0, len(s.open))
	for g := range s.open {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		parts = append(parts, g+":"+strconv.Itoa(s.open[g]))
	}
	return strings.Join(parts, ",")
}

// Parse decodes Encode output. Malformed pairs are skipped; when a group
// repeats, the last pair wins so the one-open-per-group rule still holds.
func Parse(raw string) State {
	var s State
	for _, part := range strings.Split(raw, ",") {
		group, idx, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok || !validGroup(group) {
			continue
		}
		i, err := strconv.Atoi(idx)
		if err != nil || i < 0 {
			continue
		}
		if s.open == nil {
			s.open = map[string]int{}
		}
		s.open[group] = i
	}
	return s
}

// FromQuery reads the state from the request query.
func FromQuery(q url.Values) State {
	return Parse(q.Get(QueryKey))
}

// ToggleQuery returns a copy of base with the state after toggling (group, i)
// encoded under QueryKey. Other parameters are preserved.
func ToggleQuery(base url.Values, s State, group string, i int) url.Values {
	next := s.Clone()
	next.Toggle(group, i)
	out := url.Values{}
	for k, v := range base {
		out[k] = append([]string(nil), v...)
	}
	if enc := next.Encode(); enc != "" {
		out.Set(QueryKey, enc)
	} else {
		out.Del(QueryKey)
	}
	return out
}

func validGroup(g string) bool {
	if g == "" {
		return false
	}
	for _, r := range g {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}
