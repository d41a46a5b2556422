package filter

import "strings"

// Entry is a question/answer pair searchable by the FAQ search box.
type Entry interface {
	SearchText() (question, answer string)
}

// Section groups entries under a heading.
type Section[E Entry] struct {
	Key     string
	Title   string
	Entries []E
}

// Sections keeps, per section, the entries whose question or answer contains
// term (case-insensitive) and drops sections left without entries. An empty
// term returns every section unchanged.
func Sections[E Entry](sections []Section[E], term string) []Section[E] {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]Section[E], 0, len(sections))
	for _, s := range sections {
		if term == "" {
			s.Entries = append([]E(nil), s.Entries...)
			out = append(out, s)
			continue
		}
		kept := make([]E, 0, len(s.Entries))
		for _, e := range s.Entries {
			q, a := e.SearchText()
			if strings.Contains(strings.ToLower(q), term) || strings.Contains(strings.ToLower(a), term) {
				kept = append(kept, e)
			}
		}
		if len(kept) == 0 {
			continue
		}
		s.Entries = kept
		out = append(out, s)
	}
	return out
}
