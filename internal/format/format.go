package format

import (
	"fmt"
	"strings"
	"time"
)

// Date formats a publication date the way the blog shows it.
// Example: Date(2025-09-05) => "September 5, 2025"
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("January 2, 2006")
}

// ISODate formats t for <time datetime> attributes and structured data.
func ISODate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// ReadTime renders minutes as "8 min read".
func ReadTime(minutes int) string {
	if minutes <= 0 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}

// Area renders square feet with thousands separators: 4500 => "4,500 sq ft".
func Area(sqft int) string {
	return thousandSep(int64(sqft)) + " sq ft"
}

// Count renders n with thousands separators.
func Count(n int) string {
	return thousandSep(int64(n))
}

// Rupees formats whole rupees with Indian digit grouping: 1250000 =>
// "₹12,50,000".
func Rupees(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := fmt.Sprintf("%d", n)
	if len(s) > 3 {
		head, tail := s[:len(s)-3], s[len(s)-3:]
		var parts []string
		for len(head) > 2 {
			parts = append([]string{head[len(head)-2:]}, parts...)
			head = head[:len(head)-2]
		}
		if head != "" {
			parts = append([]string{head}, parts...)
		}
		s = strings.Join(parts, ",") + "," + tail
	}
	if neg {
		return "-₹" + s
	}
	return "₹" + s
}

func thousandSep(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	out := ""
	for i, c := range s {
		if i != 0 && (len(s)-i)%3 == 0 {
			out += ","
		}
		out += string(c)
	}
	if neg {
		return "-" + out
	}
	return out
}
