// Package timeparse turns the messy timestamp and time-of-day strings found
// in platform exports and roster files into canonical values. Parsing is
// best-effort: every function reports failure through an ok bool and never
// returns an error.
package timeparse

import (
	"regexp"
	"strings"
	"time"
)

var (
	nonTimestampRunes = regexp.MustCompile(`[^0-9:/\-\s]`)
	colonRuns         = regexp.MustCompile(`:+`)
	gluedDateTime     = regexp.MustCompile(`(\d{2}/\d{2}/\d{4})(\d{1,2}:\d{1,2})`)
)

// timestampLayouts are tried in order; first success wins. Day precedes
// month in all slash/dash forms.
var timestampLayouts = []string{
	"2/1/2006 15:4:5",
	"2/1/2006 15:4",
	"2/1/2006",
	"2006-1-2 15:4:5",
	"2006-1-2 15:4",
	"2006-1-2",
	"2-1-2006 15:4",
	"2-1-2006",
	"2/1/06 15:4",
	"2/1/06",
}

// NormalizeTimestamp rewrites a raw timestamp string into a parseable shape:
// full-width colons and semicolons become colons, any other non-timestamp
// punctuation becomes a colon, colon runs collapse to one, and a date glued
// to a time gets a separating space. Applying it to already-clean input
// returns the input unchanged.
func NormalizeTimestamp(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "：", ":")
	s = strings.ReplaceAll(s, ";", ":")
	s = nonTimestampRunes.ReplaceAllString(s, ":")
	s = colonRuns.ReplaceAllString(s, ":")
	s = gluedDateTime.ReplaceAllString(s, "$1 $2")
	return s
}

// ParseTimestamp normalizes s and attempts each known layout in order.
// ok is false when nothing matches; the returned time is then zero.
func ParseTimestamp(s string) (time.Time, bool) {
	s = NormalizeTimestamp(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// timeTokenLayouts cover roster cells like "7am", "7 am", "07:30", "3pm"
// and "07:00 AM". Matching is case-insensitive because tokens are lowered
// before parsing.
var timeTokenLayouts = []string{
	"3:04 pm",
	"3 pm",
	"15:04:05",
	"15:04",
	"15",
}

// ParseTimeToken parses a time-of-day token into an offset from midnight.
// Periods in "a.m."/"p.m." and spaces inside the meridiem are tolerated.
func ParseTimeToken(s string) (time.Duration, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "nan" || s == "none" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, "a m", "am")
	s = strings.ReplaceAll(s, "p m", "pm")
	// ensure a single space before the meridiem so one layout shape covers
	// both "7am" and "7 am"
	s = strings.ReplaceAll(s, "am", " am")
	s = strings.ReplaceAll(s, "pm", " pm")
	s = strings.Join(strings.Fields(s), " ")
	for _, layout := range timeTokenLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return time.Duration(t.Hour())*time.Hour +
			time.Duration(t.Minute())*time.Minute +
			time.Duration(t.Second())*time.Second, true
	}
	return 0, false
}
