package common

import (
	"regexp"
	"strings"
	"time"
)

var (
	compactMonthDay = regexp.MustCompile(`(?i)\b(JAN|FEB|MAR|APR|MAY|JUN|JUL|AUG|SEP|OCT|NOV|DEC)\.?(\d{1,2})\b`)
	monthPeriod     = regexp.MustCompile(`(?i)\b(JAN|FEB|MAR|APR|MAY|JUN|JUL|AUG|SEP|OCT|NOV|DEC)\.`)
	multiSpace      = regexp.MustCompile(`\s+`)
)

// dateLayouts is tried in order; the first strict parse wins. Month-name-first
// layouts come before slash-delimited, ISO, then day-first forms.
var dateLayouts = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"Jan 2",
	"01/02/2006",
	"1/2/2006",
	"2006-01-02",
	"02/01/2006",
	"2 January 2006",
	"2 Jan 2006",
	"2 Jan 06",
	"2 Jan",
	"02/01/06",
}

// ParseFlexibleDate parses a date token from statement text. Compact
// month+day tokens (AUG12) are split before matching. When the source omits
// the year, the current year is assumed unless the parsed month is more than
// two months ahead of now, in which case the statement is taken to span a
// year boundary and the date is backdated by one year. Results are normalized
// to midnight UTC. Returns ok=false when no layout matches; callers treat
// that as "this is not a transaction line".
func ParseFlexibleDate(text string, now time.Time) (time.Time, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return time.Time{}, false
	}

	s = compactMonthDay.ReplaceAllString(s, "$1 $2")
	s = monthPeriod.ReplaceAllString(s, "$1")
	s = multiSpace.ReplaceAllString(s, " ")

	for _, layout := range dateLayouts {
		parsed, err := time.Parse(layout, s)
		if err != nil {
			continue
		}

		year := parsed.Year()
		if year == 0 {
			year = now.Year()
			if int(parsed.Month())-int(now.Month()) > 2 {
				year--
			}
		}

		return time.Date(year, parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), true
	}

	return time.Time{}, false
}
