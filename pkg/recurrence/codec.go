// Package recurrence converts between structured recurrence rules and the
// textual rule grammar the remote store speaks: DTSTART/DTEND lines followed
// by a single semicolon-delimited RRULE line. Decoding is best-effort and
// never fails; malformed or unknown tokens fall back to documented defaults.
package recurrence

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pimsync/pimsync/pkg/records"
)

// Date literal formats accepted by the grammar. A bare date implies an
// all-day event.
const (
	formatTimestamp    = "20060102T150405"
	formatTimestampUTC = "20060102T150405Z"
	formatDate         = "20060102"
)

var (
	startRe    = regexp.MustCompile(`DTSTART\S*:(\w+)`)
	endRe      = regexp.MustCompile(`DTEND\S*:(\w+)`)
	ruleRe     = regexp.MustCompile(`RRULE:(\S+)`)
	freqRe     = regexp.MustCompile(`FREQ=(\w+)`)
	monthDayRe = regexp.MustCompile(`BYMONTHDAY=(\d+)`)
	weekDayRe  = regexp.MustCompile(`BYDAY=([\w,]+)`)
	monthRe    = regexp.MustCompile(`BYMONTH=(\w+)`)
	intervalRe = regexp.MustCompile(`INTERVAL=(\d+)`)
	countRe    = regexp.MustCompile(`COUNT=(\d+)`)
	untilRe    = regexp.MustCompile(`UNTIL=(\w+)`)
)

var weekdayTokens = []struct {
	token string
	day   records.Weekdays
}{
	{"MO", records.Monday},
	{"TU", records.Tuesday},
	{"WE", records.Wednesday},
	{"TH", records.Thursday},
	{"FR", records.Friday},
	{"SA", records.Saturday},
	{"SU", records.Sunday},
}

// ParseFrequency maps a FREQ token to a frequency. Unknown tokens map to
// Yearly; this is the documented fallback, not an error.
func ParseFrequency(token string) records.Frequency {
	switch token {
	case "DAILY":
		return records.Daily
	case "WEEKLY":
		return records.Weekly
	case "MONTHLY":
		return records.Monthly
	default:
		return records.Yearly
	}
}

// ParseWeekdays maps a comma-separated BYDAY token list to a day bitmask.
// Unknown tokens map to Monday.
func ParseWeekdays(token string) records.Weekdays {
	var mask records.Weekdays
	for _, part := range strings.Split(token, ",") {
		mask |= parseWeekday(strings.TrimSpace(part))
	}
	return mask
}

func parseWeekday(token string) records.Weekdays {
	for _, wt := range weekdayTokens {
		if wt.token == token {
			return wt.day
		}
	}
	return records.Monday
}

// FormatWeekdays renders a day bitmask as a comma-separated BYDAY token
// list. An empty mask renders as Monday.
func FormatWeekdays(mask records.Weekdays) string {
	var tokens []string
	for _, wt := range weekdayTokens {
		if mask.Has(wt.day) {
			tokens = append(tokens, wt.token)
		}
	}
	if len(tokens) == 0 {
		return "MO"
	}
	return strings.Join(tokens, ",")
}

// ParseDate parses a date literal in any of the three grammar formats. The
// second result reports whether the literal was a bare date, which implies
// an all-day event.
func ParseDate(s string) (t time.Time, allDay, ok bool) {
	if t, err := time.Parse(formatTimestampUTC, s); err == nil {
		return t, false, true
	}
	if t, err := time.Parse(formatDate, s); err == nil {
		return t, true, true
	}
	if t, err := time.Parse(formatTimestamp, s); err == nil {
		return t, false, true
	}
	return time.Time{}, false, false
}

// Decode parses a recurrence rule text into a structured rule. Unknown or
// malformed tokens are skipped; the parse as a whole never fails. When both
// UNTIL and COUNT appear, UNTIL wins and COUNT is dropped, matching the
// grammar's termination precedence.
func Decode(text string) records.RecurrenceRule {
	var rule records.RecurrenceRule

	if m := startRe.FindStringSubmatch(text); m != nil {
		if t, allDay, ok := ParseDate(m[1]); ok {
			rule.Start = t
			rule.AllDay = allDay
		}
	}
	if m := endRe.FindStringSubmatch(text); m != nil {
		if t, allDay, ok := ParseDate(m[1]); ok {
			rule.End = t
			rule.AllDay = allDay
		}
	}

	m := ruleRe.FindStringSubmatch(text)
	if m == nil {
		return rule
	}

	for _, token := range strings.Split(m[1], ";") {
		switch {
		case freqRe.MatchString(token):
			rule.Frequency = ParseFrequency(freqRe.FindStringSubmatch(token)[1])
		case monthDayRe.MatchString(token):
			if n, err := strconv.Atoi(monthDayRe.FindStringSubmatch(token)[1]); err == nil {
				rule.DayOfMonth = n
			}
		case weekDayRe.MatchString(token):
			rule.Weekdays = ParseWeekdays(weekDayRe.FindStringSubmatch(token)[1])
		case monthRe.MatchString(token):
			if n, err := strconv.Atoi(monthRe.FindStringSubmatch(token)[1]); err == nil {
				rule.MonthOfYear = n
			}
		case intervalRe.MatchString(token):
			if n, err := strconv.Atoi(intervalRe.FindStringSubmatch(token)[1]); err == nil {
				rule.Interval = n
			}
		case untilRe.MatchString(token):
			if t, _, ok := ParseDate(untilRe.FindStringSubmatch(token)[1]); ok {
				rule.Until = t
			}
		case countRe.MatchString(token):
			if n, err := strconv.Atoi(countRe.FindStringSubmatch(token)[1]); err == nil {
				rule.Count = n
			}
		}
	}

	// UNTIL and COUNT are mutually exclusive terminations; UNTIL wins.
	if rule.Bounded() {
		rule.Count = 0
	}

	return rule
}

// Encode renders a structured rule as grammar text: DTSTART/DTEND lines
// anchored to the given date, then one RRULE line carrying only the tokens
// that hold information.
func Encode(rule records.RecurrenceRule, anchor time.Time, allDay bool) string {
	anchorDate := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, anchor.Location())
	start := anchorDate.Add(timeOfDay(rule.Start))
	end := anchorDate.Add(timeOfDay(rule.End))

	var lines []string
	if allDay {
		lines = []string{
			fmt.Sprintf("DTSTART;VALUE=DATE:%s", start.Format(formatDate)),
			fmt.Sprintf("DTEND;VALUE=DATE:%s", end.Format(formatDate)),
		}
	} else {
		lines = []string{
			fmt.Sprintf("DTSTART:%s", start.UTC().Format(formatTimestampUTC)),
			fmt.Sprintf("DTEND:%s", end.UTC().Format(formatTimestampUTC)),
		}
	}

	tokens := []string{fmt.Sprintf("FREQ=%s", rule.Frequency)}

	if rule.Bounded() {
		tokens = append(tokens, fmt.Sprintf("UNTIL=%s", rule.Until.UTC().Format(formatTimestampUTC)))
	}

	// Yearly intervals arrive denominated in months; only a span beyond one
	// whole year carries information.
	if (rule.Frequency == records.Yearly && rule.Interval/12 > 1) ||
		(rule.Frequency != records.Yearly && rule.Interval > 1) {
		tokens = append(tokens, fmt.Sprintf("INTERVAL=%d", rule.Interval))
	}

	if !rule.Bounded() && rule.Count > 0 {
		tokens = append(tokens, fmt.Sprintf("COUNT=%d", rule.Count))
	}

	switch rule.Frequency {
	case records.Weekly:
		tokens = append(tokens, fmt.Sprintf("BYDAY=%s", FormatWeekdays(rule.Weekdays)))
	case records.Daily, records.Monthly, records.Yearly:
		if rule.MonthOfYear > 0 {
			tokens = append(tokens, fmt.Sprintf("BYMONTH=%d", rule.MonthOfYear))
		}
		if rule.DayOfMonth > 0 {
			tokens = append(tokens, fmt.Sprintf("BYMONTHDAY=%d", rule.DayOfMonth))
		}
	}

	lines = append(lines, fmt.Sprintf("RRULE:%s", strings.Join(tokens, ";")))
	return strings.Join(lines, "\r\n")
}

// timeOfDay returns the duration since midnight of t, in t's location.
func timeOfDay(t time.Time) time.Duration {
	h, m, s := t.Clock()
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second
}
