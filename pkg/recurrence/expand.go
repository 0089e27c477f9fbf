package recurrence

import (
	"time"

	"github.com/teambition/rrule-go"

	"github.com/pimsync/pimsync/pkg/records"
)

// defaultMaxOccurrences caps expansion so an open-ended rule cannot produce
// an unbounded slice.
const defaultMaxOccurrences = 1000

// ExpandOptions controls occurrence expansion.
type ExpandOptions struct {
	// From and To bound the inclusive expansion window.
	From time.Time
	To   time.Time

	// Max caps the number of occurrences returned. Zero means
	// defaultMaxOccurrences.
	Max int
}

// Occurrences expands a structured rule into concrete start instants within
// the given window, anchored at the event's start. It is used to preview a
// decoded rule and to verify that a merge preserved the pattern.
func Occurrences(rule records.RecurrenceRule, anchor time.Time, opts ExpandOptions) ([]time.Time, error) {
	if opts.Max <= 0 {
		opts.Max = defaultMaxOccurrences
	}

	option := rrule.ROption{
		Freq:    rruleFrequency(rule.Frequency),
		Dtstart: anchor,
	}
	if rule.Interval > 1 {
		option.Interval = rule.Interval
	}
	if rule.Bounded() {
		option.Until = rule.Until
	} else if rule.Count > 0 {
		option.Count = rule.Count
	}
	if rule.Frequency == records.Weekly {
		option.Byweekday = rruleWeekdays(rule.Weekdays)
	}
	if rule.DayOfMonth > 0 {
		option.Bymonthday = []int{rule.DayOfMonth}
	}
	if rule.MonthOfYear > 0 {
		option.Bymonth = []int{rule.MonthOfYear}
	}

	r, err := rrule.NewRRule(option)
	if err != nil {
		return nil, err
	}

	times := r.Between(opts.From, opts.To, true)
	if len(times) > opts.Max {
		times = times[:opts.Max]
	}
	return times, nil
}

func rruleFrequency(f records.Frequency) rrule.Frequency {
	switch f {
	case records.Daily:
		return rrule.DAILY
	case records.Weekly:
		return rrule.WEEKLY
	case records.Monthly:
		return rrule.MONTHLY
	default:
		return rrule.YEARLY
	}
}

func rruleWeekdays(mask records.Weekdays) []rrule.Weekday {
	table := []struct {
		day records.Weekdays
		wd  rrule.Weekday
	}{
		{records.Monday, rrule.MO},
		{records.Tuesday, rrule.TU},
		{records.Wednesday, rrule.WE},
		{records.Thursday, rrule.TH},
		{records.Friday, rrule.FR},
		{records.Saturday, rrule.SA},
		{records.Sunday, rrule.SU},
	}

	var days []rrule.Weekday
	for _, entry := range table {
		if mask.Has(entry.day) {
			days = append(days, entry.wd)
		}
	}
	return days
}
