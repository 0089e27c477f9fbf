package recurrence_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pimsync/pimsync/pkg/records"
	"github.com/pimsync/pimsync/pkg/recurrence"
)

func TestDecodeWeekly(t *testing.T) {
	text := "DTSTART:20240102T090000Z\r\n" +
		"DTEND:20240102T100000Z\r\n" +
		"RRULE:FREQ=WEEKLY;UNTIL=20241231T000000Z;INTERVAL=2;BYDAY=TU,TH"

	rule := recurrence.Decode(text)

	assert.Equal(t, records.Weekly, rule.Frequency)
	assert.Equal(t, 2, rule.Interval)
	assert.True(t, rule.Weekdays.Has(records.Tuesday))
	assert.True(t, rule.Weekdays.Has(records.Thursday))
	assert.False(t, rule.Weekdays.Has(records.Monday))
	assert.True(t, rule.Bounded())
	assert.Equal(t, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), rule.Until)
	assert.Equal(t, time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC), rule.Start)
	assert.False(t, rule.AllDay)
}

func TestDecodeUnknownFrequencyFallsBackToYearly(t *testing.T) {
	rule := recurrence.Decode("RRULE:FREQ=FOO")
	assert.Equal(t, records.Yearly, rule.Frequency)
}

func TestDecodeUnknownWeekdayFallsBackToMonday(t *testing.T) {
	rule := recurrence.Decode("RRULE:FREQ=WEEKLY;BYDAY=XX")
	assert.True(t, rule.Weekdays.Has(records.Monday))
}

func TestDecodeUntilWinsOverCount(t *testing.T) {
	rule := recurrence.Decode("RRULE:FREQ=DAILY;UNTIL=20240601T000000Z;COUNT=10")

	assert.True(t, rule.Bounded())
	assert.Zero(t, rule.Count)
}

func TestDecodeCountOnly(t *testing.T) {
	rule := recurrence.Decode("RRULE:FREQ=DAILY;COUNT=10")

	assert.False(t, rule.Bounded())
	assert.Equal(t, 10, rule.Count)
}

func TestDecodeBareDateImpliesAllDay(t *testing.T) {
	rule := recurrence.Decode("DTSTART;VALUE=DATE:20240102\r\nRRULE:FREQ=DAILY")

	assert.True(t, rule.AllDay)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), rule.Start)
}

func TestDecodeEmptyText(t *testing.T) {
	rule := recurrence.Decode("")

	assert.Zero(t, rule.Interval)
	assert.False(t, rule.Bounded())
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	rule := records.RecurrenceRule{
		Frequency: records.Weekly,
		Interval:  2,
		Weekdays:  records.Tuesday | records.Thursday,
		Until:     time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		Start:     time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC),
		End:       time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC),
	}
	anchor := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)

	text := recurrence.Encode(rule, anchor, false)
	decoded := recurrence.Decode(text)

	assert.Equal(t, rule.Frequency, decoded.Frequency)
	assert.Equal(t, rule.Interval, decoded.Interval)
	assert.Equal(t, rule.Weekdays, decoded.Weekdays)
	assert.True(t, rule.Until.Equal(decoded.Until))
	assert.True(t, rule.Start.Equal(decoded.Start))
	assert.Zero(t, decoded.Count)
}

func TestEncodeLineLayout(t *testing.T) {
	rule := records.RecurrenceRule{
		Frequency: records.Weekly,
		Weekdays:  records.Tuesday,
		Start:     time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC),
	}
	anchor := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)

	text := recurrence.Encode(rule, anchor, false)
	lines := strings.Split(text, "\r\n")

	require.Len(t, lines, 3)
	assert.Equal(t, "DTSTART:20240102T090000Z", lines[0])
	assert.True(t, strings.HasPrefix(lines[2], "RRULE:FREQ=WEEKLY"))
	assert.Contains(t, lines[2], "BYDAY=TU")
}

func TestEncodeAllDayUsesDateValues(t *testing.T) {
	rule := records.RecurrenceRule{Frequency: records.Daily}
	anchor := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	text := recurrence.Encode(rule, anchor, true)

	assert.Contains(t, text, "DTSTART;VALUE=DATE:20240102")
	assert.Contains(t, text, "DTEND;VALUE=DATE:20240102")
}

func TestEncodeYearlyIntervalDenominatedInMonths(t *testing.T) {
	anchor := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	// Twelve months is one year: no interval token.
	every := records.RecurrenceRule{Frequency: records.Yearly, Interval: 12}
	assert.NotContains(t, recurrence.Encode(every, anchor, false), "INTERVAL")

	// Thirty-six months spans multiple years and carries information.
	triennial := records.RecurrenceRule{Frequency: records.Yearly, Interval: 36}
	assert.Contains(t, recurrence.Encode(triennial, anchor, false), "INTERVAL=36")
}

func TestEncodeMonthlyByMonthDay(t *testing.T) {
	rule := records.RecurrenceRule{Frequency: records.Monthly, DayOfMonth: 15}
	anchor := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	text := recurrence.Encode(rule, anchor, false)

	assert.Contains(t, text, "FREQ=MONTHLY")
	assert.Contains(t, text, "BYMONTHDAY=15")
}

func TestEncodeCountOmittedWhenBounded(t *testing.T) {
	rule := records.RecurrenceRule{
		Frequency: records.Daily,
		Until:     time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Count:     5,
	}
	anchor := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	text := recurrence.Encode(rule, anchor, false)

	assert.Contains(t, text, "UNTIL=")
	assert.NotContains(t, text, "COUNT=")
}

func TestParseDateFormats(t *testing.T) {
	ts, allDay, ok := recurrence.ParseDate("20240102T090000")
	require.True(t, ok)
	assert.False(t, allDay)
	assert.Equal(t, 9, ts.Hour())

	ts, allDay, ok = recurrence.ParseDate("20240102T090000Z")
	require.True(t, ok)
	assert.False(t, allDay)
	assert.Equal(t, time.UTC, ts.Location())

	_, allDay, ok = recurrence.ParseDate("20240102")
	require.True(t, ok)
	assert.True(t, allDay)

	_, _, ok = recurrence.ParseDate("not-a-date")
	assert.False(t, ok)
}

func TestFormatWeekdays(t *testing.T) {
	assert.Equal(t, "TU,TH", recurrence.FormatWeekdays(records.Tuesday|records.Thursday))
	assert.Equal(t, "MO", recurrence.FormatWeekdays(0))
}
