package merge

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pimsync/pimsync/pkg/records"
)

func sampleEvent() *records.EventRecord {
	return &records.EventRecord{
		LocalID:  "e1",
		Subject:  "Team standup",
		Location: "Room 4",
		Start:    time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC),
		End:      time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC),
		Reminder: records.Reminder{Enabled: true, LeadMinutes: records.LeadMinutes(0, 0, 30)},
	}
}

func TestEventMergeIdempotent(t *testing.T) {
	src := sampleEvent()
	dst := &records.EventRecord{LocalID: "d1"}

	assert.True(t, Event(dst, src))
	assert.Equal(t, "Team standup", dst.Subject)
	assert.True(t, dst.Start.Equal(src.Start))
	assert.True(t, dst.Reminder.Enabled)
	assert.Equal(t, 30, dst.Reminder.LeadMinutes)
	assert.Equal(t, records.BusyStatusBusy, dst.Busy)
	assert.Equal(t, records.SensitivityNormal, dst.Sensitivity)

	assert.False(t, Event(dst, src))
}

func TestEventMergeSourceWithoutTimes(t *testing.T) {
	src := &records.EventRecord{Subject: "Renamed"}
	dst := sampleEvent()

	assert.True(t, Event(dst, src))
	assert.Equal(t, "Renamed", dst.Subject)
	// Times survive when the source carries none.
	assert.False(t, dst.Start.IsZero())
}

func TestEventMergeReminderDisable(t *testing.T) {
	src := sampleEvent()
	src.Reminder = records.Reminder{Enabled: false}
	dst := sampleEvent()

	assert.True(t, Event(dst, src))
	assert.False(t, dst.Reminder.Enabled)
	// The lead time is kept for a later re-enable.
	assert.Equal(t, 30, dst.Reminder.LeadMinutes)
}

func TestEventMergeClearsRecurrence(t *testing.T) {
	src := sampleEvent()
	dst := sampleEvent()
	dst.Recurrence = &records.RecurrenceRule{Frequency: records.Weekly}
	dst.RecurrenceText = "RRULE:FREQ=WEEKLY;BYDAY=TU"

	assert.True(t, Event(dst, src))
	assert.Nil(t, dst.Recurrence)
	assert.Empty(t, dst.RecurrenceText)
}

func TestEventMergeRecurringThroughCodec(t *testing.T) {
	src := sampleEvent()
	src.Recurrence = &records.RecurrenceRule{
		Frequency: records.Weekly,
		Weekdays:  records.Tuesday | records.Thursday,
		Until:     time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		Start:     src.Start,
		End:       src.End,
	}
	dst := &records.EventRecord{}

	assert.True(t, Event(dst, src))

	require.NotNil(t, dst.Recurrence)
	assert.Equal(t, records.Weekly, dst.Recurrence.Frequency)
	assert.True(t, dst.Recurrence.Weekdays.Has(records.Tuesday))
	assert.True(t, dst.Recurrence.Weekdays.Has(records.Thursday))
	assert.True(t, dst.Recurrence.Bounded())
	assert.True(t, strings.Contains(dst.RecurrenceText, "RRULE:FREQ=WEEKLY"))

	// Merging again is a no-op: the encoded text is stable.
	assert.False(t, Event(dst, src))
}

func TestEventMergeRecurringPrefersSourceText(t *testing.T) {
	src := sampleEvent()
	src.RecurrenceText = "DTSTART:20240102T090000Z\r\nRRULE:FREQ=MONTHLY;BYMONTHDAY=2"
	dst := &records.EventRecord{}

	Event(dst, src)

	require.NotNil(t, dst.Recurrence)
	assert.Equal(t, records.Monthly, dst.Recurrence.Frequency)
	assert.Equal(t, 2, dst.Recurrence.DayOfMonth)
	assert.Equal(t, src.RecurrenceText, dst.RecurrenceText)
}

func TestEventMergeAttendees(t *testing.T) {
	src := sampleEvent()
	src.Organizer = "boss@example.com"
	src.Attendees = []records.Attendee{
		{Email: "a@example.com", Role: records.RoleRequired},
		{Email: "b@example.com"},
		{Email: "boss@example.com"}, // organizer never becomes an attendee
	}
	dst := sampleEvent()
	dst.Attendees = []records.Attendee{{Email: "gone@example.com"}}

	assert.True(t, Event(dst, src))

	require.Len(t, dst.Attendees, 2)
	assert.True(t, dst.HasAttendee("a@example.com"))
	assert.True(t, dst.HasAttendee("b@example.com"))
	assert.False(t, dst.HasAttendee("gone@example.com"))
	assert.False(t, dst.HasAttendee("boss@example.com"))

	// Missing role defaults to optional.
	for _, a := range dst.Attendees {
		if a.Email == "b@example.com" {
			assert.Equal(t, records.RoleOptional, a.Role)
		}
	}
}
