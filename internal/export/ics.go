// Package export renders canonical records into interchange formats.
package export

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/pimsync/pimsync/pkg/records"
	"github.com/pimsync/pimsync/pkg/recurrence"
)

// ICS writes the given events as an iCalendar stream. Recurring events carry
// their rule text; all-day events use date-valued start and end.
func ICS(_ context.Context, w io.Writer, events []*records.EventRecord) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//pimsync//EN")

	for i, e := range events {
		id := e.LocalID
		if id == "" {
			id = e.RemoteID
		}
		if id == "" {
			id = fmt.Sprintf("event-%d", i)
		}

		ve := cal.AddEvent(id)
		ve.SetSummary(e.Subject)
		if e.Body != "" {
			ve.SetDescription(e.Body)
		}
		if e.Location != "" {
			ve.SetLocation(e.Location)
		}
		if e.Organizer != "" {
			ve.SetOrganizer("mailto:" + e.Organizer)
		}
		for _, a := range e.Attendees {
			ve.AddAttendee(a.Email)
		}
		if !e.ModifiedAt.IsZero() {
			ve.SetModifiedAt(e.ModifiedAt)
		}

		if e.AllDay {
			ve.SetAllDayStartAt(e.Start)
			end := e.End
			if end.IsZero() {
				end = e.Start.Add(24 * time.Hour)
			}
			ve.SetAllDayEndAt(end)
		} else {
			ve.SetStartAt(e.Start.UTC())
			if !e.End.IsZero() {
				ve.SetEndAt(e.End.UTC())
			}
		}

		if rule := ruleText(e); rule != "" {
			ve.AddRrule(rule)
		}
	}

	_, err := io.WriteString(w, cal.Serialize())
	return err
}

// ruleText extracts the bare RRULE value, without its property name or the
// DTSTART/DTEND lines the internal grammar carries.
func ruleText(e *records.EventRecord) string {
	text := e.RecurrenceText
	if text == "" && e.Recurrence != nil {
		text = recurrence.Encode(*e.Recurrence, e.Start, e.AllDay)
	}
	for _, line := range strings.Split(text, "\r\n") {
		if value, ok := strings.CutPrefix(line, "RRULE:"); ok {
			return value
		}
	}
	return ""
}
