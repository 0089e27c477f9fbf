package merge

import (
	"strings"
	"time"

	"github.com/pimsync/pimsync/pkg/records"
	"github.com/pimsync/pimsync/pkg/recurrence"
)

// Event merges the source event into the destination in place and reports
// whether the destination changed. Direct time fields are merged only for
// non-recurring events; a recurring source is merged through the recurrence
// codec instead.
func Event(dst, src *records.EventRecord) bool {
	changed := false

	changed = ApplyString(&dst.Subject, src.Subject) || changed
	changed = ApplyString(&dst.Body, src.Body) || changed
	changed = ApplyString(&dst.Location, src.Location) || changed
	changed = Apply(&dst.Busy, records.ParseBusyStatus(string(src.Busy))) || changed
	changed = Apply(&dst.Sensitivity, records.ParseSensitivity(string(src.Sensitivity))) || changed

	changed = mergeAttendees(dst, src) || changed

	if src.Recurring() {
		changed = mergeRecurrence(dst, src) || changed
	} else {
		changed = mergeTimes(dst, src) || changed
		changed = clearRecurrence(dst) || changed
	}

	return changed
}

// mergeAttendees reconciles the attendee set by email identity: source
// attendees missing on the destination are added, destination attendees
// absent from the source are removed. The organizer never appears as an
// attendee on either side.
func mergeAttendees(dst, src *records.EventRecord) bool {
	changed := false

	for _, a := range src.Attendees {
		email := strings.TrimSpace(a.Email)
		if email == "" || strings.EqualFold(email, dst.Organizer) || strings.EqualFold(email, src.Organizer) {
			continue
		}
		if dst.HasAttendee(email) {
			continue
		}
		role := a.Role
		if role == "" {
			role = records.RoleOptional
		}
		dst.Attendees = append(dst.Attendees, records.Attendee{Email: email, Role: role})
		changed = true
	}

	kept := dst.Attendees[:0]
	for _, a := range dst.Attendees {
		if src.HasAttendee(a.Email) {
			kept = append(kept, a)
		} else {
			changed = true
		}
	}
	dst.Attendees = kept

	return changed
}

// mergeTimes copies the start/end/all-day triple and the reminder for a
// non-recurring source. A source without times contributes nothing.
func mergeTimes(dst, src *records.EventRecord) bool {
	if src.Start.IsZero() {
		return false
	}

	changed := Apply(&dst.AllDay, src.AllDay)
	changed = ApplyTime(&dst.Start, src.Start) || changed
	changed = ApplyTime(&dst.End, src.End) || changed

	if src.Reminder.Enabled {
		changed = Apply(&dst.Reminder.Enabled, true) || changed
		changed = Apply(&dst.Reminder.LeadMinutes, src.Reminder.LeadMinutes) || changed
	} else {
		changed = Apply(&dst.Reminder.Enabled, false) || changed
	}

	return changed
}

// mergeRecurrence translates the source's pattern through the rule grammar
// and applies it field by field to the destination's structured rule.
func mergeRecurrence(dst, src *records.EventRecord) bool {
	text := src.RecurrenceText
	if strings.TrimSpace(text) == "" && src.Recurrence != nil {
		text = recurrence.Encode(*src.Recurrence, src.Start, src.AllDay)
	}

	rule := recurrence.Decode(text)

	changed := false
	if dst.Recurrence == nil {
		dst.Recurrence = &records.RecurrenceRule{}
		changed = true
	}
	pattern := dst.Recurrence

	changed = Apply(&dst.AllDay, rule.AllDay) || changed
	changed = Apply(&pattern.AllDay, rule.AllDay) || changed
	changed = Apply(&pattern.Frequency, rule.Frequency) || changed
	changed = Apply(&pattern.DayOfMonth, rule.DayOfMonth) || changed
	changed = Apply(&pattern.Weekdays, rule.Weekdays) || changed
	changed = Apply(&pattern.MonthOfYear, rule.MonthOfYear) || changed

	if rule.Bounded() {
		changed = ApplyTime(&pattern.Until, rule.Until) || changed
		if pattern.Count != 0 {
			pattern.Count = 0
			changed = true
		}
	} else {
		if !pattern.Until.IsZero() {
			pattern.Until = time.Time{}
			changed = true
		}
		if rule.Count > 0 {
			changed = Apply(&pattern.Count, rule.Count) || changed
		}
	}

	if rule.Interval > 0 {
		changed = Apply(&pattern.Interval, rule.Interval) || changed
	}
	if !rule.Start.IsZero() {
		changed = ApplyTime(&pattern.Start, rule.Start) || changed
	}
	if !rule.End.IsZero() {
		changed = ApplyTime(&pattern.End, rule.End) || changed
	}

	changed = ApplyString(&dst.RecurrenceText, text) || changed

	return changed
}

// clearRecurrence drops an existing pattern when the source no longer
// repeats.
func clearRecurrence(dst *records.EventRecord) bool {
	if !dst.Recurring() {
		return false
	}
	dst.Recurrence = nil
	dst.RecurrenceText = ""
	return true
}
