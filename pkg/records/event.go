package records

import (
	"strings"
	"time"
)

// BusyStatus is the free/busy state of a calendar event.
type BusyStatus string

// Busy status values. Unknown input maps to Busy.
const (
	BusyStatusFree BusyStatus = "free"
	BusyStatusBusy BusyStatus = "busy"
)

// ParseBusyStatus maps a raw status token to a BusyStatus, defaulting to
// Busy for anything unrecognized.
func ParseBusyStatus(s string) BusyStatus {
	switch strings.ToLower(s) {
	case string(BusyStatusFree), "transparent", "tentative":
		return BusyStatusFree
	default:
		return BusyStatusBusy
	}
}

// Sensitivity is the visibility class of a calendar event.
type Sensitivity string

// Sensitivity values. Unknown input maps to Normal.
const (
	SensitivityNormal       Sensitivity = "normal"
	SensitivityPrivate      Sensitivity = "private"
	SensitivityConfidential Sensitivity = "confidential"
)

// ParseSensitivity maps a raw visibility token to a Sensitivity, defaulting
// to Normal for anything unrecognized.
func ParseSensitivity(s string) Sensitivity {
	switch strings.ToLower(s) {
	case string(SensitivityPrivate):
		return SensitivityPrivate
	case string(SensitivityConfidential):
		return SensitivityConfidential
	default:
		return SensitivityNormal
	}
}

// AttendeeRole is the participation requirement of an attendee.
type AttendeeRole string

// Attendee roles. Unknown input maps to Optional.
const (
	RoleRequired AttendeeRole = "required"
	RoleOptional AttendeeRole = "optional"
)

// Attendee is one event participant, excluding the organizer.
type Attendee struct {
	Email string       `yaml:"email"`
	Role  AttendeeRole `yaml:"role,omitempty"`
}

// Reminder is an event alert with its lead time before the start.
type Reminder struct {
	Enabled     bool `yaml:"enabled"`
	LeadMinutes int  `yaml:"lead_minutes,omitempty"`
}

// LeadMinutes converts a days/hours/minutes lead time into total minutes.
func LeadMinutes(days, hours, minutes int) int {
	return days*24*60 + hours*60 + minutes
}

// EventRecord is the canonical calendar event shape shared by both stores.
// Exactly one of Recurrence/RecurrenceText may be set by an adapter for a
// recurring event; a nil Recurrence with empty RecurrenceText means the
// event does not repeat.
type EventRecord struct {
	LocalID  string `yaml:"local_id,omitempty"`
	RemoteID string `yaml:"remote_id,omitempty"`

	Subject  string `yaml:"subject,omitempty"`
	Body     string `yaml:"body,omitempty"`
	Location string `yaml:"location,omitempty"`

	Busy        BusyStatus  `yaml:"busy,omitempty"`
	Sensitivity Sensitivity `yaml:"sensitivity,omitempty"`

	Start  time.Time `yaml:"start,omitempty"`
	End    time.Time `yaml:"end,omitempty"`
	AllDay bool      `yaml:"all_day,omitempty"`

	Reminder Reminder `yaml:"reminder,omitempty"`

	Organizer string     `yaml:"organizer,omitempty"`
	Attendees []Attendee `yaml:"attendees,omitempty"`

	Recurrence     *RecurrenceRule `yaml:"recurrence,omitempty"`
	RecurrenceText string          `yaml:"recurrence_text,omitempty"`

	ModifiedAt time.Time `yaml:"modified_at,omitempty"`
}

// Recurring reports whether the event repeats.
func (e *EventRecord) Recurring() bool {
	return e.Recurrence != nil || strings.TrimSpace(e.RecurrenceText) != ""
}

// HasAttendee reports whether the event carries the given attendee email,
// case-insensitively.
func (e *EventRecord) HasAttendee(email string) bool {
	for _, a := range e.Attendees {
		if strings.EqualFold(a.Email, email) {
			return true
		}
	}
	return false
}
