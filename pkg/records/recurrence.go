package records

import "time"

// Frequency is the base repeat unit of a recurrence rule.
type Frequency int

// Frequencies in grammar order. Unknown input maps to Yearly.
const (
	Daily Frequency = iota
	Weekly
	Monthly
	Yearly
)

// String returns the grammar token for the frequency.
func (f Frequency) String() string {
	switch f {
	case Daily:
		return "DAILY"
	case Weekly:
		return "WEEKLY"
	case Monthly:
		return "MONTHLY"
	default:
		return "YEARLY"
	}
}

// Weekdays is a Monday-first day-of-week bitmask.
type Weekdays uint8

// Day-of-week bits.
const (
	Monday Weekdays = 1 << iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// Has reports whether every day in mask is set.
func (w Weekdays) Has(mask Weekdays) bool {
	return w&mask == mask
}

// RecurrenceRule is the structured description of a repeating event
// pattern. A rule terminates by Until, by Count, or not at all; Until takes
// precedence when both are present.
type RecurrenceRule struct {
	Frequency Frequency `yaml:"frequency"`
	Interval  int       `yaml:"interval,omitempty"`

	// Start and End carry the pattern's per-occurrence start and end
	// times; only their time of day is significant for timed events.
	Start time.Time `yaml:"start,omitempty"`
	End   time.Time `yaml:"end,omitempty"`

	// Until bounds the pattern by date when non-zero; Count bounds it by
	// occurrences when positive and Until is zero.
	Until time.Time `yaml:"until,omitempty"`
	Count int       `yaml:"count,omitempty"`

	DayOfMonth  int      `yaml:"day_of_month,omitempty"`
	Weekdays    Weekdays `yaml:"weekdays,omitempty"`
	MonthOfYear int      `yaml:"month_of_year,omitempty"`

	AllDay bool `yaml:"all_day,omitempty"`
}

// Bounded reports whether the rule has a hard end date.
func (r *RecurrenceRule) Bounded() bool {
	return !r.Until.IsZero()
}
