package records

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBirthday(t *testing.T) {
	full, ok := ParseBirthday("1990-04-12")
	require.True(t, ok)
	assert.Equal(t, 1990, full.Year())
	assert.Equal(t, "1990-04-12", FormatBirthday(full))

	noYear, ok := ParseBirthday("--04-12")
	require.True(t, ok)
	assert.Zero(t, noYear.Year())
	assert.Equal(t, time.April, noYear.Month())
	assert.Equal(t, "--04-12", FormatBirthday(noYear))

	_, ok = ParseBirthday("April 12th")
	assert.False(t, ok)

	assert.Empty(t, FormatBirthday(time.Time{}))
}

func TestFormatPhone(t *testing.T) {
	assert.Equal(t, " +441234567", FormatPhone("+441234567"))
	assert.Equal(t, "01234567", FormatPhone("01234567"))
	assert.Empty(t, FormatPhone("   "))
}

func TestFormatPhoneIsAFixedPoint(t *testing.T) {
	for _, number := range []string{"+441234567", " +441234567", "  +441234567", "01234567"} {
		once := FormatPhone(number)
		assert.Equal(t, once, FormatPhone(once), number)
	}
}

func TestLeadMinutes(t *testing.T) {
	assert.Equal(t, 1470, LeadMinutes(1, 0, 30))
	assert.Equal(t, 90, LeadMinutes(0, 1, 30))
}

func TestParseBusyStatusDefaults(t *testing.T) {
	assert.Equal(t, BusyStatusFree, ParseBusyStatus("free"))
	assert.Equal(t, BusyStatusFree, ParseBusyStatus("transparent"))
	assert.Equal(t, BusyStatusBusy, ParseBusyStatus(""))
	assert.Equal(t, BusyStatusBusy, ParseBusyStatus("opaque"))
}

func TestParseSensitivityDefaults(t *testing.T) {
	assert.Equal(t, SensitivityPrivate, ParseSensitivity("private"))
	assert.Equal(t, SensitivityNormal, ParseSensitivity(""))
	assert.Equal(t, SensitivityNormal, ParseSensitivity("whatever"))
}

func TestPrimaryEmail(t *testing.T) {
	c := &ContactRecord{
		Emails: []EmailAddress{
			{Address: "second@example.com"},
			{Address: "primary@example.com", Primary: true},
		},
	}
	assert.Equal(t, "primary@example.com", c.PrimaryEmail())

	c.Emails[1].Primary = false
	assert.Equal(t, "second@example.com", c.PrimaryEmail())

	assert.Empty(t, (&ContactRecord{}).PrimaryEmail())
}

func TestCloneIsDeep(t *testing.T) {
	c := &ContactRecord{
		FullName: "Alice",
		Emails:   []EmailAddress{{Address: "a@example.com"}},
	}
	clone := c.Clone()
	clone.Emails[0].Address = "mutated"
	assert.Equal(t, "a@example.com", c.Emails[0].Address)

	e := &EventRecord{Recurrence: &RecurrenceRule{Frequency: Weekly}}
	eClone := e.Clone()
	eClone.Recurrence.Frequency = Daily
	assert.Equal(t, Weekly, e.Recurrence.Frequency)
}
