package recurrence_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pimsync/pimsync/pkg/records"
	"github.com/pimsync/pimsync/pkg/recurrence"
)

func TestOccurrencesWeekly(t *testing.T) {
	rule := records.RecurrenceRule{
		Frequency: records.Weekly,
		Weekdays:  records.Tuesday,
		Until:     time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	}
	anchor := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC) // a Tuesday

	occ, err := recurrence.Occurrences(rule, anchor, recurrence.ExpandOptions{
		From: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	// Tuesdays in January 2024 from the anchor: 2, 9, 16, 23, 30.
	require.Len(t, occ, 5)
	assert.True(t, occ[0].Equal(anchor))
	for _, o := range occ {
		assert.Equal(t, time.Tuesday, o.Weekday())
	}
}

func TestOccurrencesCount(t *testing.T) {
	rule := records.RecurrenceRule{
		Frequency: records.Daily,
		Count:     3,
	}
	anchor := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)

	occ, err := recurrence.Occurrences(rule, anchor, recurrence.ExpandOptions{
		From: anchor.Add(-time.Hour),
		To:   anchor.AddDate(0, 1, 0),
	})
	require.NoError(t, err)
	assert.Len(t, occ, 3)
}

func TestOccurrencesWindowBounds(t *testing.T) {
	rule := records.RecurrenceRule{Frequency: records.Daily}
	anchor := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	occ, err := recurrence.Occurrences(rule, anchor, recurrence.ExpandOptions{
		From: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, 1, 12, 23, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Len(t, occ, 3)
}
