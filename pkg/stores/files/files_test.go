package files

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pimsync/pimsync/pkg/errors"
	"github.com/pimsync/pimsync/pkg/records"
)

func TestContactsSurviveReload(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s := New("local", dir)
	created, err := s.CreateContact(ctx, &records.ContactRecord{
		FullName: "Alice Smith",
		Emails:   []records.EmailAddress{{Address: "alice@example.com", Primary: true}},
	})
	require.NoError(t, err)

	reloaded := New("local", dir)
	list, err := reloaded.ListContacts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.LocalID, list[0].LocalID)
	assert.Equal(t, "Alice Smith", list[0].FullName)
	assert.Equal(t, "alice@example.com", list[0].Emails[0].Address)
}

func TestEventsSurviveReload(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	start := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	s := New("local", dir)
	created, err := s.CreateEvent(ctx, &records.EventRecord{
		Subject:    "Standup",
		Start:      start,
		End:        start.Add(30 * time.Minute),
		Recurrence: &records.RecurrenceRule{Frequency: records.Weekly, Weekdays: records.Tuesday},
	})
	require.NoError(t, err)

	reloaded := New("local", dir)
	list, err := reloaded.ListEvents(ctx, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.LocalID, list[0].LocalID)
	assert.True(t, list[0].Start.Equal(start))
	require.NotNil(t, list[0].Recurrence)
	assert.Equal(t, records.Weekly, list[0].Recurrence.Frequency)
}

func TestSaveRewritesSnapshot(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s := New("local", dir)
	created, err := s.CreateContact(ctx, &records.ContactRecord{FullName: "Alice"})
	require.NoError(t, err)

	created.FullName = "Alice Smith"
	require.NoError(t, s.SaveContact(ctx, created))

	reloaded := New("local", dir)
	list, _ := reloaded.ListContacts(ctx)
	require.Len(t, list, 1)
	assert.Equal(t, "Alice Smith", list[0].FullName)
}

func TestMissingDirectoryReadsEmpty(t *testing.T) {
	s := New("local", t.TempDir()+"/does-not-exist")
	list, err := s.ListContacts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPhotos(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	s := New("local", dir)

	_, err := s.FetchPhoto(ctx, "c1")
	assert.True(t, errors.IsNotFound(err))

	require.NoError(t, s.StorePhoto(ctx, "c1", []byte{0xff, 0xd8}))
	data, err := s.FetchPhoto(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff, 0xd8}, data)
}
