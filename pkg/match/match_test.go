package match_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pimsync/pimsync/pkg/match"
	"github.com/pimsync/pimsync/pkg/records"
)

func TestFindContactsByCrossReferencedID(t *testing.T) {
	needle := &records.ContactRecord{LocalID: "l1", RemoteID: "r2"}
	candidates := []*records.ContactRecord{
		{LocalID: "r1"},
		{LocalID: "r2"},
	}

	matches := match.FindContacts(needle, candidates)

	require.Len(t, matches, 1)
	assert.Equal(t, 1, matches[0].Index)
	assert.Equal(t, match.BasisID, matches[0].Basis)
}

func TestFindContactsBySharedSecondaryEmail(t *testing.T) {
	needle := &records.ContactRecord{
		FullName: "Alice Smith",
		Emails: []records.EmailAddress{
			{Address: "alice@example.com", Primary: true},
			{Address: "alice@work.example"},
		},
	}
	candidates := []*records.ContactRecord{
		{
			FullName: "A. Smith",
			Emails:   []records.EmailAddress{{Address: "ALICE@WORK.EXAMPLE"}},
		},
	}

	matches := match.FindContacts(needle, candidates)

	require.Len(t, matches, 1)
	assert.Equal(t, match.BasisEmail, matches[0].Basis)
}

func TestFindContactsByNameAndPhone(t *testing.T) {
	needle := &records.ContactRecord{
		FullName: "Alice SMITH",
		Phones:   []records.PhoneNumber{{Number: "+441234567", Kind: records.PhoneMobile}},
	}
	candidates := []*records.ContactRecord{
		{
			FullName: "alice smith",
			Phones:   []records.PhoneNumber{{Number: " +441234567", Kind: records.PhoneHome}},
		},
	}

	matches := match.FindContacts(needle, candidates)

	require.Len(t, matches, 1)
	assert.Equal(t, match.BasisNameAndPhone, matches[0].Basis)
}

func TestFindContactsNameAloneIsNotEnough(t *testing.T) {
	needle := &records.ContactRecord{FullName: "Alice Smith"}
	candidates := []*records.ContactRecord{{FullName: "Alice Smith"}}

	assert.Empty(t, match.FindContacts(needle, candidates))
}

func TestFindContactsIDBeatsEmail(t *testing.T) {
	needle := &records.ContactRecord{
		LocalID:  "l1",
		RemoteID: "r2",
		Emails:   []records.EmailAddress{{Address: "a@x.com"}},
	}
	candidates := []*records.ContactRecord{
		{LocalID: "r1", Emails: []records.EmailAddress{{Address: "a@x.com"}}},
		{LocalID: "r2"},
	}

	matches := match.FindContacts(needle, candidates)

	require.Len(t, matches, 2)
	assert.Equal(t, match.BasisID, matches[0].Basis)
	assert.Equal(t, 1, matches[0].Index)
	assert.Equal(t, match.BasisEmail, matches[1].Basis)
	assert.Equal(t, 0, matches[1].Index)
}

func TestFindEventsIDBeatsSubject(t *testing.T) {
	needle := &records.EventRecord{LocalID: "l1", RemoteID: "r2", Subject: "Standup"}
	candidates := []*records.EventRecord{
		{LocalID: "r1", Subject: "Standup"},
		{LocalID: "r2"},
	}

	matches := match.FindEvents(needle, candidates)

	require.Len(t, matches, 2)
	assert.Equal(t, match.BasisID, matches[0].Basis)
	assert.Equal(t, 1, matches[0].Index)
}

func TestFindContactsDeterministicOrder(t *testing.T) {
	needle := &records.ContactRecord{
		Emails: []records.EmailAddress{{Address: "x@example.com"}},
	}
	candidates := []*records.ContactRecord{
		{Emails: []records.EmailAddress{{Address: "x@example.com"}}},
		{Emails: []records.EmailAddress{{Address: "x@example.com"}}},
	}

	first := match.FindContacts(needle, candidates)
	second := match.FindContacts(needle, candidates)

	require.Len(t, first, 2)
	assert.Equal(t, 0, first[0].Index)
	assert.Equal(t, 1, first[1].Index)
	assert.Equal(t, first, second)
}

func TestFindEventsBySubjectAndLocation(t *testing.T) {
	needle := &records.EventRecord{Subject: "Standup", Location: "Room 4"}
	candidates := []*records.EventRecord{
		{Subject: "Standup", Location: "Room 5"},
		{Subject: "STANDUP", Location: "room 4"},
	}

	matches := match.FindEvents(needle, candidates)

	require.Len(t, matches, 1)
	assert.Equal(t, 1, matches[0].Index)
	assert.Equal(t, match.BasisSubject, matches[0].Basis)
}

func TestFindEventsByTimes(t *testing.T) {
	start := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Minute)

	needle := &records.EventRecord{Subject: "One name", Start: start, End: end}
	candidates := []*records.EventRecord{
		{Subject: "Another name", Start: start, End: end},
	}

	matches := match.FindEvents(needle, candidates)

	require.Len(t, matches, 1)
	assert.Equal(t, match.BasisTimes, matches[0].Basis)
}

func TestFindEventsEmptySubjectNeverMatchesBySubject(t *testing.T) {
	needle := &records.EventRecord{}
	candidates := []*records.EventRecord{{}}

	assert.Empty(t, match.FindEvents(needle, candidates))
}
