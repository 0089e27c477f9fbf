// Package match pairs records from one store with their counterparts in the
// other. Matching is deterministic: every hit is reported ordered by basis
// strength, input order within a basis, so the caller can see ambiguous
// pairings instead of silently taking the first.
package match

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/pimsync/pimsync/pkg/records"
)

// Basis says which rule produced a match.
type Basis string

const (
	BasisID           Basis = "id"
	BasisEmail        Basis = "email"
	BasisNameAndPhone Basis = "name+phone"
	BasisSubject      Basis = "subject+location"
	BasisTimes        Basis = "times"
)

// Match is one candidate hit: the index into the candidate list and the rule
// that produced it.
type Match struct {
	Index int
	Basis Basis
}

// basisRank orders bases by strength. An explicit cross-referenced id beats
// any contact-point heuristic.
func basisRank(b Basis) int {
	switch b {
	case BasisID:
		return 0
	case BasisEmail, BasisSubject:
		return 1
	default:
		return 2
	}
}

// sortMatches orders hits strongest basis first, keeping input order within
// a basis.
func sortMatches(matches []Match) []Match {
	sort.SliceStable(matches, func(i, j int) bool {
		return basisRank(matches[i].Basis) < basisRank(matches[j].Basis)
	})
	return matches
}

var folder = cases.Fold()

func fold(s string) string {
	return folder.String(strings.TrimSpace(s))
}

// FindContacts returns every candidate the needle could be the counterpart
// of, strongest basis first: a cross-referenced id, then a shared email
// address, then an equal name with a shared phone number.
func FindContacts(needle *records.ContactRecord, candidates []*records.ContactRecord) []Match {
	var matches []Match
	for i, c := range candidates {
		if basis, ok := contactBasis(needle, c); ok {
			matches = append(matches, Match{Index: i, Basis: basis})
		}
	}
	return sortMatches(matches)
}

func contactBasis(a, b *records.ContactRecord) (Basis, bool) {
	if crossLinked(a.LocalID, a.RemoteID, b.LocalID, b.RemoteID) {
		return BasisID, true
	}
	if sharedEmail(a, b) {
		return BasisEmail, true
	}
	if sameName(a, b) && sharedPhone(a, b) {
		return BasisNameAndPhone, true
	}
	return "", false
}

// crossLinked reports whether two records from opposite stores reference
// each other: one side's own id appearing as the other side's counterpart id.
func crossLinked(aLocal, aRemote, bLocal, bRemote string) bool {
	return idsMatch(aLocal, bRemote) || idsMatch(aRemote, bLocal)
}

func idsMatch(a, b string) bool {
	return a != "" && a == b
}

func sharedEmail(a, b *records.ContactRecord) bool {
	for _, ea := range a.Emails {
		addr := strings.TrimSpace(ea.Address)
		if addr == "" {
			continue
		}
		for _, eb := range b.Emails {
			if strings.EqualFold(addr, strings.TrimSpace(eb.Address)) {
				return true
			}
		}
	}
	return false
}

func sameName(a, b *records.ContactRecord) bool {
	name := fold(a.FullName)
	return name != "" && name == fold(b.FullName)
}

func sharedPhone(a, b *records.ContactRecord) bool {
	for _, pa := range a.Phones {
		number := records.FormatPhone(pa.Number)
		if number == "" {
			continue
		}
		for _, pb := range b.Phones {
			if number == records.FormatPhone(pb.Number) {
				return true
			}
		}
	}
	return false
}

// FindEvents returns every candidate the needle could be the counterpart of,
// strongest basis first: a cross-referenced id, then an equal subject and
// location, then identical start and end instants.
func FindEvents(needle *records.EventRecord, candidates []*records.EventRecord) []Match {
	var matches []Match
	for i, c := range candidates {
		if basis, ok := eventBasis(needle, c); ok {
			matches = append(matches, Match{Index: i, Basis: basis})
		}
	}
	return sortMatches(matches)
}

func eventBasis(a, b *records.EventRecord) (Basis, bool) {
	if crossLinked(a.LocalID, a.RemoteID, b.LocalID, b.RemoteID) {
		return BasisID, true
	}
	if sameSubject(a, b) {
		return BasisSubject, true
	}
	if sameTimes(a, b) {
		return BasisTimes, true
	}
	return "", false
}

func sameSubject(a, b *records.EventRecord) bool {
	subject := fold(a.Subject)
	if subject == "" || subject != fold(b.Subject) {
		return false
	}
	return fold(a.Location) == fold(b.Location)
}

func sameTimes(a, b *records.EventRecord) bool {
	if a.Start.IsZero() || a.End.IsZero() {
		return false
	}
	return a.Start.Equal(b.Start) && a.End.Equal(b.End)
}
