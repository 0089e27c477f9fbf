package memory

import (
	"sort"

	"github.com/pimsync/pimsync/pkg/records"
)

// Listing order is deterministic so matching sees candidates in a stable
// order across passes.

func sortContacts(list []*records.ContactRecord) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].LocalID < list[j].LocalID
	})
}

func sortEvents(list []*records.EventRecord) {
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].Start.Equal(list[j].Start) {
			return list[i].Start.Before(list[j].Start)
		}
		return list[i].LocalID < list[j].LocalID
	})
}
