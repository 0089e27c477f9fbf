// Package conflict decides which direction a change may flow when both
// stores hold a linked record.
package conflict

import "time"

// Direction is one side-to-side flow of a reconciliation pass.
type Direction string

const (
	LocalToRemote Direction = "local-to-remote"
	RemoteToLocal Direction = "remote-to-local"
)

// Policy selects how conflicting edits are resolved.
type Policy string

const (
	// Automatic lets the newer side win: a direction is allowed only when
	// the source record is not older than the destination record.
	Automatic Policy = "automatic"

	// PreferLocal always takes the local store's version; nothing flows
	// remote-to-local.
	PreferLocal Policy = "prefer-local"

	// PreferRemote always takes the remote store's version; nothing flows
	// local-to-remote.
	PreferRemote Policy = "prefer-remote"
)

// ParsePolicy maps a configuration string onto a policy, defaulting to
// Automatic for anything unrecognized.
func ParsePolicy(s string) Policy {
	switch Policy(s) {
	case PreferLocal, PreferRemote:
		return Policy(s)
	default:
		return Automatic
	}
}

// Allows reports whether a merge may run in the given direction for records
// last modified at the given instants. Zero timestamps count as oldest, so a
// record that has never been written loses to one that has.
func (p Policy) Allows(dir Direction, srcModified, dstModified time.Time) bool {
	switch p {
	case PreferLocal:
		return dir == LocalToRemote
	case PreferRemote:
		return dir == RemoteToLocal
	default:
		return !srcModified.Before(dstModified)
	}
}

// Order returns the two pass directions with the disfavored one first, so
// the favored side's edits land last and win when both passes write.
func (p Policy) Order() [2]Direction {
	if p == PreferRemote {
		return [2]Direction{LocalToRemote, RemoteToLocal}
	}
	return [2]Direction{RemoteToLocal, LocalToRemote}
}
