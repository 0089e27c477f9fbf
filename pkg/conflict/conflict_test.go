package conflict

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAutomaticNewerSourceWins(t *testing.T) {
	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)

	assert.True(t, Automatic.Allows(LocalToRemote, newer, older))
	assert.False(t, Automatic.Allows(LocalToRemote, older, newer))

	// Equal timestamps are allowed: the merge is a no-op anyway.
	assert.True(t, Automatic.Allows(RemoteToLocal, older, older))
}

func TestAutomaticZeroTimestampLoses(t *testing.T) {
	var zero time.Time
	written := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.False(t, Automatic.Allows(LocalToRemote, zero, written))
	assert.True(t, Automatic.Allows(LocalToRemote, written, zero))
}

func TestPreferencePoliciesIgnoreTimestamps(t *testing.T) {
	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)

	assert.True(t, PreferLocal.Allows(LocalToRemote, older, newer))
	assert.False(t, PreferLocal.Allows(RemoteToLocal, newer, older))

	assert.True(t, PreferRemote.Allows(RemoteToLocal, older, newer))
	assert.False(t, PreferRemote.Allows(LocalToRemote, newer, older))
}

func TestOrderDisfavoredFirst(t *testing.T) {
	assert.Equal(t, [2]Direction{RemoteToLocal, LocalToRemote}, Automatic.Order())
	assert.Equal(t, [2]Direction{RemoteToLocal, LocalToRemote}, PreferLocal.Order())
	assert.Equal(t, [2]Direction{LocalToRemote, RemoteToLocal}, PreferRemote.Order())
}

func TestParsePolicy(t *testing.T) {
	assert.Equal(t, PreferLocal, ParsePolicy("prefer-local"))
	assert.Equal(t, PreferRemote, ParsePolicy("prefer-remote"))
	assert.Equal(t, Automatic, ParsePolicy("automatic"))
	assert.Equal(t, Automatic, ParsePolicy(""))
	assert.Equal(t, Automatic, ParsePolicy("bogus"))
}
