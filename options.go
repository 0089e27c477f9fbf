package pimsync

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/pimsync/pimsync/internal/linkage"
	"github.com/pimsync/pimsync/pkg/conflict"
	"github.com/pimsync/pimsync/pkg/errors"
	"github.com/pimsync/pimsync/pkg/logging"
	"github.com/pimsync/pimsync/pkg/stores"
)

// config holds engine configuration assembled from options.
type config struct {
	local  stores.Store
	remote stores.Store

	linkages stores.Linkages
	policy   conflict.Policy
	logger   *zerolog.Logger

	// includeContactsWithoutEmail lets contacts with no email address
	// participate in the sync. Off by default: such contacts tend to be
	// store-internal stubs.
	includeContactsWithoutEmail bool

	// syncPhotos copies contact photos across when their fingerprint
	// changes.
	syncPhotos bool

	// dryRun counts what a pass would change without writing to either
	// store or the linkage table.
	dryRun bool

	// eventWindowPast and eventWindowFuture bound the event listing
	// around the current time.
	eventWindowPast   time.Duration
	eventWindowFuture time.Duration
}

func defaultConfig() *config {
	return &config{
		linkages:          linkage.NewMemory(),
		policy:            conflict.Automatic,
		logger:            logging.Default(),
		syncPhotos:        true,
		eventWindowPast:   30 * 24 * time.Hour,
		eventWindowFuture: 365 * 24 * time.Hour,
	}
}

// Option configures the engine.
type Option func(*config) error

// WithStores sets the two stores to reconcile.
func WithStores(local, remote stores.Store) Option {
	return func(c *config) error {
		if local == nil || remote == nil {
			return errors.NewConfigError("stores", "both stores are required", nil)
		}
		c.local = local
		c.remote = remote
		return nil
	}
}

// WithLinkages sets the cross-reference persistence. Defaults to an
// in-memory store that forgets pairings when the process exits.
func WithLinkages(l stores.Linkages) Option {
	return func(c *config) error {
		if l == nil {
			return errors.NewConfigError("linkages", "nil linkages", nil)
		}
		c.linkages = l
		return nil
	}
}

// WithPolicy sets the conflict resolution policy.
func WithPolicy(p conflict.Policy) Option {
	return func(c *config) error {
		c.policy = p
		return nil
	}
}

// WithLogger sets the logger used by the engine.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		if logger == nil {
			return errors.NewConfigError("logger", "nil logger", nil)
		}
		c.logger = logger
		return nil
	}
}

// WithContactsWithoutEmail includes contacts that carry no email address.
func WithContactsWithoutEmail(include bool) Option {
	return func(c *config) error {
		c.includeContactsWithoutEmail = include
		return nil
	}
}

// WithDryRun previews a pass: records are examined and counted but no
// store or linkage write happens.
func WithDryRun(enabled bool) Option {
	return func(c *config) error {
		c.dryRun = enabled
		return nil
	}
}

// WithPhotoSync toggles contact photo copying.
func WithPhotoSync(enabled bool) Option {
	return func(c *config) error {
		c.syncPhotos = enabled
		return nil
	}
}

// WithEventWindow bounds event listing to [now-past, now+future].
func WithEventWindow(past, future time.Duration) Option {
	return func(c *config) error {
		if past < 0 || future < 0 {
			return errors.NewConfigError("event window", "durations must be non-negative", nil)
		}
		c.eventWindowPast = past
		c.eventWindowFuture = future
		return nil
	}
}
