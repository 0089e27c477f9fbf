package pimsync

import (
	"fmt"
	"strings"
	"time"

	"github.com/pimsync/pimsync/pkg/errors"
)

// Counts tallies what happened to one record kind during a pass.
type Counts struct {
	Examined  int
	Created   int
	Updated   int
	Unchanged int
	Skipped   int
	Failed    int
}

func (c Counts) String() string {
	return fmt.Sprintf("%d examined, %d created, %d updated, %d unchanged, %d skipped, %d failed",
		c.Examined, c.Created, c.Updated, c.Unchanged, c.Skipped, c.Failed)
}

// Result reports the outcome of a sync pass.
type Result struct {
	Contacts     Counts
	Events       Counts
	PhotosCopied int

	StartedAt time.Time
	Duration  time.Duration

	// DryRun reports that the counts describe what a pass would have done;
	// nothing was written.
	DryRun bool

	// Errors holds record-level errors. A non-empty slice does not mean
	// the pass failed: unaffected records were still synced.
	Errors []error
}

func newResult() *Result {
	return &Result{StartedAt: time.Now().UTC()}
}

func (r *Result) fail(err error) {
	r.Errors = append(r.Errors, err)
}

// Err summarizes record-level failures as a single error, or nil when every
// record synced.
func (r *Result) Err() error {
	failed := r.Contacts.Failed + r.Events.Failed
	if failed == 0 && len(r.Errors) == 0 {
		return nil
	}
	var first error
	if len(r.Errors) > 0 {
		first = r.Errors[0]
	}
	return errors.NewSyncError("sync", failed, first)
}

// Summary renders a human-readable account of the pass.
func (r *Result) Summary() string {
	var b strings.Builder
	if r.DryRun {
		b.WriteString("dry run: no changes written\n")
	}
	fmt.Fprintf(&b, "contacts: %s\n", r.Contacts)
	fmt.Fprintf(&b, "events:   %s\n", r.Events)
	if r.PhotosCopied > 0 {
		fmt.Fprintf(&b, "photos:   %d copied\n", r.PhotosCopied)
	}
	fmt.Fprintf(&b, "duration: %s", r.Duration.Round(time.Millisecond))
	if len(r.Errors) > 0 {
		fmt.Fprintf(&b, "\nerrors:   %d", len(r.Errors))
	}
	return b.String()
}
