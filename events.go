package pimsync

import (
	"context"
	"time"

	"github.com/pimsync/pimsync/pkg/conflict"
	"github.com/pimsync/pimsync/pkg/errors"
	"github.com/pimsync/pimsync/pkg/match"
	"github.com/pimsync/pimsync/pkg/merge"
	"github.com/pimsync/pimsync/pkg/records"
	"github.com/pimsync/pimsync/pkg/stores"
)

// eventPass merges events from the direction's source store into its
// destination, listing only the configured window around now. When onlyID
// is set, only the source record with that id is synced.
func (e *engine) eventPass(ctx context.Context, dir conflict.Direction, res *Result, onlyID string) {
	src, dst := e.oriented(dir)
	log := e.cfg.logger.With().Str("direction", string(dir)).Logger()

	now := time.Now().UTC()
	from := now.Add(-e.cfg.eventWindowPast)
	to := now.Add(e.cfg.eventWindowFuture)

	srcList, err := src.ListEvents(ctx, from, to)
	if err != nil {
		e.passFailed(res, errors.WrapStore(src.Name(), "list events", err))
		return
	}
	dstList, err := dst.ListEvents(ctx, from, to)
	if err != nil {
		e.passFailed(res, errors.WrapStore(dst.Name(), "list events", err))
		return
	}

	for _, se := range srcList {
		if onlyID != "" && se.LocalID != onlyID {
			continue
		}
		if err := ctx.Err(); err != nil {
			res.fail(err)
			return
		}

		res.Events.Examined++
		if err := e.syncEvent(ctx, dir, src, dst, se, &dstList, res); err != nil {
			err = errors.NewMergeError(stores.KindEvent, string(dir), se.LocalID, se.RemoteID, err)
			res.Events.Failed++
			res.fail(err)
			e.hooks.triggerError(err)
			log.Warn().Err(err).Str("id", se.LocalID).Msg("Event sync failed")
		}
	}
}

// syncEvent reconciles one source event with the destination store.
func (e *engine) syncEvent(ctx context.Context, dir conflict.Direction, src, dst stores.Store,
	se *records.EventRecord, dstList *[]*records.EventRecord, res *Result) error {

	_, dstID, linked, err := e.findLink(ctx, dir, stores.KindEvent, se.LocalID)
	if err != nil {
		return err
	}

	var counterpart *records.EventRecord
	if linked {
		for _, c := range *dstList {
			if c.LocalID == dstID {
				counterpart = c
				break
			}
		}
	}
	if counterpart == nil {
		matches := match.FindEvents(se, *dstList)
		if len(matches) > 1 {
			e.cfg.logger.Warn().
				Str("direction", string(dir)).
				Str("id", se.LocalID).
				Int("candidates", len(matches)).
				Msg("Ambiguous event match, using first candidate")
		}
		if len(matches) > 0 {
			counterpart = (*dstList)[matches[0].Index]
		}
	}

	if e.cfg.dryRun {
		e.previewEvent(dir, se, counterpart, res)
		return nil
	}

	switch {
	case counterpart == nil:
		fresh := &records.EventRecord{RemoteID: se.LocalID}
		merge.Event(fresh, se)
		created, err := dst.CreateEvent(ctx, fresh)
		if err != nil {
			return errors.WrapStore(dst.Name(), "create event", err)
		}
		*dstList = append(*dstList, created)
		counterpart = created
		res.Events.Created++

	case !e.cfg.policy.Allows(dir, se.ModifiedAt, counterpart.ModifiedAt):
		res.Events.Skipped++

	default:
		changed := merge.Event(counterpart, se)
		if counterpart.RemoteID == "" && se.LocalID != "" {
			counterpart.RemoteID = se.LocalID
			changed = true
		}
		if changed {
			counterpart.ModifiedAt = time.Now().UTC()
			if err := dst.SaveEvent(ctx, counterpart); err != nil {
				return errors.WrapStore(dst.Name(), "save event", err)
			}
			res.Events.Updated++
		} else {
			res.Events.Unchanged++
		}
	}

	// Record the counterpart id on the source record so later passes can
	// pair by id even if the linkage table is lost.
	if se.RemoteID == "" && counterpart.LocalID != "" {
		se.RemoteID = counterpart.LocalID
		if err := src.SaveEvent(ctx, se); err != nil {
			return errors.WrapStore(src.Name(), "save event", err)
		}
	}

	if err := e.cfg.linkages.Put(ctx, link(dir, stores.KindEvent, se.LocalID, counterpart.LocalID, "")); err != nil {
		return err
	}

	e.hooks.triggerEventSynced(dir, counterpart)
	return nil
}

// previewEvent counts what syncEvent would do without writing.
func (e *engine) previewEvent(dir conflict.Direction, se, counterpart *records.EventRecord, res *Result) {
	switch {
	case counterpart == nil:
		res.Events.Created++
	case !e.cfg.policy.Allows(dir, se.ModifiedAt, counterpart.ModifiedAt):
		res.Events.Skipped++
	case merge.Event(counterpart.Clone(), se):
		res.Events.Updated++
	default:
		res.Events.Unchanged++
	}
}
