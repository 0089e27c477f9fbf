package pimsync

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/pimsync/pimsync/pkg/conflict"
	"github.com/pimsync/pimsync/pkg/errors"
	"github.com/pimsync/pimsync/pkg/match"
	"github.com/pimsync/pimsync/pkg/merge"
	"github.com/pimsync/pimsync/pkg/records"
	"github.com/pimsync/pimsync/pkg/stores"
)

// contactPass merges contacts from the direction's source store into its
// destination. Record-level failures are counted and logged; the pass keeps
// going. When onlyID is set, only the source record with that id is synced.
func (e *engine) contactPass(ctx context.Context, dir conflict.Direction, res *Result, onlyID string) {
	src, dst := e.oriented(dir)
	log := e.cfg.logger.With().Str("direction", string(dir)).Logger()

	srcList, err := src.ListContacts(ctx)
	if err != nil {
		e.passFailed(res, errors.WrapStore(src.Name(), "list contacts", err))
		return
	}
	dstList, err := dst.ListContacts(ctx)
	if err != nil {
		e.passFailed(res, errors.WrapStore(dst.Name(), "list contacts", err))
		return
	}
	groups, err := dst.Groups(ctx)
	if err != nil {
		e.passFailed(res, errors.WrapStore(dst.Name(), "list groups", err))
		return
	}

	for _, sc := range srcList {
		if onlyID != "" && sc.LocalID != onlyID {
			continue
		}
		if err := ctx.Err(); err != nil {
			res.fail(err)
			return
		}

		res.Contacts.Examined++
		if !sc.HasAnyEmail() && !e.cfg.includeContactsWithoutEmail {
			res.Contacts.Skipped++
			continue
		}

		if err := e.syncContact(ctx, dir, src, dst, sc, &dstList, groups, res); err != nil {
			err = errors.NewMergeError(stores.KindContact, string(dir), sc.LocalID, sc.RemoteID, err)
			res.Contacts.Failed++
			res.fail(err)
			e.hooks.triggerError(err)
			log.Warn().Err(err).Str("id", sc.LocalID).Msg("Contact sync failed")
		}
	}
}

// syncContact reconciles one source contact: pair it via the linkage table
// or matching heuristics, create it in the destination when unpaired, merge
// otherwise, then record the pairing and copy the photo if it changed.
func (e *engine) syncContact(ctx context.Context, dir conflict.Direction, src, dst stores.Store,
	sc *records.ContactRecord, dstList *[]*records.ContactRecord, groups []records.Group, res *Result) error {

	prev, dstID, linked, err := e.findLink(ctx, dir, stores.KindContact, sc.LocalID)
	if err != nil {
		return err
	}

	var counterpart *records.ContactRecord
	if linked {
		for _, c := range *dstList {
			if c.LocalID == dstID {
				counterpart = c
				break
			}
		}
	}
	if counterpart == nil {
		matches := match.FindContacts(sc, *dstList)
		if len(matches) > 1 {
			e.cfg.logger.Warn().
				Str("direction", string(dir)).
				Str("id", sc.LocalID).
				Int("candidates", len(matches)).
				Msg("Ambiguous contact match, using first candidate")
		}
		if len(matches) > 0 {
			counterpart = (*dstList)[matches[0].Index]
		}
	}

	if e.cfg.dryRun {
		e.previewContact(dir, sc, counterpart, groups, res)
		return nil
	}

	switch {
	case counterpart == nil:
		fresh := &records.ContactRecord{RemoteID: sc.LocalID}
		merge.Contact(fresh, sc, groups)
		created, err := dst.CreateContact(ctx, fresh)
		if err != nil {
			return errors.WrapStore(dst.Name(), "create contact", err)
		}
		*dstList = append(*dstList, created)
		counterpart = created
		res.Contacts.Created++

	case !e.cfg.policy.Allows(dir, sc.ModifiedAt, counterpart.ModifiedAt):
		res.Contacts.Skipped++

	default:
		changed := merge.Contact(counterpart, sc, groups)
		if counterpart.RemoteID == "" && sc.LocalID != "" {
			counterpart.RemoteID = sc.LocalID
			changed = true
		}
		if changed {
			counterpart.ModifiedAt = time.Now().UTC()
			if err := dst.SaveContact(ctx, counterpart); err != nil {
				return errors.WrapStore(dst.Name(), "save contact", err)
			}
			res.Contacts.Updated++
		} else {
			res.Contacts.Unchanged++
		}
	}

	// Record the counterpart id on the source record so later passes can
	// pair by id even if the linkage table is lost.
	if sc.RemoteID == "" && counterpart.LocalID != "" {
		sc.RemoteID = counterpart.LocalID
		if err := src.SaveContact(ctx, sc); err != nil {
			return errors.WrapStore(src.Name(), "save contact", err)
		}
	}

	fingerprint := prev.PhotoFingerprint
	if e.cfg.syncPhotos {
		fingerprint = e.syncPhoto(ctx, src, dst, sc.LocalID, counterpart.LocalID, fingerprint, res)
	}

	if err := e.cfg.linkages.Put(ctx, link(dir, stores.KindContact, sc.LocalID, counterpart.LocalID, fingerprint)); err != nil {
		return err
	}

	e.hooks.triggerContactSynced(dir, counterpart)
	return nil
}

// previewContact counts what syncContact would do without writing. The
// merge runs on a clone so listed records stay untouched.
func (e *engine) previewContact(dir conflict.Direction, sc, counterpart *records.ContactRecord,
	groups []records.Group, res *Result) {

	switch {
	case counterpart == nil:
		res.Contacts.Created++
	case !e.cfg.policy.Allows(dir, sc.ModifiedAt, counterpart.ModifiedAt):
		res.Contacts.Skipped++
	case merge.Contact(counterpart.Clone(), sc, groups):
		res.Contacts.Updated++
	default:
		res.Contacts.Unchanged++
	}
}

// syncPhoto copies the source contact's photo to the destination when its
// fingerprint differs from the one recorded at the last copy. Photo
// failures never fail the contact; the previous fingerprint is kept so the
// copy is retried next pass.
func (e *engine) syncPhoto(ctx context.Context, src, dst stores.Store,
	srcID, dstID, prevFingerprint string, res *Result) string {

	data, err := src.FetchPhoto(ctx, srcID)
	if err != nil {
		if !errors.IsNotFound(err) {
			e.cfg.logger.Debug().Err(err).Str("id", srcID).Msg("Photo fetch failed")
		}
		return prevFingerprint
	}

	sum := sha256.Sum256(data)
	fingerprint := hex.EncodeToString(sum[:])
	if fingerprint == prevFingerprint {
		return fingerprint
	}

	if err := dst.StorePhoto(ctx, dstID, data); err != nil {
		e.cfg.logger.Warn().Err(err).Str("id", dstID).Msg("Photo store failed")
		return prevFingerprint
	}
	res.PhotosCopied++
	return fingerprint
}

func (e *engine) passFailed(res *Result, err error) {
	res.fail(err)
	e.hooks.triggerError(err)
	e.cfg.logger.Error().Err(err).Msg("Pass aborted")
}
