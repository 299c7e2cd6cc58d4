// =============================================================================
// Yard Ledger - Occupancy View
// =============================================================================
//
// The derived answer to "which containers are in the yard right now". The
// view is a pure function of the union of all partitions: every call rescans
// the ledger, reduces it to the latest record per container and keeps the
// ones whose latest movement is an entry. Nothing is cached, so the result is
// always consistent with the durable state at the time of the call. The full
// rescan is acceptable at yard-scale record volumes.
//
// Corrupt partitions are skipped with a log line rather than failing the
// whole view: availability over completeness for reads. Writes never make
// that trade.
//
// =============================================================================

package yard

import (
	"github.com/m4log/yard-ledger/internal/ledger"
	"github.com/m4log/yard-ledger/internal/movement"
	"github.com/m4log/yard-ledger/pkg/logger"
)

// View derives occupancy from the partition store.
type View struct {
	store *ledger.Store
	log   *logger.Logger
}

// NewView creates an occupancy view over a store.
func NewView(store *ledger.Store, log *logger.Logger) *View {
	if log == nil {
		log = logger.Nop()
	}
	return &View{store: store, log: log}
}

// CurrentlyPresent maps each container number in the yard to its entry
// record. A container is present iff its most recent movement across all
// partitions has status Entry.
func (v *View) CurrentlyPresent() (map[string]movement.Record, error) {
	latest, err := v.latestPerContainer()
	if err != nil {
		return nil, err
	}

	present := make(map[string]movement.Record)
	for num, rec := range latest {
		if rec.Status == movement.StatusEntry {
			present[num] = rec
		}
	}
	return present, nil
}

// Present returns the present containers ordered by entry timestamp
// descending, for deterministic rendering.
func (v *View) Present() ([]movement.Record, error) {
	byContainer, err := v.CurrentlyPresent()
	if err != nil {
		return nil, err
	}

	recs := make([]movement.Record, 0, len(byContainer))
	for _, rec := range byContainer {
		recs = append(recs, rec)
	}
	movement.SortByTimestampDesc(recs)
	return recs, nil
}

// latestPerContainer folds all partitions into one latest-wins mapping.
func (v *View) latestPerContainer() (map[string]movement.Record, error) {
	parts, err := v.store.ListPartitions()
	if err != nil {
		return nil, err
	}

	var all []movement.Record
	for _, p := range parts {
		recs, err := v.store.ReadPartition(p)
		if err != nil {
			v.log.Warn().Err(err).Str("partition", p.Date).
				Msg("skipping unreadable partition in occupancy scan")
			continue
		}
		all = append(all, recs...)
	}

	// Defensive filtering against corrupt rows: a record without a parsable
	// timestamp or a container number cannot participate in latest-wins.
	filtered := all[:0]
	for _, rec := range all {
		if rec.Timestamp.IsZero() || rec.ContainerNumber == "" {
			continue
		}
		filtered = append(filtered, rec)
	}

	movement.SortByTimestampDesc(filtered)

	latest := make(map[string]movement.Record)
	for _, rec := range filtered {
		if _, seen := latest[rec.ContainerNumber]; !seen {
			latest[rec.ContainerNumber] = rec
		}
	}
	return latest, nil
}
