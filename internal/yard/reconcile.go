// =============================================================================
// Yard Ledger - Reconciliation Engine
// =============================================================================
//
// The exit workflow. Per container the ledger is a two-state machine: Absent
// (no unmatched entry) and Present (latest record is an unmatched entry).
// Entry appends move Absent -> Present; the only way back is this engine:
//
//   1. Relocate the original entry row. It may live in any past partition, so
//      partitions are scanned newest first for the row whose container number
//      and timestamp exactly match the operator's occupancy-view selection.
//   2. Back-fill that row in place with the exit-time transport and waybill
//      logistics fields.
//   3. Build the exit record as a copy of the amended row with status Exit
//      and the current wall-clock timestamp.
//   4. Persist amendment + exit together with one atomic rewrite of that same
//      partition. The exit row therefore lands in the partition of the entry
//      day, not today's.
//   5. Hand the finalized record to the waybill emitter. Emission is
//      fire-and-forget: the exit is committed once the rewrite lands.
//
// Entry rows carry no explicit identifier; the timestamp is the identity key
// for relocation. Two entries logged in the same second are therefore
// ambiguous. Changing that means adding a column to the partition schema,
// which existing spreadsheets and their consumers depend on, so the limit is
// documented instead of fixed.
//
// =============================================================================

package yard

import (
	"errors"
	"fmt"
	"time"

	"github.com/m4log/yard-ledger/internal/ledger"
	"github.com/m4log/yard-ledger/internal/movement"
	"github.com/m4log/yard-ledger/internal/validation"
	"github.com/m4log/yard-ledger/pkg/logger"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrOriginalNotFound means no partition holds an entry row with the
	// claimed timestamp. Nothing was written.
	ErrOriginalNotFound = errors.New("original entry record not found in any partition")

	// ErrPersistFailed means the amended partition could not be rewritten.
	// The in-memory amendment is discarded; the operator must retry from a
	// fresh read.
	ErrPersistFailed = errors.New("failed to persist amended partition")
)

// =============================================================================
// EMITTER BOUNDARY
// =============================================================================

// WaybillEmitter renders the paper waybill for a finalized exit record. The
// engine's only contract with it is "hand it a complete record"; rendering
// failures do not undo the exit.
type WaybillEmitter interface {
	Emit(rec movement.Record) (path string, err error)
}

// =============================================================================
// ENGINE
// =============================================================================

// Engine performs exit reconciliation against the partition store.
type Engine struct {
	store   *ledger.Store
	emitter WaybillEmitter
	log     *logger.Logger
}

// NewEngine creates a reconciliation engine. The emitter may be nil, in which
// case no document is produced.
func NewEngine(store *ledger.Store, emitter WaybillEmitter, log *logger.Logger) *Engine {
	if log == nil {
		log = logger.Nop()
	}
	return &Engine{store: store, emitter: emitter, log: log}
}

// ProcessExit locates the entry row identified by entryTime, back-fills it
// with the exit fields, appends the exit record to the same partition, and
// persists both in one rewrite. It returns the finalized exit record.
//
// The container number and entry timestamp are expected to come from an
// occupancy-view selection immediately preceding this call.
func (e *Engine) ProcessExit(containerNumber string, entryTime time.Time, fields movement.ExitFields) (*movement.Record, error) {
	parts, err := e.store.ListPartitions()
	if err != nil {
		return nil, fmt.Errorf("scanning partitions: %w", err)
	}

	// Newest first; the entry row is unique by timestamp across the ledger,
	// so the first hit wins. The container number is matched as well: the
	// timestamp may be operator-typed, and a mistyped one must not amend
	// another container's row.
	for _, p := range parts {
		recs, err := e.store.ReadPartition(p)
		if err != nil {
			e.log.Warn().Err(err).Str("partition", p.Date).
				Msg("skipping unreadable partition in entry lookup")
			continue
		}

		for i := range recs {
			if !recs[i].Timestamp.Equal(entryTime) || recs[i].ContainerNumber != containerNumber {
				continue
			}

			exit, err := e.finalizeExit(p, recs, i, fields)
			if err != nil {
				return nil, err
			}

			e.log.Info().
				Str("container", exit.ContainerNumber).
				Str("partition", p.Date).
				Time("entered", entryTime).
				Time("exited", exit.Timestamp).
				Msg("exit reconciled")

			e.emitWaybill(*exit)
			return exit, nil
		}
	}

	return nil, fmt.Errorf("%w: container %s, entry %s",
		ErrOriginalNotFound, containerNumber, entryTime.Format(movement.TimeLayout))
}

// finalizeExit amends the matched entry row, builds the exit record and
// persists the partition. recs is the partition's full working set and idx
// the index of the matched entry.
func (e *Engine) finalizeExit(p ledger.Partition, recs []movement.Record, idx int, fields movement.ExitFields) (*movement.Record, error) {
	fields.ApplyTo(&recs[idx])

	exit := recs[idx]
	exit.Status = movement.StatusExit
	exit.Timestamp = e.store.Now()
	exit.DriverID = validation.DigitsOnly(fields.DriverID)

	recs = append(recs, exit)

	if err := e.store.Overwrite(p, recs); err != nil {
		// No partial commit: the whole-file rewrite either landed or it did
		// not, and the amendment above lived only in this working set.
		return nil, fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	return &exit, nil
}

// emitWaybill hands the record to the document emitter, logging the outcome.
func (e *Engine) emitWaybill(rec movement.Record) {
	if e.emitter == nil {
		return
	}
	path, err := e.emitter.Emit(rec)
	if err != nil {
		e.log.Error().Err(err).Str("container", rec.ContainerNumber).
			Msg("waybill emission failed; exit remains committed")
		return
	}
	e.log.Info().Str("waybill", path).Msg("waybill generated")
}
