// =============================================================================
// Yard Ledger - Partition Store
// =============================================================================
//
// Durable storage for movement records, one workbook per calendar day:
//
//   <ledger_dir>/<YYYY-MM-DD>/movements_<YYYY-MM-DD>.xlsx
//
// The partition a write lands in is chosen from the wall clock at write time,
// not from the record's own timestamp. A record logged just after midnight
// therefore opens the new day's partition even if the operator still thinks
// of it as "today". That behaviour is inherited from the system this ledger
// replaced and is relied on by its users.
//
// WRITE MODEL:
//   Every mutation is a read-modify-rewrite of the whole partition: read the
//   existing rows, union in the change, re-sort by timestamp descending and
//   rewrite the file through a temp file + rename. This trades write cost for
//   a partition that is always schema-complete and sorted, and it stands in
//   for a transaction: either the rename lands and the partition holds the
//   old rows plus the change, or it does not and the old file is untouched.
//
//   There is no cross-process locking. Two independent writers on the same
//   partition resolve last-writer-wins at file granularity; the deployment
//   model is a single operator at a time.
//
// =============================================================================

package ledger

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"github.com/m4log/yard-ledger/internal/movement"
	"github.com/m4log/yard-ledger/pkg/logger"
	"github.com/m4log/yard-ledger/pkg/utils"
)

// DateLayout is the partition identity format, embedded in both the directory
// and the file name.
const DateLayout = "2006-01-02"

// SheetName is the single worksheet every partition carries.
const SheetName = "Movements"

// partitionFilePattern matches partition file names and captures the date.
var partitionFilePattern = regexp.MustCompile(`^movements_(\d{4}-\d{2}-\d{2})\.xlsx$`)

// Clock supplies "now". Injected so tests can pin time and so partition
// selection is explicit rather than a hidden global.
type Clock func() time.Time

// =============================================================================
// ERRORS
// =============================================================================

// StorageError wraps a failed partition operation with its context. Callers
// must treat a write that returned a StorageError as not having happened.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("ledger: %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *StorageError) Unwrap() error { return e.Err }

// =============================================================================
// PARTITION HANDLE
// =============================================================================

// Partition addresses one day's workbook.
type Partition struct {
	// Date is the ISO calendar day the partition holds.
	Date string

	// Path is the workbook location on disk.
	Path string
}

// =============================================================================
// STORE
// =============================================================================

// Store owns the partition directory tree.
type Store struct {
	root  string
	clock Clock
	log   *logger.Logger
}

// NewStore creates a store rooted at dir. A nil clock defaults to time.Now.
func NewStore(dir string, clock Clock, log *logger.Logger) *Store {
	if clock == nil {
		clock = time.Now
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Store{root: dir, clock: clock, log: log}
}

// Now returns the store's current wall-clock time.
func (s *Store) Now() time.Time { return s.clock() }

// Root returns the ledger directory.
func (s *Store) Root() string { return s.root }

// PartitionFor returns the handle for an arbitrary calendar day.
func (s *Store) PartitionFor(date string) Partition {
	return Partition{
		Date: date,
		Path: filepath.Join(s.root, date, fmt.Sprintf("movements_%s.xlsx", date)),
	}
}

// TodayPartition returns the handle for the current wall-clock day.
func (s *Store) TodayPartition() Partition {
	return s.PartitionFor(s.clock().Format(DateLayout))
}

// EnsureTodayPartition creates an empty, schema-only workbook for the current
// day if none exists yet. Idempotent.
func (s *Store) EnsureTodayPartition() (Partition, error) {
	p := s.TodayPartition()
	if utils.FileExists(p.Path) {
		return p, nil
	}
	if err := s.writePartition(p, nil); err != nil {
		return p, err
	}
	s.log.Info().Str("partition", p.Date).Msg("created empty daily partition")
	return p, nil
}

// Append adds one record to the current day's partition. The existing file is
// read back first (a missing or unreadable file counts as empty), the record
// is unioned in, and the whole partition is rewritten sorted by timestamp
// descending. Append does not deduplicate; logging the same record twice is a
// caller error and yields two rows.
func (s *Store) Append(rec movement.Record) error {
	p := s.TodayPartition()

	existing, err := s.ReadPartition(p)
	if err != nil {
		// Degraded but deliberate: an unreadable partition is treated as
		// empty for the write so the day's logging can continue. The broken
		// file is replaced wholesale by the rewrite below.
		s.log.Warn().Err(err).Str("partition", p.Date).
			Msg("existing partition unreadable, rewriting from the new record only")
		existing = nil
	}

	return s.writePartition(p, append(existing, rec))
}

// Overwrite replaces a partition's full record set. Used by the
// reconciliation engine to persist an amended entry row and its exit row in
// one atomic rewrite. Same sort and atomicity contract as Append.
func (s *Store) Overwrite(p Partition, recs []movement.Record) error {
	return s.writePartition(p, recs)
}

// ReadPartition returns every record in a partition, or an empty slice when
// the file does not exist or is zero-length. A workbook that exists but
// cannot be parsed is a StorageError; aggregate readers are expected to log
// and skip it rather than abort.
func (s *Store) ReadPartition(p Partition) ([]movement.Record, error) {
	info, err := os.Stat(p.Path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, &StorageError{Op: "stat", Path: p.Path, Err: err}
	}
	if info.Size() == 0 {
		return nil, nil
	}
	return readWorkbook(p.Path)
}

// ListPartitions discovers every partition workbook under the ledger root,
// most recent day first. Files whose name marks a temporary or editor-lock
// state (a leading "~") are excluded.
func (s *Store) ListPartitions() ([]Partition, error) {
	var parts []Partition

	err := filepath.WalkDir(s.root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == s.root {
				return filepath.SkipAll
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		base := filepath.Base(path)
		if base[0] == '~' {
			return nil
		}
		m := partitionFilePattern.FindStringSubmatch(base)
		if m == nil {
			s.log.Debug().Str("file", path).Msg("ignoring non-partition file in ledger directory")
			return nil
		}
		parts = append(parts, Partition{Date: m[1], Path: path})
		return nil
	})
	if err != nil {
		return nil, &StorageError{Op: "list", Path: s.root, Err: err}
	}

	sort.Slice(parts, func(i, j int) bool { return parts[i].Date > parts[j].Date })
	return parts, nil
}
