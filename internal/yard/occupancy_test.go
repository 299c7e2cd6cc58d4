package yard_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m4log/yard-ledger/internal/ledger"
	"github.com/m4log/yard-ledger/internal/movement"
	"github.com/m4log/yard-ledger/internal/yard"
	"github.com/m4log/yard-ledger/pkg/logger"
)

// fakeClock lets tests pin and advance the wall clock.
type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func newFixture(t *testing.T) (*ledger.Store, *yard.View, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 8, 30, 9, 0, 0, 0, time.Local)}
	store := ledger.NewStore(t.TempDir(), clock.Now, logger.Nop())
	return store, yard.NewView(store, logger.Nop()), clock
}

// logAt appends a movement with the clock pinned to ts, so the record lands
// in the partition of its own day.
func logAt(t *testing.T, store *ledger.Store, clock *fakeClock, status movement.Status, container string, ts time.Time) {
	t.Helper()
	saved := clock.now
	clock.now = ts
	defer func() { clock.now = saved }()

	require.NoError(t, store.Append(movement.Record{
		Timestamp:       ts,
		Status:          status,
		ContainerNumber: container,
		VehiclePlate:    "ABC1D23",
	}))
}

func TestCurrentlyPresent_EntryOnly(t *testing.T) {
	store, view, clock := newFixture(t)
	logAt(t, store, clock, movement.StatusEntry, "CSQU3054383", clock.now.Add(-2*time.Hour))

	present, err := view.CurrentlyPresent()
	require.NoError(t, err)
	assert.Contains(t, present, "CSQU3054383")
}

func TestCurrentlyPresent_EntryThenExit(t *testing.T) {
	store, view, clock := newFixture(t)
	t1 := clock.now.Add(-48 * time.Hour)
	t2 := clock.now.Add(-1 * time.Hour)

	logAt(t, store, clock, movement.StatusEntry, "CSQU3054383", t1)
	logAt(t, store, clock, movement.StatusExit, "CSQU3054383", t2)

	present, err := view.CurrentlyPresent()
	require.NoError(t, err)
	assert.NotContains(t, present, "CSQU3054383")
}

func TestCurrentlyPresent_ReEntryAfterExit(t *testing.T) {
	store, view, clock := newFixture(t)
	t1 := clock.now.Add(-72 * time.Hour)
	t2 := clock.now.Add(-48 * time.Hour)
	t3 := clock.now.Add(-2 * time.Hour)

	logAt(t, store, clock, movement.StatusEntry, "CSQU3054383", t1)
	logAt(t, store, clock, movement.StatusExit, "CSQU3054383", t2)
	logAt(t, store, clock, movement.StatusEntry, "CSQU3054383", t3)

	present, err := view.CurrentlyPresent()
	require.NoError(t, err)
	require.Contains(t, present, "CSQU3054383")
	assert.True(t, present["CSQU3054383"].Timestamp.Equal(t3), "latest entry wins")
}

func TestCurrentlyPresent_SpansPartitions(t *testing.T) {
	store, view, clock := newFixture(t)

	// Three containers entering on three different days, one already gone.
	logAt(t, store, clock, movement.StatusEntry, "CSQU3054383", clock.now.AddDate(0, 0, -3))
	logAt(t, store, clock, movement.StatusEntry, "HLXU1234561", clock.now.AddDate(0, 0, -1))
	logAt(t, store, clock, movement.StatusEntry, "MSKU3000000", clock.now.Add(-time.Hour))
	logAt(t, store, clock, movement.StatusExit, "HLXU1234561", clock.now.Add(-30*time.Minute))

	recs, err := view.Present()
	require.NoError(t, err)
	require.Len(t, recs, 2)

	// Deterministic rendering order: newest entry first.
	assert.Equal(t, "MSKU3000000", recs[0].ContainerNumber)
	assert.Equal(t, "CSQU3054383", recs[1].ContainerNumber)
}

func TestCurrentlyPresent_FiltersCorruptRows(t *testing.T) {
	store, view, clock := newFixture(t)
	logAt(t, store, clock, movement.StatusEntry, "CSQU3054383", clock.now.Add(-time.Hour))

	// A row without a container number cannot participate in latest-wins.
	p := store.TodayPartition()
	recs, err := store.ReadPartition(p)
	require.NoError(t, err)
	recs = append(recs, movement.Record{
		Timestamp: clock.now,
		Status:    movement.StatusEntry,
	})
	require.NoError(t, store.Overwrite(p, recs))

	present, err := view.CurrentlyPresent()
	require.NoError(t, err)
	assert.Len(t, present, 1)
	assert.Contains(t, present, "CSQU3054383")
}

func TestCurrentlyPresent_SkipsUnparsablePartition(t *testing.T) {
	store, view, clock := newFixture(t)
	logAt(t, store, clock, movement.StatusEntry, "CSQU3054383", clock.now.Add(-time.Hour))

	// A prior day's workbook that is not a workbook at all: the scan logs and
	// skips it instead of failing the whole view.
	badDay := clock.now.AddDate(0, 0, -2).Format(ledger.DateLayout)
	bad := store.PartitionFor(badDay)
	require.NoError(t, os.MkdirAll(filepath.Dir(bad.Path), 0o755))
	require.NoError(t, os.WriteFile(bad.Path, []byte("not a workbook"), 0o644))

	present, err := view.CurrentlyPresent()
	require.NoError(t, err)
	assert.Len(t, present, 1)
	assert.Contains(t, present, "CSQU3054383")
}

func TestCurrentlyPresent_EmptyLedger(t *testing.T) {
	_, view, _ := newFixture(t)

	present, err := view.CurrentlyPresent()
	require.NoError(t, err)
	assert.Empty(t, present)
}
