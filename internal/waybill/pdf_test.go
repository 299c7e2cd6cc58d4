package waybill_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m4log/yard-ledger/internal/movement"
	"github.com/m4log/yard-ledger/internal/waybill"
)

func exitRecord() movement.Record {
	return movement.Record{
		Timestamp:       time.Date(2026, 8, 30, 14, 45, 10, 0, time.Local),
		Status:          movement.StatusExit,
		ContainerNumber: "CSQU3054383",
		ContainerType:   "40' HC",
		Condition:       "Full",
		Client:          "Acme Imports",
		SealNumber:      "SL-778821",
		Destination:     "Port Terminal 2",
		VehiclePlate:    "ABC1D23",
		TrailerPlate:    "XYZ9K88",
		DriverName:      "Carlos Mendes",
		DriverID:        "52998224725",
		Carrier:         "TransYard Ltda",
		TareWeight:      "2250",
		GrossWeight:     "24500.5",
		BookingRef:      "BK-99120",
		ShippingLine:    "Maersk",
		VesselName:      "MV Atlantic",
		Deadline:        "2026-09-02 18:00",
	}
}

func TestEmitWritesPDF(t *testing.T) {
	dir := t.TempDir()
	gen := waybill.NewGenerator(dir)

	path, err := gen.Emit(exitRecord())
	require.NoError(t, err)
	require.FileExists(t, path)

	name := filepath.Base(path)
	assert.True(t, strings.HasPrefix(name, "WAYBILL_CSQU3054383_20260830_1445_"), name)
	assert.True(t, strings.HasSuffix(name, ".pdf"), name)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"), "output is a PDF document")
}

func TestEmitCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "waybills", "2026")
	gen := waybill.NewGenerator(dir)

	path, err := gen.Emit(exitRecord())
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
}

func TestEmitUniqueFilenames(t *testing.T) {
	gen := waybill.NewGenerator(t.TempDir())
	rec := exitRecord()

	p1, err := gen.Emit(rec)
	require.NoError(t, err)
	p2, err := gen.Emit(rec)
	require.NoError(t, err)

	assert.NotEqual(t, p1, p2, "uuid suffix keeps same-minute exits apart")
}

func TestEmitHandlesSparseRecord(t *testing.T) {
	gen := waybill.NewGenerator(t.TempDir())

	// Weights and booking data may be missing when a historical record is
	// re-emitted; the document still renders with placeholders.
	rec := movement.Record{
		Timestamp:       time.Date(2026, 8, 30, 9, 0, 0, 0, time.Local),
		Status:          movement.StatusExit,
		ContainerNumber: "MSKU3000000",
	}

	path, err := gen.Emit(rec)
	require.NoError(t, err)
	require.FileExists(t, path)
}
