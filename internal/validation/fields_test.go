package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m4log/yard-ledger/internal/movement"
	"github.com/m4log/yard-ledger/internal/validation"
)

func completeExitFields() movement.ExitFields {
	return movement.ExitFields{
		VehiclePlate: "ABC1D23",
		TrailerPlate: "XYZ9K88",
		DriverName:   "Carlos Mendes",
		DriverID:     "52998224725",
		Carrier:      "TransYard Ltda",
		TareWeight:   "2250",
		GrossWeight:  "24500.5",
		BookingRef:   "BK-99120",
		ShippingLine: "Maersk",
		VesselName:   "MV Atlantic",
		Deadline:     "2026-09-02 18:00",
	}
}

func TestValidateEntry(t *testing.T) {
	rec := movement.Record{
		Status:          movement.StatusEntry,
		ContainerNumber: "CSQU3054383",
		VehiclePlate:    "ABC1D23",
	}
	assert.True(t, validation.ValidateEntry(rec).Valid())

	t.Run("bad container number", func(t *testing.T) {
		r := rec
		r.ContainerNumber = "CSQU3054380"
		res := validation.ValidateEntry(r)
		require.False(t, res.Valid())
		assert.Equal(t, "Container Number", res.Errors[0].Field)
	})

	t.Run("short plate", func(t *testing.T) {
		r := rec
		r.VehiclePlate = "ABC12"
		assert.False(t, validation.ValidateEntry(r).Valid())
	})

	t.Run("driver id optional but verified when present", func(t *testing.T) {
		r := rec
		r.DriverID = ""
		assert.True(t, validation.ValidateEntry(r).Valid())

		r.DriverID = "11111111111"
		assert.False(t, validation.ValidateEntry(r).Valid())
	})
}

func TestValidateExit(t *testing.T) {
	assert.True(t, validation.ValidateExit(completeExitFields()).Valid())

	t.Run("every waybill field required", func(t *testing.T) {
		for _, mutate := range []func(*movement.ExitFields){
			func(f *movement.ExitFields) { f.TareWeight = "" },
			func(f *movement.ExitFields) { f.GrossWeight = "" },
			func(f *movement.ExitFields) { f.BookingRef = "" },
			func(f *movement.ExitFields) { f.ShippingLine = "" },
			func(f *movement.ExitFields) { f.VesselName = "" },
			func(f *movement.ExitFields) { f.Deadline = "" },
		} {
			f := completeExitFields()
			mutate(&f)
			assert.False(t, validation.ValidateExit(f).Valid())
		}
	})

	t.Run("trailer plate may be empty", func(t *testing.T) {
		f := completeExitFields()
		f.TrailerPlate = ""
		assert.True(t, validation.ValidateExit(f).Valid())
	})

	t.Run("weights must be numeric", func(t *testing.T) {
		f := completeExitFields()
		f.GrossWeight = "about 24 tons"
		res := validation.ValidateExit(f)
		require.False(t, res.Valid())
	})
}

func TestParseWeight(t *testing.T) {
	cases := map[string]string{
		"2250":     "2250",
		"24500.5":  "24500.5",
		"24.500,5": "24500.5", // decimal comma with dot grouping
		"1 250":    "1250",
	}
	for input, want := range cases {
		d, err := validation.ParseWeight(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, d.String(), input)
	}

	_, err := validation.ParseWeight("heavy")
	assert.Error(t, err)
}
