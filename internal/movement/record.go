// =============================================================================
// Yard Ledger - Movement Records
// =============================================================================
//
// This package contains the shared domain types used across the ledger store,
// the occupancy view and the reconciliation engine. A movement record is one
// logged event: a container entering or leaving the yard.
//
// SCHEMA:
//   The on-disk partition schema is a fixed, ordered set of 21 columns (see
//   Columns). Every partition file carries the same columns in the same order
//   regardless of which optional fields were populated. All values except the
//   timestamp are stored as text; absent values are empty strings, never a
//   null marker.
//
// LIFECYCLE:
//   A record is created once and is immutable afterwards, with one sanctioned
//   exception: an Entry record's logistics fields are back-filled at exit time
//   by the reconciliation engine. No record is ever deleted.
//
// =============================================================================

package movement

import (
	"sort"
	"time"
)

// =============================================================================
// STATUS
// =============================================================================

// Status is the movement direction of a record.
type Status string

const (
	// StatusEntry marks a container entering the yard.
	StatusEntry Status = "Entry"

	// StatusExit marks a container leaving the yard.
	StatusExit Status = "Exit"
)

// =============================================================================
// VOCABULARIES
// =============================================================================

// ContainerTypes is the fixed vocabulary for the container type field.
var ContainerTypes = []string{"20' DC", "40' DC", "40' HC", "20' Reefer", "40' Reefer", "Other"}

// Conditions is the fixed vocabulary for the condition field.
var Conditions = []string{"Full", "Empty"}

// =============================================================================
// COLUMN SCHEMA
// =============================================================================

// Columns is the partition column set, in storage order. The order is part of
// the external file contract and must not change.
var Columns = []string{
	"Timestamp", "Status", "Container Number", "Container Type", "Condition",
	"Client", "Seal Number", "Invoice Number", "Destination", "Notes",
	"Vehicle Plate", "Trailer Plate", "Driver Name", "Driver ID", "Carrier",
	"Tare Weight", "Gross Weight", "Booking Ref", "Shipping Line", "Vessel", "Deadline",
}

// TimeLayout is the cell format for the timestamp column. Full second
// precision is kept on disk because reconciliation matches entry rows by
// exact timestamp.
const TimeLayout = "2006-01-02 15:04:05"

// DisplayTimeLayout is the minute-precision form used when rendering records
// for the operator.
const DisplayTimeLayout = "02/01/2006 15:04"

// =============================================================================
// RECORD
// =============================================================================

// Record is one movement event. Field order mirrors the column schema.
type Record struct {
	Timestamp       time.Time
	Status          Status
	ContainerNumber string
	ContainerType   string
	Condition       string
	Client          string
	SealNumber      string
	InvoiceNumber   string
	Destination     string
	Notes           string
	VehiclePlate    string
	TrailerPlate    string
	DriverName      string
	DriverID        string
	Carrier         string
	TareWeight      string
	GrossWeight     string
	BookingRef      string
	ShippingLine    string
	VesselName      string
	Deadline        string
}

// Row serializes the record into a partition row, one cell per schema column.
func (r Record) Row() []string {
	ts := ""
	if !r.Timestamp.IsZero() {
		ts = r.Timestamp.Format(TimeLayout)
	}
	return []string{
		ts,
		string(r.Status),
		r.ContainerNumber,
		r.ContainerType,
		r.Condition,
		r.Client,
		r.SealNumber,
		r.InvoiceNumber,
		r.Destination,
		r.Notes,
		r.VehiclePlate,
		r.TrailerPlate,
		r.DriverName,
		r.DriverID,
		r.Carrier,
		r.TareWeight,
		r.GrossWeight,
		r.BookingRef,
		r.ShippingLine,
		r.VesselName,
		r.Deadline,
	}
}

// FromRow deserializes a partition row. Short rows are padded with empty
// strings so optional fields always read back as "". A timestamp cell that
// does not parse leaves Timestamp at its zero value; downstream views filter
// such rows defensively instead of failing the whole read.
func FromRow(row []string) Record {
	cell := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}

	var ts time.Time
	if raw := cell(0); raw != "" {
		if parsed, err := time.ParseInLocation(TimeLayout, raw, time.Local); err == nil {
			ts = parsed
		}
	}

	return Record{
		Timestamp:       ts,
		Status:          Status(cell(1)),
		ContainerNumber: cell(2),
		ContainerType:   cell(3),
		Condition:       cell(4),
		Client:          cell(5),
		SealNumber:      cell(6),
		InvoiceNumber:   cell(7),
		Destination:     cell(8),
		Notes:           cell(9),
		VehiclePlate:    cell(10),
		TrailerPlate:    cell(11),
		DriverName:      cell(12),
		DriverID:        cell(13),
		Carrier:         cell(14),
		TareWeight:      cell(15),
		GrossWeight:     cell(16),
		BookingRef:      cell(17),
		ShippingLine:    cell(18),
		VesselName:      cell(19),
		Deadline:        cell(20),
	}
}

// SortByTimestampDesc orders records newest first, the presentation order of
// every materialized view. The sort is stable so same-second rows keep their
// relative order; rows with a zero (unparsable) timestamp sink to the end.
func SortByTimestampDesc(recs []Record) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Timestamp.After(recs[j].Timestamp)
	})
}

// =============================================================================
// EXIT FIELDS
// =============================================================================

// ExitFields carries the operator-supplied data for the exit workflow: the
// outbound transport details plus the waybill logistics fields that back-fill
// the original entry row.
type ExitFields struct {
	VehiclePlate string
	TrailerPlate string
	DriverName   string
	DriverID     string
	Carrier      string
	TareWeight   string
	GrossWeight  string
	BookingRef   string
	ShippingLine string
	VesselName   string
	Deadline     string
}

// ApplyTo back-fills the logistics and transport fields of an entry record.
// This is the single sanctioned in-place mutation of a historical row.
func (f ExitFields) ApplyTo(r *Record) {
	r.VehiclePlate = f.VehiclePlate
	r.TrailerPlate = f.TrailerPlate
	r.DriverName = f.DriverName
	r.DriverID = f.DriverID
	r.Carrier = f.Carrier
	r.TareWeight = f.TareWeight
	r.GrossWeight = f.GrossWeight
	r.BookingRef = f.BookingRef
	r.ShippingLine = f.ShippingLine
	r.VesselName = f.VesselName
	r.Deadline = f.Deadline
}
