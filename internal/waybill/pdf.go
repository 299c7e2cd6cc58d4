// =============================================================================
// Yard Ledger - Waybill Emitter
// =============================================================================
//
// Renders the paper transport waybill for a finalized exit record using
// Maroto v2. Page layout (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  TRANSPORT WAYBILL              Container + exit date        │
//	│  ───────────────────────────────────────────────────────── │
//	│  TRANSPORT: plates / driver / ID / carrier                   │
//	│  CARGO: seal / weights (incl. computed net) / destination    │
//	│  BOOKING: booking ref / shipping line / vessel / deadline    │
//	│  ───────────────────────────────────────────────────────── │
//	│  Driver signature line                                       │
//	└─────────────────────────────────────────────────────────────┘
//
// Output files are named WAYBILL_<container>_<timestamp>_<uuid8>.pdf; the
// uuid suffix keeps two exits in the same minute from colliding.
//
// =============================================================================

package waybill

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/m4log/yard-ledger/internal/movement"
	"github.com/m4log/yard-ledger/internal/validation"
)

var (
	colorPrimary = &props.Color{Red: 47, Green: 79, Blue: 79}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Generator writes waybill PDFs into an output directory. It implements
// yard.WaybillEmitter.
type Generator struct {
	outDir string
}

// NewGenerator creates a waybill generator writing into outDir.
func NewGenerator(outDir string) *Generator {
	return &Generator{outDir: outDir}
}

// Emit renders the waybill for one exit record and returns the written path.
func (g *Generator) Emit(rec movement.Record) (string, error) {
	if err := os.MkdirAll(g.outDir, 0o755); err != nil {
		return "", fmt.Errorf("waybill: create output dir: %w", err)
	}

	doc, err := build(rec)
	if err != nil {
		return "", fmt.Errorf("waybill: generate document: %w", err)
	}

	name := fmt.Sprintf("WAYBILL_%s_%s_%s.pdf",
		rec.ContainerNumber,
		rec.Timestamp.Format("20060102_1504"),
		uuid.New().String()[:8],
	)
	path := filepath.Join(g.outDir, name)

	if err := os.WriteFile(path, doc.GetBytes(), 0o644); err != nil {
		return "", fmt.Errorf("waybill: write %s: %w", path, err)
	}
	return path, nil
}

// build assembles the Maroto document for one record.
func build(rec movement.Record) (core.Document, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle("Transport Waybill", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(rec))
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionTitle("TRANSPORT"))
	m.AddRows(
		fieldRow("Vehicle Plate", rec.VehiclePlate),
		fieldRow("Trailer Plate", rec.TrailerPlate),
		fieldRow("Driver", rec.DriverName),
		fieldRow("Driver ID", validation.FormatNationalID(rec.DriverID)),
		fieldRow("Carrier", rec.Carrier),
	)

	m.AddRows(sectionTitle("CARGO"))
	m.AddRows(
		fieldRow("Client", rec.Client),
		fieldRow("Seal Number", rec.SealNumber),
		fieldRow("Tare Weight", rec.TareWeight),
		fieldRow("Gross Weight", rec.GrossWeight),
		fieldRow("Net Weight", netWeight(rec)),
		fieldRow("Destination", rec.Destination),
	)

	m.AddRows(sectionTitle("BOOKING"))
	m.AddRows(
		fieldRow("Booking Ref", rec.BookingRef),
		fieldRow("Shipping Line", rec.ShippingLine),
		fieldRow("Vessel", rec.VesselName),
		fieldRow("Deadline", rec.Deadline),
	)

	m.AddRows(row.New(20))
	m.AddRows(signatureRows()...)

	return m.Generate()
}

// headerRow renders the document title and the container identity block.
func headerRow(rec movement.Record) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("TRANSPORT WAYBILL", props.Text{
				Style: fontstyle.Bold, Size: 16, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(5).Add(
			text.New(rec.ContainerNumber, props.Text{
				Style: fontstyle.Bold, Size: 13, Align: align.Right, Top: 2,
			}),
			text.New("Exit: "+rec.Timestamp.Format(movement.DisplayTimeLayout), props.Text{
				Size: 9, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

func sectionTitle(title string) core.Row {
	return row.New(9).Add(
		col.New(12).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 3,
			}),
		),
	)
}

// fieldRow renders one label/value pair.
func fieldRow(label, value string) core.Row {
	if value == "" {
		value = "—"
	}
	return row.New(7).Add(
		col.New(4).Add(
			text.New(label+":", props.Text{Style: fontstyle.Bold, Size: 10, Top: 1}),
		),
		col.New(8).Add(
			text.New(value, props.Text{Size: 10, Top: 1}),
		),
	)
}

func signatureRows() []core.Row {
	return []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("________________________________________", props.Text{
				Align: align.Center, Size: 10,
			}),
		)),
		row.New(6).Add(col.New(12).Add(
			text.New("Driver Signature", props.Text{
				Align: align.Center, Size: 9, Color: colorGray,
			}),
		)),
	}
}

// netWeight computes gross minus tare when both weights parse; weights are
// free text in the ledger, so this is best effort.
func netWeight(rec movement.Record) string {
	gross, err := validation.ParseWeight(rec.GrossWeight)
	if err != nil {
		return ""
	}
	tare, err := validation.ParseWeight(rec.TareWeight)
	if err != nil {
		return ""
	}
	return gross.Sub(tare).String()
}
