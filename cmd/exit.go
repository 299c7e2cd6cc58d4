// =============================================================================
// Yard Ledger - Exit Command
// =============================================================================
//
// The exit workflow in two steps, mirroring the gate procedure:
//
//   yardledger exit --list
//       Step 1: show the containers currently in the yard with their entry
//       timestamps, so the operator can pick one.
//
//   yardledger exit --container X [--entry-time "..."] --plate ... --tare ...
//       Step 2: reconcile. The original entry row is located (by the entry
//       timestamp; when --entry-time is omitted it is resolved from the
//       occupancy view), back-filled with the exit-time transport and waybill
//       data, the exit row is appended to that same partition, and the
//       waybill PDF is generated.
//
// =============================================================================

package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/m4log/yard-ledger/internal/ledger"
	"github.com/m4log/yard-ledger/internal/movement"
	"github.com/m4log/yard-ledger/internal/validation"
)

var (
	exitList      bool
	exitContainer string
	exitEntryTime string

	exitPlate    string
	exitTrailer  string
	exitDriver   string
	exitDriverID string
	exitCarrier  string

	exitTare     string
	exitGross    string
	exitBooking  string
	exitLine     string
	exitVessel   string
	exitDeadline string
)

var exitCmd = &cobra.Command{
	Use:   "exit",
	Short: "Log a container leaving the yard and generate its waybill",
	Long: `Runs the exit reconciliation workflow for a container currently in the
yard: locates its original entry row (which may live in any past partition),
completes it with the exit-time transport and waybill data, logs the exit in
the same partition, and renders the transport waybill PDF.

Use --list first to see the candidates.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if exitList {
			return runYard()
		}
		return runExit()
	},
}

func init() {
	rootCmd.AddCommand(exitCmd)

	exitCmd.Flags().BoolVar(&exitList, "list", false, "List containers currently in the yard")
	exitCmd.Flags().StringVar(&exitContainer, "container", "", "Container number (required)")
	exitCmd.Flags().StringVar(&exitEntryTime, "entry-time", "",
		fmt.Sprintf("Entry timestamp of the record to reconcile (%q); defaults to the container's current entry", movement.TimeLayout))

	exitCmd.Flags().StringVar(&exitPlate, "plate", "", "Outbound vehicle plate (required)")
	exitCmd.Flags().StringVar(&exitTrailer, "trailer", "", "Trailer plate")
	exitCmd.Flags().StringVar(&exitDriver, "driver", "", "Outbound driver name (required)")
	exitCmd.Flags().StringVar(&exitDriverID, "driver-id", "", "Outbound driver national ID (CPF)")
	exitCmd.Flags().StringVar(&exitCarrier, "carrier", "", "Carrier (required)")

	exitCmd.Flags().StringVar(&exitTare, "tare", "", "Tare weight (required)")
	exitCmd.Flags().StringVar(&exitGross, "gross", "", "Gross cargo weight (required)")
	exitCmd.Flags().StringVar(&exitBooking, "booking", "", "Booking reference (required)")
	exitCmd.Flags().StringVar(&exitLine, "shipping-line", "", "Shipping line (required)")
	exitCmd.Flags().StringVar(&exitVessel, "vessel", "", "Vessel name (required)")
	exitCmd.Flags().StringVar(&exitDeadline, "deadline", "", "Cargo deadline (required)")
}

func runExit() error {
	if exitContainer == "" {
		return fmt.Errorf("--container is required (use --list to see candidates)")
	}

	store := newStore()
	container := validation.NormalizeContainerNumber(exitContainer)

	entryTime, err := resolveEntryTime(store, container)
	if err != nil {
		return err
	}

	fields := movement.ExitFields{
		VehiclePlate: strings.ToUpper(strings.TrimSpace(exitPlate)),
		TrailerPlate: strings.ToUpper(strings.TrimSpace(exitTrailer)),
		DriverName:   strings.TrimSpace(exitDriver),
		DriverID:     validation.DigitsOnly(exitDriverID),
		Carrier:      strings.TrimSpace(exitCarrier),
		TareWeight:   strings.TrimSpace(exitTare),
		GrossWeight:  strings.TrimSpace(exitGross),
		BookingRef:   strings.TrimSpace(exitBooking),
		ShippingLine: strings.TrimSpace(exitLine),
		VesselName:   strings.TrimSpace(exitVessel),
		Deadline:     strings.TrimSpace(exitDeadline),
	}

	if res := validation.ValidateExit(fields); !res.Valid() {
		return res.Err()
	}

	rec, err := newEngine(store).ProcessExit(container, entryTime, fields)
	if err != nil {
		return fmt.Errorf("exit failed: %w", err)
	}

	fmt.Printf("Exit logged: %s at %s\n",
		rec.ContainerNumber, rec.Timestamp.Format(movement.DisplayTimeLayout))
	return nil
}

// resolveEntryTime parses --entry-time, or resolves it from the occupancy
// view when omitted.
func resolveEntryTime(store *ledger.Store, container string) (time.Time, error) {
	if exitEntryTime != "" {
		ts, err := time.ParseInLocation(movement.TimeLayout, exitEntryTime, time.Local)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid --entry-time %q (want %q)", exitEntryTime, movement.TimeLayout)
		}
		return ts, nil
	}

	present, err := newView(store).CurrentlyPresent()
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to derive occupancy: %w", err)
	}
	rec, ok := present[container]
	if !ok {
		return time.Time{}, fmt.Errorf("container %s is not in the yard", container)
	}
	return rec.Timestamp, nil
}
