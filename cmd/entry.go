// =============================================================================
// Yard Ledger - Entry Command
// =============================================================================
//
// Logs a container entering the yard. Input arrives as flags, is normalized
// (container number and plate uppercased, driver ID reduced to digits),
// validated against the check-digit rules, and appended to today's partition.
// A validation failure is surfaced for correction and writes nothing.
//
// The ledger does not block an entry for a container that is already present;
// re-logging an entry is how operators correct a mistyped one.
//
// =============================================================================

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/m4log/yard-ledger/internal/movement"
	"github.com/m4log/yard-ledger/internal/validation"
)

var (
	entryContainer   string
	entryPlate       string
	entryDriver      string
	entryDriverID    string
	entryClient      string
	entryType        string
	entryCondition   string
	entrySeal        string
	entryInvoice     string
	entryDestination string
	entryNotes       string
)

var entryCmd = &cobra.Command{
	Use:   "entry",
	Short: "Log a container entering the yard",
	Long: `Logs an entry movement in today's partition.

The container number must carry a valid ISO 6346 check digit and the vehicle
plate is required; the driver ID is optional but validated when given. The
waybill logistics fields (weights, booking, vessel, deadline) stay empty at
entry time and are back-filled by the exit workflow.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEntry()
	},
}

func init() {
	rootCmd.AddCommand(entryCmd)

	entryCmd.Flags().StringVar(&entryContainer, "container", "", "Container number (required)")
	entryCmd.Flags().StringVar(&entryPlate, "plate", "", "Vehicle plate (required)")
	entryCmd.Flags().StringVar(&entryDriver, "driver", "", "Driver name")
	entryCmd.Flags().StringVar(&entryDriverID, "driver-id", "", "Driver national ID (CPF)")
	entryCmd.Flags().StringVar(&entryClient, "client", "", "Client")
	entryCmd.Flags().StringVar(&entryType, "type", movement.ContainerTypes[0], "Container type")
	entryCmd.Flags().StringVar(&entryCondition, "condition", movement.Conditions[0], "Condition (Full/Empty)")
	entryCmd.Flags().StringVar(&entrySeal, "seal", "", "Seal number")
	entryCmd.Flags().StringVar(&entryInvoice, "invoice", "", "Invoice number")
	entryCmd.Flags().StringVar(&entryDestination, "destination", "", "Destination")
	entryCmd.Flags().StringVar(&entryNotes, "notes", "", "Notes")

	_ = entryCmd.MarkFlagRequired("container")
	_ = entryCmd.MarkFlagRequired("plate")
}

func runEntry() error {
	store := newStore()

	rec := movement.Record{
		Timestamp:       store.Now(),
		Status:          movement.StatusEntry,
		ContainerNumber: validation.NormalizeContainerNumber(entryContainer),
		ContainerType:   entryType,
		Condition:       entryCondition,
		Client:          strings.TrimSpace(entryClient),
		SealNumber:      strings.TrimSpace(entrySeal),
		InvoiceNumber:   strings.TrimSpace(entryInvoice),
		Destination:     strings.TrimSpace(entryDestination),
		Notes:           strings.TrimSpace(entryNotes),
		VehiclePlate:    strings.ToUpper(strings.TrimSpace(entryPlate)),
		DriverName:      strings.TrimSpace(entryDriver),
		DriverID:        validation.DigitsOnly(entryDriverID),
	}

	if res := validation.ValidateEntry(rec); !res.Valid() {
		return res.Err()
	}

	if err := store.Append(rec); err != nil {
		return fmt.Errorf("failed to log entry: %w", err)
	}

	log.Info().Str("container", rec.ContainerNumber).Msg("entry logged")
	fmt.Printf("Entry logged: %s at %s\n",
		rec.ContainerNumber, rec.Timestamp.Format(movement.DisplayTimeLayout))
	return nil
}
