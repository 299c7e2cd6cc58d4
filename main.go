// =============================================================================
// Yard Ledger - Main Entry Point
// =============================================================================
//
// CLI for tracking container movements through a yard. Movements are logged
// as rows in daily spreadsheet partitions; the current occupancy is derived
// from the union of all partitions.
//
// USAGE:
//   yardledger entry     - Log a container entering the yard
//   yardledger exit      - Log a container leaving (reconciles the original entry)
//   yardledger yard      - Show the containers currently in the yard
//   yardledger open      - Open today's partition in the default viewer
//   yardledger version   - Display the application version
//
// ARCHITECTURE:
//   cmd/        : CLI command definitions (Cobra)
//   internal/   : core business logic (validators, ledger store, occupancy
//                 view, reconciliation engine, waybill emitter)
//   pkg/        : shared utilities (logger, OS launcher)
//
// =============================================================================

package main

import (
	"github.com/m4log/yard-ledger/cmd"
)

func main() {
	cmd.Execute()
}
