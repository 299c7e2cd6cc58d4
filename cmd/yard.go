// =============================================================================
// Yard Ledger - Yard Command
// =============================================================================
//
// Prints the current occupancy: one line per container whose latest movement
// across all partitions is an entry. The view is derived fresh on every call;
// there is no cache to go stale.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/m4log/yard-ledger/internal/movement"
)

var yardCmd = &cobra.Command{
	Use:   "yard",
	Short: "Show the containers currently in the yard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runYard()
	},
}

func init() {
	rootCmd.AddCommand(yardCmd)
}

// runYard renders the occupancy table. Shared with `exit --list`.
func runYard() error {
	present, err := newView(newStore()).Present()
	if err != nil {
		return fmt.Errorf("failed to derive occupancy: %w", err)
	}

	if len(present) == 0 {
		fmt.Println("No containers in the yard.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CONTAINER\tCLIENT\tVEHICLE PLATE\tENTERED")
	for _, rec := range present {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			rec.ContainerNumber,
			rec.Client,
			rec.VehiclePlate,
			rec.Timestamp.Format(movement.TimeLayout),
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d container(s) in the yard.\n", len(present))
	return nil
}
