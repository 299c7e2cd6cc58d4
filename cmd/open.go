// =============================================================================
// Yard Ledger - Open Command
// =============================================================================
//
// Convenience side door: opens today's partition spreadsheet, or the day's
// ledger folder, in the host OS's default application. Creates the empty
// partition first so there is always something to open.
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/m4log/yard-ledger/pkg/utils"
)

// openFolder opens the containing day folder instead of the workbook.
var openFolder bool

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Open today's partition spreadsheet in the default viewer",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOpen()
	},
}

func init() {
	rootCmd.AddCommand(openCmd)

	openCmd.Flags().BoolVar(&openFolder, "folder", false, "Open the day's ledger folder instead of the workbook")
}

func runOpen() error {
	p, err := newStore().EnsureTodayPartition()
	if err != nil {
		return fmt.Errorf("failed to prepare today's partition: %w", err)
	}

	target := p.Path
	if openFolder {
		target = filepath.Dir(p.Path)
	}

	if err := utils.OpenInViewer(target); err != nil {
		return err
	}
	fmt.Printf("Opened %s\n", target)
	return nil
}
