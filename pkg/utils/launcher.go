// =============================================================================
// Yard Ledger - OS File Launcher
// =============================================================================
//
// Opens a file or directory in the host environment's default viewer. This is
// a convenience side door for the operator (jump straight to today's
// spreadsheet), not part of the ledger's contract: the launch is
// fire-and-forget and a viewer that fails to appear is reported but harmless.
//
// =============================================================================

package utils

import (
	"fmt"
	"os/exec"
	"runtime"
)

// OpenInViewer asks the host OS to open path with its default application.
func OpenInViewer(path string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", path)
	case "darwin":
		cmd = exec.Command("open", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to launch viewer for %s: %w", path, err)
	}
	// Deliberately not waited on; the viewer outlives the command.
	return nil
}
