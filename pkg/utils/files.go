// =============================================================================
// Yard Ledger - File Helpers
// =============================================================================

package utils

import "os"

// FileExists reports whether a partition or document already sits at path.
// A stat failure other than "not exist" counts as present so callers do not
// clobber a file they merely cannot inspect.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
