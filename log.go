package caption

import (
	"fmt"
	"os"
)

// loggedOnce tracks diagnostic messages that have already been printed.
// Plain map, no locking: caption is single-threaded by contract.
var loggedOnce map[string]struct{}

// logOnce prints a diagnostic warning to stderr the first time a distinct
// message occurs. Diagnostics never interrupt rendering.
func logOnce(msg string) {
	if _, seen := loggedOnce[msg]; seen {
		return
	}
	if loggedOnce == nil {
		loggedOnce = make(map[string]struct{})
	}
	loggedOnce[msg] = struct{}{}
	_, _ = fmt.Fprintf(os.Stderr, "[caption] warning: %s\n", msg)
}

// resetLogOnce clears the dedup registry. Test hook.
func resetLogOnce() {
	loggedOnce = nil
}
