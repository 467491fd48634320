package uniprot

import (
	"io"

	"github.com/charmbracelet/log"
)

// discardLogger is the silent default a freshly built Options carries:
// pipeline lifecycle events are logged, but nowhere, until a caller
// opts in with WithLogger.
func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}
