// Package logger sets up the user-facing logger of the llgram command.
//
// Library packages of llgram trace through schuko/tracing; the command line
// tool reports its own findings (conflicts, malformed grammars, unreadable
// files) through charmbracelet/log.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// Init initializes the logger. Without verbose, only warnings and errors are
// reported.
func Init(verbose, noColor bool) {
	InitWriter(os.Stderr, verbose, noColor)
}

// InitWriter initializes the logger to write to w.
func InitWriter(w io.Writer, verbose, noColor bool) {
	log.SetDefault(log.NewWithOptions(io.MultiWriter(w),
		log.Options{
			ReportCaller:    verbose,
			ReportTimestamp: false,
			TimeFormat:      time.RFC3339,
			Prefix:          "LLGRAM",
		}))

	if verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	log.SetColorProfile(termenv.ANSI256)
	if noColor {
		log.SetColorProfile(termenv.Ascii)
	}
}
