package report

import (
	"fmt"
	"os"
	"sync"
)

// reporter is responsible for reporting errors, warnings, and other kinds of
// messages to the user during compilation.  The reporter respects the set log
// level and is synchronized.
type reporter struct {
	// The mutex used to synchronize different report method calls.
	m *sync.Mutex

	// The selected log level of the reporter.  This must be one of the
	// enumerated log levels below.
	logLevel int

	// The number of errors reported so far.
	errorCount int
}

// Enumeration of the different possible log levels.
const (
	LogLevelSilent  = iota // Displays no output.
	LogLevelError          // Displays only errors to the user.
	LogLevelWarn           // Displays warnings and errors to the user.
	LogLevelVerbose        // Displays all compilation messages (default).
)

// rep is the global reporter instance.
var rep = &reporter{
	m:        &sync.Mutex{},
	logLevel: LogLevelVerbose,
}

// InitReporter initializes the global error reporter to the given log level.
func InitReporter(logLevel int) {
	rep = &reporter{
		m:        &sync.Mutex{},
		logLevel: logLevel,
	}
}

// ShouldProceed indicates whether or not there have been any errors that should
// cause compilation to stop before the backend is invoked.
func ShouldProceed() bool {
	return rep.errorCount == 0
}

// ErrorCount returns the number of errors reported so far.
func ErrorCount() int {
	rep.m.Lock()
	defer rep.m.Unlock()

	return rep.errorCount
}

// -----------------------------------------------------------------------------

// ReportCompileError reports a compilation error: ie. erroneous input code.
func ReportCompileError(src *SourceText, cerr *LocalCompileError) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.errorCount++

	if rep.logLevel > LogLevelSilent {
		displayCompileMessage("error", src, cerr.Span, cerr.Message)

		for _, note := range cerr.Notes {
			displayNote(src, note)
		}
	}
}

// ReportCompileWarning reports a compilation warning.
func ReportCompileWarning(src *SourceText, span *TextSpan, msg string, args ...interface{}) {
	if rep.logLevel >= LogLevelWarn {
		rep.m.Lock()
		defer rep.m.Unlock()

		displayCompileMessage("warning", src, span, fmt.Sprintf(msg, args...))
	}
}

// ReportStdError reports a non-fatal, standard Go error: eg. a failure to read
// an imported file.
func ReportStdError(reprPath string, err error) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.errorCount++

	if rep.logLevel > LogLevelSilent {
		displayStdError(reprPath, err)
	}
}

// ReportFatal reports a fatal error and exits the program.  These are expected
// errors that generally result from invalid configuration of some form:
// missing root file, unreadable build profile, etc.
func ReportFatal(msg string, args ...interface{}) {
	if rep.logLevel > LogLevelSilent {
		displayFatal(fmt.Sprintf(msg, args...))
	}

	os.Exit(1)
}

// ReportICE reports an internal compiler error.  These result from a bug or
// unexpected condition within the compiler itself and are always displayed
// regardless of log level.
func ReportICE(msg string, args ...interface{}) {
	displayICE(fmt.Sprintf(msg, args...))
	os.Exit(-1)
}

// -----------------------------------------------------------------------------

// ReportAborted displays the closing message when compilation stops because
// errors were detected.
func ReportAborted() {
	if rep.logLevel == LogLevelVerbose {
		displayAborted(ErrorCount())
	}
}

// ReportFinished displays the closing message for a successful compilation.
func ReportFinished(fileCount int) {
	if rep.logLevel == LogLevelVerbose {
		displayFinished(fileCount)
	}
}
