package pbesynth

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// indentFormatter renders log lines with a nesting indent, reproducing the
// shape of original_source/src/log.rs's thread-local INDENT string: every
// line is indented by two spaces per level of the depth set through
// Indent/Dedent. No deducer in this package calls them, so engine log
// lines are printed unindented unless a caller brackets its own work.
type indentFormatter struct {
	inner logrus.Formatter
}

func (f *indentFormatter) Format(e *logrus.Entry) ([]byte, error) {
	depth := int(indentDepth.Load())
	prefix := make([]byte, depth*2)
	for i := range prefix {
		prefix[i] = ' '
	}
	e.Message = string(prefix) + e.Message
	return f.inner.Format(e)
}

// indentDepth is process-wide rather than per-goroutine: unlike the Rust
// original's thread-local, a single pbesynth.Executor drives one
// enumeration loop plus many deducer goroutines that are themselves mostly
// blocked awaiting channels, so contention on one shared counter is
// negligible and the resulting trace is still readable nesting, just not
// perfectly per-goroutine-isolated. See DESIGN.md "Open design decisions".
var indentDepth atomic.Int64

// Log is the package-level logger, configured once via ConfigureLogging.
var Log = logrus.New()

var configureOnce sync.Once

// ConfigureLogging installs the indent-aware formatter and sets the
// logrus level from a spec-style verbosity (0=silent .. 5=trace, matching
// original_source/src/log.rs's LOGLEVEL scale).
func ConfigureLogging(verbosity int) {
	configureOnce.Do(func() {
		Log.SetFormatter(&indentFormatter{inner: &logrus.TextFormatter{
			DisableTimestamp: true,
			FullTimestamp:    false,
		}})
	})
	switch {
	case verbosity <= 0:
		Log.SetLevel(logrus.PanicLevel)
	case verbosity == 1:
		Log.SetLevel(logrus.FatalLevel)
	case verbosity == 2:
		Log.SetLevel(logrus.WarnLevel)
	case verbosity == 3:
		Log.SetLevel(logrus.InfoLevel)
	case verbosity == 4:
		Log.SetLevel(logrus.DebugLevel)
	default:
		Log.SetLevel(logrus.TraceLevel)
	}
}

// Indent increases the trace nesting depth for the duration of a recursive
// deduction call; pair with a deferred Dedent.
func Indent() { indentDepth.Add(1) }

// Dedent decreases the trace nesting depth.
func Dedent() { indentDepth.Add(-1) }

// logIndented runs fn with the indent depth incremented, mirroring
// original_source/src/log.rs's infob!/debgb! macros that bracket an
// expression's evaluation with indent()/dedent().
func logIndented(fn func()) {
	Indent()
	defer Dedent()
	fn()
}

func logf(level logrus.Level, format string, args ...interface{}) {
	if Log.IsLevelEnabled(level) {
		Log.Log(level, fmt.Sprintf(format, args...))
	}
}
