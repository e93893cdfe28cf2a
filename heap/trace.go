// ABOUTME: Tracing hooks for the heap model
// ABOUTME: Routes diagnostics to the global schuko core tracer when one is installed

package heap

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the global core tracer. It may be nil when no tracer is installed.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

func debugf(format string, args ...interface{}) {
	if t := T(); t != nil {
		t.Debugf(format, args...)
	}
}

func errorf(format string, args ...interface{}) {
	if t := T(); t != nil {
		t.Errorf(format, args...)
	}
}
