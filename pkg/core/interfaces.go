package core

import (
	"fmt"
	"strings"

	"github.com/golang/glog"
)

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// glogLogger implements Logger by forwarding to glog at INFO severity
type glogLogger struct{}

func (glogLogger) Printf(format string, args ...interface{}) {
	glog.InfoDepth(1, strings.TrimSuffix(fmt.Sprintf(format, args...), "\n"))
}

// NewDefaultLogger returns the Logger used when callers do not supply one
func NewDefaultLogger() Logger {
	return glogLogger{}
}

// nopLogger discards everything
type nopLogger struct{}

func (nopLogger) Printf(string, ...interface{}) {}

// NewNopLogger returns a Logger that drops all output, mostly for tests
func NewNopLogger() Logger {
	return nopLogger{}
}
