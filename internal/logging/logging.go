// Package logging hands out package-scoped loggo loggers.
package logging

import (
	"os"

	"github.com/juju/loggo"
)

// DebugEnv raises every logger obtained through GetLogger to DEBUG when set
// to anything but "" or "0".
const DebugEnv = "ABTOOLS_DEBUG"

// GetLogger returns the named logger at INFO, or DEBUG when DebugEnv is set.
func GetLogger(name string) loggo.Logger {
	logger := loggo.GetLogger(name)
	if v := os.Getenv(DebugEnv); v != "" && v != "0" {
		logger.SetLogLevel(loggo.DEBUG)
	} else {
		logger.SetLogLevel(loggo.INFO)
	}
	return logger
}

// Configure applies a loggo specification such as
// "<root>=WARNING;abtools.anarci=DEBUG". An empty spec is a no-op.
func Configure(spec string) error {
	if spec == "" {
		return nil
	}
	return loggo.ConfigureLoggers(spec)
}
