package gologger

import (
	"strings"

	glog "github.com/goliatone/go-logger/glog"
)

// RootLoggerName is the logger name used for the membership facade.
const RootLoggerName = "membership"

// Resolve uses deterministic precedence provider > logger > nop.
func Resolve(name string, provider glog.LoggerProvider, logger glog.Logger) (glog.LoggerProvider, glog.Logger) {
	if strings.TrimSpace(name) == "" {
		name = RootLoggerName
	}
	return glog.Resolve(name, provider, logger)
}

// Component returns the logger for a named component, e.g. "sheep" resolves
// "membership.sheep" from provider.
func Component(provider glog.LoggerProvider, component string) glog.Logger {
	if provider == nil {
		return glog.Nop()
	}
	name := RootLoggerName
	if component = strings.Trim(strings.TrimSpace(component), "."); component != "" {
		name += "." + component
	}
	return glog.Ensure(provider.GetLogger(name))
}
