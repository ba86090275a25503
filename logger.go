package mpvipc

import "github.com/tr1v3r/pkg/log"

// Logger is the observability sink the connection reports diagnostics to.
// It is injected through [Options] rather than taken from a process-wide
// logger so that embedding applications keep control of their log output.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

// PkgLog returns a Logger backed by github.com/tr1v3r/pkg/log.
func PkgLog() Logger { return pkgLogger{} }

type pkgLogger struct{}

func (pkgLogger) Debugf(format string, args ...any) { log.Debug(format, args...) }
func (pkgLogger) Infof(format string, args ...any)  { log.Info(format, args...) }
func (pkgLogger) Errorf(format string, args ...any) { log.Error(format, args...) }
