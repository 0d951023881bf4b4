// Package log provides the process-wide leveled logger, in the shape
// used throughout the storage and scheduler code: a package-level
// go-kit/log logger, filtered by level, initialized once at startup.
package log

import (
	"os"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Logger is the process-wide logger. Until InitLogger is called it is a
// logfmt logger writing to stderr at debug level.
var Logger = newLogger("debug")

// InitLogger replaces Logger with one filtered at levelName
// (debug|info|warn|error).
func InitLogger(levelName string) {
	Logger = newLogger(levelName)
}

func newLogger(levelName string) log.Logger {
	l := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	l = log.With(l, "ts", log.TimestampFormat(time.Now, time.RFC3339Nano), "caller", log.Caller(5))
	return level.NewFilter(l, levelOption(levelName))
}

func levelOption(levelName string) level.Option {
	switch levelName {
	case "debug":
		return level.AllowDebug()
	case "warn":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	default:
		return level.AllowInfo()
	}
}
