// Package logging builds the zap logger each module uses.
package logging

import (
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a console logger at level writing to stderr, any extra
// sinks and, on windows, the debugger output.
func New(name, level string, extra ...zapcore.WriteSyncer) (*zap.SugaredLogger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, errors.Wrapf(err, "log level %q", level)
	}
	sinks := append([]zapcore.WriteSyncer{zapcore.Lock(os.Stderr)}, platformSinks()...)
	sinks = append(sinks, extra...)

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.NewMultiWriteSyncer(sinks...),
		zap.NewAtomicLevelAt(lvl),
	)
	return zap.New(core).Named(name).Sugar(), nil
}

// Must is New falling back to a no-op logger when the level is invalid.
func Must(name, level string) *zap.SugaredLogger {
	log, err := New(name, level)
	if err != nil {
		log, _ = New(name, "info")
		log.Warnw("invalid log level, using info", "error", err)
	}
	return log
}
