package logging

import (
	"strings"

	"github.com/zetamatta/go-outputdebug"
	"go.uber.org/zap/zapcore"
)

// debugWriter forwards log lines to OutputDebugString so they show up in
// DebugView when the game has no console.
type debugWriter struct{}

func (debugWriter) Write(p []byte) (int, error) {
	outputdebug.String(strings.TrimRight(string(p), "\r\n"))
	return len(p), nil
}

func platformSinks() []zapcore.WriteSyncer {
	return []zapcore.WriteSyncer{zapcore.AddSync(debugWriter{})}
}
