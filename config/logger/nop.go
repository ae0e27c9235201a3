package logger

import "github.com/rs/zerolog"

// NewNop returns an AppLogger that discards everything; used by tests.
func NewNop() *AppLogger {
	nop := CommonLogger{
		Info:    zerolog.Nop(),
		Error:   zerolog.Nop(),
		Trace:   zerolog.Nop(),
		Warning: zerolog.Nop(),
		Stream:  zerolog.Nop(),
	}
	return &AppLogger{Http: nop, WS: nop}
}
