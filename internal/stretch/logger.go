package stretch

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler молча отбрасывает все записи. Enabled возвращает false,
// поэтому сообщения даже не форматируются.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger задаёт логгер пакета. По умолчанию пакет ничего не пишет;
// nil возвращает молчаливый логгер. Безопасен для конкурентного вызова.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger возвращает текущий логгер пакета.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
