package goroutine

import (
	"runtime/debug"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/bookstore-backend/internal/logger"
)

// SafeGo запускает горутину с обработкой panic.
func SafeGo(fn func()) {
	go func() {
		defer Recover()
		fn()
	}()
}

// Recover логирует panic вместе со стеком. Вызывается только через defer.
func Recover() {
	if r := recover(); r != nil {
		if logger.Log != nil {
			logger.Log.WithFields(logrus.Fields{
				"panic": r,
				"stack": string(debug.Stack()),
			}).Error("Panic in goroutine")
		}
	}
}
