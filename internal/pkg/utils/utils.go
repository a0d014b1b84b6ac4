package utils

import (
	"log/slog"
)

func CatchPanic(f func()) (err interface{}) {
	defer func() {
		err = recover()
		if err != nil {
			slog.Error("catch panic", "err", err)
		}
	}()

	f()
	return
}

func RunPanicless(f func()) (panicless bool) {
	defer func() {
		err := recover()
		panicless = err == nil
		if err != nil {
			slog.Error("catch panic", "err", err)
		}
	}()

	f()
	return
}

func RepeatUntilPanicless(f func()) {
	for !RunPanicless(f) {
	}
}
