// Package goroutine launches goroutines that cannot crash the process.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"github.com/estatery/estatery/internal/shared/logger"
)

// SafeGo runs fn in a goroutine and logs a panic with its stack instead of crashing.
func SafeGo(log logger.Interface, name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("goroutine panicked",
					"goroutine", name,
					"panic", fmt.Sprintf("%v", r),
					"stack", string(debug.Stack()),
				)
			}
		}()
		fn()
	}()
}
