package trigger

import (
	"fmt"

	"github.com/getmentor/companyforms/pkg/logger"
	"go.uber.org/zap"
)

// CallAsync runs fn in its own goroutine and returns immediately. The
// caller never waits for fn; panics are recovered and logged so a failing
// callback cannot take down the host. A nil fn is skipped silently.
//
// The returned channel is closed when fn has finished, for callers (tests,
// shutdown paths) that do want to observe completion.
func CallAsync(name string, fn func()) <-chan struct{} {
	done := make(chan struct{})
	if fn == nil {
		close(done)
		return done
	}

	go func() {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Async callback panicked",
					zap.String("callback", name),
					zap.String("panic", fmt.Sprint(r)))
			}
		}()

		logger.Debug("Calling async callback", zap.String("callback", name))
		fn()
	}()

	return done
}
