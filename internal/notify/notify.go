// Package notify defines how terminal form outcomes reach the user.
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/getmentor/companyforms/pkg/logger"
	"go.uber.org/zap"
)

// Notifier surfaces success and failure messages to the user. Each
// terminal submission or failed upload produces exactly one call.
type Notifier interface {
	NotifySuccess(message string)
	NotifyFailure(message string)
}

// LogNotifier reports outcomes to the application log
type LogNotifier struct {
	source string
}

// NewLogNotifier creates a notifier that logs under source
func NewLogNotifier(source string) *LogNotifier {
	return &LogNotifier{source: source}
}

// NotifySuccess logs message at info level
func (n *LogNotifier) NotifySuccess(message string) {
	logger.Info("Form notification", zap.String("source", n.source), zap.String("kind", "success"), zap.String("message", message))
}

// NotifyFailure logs message at warn level
func (n *LogNotifier) NotifyFailure(message string) {
	logger.Warn("Form notification", zap.String("source", n.source), zap.String("kind", "failure"), zap.String("message", message))
}

// WriterNotifier prints outcomes as single lines, the way a toast would
// show them. Safe for concurrent use.
type WriterNotifier struct {
	mu  sync.Mutex
	out io.Writer
}

// NewWriterNotifier creates a notifier printing to out
func NewWriterNotifier(out io.Writer) *WriterNotifier {
	return &WriterNotifier{out: out}
}

// NotifySuccess prints a success line
func (n *WriterNotifier) NotifySuccess(message string) {
	n.write("✔", message)
}

// NotifyFailure prints a failure line
func (n *WriterNotifier) NotifyFailure(message string) {
	n.write("✖", message)
}

func (n *WriterNotifier) write(mark, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, _ = fmt.Fprintf(n.out, "%s %s\n", mark, message)
}

// Multi fans each notification out to several notifiers
type Multi []Notifier

// NotifySuccess forwards to every notifier
func (m Multi) NotifySuccess(message string) {
	for _, n := range m {
		n.NotifySuccess(message)
	}
}

// NotifyFailure forwards to every notifier
func (m Multi) NotifyFailure(message string) {
	for _, n := range m {
		n.NotifyFailure(message)
	}
}

var (
	_ Notifier = (*LogNotifier)(nil)
	_ Notifier = (*WriterNotifier)(nil)
	_ Notifier = Multi(nil)
)
