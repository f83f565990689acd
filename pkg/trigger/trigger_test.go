package trigger

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("callback did not finish")
	}
}

func TestCallAsync_RunsCallback(t *testing.T) {
	defer goleak.VerifyNone(t)

	var calls atomic.Int32
	done := CallAsync("refresh", func() { calls.Add(1) })

	waitDone(t, done)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCallAsync_NilCallback(t *testing.T) {
	done := CallAsync("refresh", nil)
	waitDone(t, done)
}

func TestCallAsync_RecoversPanic(t *testing.T) {
	defer goleak.VerifyNone(t)

	done := CallAsync("refresh", func() { panic("list endpoint down") })
	waitDone(t, done)
}
