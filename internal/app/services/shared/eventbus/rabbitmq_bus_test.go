package eventbus

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeConfirmation answers WaitContext once the broker settles its own tag.
type fakeConfirmation struct {
	settled chan bool
}

func newFakeConfirmation() *fakeConfirmation {
	return &fakeConfirmation{settled: make(chan bool, 1)}
}

func (c *fakeConfirmation) WaitContext(ctx context.Context) (bool, error) {
	select {
	case acked := <-c.settled:
		return acked, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

func TestAwaitConfirm(t *testing.T) {
	t.Run("Ack", func(t *testing.T) {
		confirmation := newFakeConfirmation()
		confirmation.settled <- true
		assert.NoError(t, awaitConfirm(context.Background(), confirmation, "appointments/appointment.created.PE"))
	})

	t.Run("Nack", func(t *testing.T) {
		confirmation := newFakeConfirmation()
		confirmation.settled <- false
		assert.ErrorIs(t, awaitConfirm(context.Background(), confirmation, "appointments/appointment.created.PE"), errNotConfirmed)
	})

	t.Run("Late Ack Does Not Answer The Next Publish", func(t *testing.T) {
		first := newFakeConfirmation()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		assert.ErrorIs(t, awaitConfirm(ctx, first, "appointments/appointment.created.PE"), context.DeadlineExceeded)

		// The broker acks the timed out message, then nacks the next one.
		first.settled <- true
		second := newFakeConfirmation()
		second.settled <- false

		assert.ErrorIs(t, awaitConfirm(context.Background(), second, "appointments/appointment.created.CL"), errNotConfirmed)
	})
}
