package notifier

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/amishk599/medalerts/internal/model"
)

type countingNotifier struct {
	calls atomic.Int32
	err   error
}

func (c *countingNotifier) Notify(_ context.Context, _ model.Message) error {
	c.calls.Add(1)
	return c.err
}

func TestMultiNotifier_AllCalled(t *testing.T) {
	a, b := &countingNotifier{}, &countingNotifier{}
	if err := NewMultiNotifier(a, b).Notify(context.Background(), sampleMessage()); err != nil {
		t.Fatalf("Notify = %v", err)
	}
	if a.calls.Load() != 1 || b.calls.Load() != 1 {
		t.Errorf("calls = %d, %d; want 1, 1", a.calls.Load(), b.calls.Load())
	}
}

func TestMultiNotifier_ErrorDoesNotStopOthers(t *testing.T) {
	boom := errors.New("smtp down")
	failing, ok := &countingNotifier{err: boom}, &countingNotifier{}
	err := NewMultiNotifier(failing, ok).Notify(context.Background(), sampleMessage())
	if !errors.Is(err, boom) {
		t.Errorf("Notify = %v, want %v", err, boom)
	}
	if ok.calls.Load() != 1 {
		t.Error("healthy notifier should still be called")
	}
}

func TestMultiNotifier_Empty(t *testing.T) {
	if err := NewMultiNotifier().Notify(context.Background(), sampleMessage()); err != nil {
		t.Errorf("Notify = %v", err)
	}
}
