package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDispatcher_SyncDispatchOrder(t *testing.T) {
	d := NewDispatcher(zap.NewNop())
	defer d.Close()

	var calls []string
	d.SubscribeNamed(TypeVoucherIssued, "first", func(ctx context.Context, evt *Event) error {
		calls = append(calls, "first")
		return nil
	})
	d.SubscribeNamed(TypeVoucherIssued, "second", func(ctx context.Context, evt *Event) error {
		calls = append(calls, "second")
		return nil
	})

	err := d.Dispatch(context.Background(), New(TypeVoucherIssued, "VOU1", nil))
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestDispatcher_SyncDispatchStopsOnError(t *testing.T) {
	d := NewDispatcher(zap.NewNop())
	defer d.Close()

	handlerErr := errors.New("boom")
	secondCalled := false

	d.SubscribeNamed(TypeVoucherIssued, "failing", func(ctx context.Context, evt *Event) error {
		return handlerErr
	})
	d.SubscribeNamed(TypeVoucherIssued, "after", func(ctx context.Context, evt *Event) error {
		secondCalled = true
		return nil
	})

	err := d.Dispatch(context.Background(), New(TypeVoucherIssued, "VOU1", nil))
	assert.ErrorIs(t, err, handlerErr)
	assert.False(t, secondCalled)
}

func TestDispatcher_DispatchIgnoresOtherTypes(t *testing.T) {
	d := NewDispatcher(zap.NewNop())
	defer d.Close()

	called := false
	d.Subscribe(TypeVoucherRedeemed, func(ctx context.Context, evt *Event) error {
		called = true
		return nil
	})

	require.NoError(t, d.Dispatch(context.Background(), New(TypeVoucherIssued, "VOU1", nil)))
	assert.False(t, called)
}

func TestDispatcher_AsyncDispatchCompletesBeforeClose(t *testing.T) {
	d := NewDispatcher(zap.NewNop())

	var mu sync.Mutex
	var received []string

	d.SubscribeNamed(TypeVoucherStoreChanged, "view-refresh", func(ctx context.Context, evt *Event) error {
		mu.Lock()
		received = append(received, evt.VoucherID)
		mu.Unlock()
		return nil
	})

	d.DispatchAsync(context.Background(), New(TypeVoucherStoreChanged, "VOU1", nil))
	d.DispatchAsync(context.Background(), New(TypeVoucherStoreChanged, "VOU2", nil))

	// Close waits for in-flight async handlers
	require.NoError(t, d.Close())

	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []string{"VOU1", "VOU2"}, received)
}

func TestDispatcher_ClosedDispatcherRejectsEvents(t *testing.T) {
	d := NewDispatcher(zap.NewNop())

	called := false
	d.Subscribe(TypeVoucherIssued, func(ctx context.Context, evt *Event) error {
		called = true
		return nil
	})

	require.NoError(t, d.Close())

	err := d.Dispatch(context.Background(), New(TypeVoucherIssued, "VOU1", nil))
	assert.Error(t, err)

	d.DispatchAsync(context.Background(), New(TypeVoucherIssued, "VOU1", nil))
	assert.False(t, called)
}

func TestDispatcher_Unsubscribe(t *testing.T) {
	d := NewDispatcher(zap.NewNop())
	defer d.Close()

	called := false
	d.SubscribeNamed(TypeVoucherIssued, "removable", func(ctx context.Context, evt *Event) error {
		called = true
		return nil
	})
	d.Unsubscribe(TypeVoucherIssued, "removable")

	require.NoError(t, d.Dispatch(context.Background(), New(TypeVoucherIssued, "VOU1", nil)))
	assert.False(t, called)
}

func TestEvent_New(t *testing.T) {
	evt := New(TypeVoucherRedeemed, "VOU42", map[string]interface{}{"valor": 12500})

	assert.NotEmpty(t, evt.ID)
	assert.Equal(t, TypeVoucherRedeemed, evt.Type)
	assert.Equal(t, "VOU42", evt.VoucherID)
	assert.False(t, evt.Timestamp.IsZero())

	other := New(TypeVoucherRedeemed, "VOU42", nil)
	assert.NotEqual(t, evt.ID, other.ID)
}
