package event

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Handler processes a dispatched event
type Handler func(ctx context.Context, evt *Event) error

// HandlerInfo describes a registered handler
type HandlerInfo struct {
	Name      string
	EventType Type
	Handler   Handler
}

// Dispatcher routes events to registered handlers. It is the observer
// mechanism the repositories use to broadcast store changes to open views.
type Dispatcher interface {
	// Subscribe registers a handler for an event type
	Subscribe(eventType Type, handler Handler)

	// SubscribeNamed registers a handler with a name for debugging
	SubscribeNamed(eventType Type, name string, handler Handler)

	// Unsubscribe removes a handler by name
	Unsubscribe(eventType Type, name string)

	// Dispatch sends the event to all registered handlers synchronously,
	// in registration order; returns the first error encountered
	Dispatch(ctx context.Context, evt *Event) error

	// DispatchAsync sends the event to handlers without waiting for them.
	// Fire-and-forget: handler errors are logged, never surfaced.
	DispatchAsync(ctx context.Context, evt *Event)

	// Close shuts down the dispatcher and waits for async handlers
	Close() error
}

type eventDispatcher struct {
	mu       sync.RWMutex
	handlers map[Type][]HandlerInfo
	logger   *zap.Logger

	wg     sync.WaitGroup
	closed atomic.Bool
}

// NewDispatcher creates a new event dispatcher
func NewDispatcher(logger *zap.Logger) Dispatcher {
	return &eventDispatcher{
		handlers: make(map[Type][]HandlerInfo),
		logger:   logger,
	}
}

// Subscribe registers a handler with an auto-generated name
func (d *eventDispatcher) Subscribe(eventType Type, handler Handler) {
	d.mu.RLock()
	name := fmt.Sprintf("handler-%d", len(d.handlers[eventType]))
	d.mu.RUnlock()
	d.SubscribeNamed(eventType, name, handler)
}

// SubscribeNamed registers a handler with a specific name for debugging
func (d *eventDispatcher) SubscribeNamed(eventType Type, name string, handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.handlers[eventType] = append(d.handlers[eventType], HandlerInfo{
		Name:      name,
		EventType: eventType,
		Handler:   handler,
	})

	d.logger.Debug("Handler registered",
		zap.String("event_type", eventType.String()),
		zap.String("handler_name", name))
}

// Unsubscribe removes a handler by name
func (d *eventDispatcher) Unsubscribe(eventType Type, name string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	handlers := d.handlers[eventType]
	filtered := make([]HandlerInfo, 0, len(handlers))
	for _, h := range handlers {
		if h.Name != name {
			filtered = append(filtered, h)
		}
	}
	d.handlers[eventType] = filtered
}

// Dispatch sends the event to all registered handlers synchronously
func (d *eventDispatcher) Dispatch(ctx context.Context, evt *Event) error {
	if d.closed.Load() {
		return fmt.Errorf("dispatcher is closed")
	}

	d.mu.RLock()
	handlers := append([]HandlerInfo(nil), d.handlers[evt.Type]...)
	d.mu.RUnlock()

	for _, h := range handlers {
		if err := h.Handler(ctx, evt); err != nil {
			d.logger.Error("Event handler failed",
				zap.String("event_type", evt.Type.String()),
				zap.String("handler_name", h.Name),
				zap.Error(err))
			return fmt.Errorf("handler %s failed: %w", h.Name, err)
		}
	}
	return nil
}

// DispatchAsync sends the event to handlers without waiting for completion
func (d *eventDispatcher) DispatchAsync(ctx context.Context, evt *Event) {
	if d.closed.Load() {
		return
	}

	d.mu.RLock()
	handlers := append([]HandlerInfo(nil), d.handlers[evt.Type]...)
	d.mu.RUnlock()

	for _, h := range handlers {
		d.wg.Add(1)
		go func(h HandlerInfo) {
			defer d.wg.Done()
			if err := h.Handler(ctx, evt); err != nil {
				d.logger.Warn("Async event handler failed",
					zap.String("event_type", evt.Type.String()),
					zap.String("handler_name", h.Name),
					zap.Error(err))
			}
		}(h)
	}
}

// Close shuts down the dispatcher and waits for in-flight async handlers
func (d *eventDispatcher) Close() error {
	d.closed.Store(true)
	d.wg.Wait()
	return nil
}
