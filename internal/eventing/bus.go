package eventing

import (
	"context"
	"errors"
	"sync"

	billingapp "freightops/internal/billing/application"
	financeapp "freightops/internal/finance/application"
)

// InMemoryEventBus is a lightweight in-process event bus for composing the
// engines without external messaging.
type InMemoryEventBus struct {
	mu sync.RWMutex

	invoiceHandlers    []func(context.Context, billingapp.InvoiceComputed) error
	allocationHandlers []func(context.Context, financeapp.AllocationsRecorded) error
}

// NewInMemoryEventBus constructs a new bus.
func NewInMemoryEventBus() *InMemoryEventBus {
	return &InMemoryEventBus{}
}

// SubscribeInvoiceComputed registers a handler for InvoiceComputed.
func (b *InMemoryEventBus) SubscribeInvoiceComputed(handler func(context.Context, billingapp.InvoiceComputed) error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.invoiceHandlers = append(b.invoiceHandlers, handler)
}

// PublishInvoiceComputed delivers an InvoiceComputed event to every handler.
func (b *InMemoryEventBus) PublishInvoiceComputed(ctx context.Context, event billingapp.InvoiceComputed) error {
	b.mu.RLock()
	handlers := append([]func(context.Context, billingapp.InvoiceComputed) error(nil), b.invoiceHandlers...)
	b.mu.RUnlock()

	for _, handler := range handlers {
		if handler == nil {
			continue
		}
		if err := handler(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

// SubscribeAllocationsRecorded registers a handler for AllocationsRecorded.
func (b *InMemoryEventBus) SubscribeAllocationsRecorded(handler func(context.Context, financeapp.AllocationsRecorded) error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.allocationHandlers = append(b.allocationHandlers, handler)
}

// PublishAllocationsRecorded delivers an AllocationsRecorded event to every
// handler.
func (b *InMemoryEventBus) PublishAllocationsRecorded(ctx context.Context, event financeapp.AllocationsRecorded) error {
	b.mu.RLock()
	handlers := append([]func(context.Context, financeapp.AllocationsRecorded) error(nil), b.allocationHandlers...)
	b.mu.RUnlock()

	for _, handler := range handlers {
		if handler == nil {
			continue
		}
		if err := handler(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

// InvoicePublisher adapts the bus to the billing application port.
type InvoicePublisher struct {
	bus *InMemoryEventBus
}

// NewInvoicePublisher constructs an adapter for invoice events.
func NewInvoicePublisher(bus *InMemoryEventBus) (*InvoicePublisher, error) {
	if bus == nil {
		return nil, errors.New("invoice publisher: nil bus")
	}
	return &InvoicePublisher{bus: bus}, nil
}

// PublishInvoiceComputed publishes invoice events from the billing layer.
func (p *InvoicePublisher) PublishInvoiceComputed(ctx context.Context, event billingapp.InvoiceComputed) error {
	return p.bus.PublishInvoiceComputed(ctx, event)
}

// AllocationPublisher adapts the bus to the finance application port.
type AllocationPublisher struct {
	bus *InMemoryEventBus
}

// NewAllocationPublisher constructs an adapter for allocation events.
func NewAllocationPublisher(bus *InMemoryEventBus) (*AllocationPublisher, error) {
	if bus == nil {
		return nil, errors.New("allocation publisher: nil bus")
	}
	return &AllocationPublisher{bus: bus}, nil
}

// PublishAllocationsRecorded publishes allocation events from settlement
// runs.
func (p *AllocationPublisher) PublishAllocationsRecorded(ctx context.Context, event financeapp.AllocationsRecorded) error {
	return p.bus.PublishAllocationsRecorded(ctx, event)
}
