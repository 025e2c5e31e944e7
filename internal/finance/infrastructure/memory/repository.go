package memory

import (
	"context"
	"sync"

	finance "freightops/internal/finance/domain"
)

// InvoiceRepository is an in-memory invoice store.
type InvoiceRepository struct {
	mu       sync.RWMutex
	invoices map[string]finance.Invoice
	order    []string
}

// NewInvoiceRepository constructs an empty repository.
func NewInvoiceRepository() *InvoiceRepository {
	return &InvoiceRepository{invoices: make(map[string]finance.Invoice)}
}

// Save stores or replaces an invoice.
func (r *InvoiceRepository) Save(ctx context.Context, invoice finance.Invoice) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.invoices[invoice.ID]; !exists {
		r.order = append(r.order, invoice.ID)
	}
	r.invoices[invoice.ID] = invoice
	return nil
}

// Get loads one invoice.
func (r *InvoiceRepository) Get(ctx context.Context, id string) (finance.Invoice, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	invoice, ok := r.invoices[id]
	if !ok {
		return finance.Invoice{}, finance.ErrInvoiceNotFound
	}
	return invoice, nil
}

// ListOpenByCustomer returns the customer's invoices that still carry a
// balance, in insertion order.
func (r *InvoiceRepository) ListOpenByCustomer(ctx context.Context, customerID string) ([]finance.Invoice, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	var open []finance.Invoice
	for _, id := range r.order {
		invoice := r.invoices[id]
		if invoice.CustomerID == customerID && invoice.BalanceAmount > 0 {
			open = append(open, invoice)
		}
	}
	return open, nil
}

// AdvanceRepository is an in-memory advance payment store. Insertion order
// is preserved because it drives allocation precedence.
type AdvanceRepository struct {
	mu       sync.RWMutex
	advances map[string]finance.AdvancePayment
	order    []string
}

// NewAdvanceRepository constructs an empty repository.
func NewAdvanceRepository() *AdvanceRepository {
	return &AdvanceRepository{advances: make(map[string]finance.AdvancePayment)}
}

// Save stores or replaces an advance payment.
func (r *AdvanceRepository) Save(ctx context.Context, advance finance.AdvancePayment) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.advances[advance.ID]; !exists {
		r.order = append(r.order, advance.ID)
	}
	r.advances[advance.ID] = advance
	return nil
}

// Get loads one advance payment.
func (r *AdvanceRepository) Get(ctx context.Context, id string) (finance.AdvancePayment, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	advance, ok := r.advances[id]
	if !ok {
		return finance.AdvancePayment{}, finance.ErrAdvanceNotFound
	}
	return advance, nil
}

// ListAvailableByCustomer returns the customer's advances with available
// funds, in insertion order.
func (r *AdvanceRepository) ListAvailableByCustomer(ctx context.Context, customerID string) ([]finance.AdvancePayment, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	var available []finance.AdvancePayment
	for _, id := range r.order {
		advance := r.advances[id]
		if advance.CustomerID == customerID && advance.AvailableAmount > 0 {
			available = append(available, advance)
		}
	}
	return available, nil
}

// AllocationRepository is an in-memory allocation store.
type AllocationRepository struct {
	mu          sync.RWMutex
	allocations map[string]finance.Allocation
	order       []string
}

// NewAllocationRepository constructs an empty repository.
func NewAllocationRepository() *AllocationRepository {
	return &AllocationRepository{allocations: make(map[string]finance.Allocation)}
}

// Save stores a batch of allocations.
func (r *AllocationRepository) Save(ctx context.Context, allocations ...finance.Allocation) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, allocation := range allocations {
		if _, exists := r.allocations[allocation.ID]; !exists {
			r.order = append(r.order, allocation.ID)
		}
		r.allocations[allocation.ID] = allocation
	}
	return nil
}

// Get loads one allocation.
func (r *AllocationRepository) Get(ctx context.Context, id string) (finance.Allocation, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	allocation, ok := r.allocations[id]
	if !ok {
		return finance.Allocation{}, finance.ErrAllocationNotFound
	}
	return allocation, nil
}

// ListByInvoice returns every allocation touching an invoice, in insertion
// order.
func (r *AllocationRepository) ListByInvoice(ctx context.Context, invoiceID string) ([]finance.Allocation, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []finance.Allocation
	for _, id := range r.order {
		allocation := r.allocations[id]
		if allocation.InvoiceID == invoiceID {
			matched = append(matched, allocation)
		}
	}
	return matched, nil
}
