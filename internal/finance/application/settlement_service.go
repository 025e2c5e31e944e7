package application

import (
	"context"
	"errors"
	"time"

	finance "freightops/internal/finance/domain"
	"freightops/internal/observability/metrics"
)

// InvoiceRepository provides the open invoice set and accepts balance
// updates after an allocation run.
type InvoiceRepository interface {
	Get(ctx context.Context, id string) (finance.Invoice, error)
	ListOpenByCustomer(ctx context.Context, customerID string) ([]finance.Invoice, error)
	Save(ctx context.Context, invoice finance.Invoice) error
}

// AdvanceRepository provides the advance pool and accepts balance updates.
type AdvanceRepository interface {
	Get(ctx context.Context, id string) (finance.AdvancePayment, error)
	ListAvailableByCustomer(ctx context.Context, customerID string) ([]finance.AdvancePayment, error)
	Save(ctx context.Context, advance finance.AdvancePayment) error
}

// AllocationRepository stores allocation records.
type AllocationRepository interface {
	Get(ctx context.Context, id string) (finance.Allocation, error)
	ListByInvoice(ctx context.Context, invoiceID string) ([]finance.Allocation, error)
	Save(ctx context.Context, allocations ...finance.Allocation) error
}

// AllocationsRecorded is emitted after a successful allocation run.
type AllocationsRecorded struct {
	CustomerID     string
	TotalAllocated float64
	Count          int
	OccurredAt     time.Time
}

// AllocationPublisher emits allocation events.
type AllocationPublisher interface {
	PublishAllocationsRecorded(ctx context.Context, event AllocationsRecorded) error
}

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock uses time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// SettlementService runs payment allocation and reversals against the
// stored invoice and advance balances.
type SettlementService struct {
	invoices    InvoiceRepository
	advances    AdvanceRepository
	allocations AllocationRepository
	publisher   AllocationPublisher
	clock       Clock
}

// NewSettlementService constructs the service. The publisher is optional.
func NewSettlementService(
	invoices InvoiceRepository,
	advances AdvanceRepository,
	allocations AllocationRepository,
	publisher AllocationPublisher,
	clock Clock,
) (*SettlementService, error) {
	if invoices == nil {
		return nil, errors.New("settlement service: nil invoice repository")
	}
	if advances == nil {
		return nil, errors.New("settlement service: nil advance repository")
	}
	if allocations == nil {
		return nil, errors.New("settlement service: nil allocation repository")
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &SettlementService{
		invoices:    invoices,
		advances:    advances,
		allocations: allocations,
		publisher:   publisher,
		clock:       clock,
	}, nil
}

// AllocateForCustomer spreads the customer's advance pool over their open
// invoices and persists the allocations and updated balances.
func (s *SettlementService) AllocateForCustomer(ctx context.Context, customerID string) (finance.AllocationResult, error) {
	start := time.Now()

	invoices, err := s.invoices.ListOpenByCustomer(ctx, customerID)
	if err != nil {
		metrics.ObserveAllocationRun(err, 0, time.Since(start))
		return finance.AllocationResult{}, err
	}
	advances, err := s.advances.ListAvailableByCustomer(ctx, customerID)
	if err != nil {
		metrics.ObserveAllocationRun(err, 0, time.Since(start))
		return finance.AllocationResult{}, err
	}

	result, err := finance.Allocate(advances, invoices)
	metrics.ObserveAllocationRun(err, result.TotalAllocated, time.Since(start))
	if err != nil {
		return finance.AllocationResult{}, err
	}

	if err := s.allocations.Save(ctx, result.Allocations...); err != nil {
		return finance.AllocationResult{}, err
	}
	for _, invoice := range result.UpdatedInvoices {
		if err := s.invoices.Save(ctx, invoice); err != nil {
			return finance.AllocationResult{}, err
		}
	}
	for _, advance := range result.RemainingAdvances {
		if err := s.advances.Save(ctx, advance); err != nil {
			return finance.AllocationResult{}, err
		}
	}

	if s.publisher != nil && len(result.Allocations) > 0 {
		event := AllocationsRecorded{
			CustomerID:     customerID,
			TotalAllocated: result.TotalAllocated,
			Count:          len(result.Allocations),
			OccurredAt:     s.clock.Now(),
		}
		if err := s.publisher.PublishAllocationsRecorded(ctx, event); err != nil {
			return finance.AllocationResult{}, err
		}
	}
	return result, nil
}

// ReverseAllocation voids one allocation: it stores the compensating record
// and restores the invoice and advance balances it had consumed.
func (s *SettlementService) ReverseAllocation(ctx context.Context, allocationID string) (finance.Allocation, error) {
	original, err := s.allocations.Get(ctx, allocationID)
	if err != nil {
		return finance.Allocation{}, err
	}
	if original.Kind == finance.KindReversal {
		return finance.Allocation{}, finance.ErrAlreadyReversed
	}
	siblings, err := s.allocations.ListByInvoice(ctx, original.InvoiceID)
	if err != nil {
		return finance.Allocation{}, err
	}
	for _, sibling := range siblings {
		if sibling.Kind == finance.KindReversal && sibling.ReversesID == original.ID {
			return finance.Allocation{}, finance.ErrAlreadyReversed
		}
	}

	reversal := finance.Reverse(original)
	if err := s.allocations.Save(ctx, reversal); err != nil {
		return finance.Allocation{}, err
	}

	invoice, err := s.invoices.Get(ctx, original.InvoiceID)
	if err != nil {
		return finance.Allocation{}, err
	}
	invoice.BalanceAmount += original.Amount
	if err := s.invoices.Save(ctx, invoice); err != nil {
		return finance.Allocation{}, err
	}

	advance, err := s.advances.Get(ctx, original.PaymentID)
	if err != nil {
		return finance.Allocation{}, err
	}
	advance.AvailableAmount += original.Amount
	if err := s.advances.Save(ctx, advance); err != nil {
		return finance.Allocation{}, err
	}
	return reversal, nil
}

// AgingForCustomer buckets the customer's open invoices by days overdue.
func (s *SettlementService) AgingForCustomer(ctx context.Context, customerID string, asOf time.Time) (finance.AgingReport, error) {
	invoices, err := s.invoices.ListOpenByCustomer(ctx, customerID)
	metrics.IncAgingRun(err)
	if err != nil {
		return finance.AgingReport{}, err
	}

	receivables := make([]finance.Receivable, 0, len(invoices))
	for _, invoice := range invoices {
		receivables = append(receivables, finance.Receivable{
			ID:            invoice.ID,
			CustomerID:    invoice.CustomerID,
			DueDate:       invoice.DueDate,
			BalanceAmount: invoice.BalanceAmount,
			Currency:      invoice.Currency,
		})
	}
	return finance.Aging(receivables, asOf), nil
}
