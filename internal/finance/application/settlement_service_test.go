package application

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	finance "freightops/internal/finance/domain"
	"freightops/internal/finance/infrastructure/memory"
)

var settlementNow = time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type capturingPublisher struct {
	events []AllocationsRecorded
}

func (p *capturingPublisher) PublishAllocationsRecorded(_ context.Context, event AllocationsRecorded) error {
	p.events = append(p.events, event)
	return nil
}

type fixture struct {
	invoices    *memory.InvoiceRepository
	advances    *memory.AdvanceRepository
	allocations *memory.AllocationRepository
	publisher   *capturingPublisher
	service     *SettlementService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		invoices:    memory.NewInvoiceRepository(),
		advances:    memory.NewAdvanceRepository(),
		allocations: memory.NewAllocationRepository(),
		publisher:   &capturingPublisher{},
	}
	service, err := NewSettlementService(f.invoices, f.advances, f.allocations, f.publisher, fixedClock{now: settlementNow})
	if err != nil {
		t.Fatalf("NewSettlementService: %v", err)
	}
	f.service = service
	return f
}

func (f *fixture) seed(t *testing.T, invoices []finance.Invoice, advances []finance.AdvancePayment) {
	t.Helper()
	ctx := context.Background()
	for _, invoice := range invoices {
		if err := f.invoices.Save(ctx, invoice); err != nil {
			t.Fatalf("seed invoice: %v", err)
		}
	}
	for _, advance := range advances {
		if err := f.advances.Save(ctx, advance); err != nil {
			t.Fatalf("seed advance: %v", err)
		}
	}
}

func TestAllocateForCustomerPersistsBalances(t *testing.T) {
	f := newFixture(t)
	f.seed(t,
		[]finance.Invoice{
			{ID: "inv-1", CustomerID: "c-1", DueDate: settlementNow.AddDate(0, 0, -20), BalanceAmount: 100, Currency: "CNY"},
			{ID: "inv-2", CustomerID: "c-1", DueDate: settlementNow.AddDate(0, 0, -5), BalanceAmount: 60, Currency: "CNY"},
			{ID: "inv-other", CustomerID: "c-2", DueDate: settlementNow, BalanceAmount: 40, Currency: "CNY"},
		},
		[]finance.AdvancePayment{
			{ID: "adv-1", CustomerID: "c-1", AvailableAmount: 130, Currency: "CNY"},
		},
	)

	result, err := f.service.AllocateForCustomer(context.Background(), "c-1")
	if err != nil {
		t.Fatalf("AllocateForCustomer returned error: %v", err)
	}
	if result.TotalAllocated != 130 {
		t.Errorf("total allocated = %v, want 130", result.TotalAllocated)
	}

	ctx := context.Background()
	oldest, _ := f.invoices.Get(ctx, "inv-1")
	if oldest.BalanceAmount != 0 {
		t.Errorf("inv-1 balance = %v, want 0 (oldest due settles first)", oldest.BalanceAmount)
	}
	newer, _ := f.invoices.Get(ctx, "inv-2")
	if newer.BalanceAmount != 30 {
		t.Errorf("inv-2 balance = %v, want 30", newer.BalanceAmount)
	}
	other, _ := f.invoices.Get(ctx, "inv-other")
	if other.BalanceAmount != 40 {
		t.Errorf("inv-other balance = %v, want untouched 40", other.BalanceAmount)
	}
	advance, _ := f.advances.Get(ctx, "adv-1")
	if advance.AvailableAmount != 0 {
		t.Errorf("advance balance = %v, want 0", advance.AvailableAmount)
	}

	if len(f.publisher.events) != 1 {
		t.Fatalf("events = %d, want 1", len(f.publisher.events))
	}
	if f.publisher.events[0].TotalAllocated != 130 || f.publisher.events[0].CustomerID != "c-1" {
		t.Errorf("event = %+v", f.publisher.events[0])
	}
}

func TestAllocateForCustomerNothingOpen(t *testing.T) {
	f := newFixture(t)
	result, err := f.service.AllocateForCustomer(context.Background(), "c-none")
	if err != nil {
		t.Fatalf("AllocateForCustomer returned error: %v", err)
	}
	if result.TotalAllocated != 0 || len(result.Allocations) != 0 {
		t.Errorf("result = %+v, want empty run", result)
	}
	if len(f.publisher.events) != 0 {
		t.Errorf("events = %d, want none for empty run", len(f.publisher.events))
	}
}

func TestReverseAllocationRestoresBalances(t *testing.T) {
	f := newFixture(t)
	f.seed(t,
		[]finance.Invoice{{ID: "inv-1", CustomerID: "c-1", DueDate: settlementNow, BalanceAmount: 80, Currency: "CNY"}},
		[]finance.AdvancePayment{{ID: "adv-1", CustomerID: "c-1", AvailableAmount: 80, Currency: "CNY"}},
	)
	result, err := f.service.AllocateForCustomer(context.Background(), "c-1")
	if err != nil {
		t.Fatalf("AllocateForCustomer returned error: %v", err)
	}
	original := result.Allocations[0]

	reversal, err := f.service.ReverseAllocation(context.Background(), original.ID)
	if err != nil {
		t.Fatalf("ReverseAllocation returned error: %v", err)
	}
	if reversal.Amount != -original.Amount || reversal.ReversesID != original.ID {
		t.Errorf("reversal = %+v", reversal)
	}

	ctx := context.Background()
	invoice, _ := f.invoices.Get(ctx, "inv-1")
	if invoice.BalanceAmount != 80 {
		t.Errorf("invoice balance = %v, want restored 80", invoice.BalanceAmount)
	}
	advance, _ := f.advances.Get(ctx, "adv-1")
	if advance.AvailableAmount != 80 {
		t.Errorf("advance balance = %v, want restored 80", advance.AvailableAmount)
	}

	if _, err := f.service.ReverseAllocation(context.Background(), original.ID); !errors.Is(err, finance.ErrAlreadyReversed) {
		t.Errorf("second reversal error = %v, want ErrAlreadyReversed", err)
	}
}

func TestReverseAllocationUnknownID(t *testing.T) {
	f := newFixture(t)
	if _, err := f.service.ReverseAllocation(context.Background(), "nope"); !errors.Is(err, finance.ErrAllocationNotFound) {
		t.Errorf("error = %v, want ErrAllocationNotFound", err)
	}
}

func TestAgingForCustomer(t *testing.T) {
	f := newFixture(t)
	f.seed(t,
		[]finance.Invoice{
			{ID: "inv-1", CustomerID: "c-1", DueDate: settlementNow.AddDate(0, 0, -45), BalanceAmount: 300, Currency: "CNY"},
			{ID: "inv-2", CustomerID: "c-1", DueDate: settlementNow.AddDate(0, 0, 10), BalanceAmount: 100, Currency: "CNY"},
		},
		nil,
	)

	report, err := f.service.AgingForCustomer(context.Background(), "c-1", settlementNow)
	if err != nil {
		t.Fatalf("AgingForCustomer returned error: %v", err)
	}
	if math.Abs(report.TotalAmount-400) > 1e-9 {
		t.Errorf("total = %v, want 400", report.TotalAmount)
	}
	if math.Abs(report.OverdueAmount-300) > 1e-9 {
		t.Errorf("overdue = %v, want 300", report.OverdueAmount)
	}
	if report.Buckets[2].Count != 1 {
		t.Errorf("31-60 bucket count = %d, want 1", report.Buckets[2].Count)
	}
}
