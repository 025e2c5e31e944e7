package finance

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Invoice is an open receivable document with its outstanding balance.
type Invoice struct {
	ID            string
	CustomerID    string
	DueDate       time.Time
	BalanceAmount float64
	Currency      string
}

// AdvancePayment is a customer payment not yet tied to specific invoices.
type AdvancePayment struct {
	ID              string
	CustomerID      string
	AvailableAmount float64
	Currency        string
}

// AllocationKind distinguishes a standard allocation from its reversal.
type AllocationKind string

const (
	KindStandard AllocationKind = "STANDARD"
	KindReversal AllocationKind = "REVERSAL"
)

// Allocation ties a slice of one advance payment to one invoice. A reversal
// carries the negated amount and references the original allocation.
type Allocation struct {
	ID         string
	InvoiceID  string
	PaymentID  string
	Amount     float64
	Currency   string
	Kind       AllocationKind
	ReversesID string
}

// AllocationResult is the outcome of one allocation run. The input advances
// and invoices are untouched; updated balances come back as new values.
type AllocationResult struct {
	Allocations             []Allocation
	TotalAllocated          float64
	RemainingAdvanceBalance float64
	RemainingAdvances       []AdvancePayment
	UpdatedInvoices         []Invoice
}

// Allocate spreads the advance pool over the open invoices, earliest due
// date first. Within an invoice the advances are consumed in their given
// order. Inputs are copied before mutation, so callers keep their records
// intact and apply the returned balances themselves.
func Allocate(advances []AdvancePayment, invoices []Invoice) (AllocationResult, error) {
	for _, a := range advances {
		if a.AvailableAmount < 0 {
			return AllocationResult{}, ErrNegativeAmount
		}
	}
	for _, inv := range invoices {
		if inv.BalanceAmount < 0 {
			return AllocationResult{}, ErrNegativeAmount
		}
	}

	pool := make([]AdvancePayment, len(advances))
	copy(pool, advances)
	open := make([]Invoice, len(invoices))
	copy(open, invoices)
	sort.SliceStable(open, func(i, j int) bool {
		return open[i].DueDate.Before(open[j].DueDate)
	})

	result := AllocationResult{}
	for i := range open {
		remaining := open[i].BalanceAmount
		for j := range pool {
			if remaining <= 0 {
				break
			}
			if pool[j].AvailableAmount <= 0 {
				continue
			}
			amount := remaining
			if pool[j].AvailableAmount < amount {
				amount = pool[j].AvailableAmount
			}
			pool[j].AvailableAmount -= amount
			remaining -= amount
			result.Allocations = append(result.Allocations, Allocation{
				ID:        uuid.NewString(),
				InvoiceID: open[i].ID,
				PaymentID: pool[j].ID,
				Amount:    amount,
				Currency:  open[i].Currency,
				Kind:      KindStandard,
			})
			result.TotalAllocated += amount
		}
		open[i].BalanceAmount = remaining
	}

	for _, a := range pool {
		result.RemainingAdvanceBalance += a.AvailableAmount
	}
	result.RemainingAdvances = pool
	result.UpdatedInvoices = open
	return result, nil
}

// Reverse builds the compensating record for an allocation. Balances are not
// touched here; the caller applies the reversal to invoice and advance
// state.
func Reverse(original Allocation) Allocation {
	return Allocation{
		ID:         uuid.NewString(),
		InvoiceID:  original.InvoiceID,
		PaymentID:  original.PaymentID,
		Amount:     -original.Amount,
		Currency:   original.Currency,
		Kind:       KindReversal,
		ReversesID: original.ID,
	}
}
