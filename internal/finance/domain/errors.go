package finance

import "errors"

var (
	// ErrNegativeAmount is returned when an invoice balance or advance
	// amount is negative.
	ErrNegativeAmount = errors.New("finance: negative amount")
	// ErrInvoiceNotFound is returned when an invoice id is unknown.
	ErrInvoiceNotFound = errors.New("finance: invoice not found")
	// ErrAdvanceNotFound is returned when an advance payment id is unknown.
	ErrAdvanceNotFound = errors.New("finance: advance payment not found")
	// ErrAllocationNotFound is returned when an allocation id is unknown.
	ErrAllocationNotFound = errors.New("finance: allocation not found")
	// ErrAlreadyReversed is returned when reversing an allocation twice.
	ErrAlreadyReversed = errors.New("finance: allocation already reversed")
)
