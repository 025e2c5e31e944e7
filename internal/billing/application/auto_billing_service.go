package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	billing "freightops/internal/billing/domain"
	"freightops/internal/observability/metrics"
	waybill "freightops/internal/waybill/domain"
)

// RuleRepository loads the billing rules that may apply to a channel.
type RuleRepository interface {
	ListForChannel(ctx context.Context, channelID string) ([]billing.BillingRule, error)
}

// InvoiceDraft is the computed charge set for one shipment, ready for the
// persistence layer to turn into an invoice row.
type InvoiceDraft struct {
	ID          string
	ShipmentID  string
	Lines       []billing.ChargeLineItem
	TotalAmount float64
	Currency    string
	ComputedAt  time.Time
}

// InvoiceComputed is emitted after a successful billing run.
type InvoiceComputed struct {
	InvoiceID   string
	ShipmentID  string
	LineCount   int
	TotalAmount float64
	Currency    string
	OccurredAt  time.Time
}

// InvoicePublisher emits invoice computed events.
type InvoicePublisher interface {
	PublishInvoiceComputed(ctx context.Context, event InvoiceComputed) error
}

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock uses time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// AutoBillingService computes the charge set for shipments.
type AutoBillingService struct {
	rules     RuleRepository
	publisher InvoicePublisher
	clock     Clock
}

// NewAutoBillingService constructs the service. The publisher is optional.
func NewAutoBillingService(rules RuleRepository, publisher InvoicePublisher, clock Clock) (*AutoBillingService, error) {
	if rules == nil {
		return nil, errors.New("auto billing service: nil rule repository")
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &AutoBillingService{rules: rules, publisher: publisher, clock: clock}, nil
}

// ComputeInvoice runs every applicable rule against the shipment and
// assembles an invoice draft. A shipment no rule charges yields a nil draft
// without error.
func (s *AutoBillingService) ComputeInvoice(ctx context.Context, shipment waybill.Shipment) (*InvoiceDraft, error) {
	start := time.Now()

	rules, err := s.rules.ListForChannel(ctx, shipment.ChannelID)
	if err != nil {
		metrics.ObserveBillingRun(err, 0, time.Since(start))
		return nil, err
	}

	now := s.clock.Now()
	lines, err := billing.Charges(shipment, rules, now)
	metrics.ObserveBillingRun(err, len(lines), time.Since(start))
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, nil
	}

	draft := &InvoiceDraft{
		ID:         uuid.NewString(),
		ShipmentID: shipment.ID,
		Lines:      lines,
		Currency:   shipment.Currency,
		ComputedAt: now,
	}
	for _, line := range lines {
		draft.TotalAmount += line.Amount
	}

	if s.publisher != nil {
		event := InvoiceComputed{
			InvoiceID:   draft.ID,
			ShipmentID:  shipment.ID,
			LineCount:   len(lines),
			TotalAmount: draft.TotalAmount,
			Currency:    draft.Currency,
			OccurredAt:  now,
		}
		if err := s.publisher.PublishInvoiceComputed(ctx, event); err != nil {
			return nil, err
		}
	}
	return draft, nil
}
