package interfaces

import (
	"context"
	"errors"
	"log"

	"freightops/internal/billing/application"
)

// LoggingPublisher logs invoice computed events.
type LoggingPublisher struct {
	logger *log.Logger
}

// NewLoggingPublisher constructs a logging publisher.
func NewLoggingPublisher(logger *log.Logger) *LoggingPublisher {
	if logger == nil {
		logger = log.Default()
	}
	return &LoggingPublisher{logger: logger}
}

// PublishInvoiceComputed logs the event.
func (p *LoggingPublisher) PublishInvoiceComputed(ctx context.Context, event application.InvoiceComputed) error {
	_ = ctx
	if p == nil {
		return errors.New("invoice publisher: nil publisher")
	}
	p.logger.Printf("invoice computed: invoice=%s shipment=%s lines=%d total=%.4f %s",
		event.InvoiceID, event.ShipmentID, event.LineCount, event.TotalAmount, event.Currency)
	return nil
}
