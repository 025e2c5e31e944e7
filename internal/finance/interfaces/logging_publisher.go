package interfaces

import (
	"context"
	"errors"
	"log"

	"freightops/internal/finance/application"
)

// LoggingPublisher logs allocation run events.
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

// PublishAllocationsRecorded logs the event.
func (p *LoggingPublisher) PublishAllocationsRecorded(ctx context.Context, event application.AllocationsRecorded) error {
	_ = ctx
	if p == nil {
		return errors.New("allocation publisher: nil publisher")
	}
	p.logger.Printf("allocations recorded: customer=%s count=%d total=%.4f",
		event.CustomerID, event.Count, event.TotalAllocated)
	return nil
}
