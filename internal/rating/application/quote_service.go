package application

import (
	"context"
	"errors"
	"time"

	"freightops/internal/currency"
	"freightops/internal/observability/metrics"
	rating "freightops/internal/rating/domain"
	waybill "freightops/internal/waybill/domain"
)

// ChannelCatalog lists the channels a shipment may be quoted against.
type ChannelCatalog interface {
	ListChannels(ctx context.Context) ([]rating.Channel, error)
}

// QuoteService builds the channel comparison table for a shipment.
type QuoteService struct {
	catalog ChannelCatalog
}

// NewQuoteService constructs the service.
func NewQuoteService(catalog ChannelCatalog) (*QuoteService, error) {
	if catalog == nil {
		return nil, errors.New("quote service: nil channel catalog")
	}
	return &QuoteService{catalog: catalog}, nil
}

// Quote rates the shipment across the whole catalog. Channels that do not
// apply are left out; every applicable channel appears, without precedence
// between scopes.
func (s *QuoteService) Quote(ctx context.Context, shipment waybill.Shipment) ([]rating.CostEstimate, error) {
	start := time.Now()

	channels, err := s.catalog.ListChannels(ctx)
	if err != nil {
		metrics.ObserveEstimate(err, time.Since(start))
		return nil, err
	}

	estimates, err := rating.EstimateAll(shipment, channels)
	metrics.ObserveEstimate(err, time.Since(start))
	if err != nil {
		return nil, err
	}
	return estimates, nil
}

// ConvertedEstimate is a channel estimate with its total expressed in a
// common comparison currency.
type ConvertedEstimate struct {
	rating.CostEstimate
	TargetCurrency string
	ExchangeRate   float64
	ConvertedTotal float64
}

// QuoteIn rates the shipment and converts every channel total to the target
// currency so the comparison table lines up.
func (s *QuoteService) QuoteIn(ctx context.Context, shipment waybill.Shipment, target string, rates currency.RateTable) ([]ConvertedEstimate, error) {
	estimates, err := s.Quote(ctx, shipment)
	if err != nil {
		return nil, err
	}

	converted := make([]ConvertedEstimate, 0, len(estimates))
	for _, estimate := range estimates {
		conversion, err := currency.Convert(estimate.Total, estimate.Currency, target, rates)
		if err != nil {
			return nil, err
		}
		converted = append(converted, ConvertedEstimate{
			CostEstimate:   estimate,
			TargetCurrency: target,
			ExchangeRate:   conversion.ExchangeRate,
			ConvertedTotal: conversion.ConvertedAmount,
		})
	}
	return converted, nil
}
