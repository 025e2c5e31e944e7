package application

import (
	"context"
	"errors"
	"time"

	credit "freightops/internal/credit/domain"
	finance "freightops/internal/finance/domain"
	"freightops/internal/observability/metrics"
)

// ProfileReader loads a customer's relationship profile.
type ProfileReader interface {
	GetProfile(ctx context.Context, customerID string) (credit.CustomerProfile, error)
}

// PaymentHistoryReader loads a customer's settled payment records.
type PaymentHistoryReader interface {
	ListPayments(ctx context.Context, customerID string) ([]credit.PaymentRecord, error)
}

// ReceivableReader loads a customer's open receivables.
type ReceivableReader interface {
	ListOpenReceivables(ctx context.Context, customerID string) ([]finance.Receivable, error)
}

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock uses time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// CreditReview is the full assessment for one customer.
type CreditReview struct {
	CustomerID       string
	Score            int
	RiskLevel        credit.RiskLevel
	RecommendedLimit float64
	Aging            finance.AgingReport
	ReviewedAt       time.Time
}

// CreditReviewService composes score, limit recommendation and receivable
// aging into a single review.
type CreditReviewService struct {
	profiles    ProfileReader
	history     PaymentHistoryReader
	receivables ReceivableReader
	clock       Clock
}

// NewCreditReviewService constructs the service.
func NewCreditReviewService(
	profiles ProfileReader,
	history PaymentHistoryReader,
	receivables ReceivableReader,
	clock Clock,
) (*CreditReviewService, error) {
	if profiles == nil {
		return nil, errors.New("credit review service: nil profile reader")
	}
	if history == nil {
		return nil, errors.New("credit review service: nil payment history reader")
	}
	if receivables == nil {
		return nil, errors.New("credit review service: nil receivable reader")
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &CreditReviewService{
		profiles:    profiles,
		history:     history,
		receivables: receivables,
		clock:       clock,
	}, nil
}

// Review scores the customer and recommends a credit limit based on their
// average monthly volume.
func (s *CreditReviewService) Review(ctx context.Context, customerID string, monthlyVolume float64) (CreditReview, error) {
	start := time.Now()

	profile, err := s.profiles.GetProfile(ctx, customerID)
	if err != nil {
		return CreditReview{}, err
	}
	history, err := s.history.ListPayments(ctx, customerID)
	if err != nil {
		return CreditReview{}, err
	}
	receivables, err := s.receivables.ListOpenReceivables(ctx, customerID)
	if err != nil {
		return CreditReview{}, err
	}

	now := s.clock.Now()
	score := credit.Score(profile, history, receivables, now)
	recommendation := credit.RecommendLimit(score, monthlyVolume)
	metrics.ObserveCreditReview(string(recommendation.RiskLevel), time.Since(start))

	return CreditReview{
		CustomerID:       customerID,
		Score:            score,
		RiskLevel:        recommendation.RiskLevel,
		RecommendedLimit: recommendation.RecommendedLimit,
		Aging:            finance.Aging(receivables, now),
		ReviewedAt:       now,
	}, nil
}
