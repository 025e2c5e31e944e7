package application

import (
	"context"
	"testing"
	"time"

	credit "freightops/internal/credit/domain"
	finance "freightops/internal/finance/domain"
)

var reviewNow = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type stubProfiles struct{ profile credit.CustomerProfile }

func (s stubProfiles) GetProfile(_ context.Context, _ string) (credit.CustomerProfile, error) {
	return s.profile, nil
}

type stubHistory struct{ records []credit.PaymentRecord }

func (s stubHistory) ListPayments(_ context.Context, _ string) ([]credit.PaymentRecord, error) {
	return s.records, nil
}

type stubReceivables struct{ receivables []finance.Receivable }

func (s stubReceivables) ListOpenReceivables(_ context.Context, _ string) ([]finance.Receivable, error) {
	return s.receivables, nil
}

func TestReviewBaselineCustomer(t *testing.T) {
	service, err := NewCreditReviewService(
		stubProfiles{profile: credit.CustomerProfile{CustomerID: "c-1"}},
		stubHistory{},
		stubReceivables{},
		fixedClock{now: reviewNow},
	)
	if err != nil {
		t.Fatalf("NewCreditReviewService: %v", err)
	}

	review, err := service.Review(context.Background(), "c-1", 100_000)
	if err != nil {
		t.Fatalf("Review returned error: %v", err)
	}
	if review.Score != 82 {
		t.Errorf("score = %d, want 82", review.Score)
	}
	if review.RiskLevel != credit.RiskLow {
		t.Errorf("risk = %v, want LOW", review.RiskLevel)
	}
	// 100000*2 * 82/100
	if review.RecommendedLimit != 164_000 {
		t.Errorf("limit = %v, want 164000", review.RecommendedLimit)
	}
	if review.ReviewedAt != reviewNow {
		t.Errorf("reviewed at = %v, want clock time", review.ReviewedAt)
	}
}

func TestReviewAggregatesAging(t *testing.T) {
	receivables := []finance.Receivable{
		{ID: "r-1", DueDate: reviewNow.AddDate(0, 0, -40), BalanceAmount: 700},
		{ID: "r-2", DueDate: reviewNow.AddDate(0, 0, 5), BalanceAmount: 300},
	}
	service, err := NewCreditReviewService(
		stubProfiles{profile: credit.CustomerProfile{Industry: "logistics", CooperationMonths: 36, MonthlyTransactions: 8}},
		stubHistory{records: []credit.PaymentRecord{{DaysLate: 0}, {DaysLate: 12}}},
		stubReceivables{receivables: receivables},
		fixedClock{now: reviewNow},
	)
	if err != nil {
		t.Fatalf("NewCreditReviewService: %v", err)
	}

	review, err := service.Review(context.Background(), "c-2", 50_000)
	if err != nil {
		t.Fatalf("Review returned error: %v", err)
	}
	if review.Aging.TotalAmount != 1000 {
		t.Errorf("aging total = %v, want 1000", review.Aging.TotalAmount)
	}
	if review.Aging.OverdueAmount != 700 {
		t.Errorf("aging overdue = %v, want 700", review.Aging.OverdueAmount)
	}
	if review.Score < 0 || review.Score > 100 {
		t.Errorf("score %d out of bounds", review.Score)
	}
}

func TestNewCreditReviewServiceValidatesPorts(t *testing.T) {
	if _, err := NewCreditReviewService(nil, stubHistory{}, stubReceivables{}, nil); err == nil {
		t.Error("expected error for nil profile reader")
	}
	if _, err := NewCreditReviewService(stubProfiles{}, nil, stubReceivables{}, nil); err == nil {
		t.Error("expected error for nil history reader")
	}
	if _, err := NewCreditReviewService(stubProfiles{}, stubHistory{}, nil, nil); err == nil {
		t.Error("expected error for nil receivable reader")
	}
}
