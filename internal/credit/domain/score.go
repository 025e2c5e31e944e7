package credit

import (
	"math"
	"strings"
	"time"

	finance "freightops/internal/finance/domain"
)

// CustomerProfile carries the relationship attributes feeding the score.
type CustomerProfile struct {
	CustomerID          string
	Industry            string
	CooperationMonths   int
	MonthlyTransactions int
}

// PaymentRecord is one settled invoice from the customer's history.
// DaysLate is 0 or negative for on-time payments.
type PaymentRecord struct {
	InvoiceID string
	DaysLate  int
}

// RiskLevel is the coarse classification derived from the score.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// Recommendation is the suggested credit limit with its risk level.
type Recommendation struct {
	RecommendedLimit float64
	RiskLevel        RiskLevel
}

const (
	limitFloor      = 10_000
	limitCap        = 5_000_000
	limitMultiplier = 2
)

// industryScores is the fixed industry risk lookup. Unknown industries fall
// back to defaultIndustryScore.
var industryScores = map[string]float64{
	"manufacturing": 80,
	"retail":        70,
	"technology":    85,
	"logistics":     75,
	"finance":       90,
	"healthcare":    85,
}

const defaultIndustryScore = 70

// Score blends payment history, current overdue exposure, relationship
// stability and industry risk into a 0..100 credit score. The blends are
// sequential: each factor folds into the running score at its own weight.
func Score(profile CustomerProfile, history []PaymentRecord, receivables []finance.Receivable, asOf time.Time) int {
	score := 100*0.6 + paymentScore(history)*0.4
	score = score*0.7 + overdueScore(receivables, asOf)*0.3
	score = score*0.8 + stabilityScore(profile)*0.2
	score = score*0.9 + industryScore(profile.Industry)*0.1

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return int(math.Round(score))
}

// RecommendLimit scales twice the monthly volume by the score and clamps the
// result into the platform's limit bounds.
func RecommendLimit(score int, monthlyVolume float64) Recommendation {
	limit := monthlyVolume * limitMultiplier * float64(score) / 100
	if limit < limitFloor {
		limit = limitFloor
	}
	if limit > limitCap {
		limit = limitCap
	}
	return Recommendation{RecommendedLimit: limit, RiskLevel: LevelFor(score)}
}

// LevelFor maps a score to its risk level.
func LevelFor(score int) RiskLevel {
	switch {
	case score >= 80:
		return RiskLow
	case score >= 60:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// paymentScore penalizes the share of late payments and how late they were
// on average. No history yields a neutral 50.
func paymentScore(history []PaymentRecord) float64 {
	if len(history) == 0 {
		return 50
	}
	var lateCount int
	var lateDays int
	for _, record := range history {
		if record.DaysLate > 0 {
			lateCount++
			lateDays += record.DaysLate
		}
	}
	var avgDaysLate float64
	if lateCount > 0 {
		avgDaysLate = float64(lateDays) / float64(lateCount)
	}
	penalty := avgDaysLate * 2
	if penalty > 30 {
		penalty = 30
	}
	return 100 - float64(lateCount)/float64(len(history))*50 - penalty
}

// overdueScore penalizes the overdue share of the open receivables. An
// empty book scores a clean 100.
func overdueScore(receivables []finance.Receivable, asOf time.Time) float64 {
	var total, overdue float64
	for _, r := range receivables {
		total += r.BalanceAmount
		if finance.DaysOverdue(r.DueDate, asOf) > 0 {
			overdue += r.BalanceAmount
		}
	}
	if total == 0 {
		return 100
	}
	return 100 - overdue/total*100
}

// stabilityScore rewards cooperation length and transaction cadence on top
// of a 70 baseline, capped at 100.
func stabilityScore(profile CustomerProfile) float64 {
	tenure := float64(profile.CooperationMonths) / 12 * 10
	if tenure > 20 {
		tenure = 20
	}
	cadence := float64(profile.MonthlyTransactions) * 2
	if cadence > 10 {
		cadence = 10
	}
	score := 70 + tenure + cadence
	if score > 100 {
		score = 100
	}
	return score
}

func industryScore(industry string) float64 {
	if score, ok := industryScores[strings.ToLower(industry)]; ok {
		return score
	}
	return defaultIndustryScore
}
