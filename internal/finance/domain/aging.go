package finance

import (
	"math"
	"time"
)

// Receivable is one outstanding balance with its due date.
type Receivable struct {
	ID            string
	CustomerID    string
	DueDate       time.Time
	BalanceAmount float64
	Currency      string
}

// AgingBucket is one days-overdue range of the aging report. MaxDays -1
// marks the open-ended last bucket.
type AgingBucket struct {
	Label      string
	MinDays    int
	MaxDays    int
	Amount     float64
	Count      int
	Percentage float64
}

// AgingReport classifies a receivable set by days overdue as of one date.
type AgingReport struct {
	AsOf          time.Time
	Buckets       []AgingBucket
	TotalAmount   float64
	OverdueAmount float64
}

func emptyBuckets() []AgingBucket {
	return []AgingBucket{
		{Label: "current", MinDays: math.MinInt32, MaxDays: 0},
		{Label: "1-30", MinDays: 1, MaxDays: 30},
		{Label: "31-60", MinDays: 31, MaxDays: 60},
		{Label: "61-90", MinDays: 61, MaxDays: 90},
		{Label: ">90", MinDays: 91, MaxDays: -1},
	}
}

// DaysOverdue returns whole days between due date and the as-of instant,
// rounded down. Not-yet-due receivables yield a non-positive value.
func DaysOverdue(dueDate, asOf time.Time) int {
	return int(math.Floor(asOf.Sub(dueDate).Hours() / 24))
}

// Aging buckets the receivables into the five fixed ranges. Every
// receivable lands in exactly one bucket, so the bucket amounts always sum
// to the input total.
func Aging(receivables []Receivable, asOf time.Time) AgingReport {
	report := AgingReport{AsOf: asOf, Buckets: emptyBuckets()}

	for _, r := range receivables {
		idx := bucketIndex(DaysOverdue(r.DueDate, asOf))
		report.Buckets[idx].Amount += r.BalanceAmount
		report.Buckets[idx].Count++
		report.TotalAmount += r.BalanceAmount
	}

	for i := range report.Buckets {
		if report.TotalAmount != 0 {
			report.Buckets[i].Percentage = report.Buckets[i].Amount / report.TotalAmount * 100
		}
		if i > 0 {
			report.OverdueAmount += report.Buckets[i].Amount
		}
	}
	return report
}

func bucketIndex(daysOverdue int) int {
	switch {
	case daysOverdue > 90:
		return 4
	case daysOverdue > 60:
		return 3
	case daysOverdue > 30:
		return 2
	case daysOverdue > 0:
		return 1
	default:
		return 0
	}
}
