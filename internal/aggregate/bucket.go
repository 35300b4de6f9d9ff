package aggregate

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Bucket is the shared shape of every aggregation group.
type Bucket struct {
	Label            string
	TotalAmount      decimal.Decimal
	TransactionCount int
	Percentage       decimal.Decimal
}

type DailyBucket struct {
	Bucket
	Date time.Time
}

// WeeklyBucket groups one week of a calendar month. Week counts from 1.
type WeeklyBucket struct {
	Bucket
	Week int
}

type MonthlyBucket struct {
	Bucket
	Year  int
	Month time.Month
}

type CategoryBucket struct {
	Bucket
	Category string
}

// ProductBucket groups transactions by item name and also sums the quantity bought.
type ProductBucket struct {
	Bucket
	Name          string
	TotalQuantity int
}

// DateRange is an inclusive range of calendar dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Summary describes a whole transaction set.
type Summary struct {
	TotalTransactions int
	TotalAmount       decimal.Decimal
	AverageAmount     decimal.Decimal
	DateRange         *DateRange
}

// percentageOf returns amount as a share of total, rounded to two places.
// A zero total yields zero rather than dividing.
func percentageOf(amount, total decimal.Decimal) decimal.Decimal {
	if !total.IsPositive() {
		return decimal.Zero
	}
	return amount.Div(total).Mul(hundred).Round(2)
}
