package aggregate

import (
	"sort"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

// Aggregator buckets transactions. It holds no mutable state and never
// modifies its input, so one value can serve concurrent callers.
type Aggregator struct {
	Locale Locale

	// Warn receives a DateParseError when a call leaves out transactions
	// that have no date. It may be nil.
	Warn func(*DateParseError)
}

func New(locale Locale, warn func(*DateParseError)) Aggregator {
	return Aggregator{Locale: locale, Warn: warn}
}

// Daily buckets the transactions of the windowDays calendar days ending at
// referenceDate, oldest first. Days without transactions are omitted.
// A window below one day is treated as one day.
func (a Aggregator) Daily(txs []ledger.Transaction, referenceDate time.Time, windowDays int) []DailyBucket {
	return a.daily(a.dated("Daily", txs), referenceDate, windowDays)
}

// Weekly buckets the transactions falling in the calendar month of
// referenceMonth by week of month. Weeks start on Monday and week 1 is the
// week containing the first of the month.
func (a Aggregator) Weekly(txs []ledger.Transaction, referenceMonth time.Time) []WeeklyBucket {
	return a.weekly(a.dated("Weekly", txs), referenceMonth)
}

// Monthly buckets transactions by calendar month in chronological order.
// Labels carry the year when the set covers more than one year.
func (a Aggregator) Monthly(txs []ledger.Transaction) []MonthlyBucket {
	return a.monthly(a.dated("Monthly", txs))
}

// Categories buckets transactions by exact category, largest total first.
// Equal totals keep the order the categories were first seen in.
func (a Aggregator) Categories(txs []ledger.Transaction) []CategoryBucket {
	return a.categories(a.dated("Categories", txs))
}

// Products returns the limit best selling item names by total value. A
// limit of zero or less returns every name.
func (a Aggregator) Products(txs []ledger.Transaction, limit int) []ProductBucket {
	return a.products(a.dated("Products", txs), limit)
}

func (a Aggregator) Summarize(txs []ledger.Transaction) Summary {
	return summarize(a.dated("Summarize", txs))
}

// dated drops transactions without a date and warns about them once.
func (a Aggregator) dated(operation string, txs []ledger.Transaction) []ledger.Transaction {
	var undated []uuid.UUID
	kept := make([]ledger.Transaction, 0, len(txs))
	for _, tx := range txs {
		if !tx.HasDate() {
			undated = append(undated, tx.ID)
			continue
		}
		kept = append(kept, tx)
	}
	if len(undated) > 0 && a.Warn != nil {
		a.Warn(&DateParseError{Operation: operation, TransactionIDs: undated})
	}
	return kept
}

func (a Aggregator) daily(txs []ledger.Transaction, referenceDate time.Time, windowDays int) []DailyBucket {
	if windowDays < 1 {
		windowDays = 1
	}
	end := ledger.DateOf(referenceDate)
	start := end.AddDate(0, 0, -(windowDays - 1))

	inWindow := filter(txs, func(tx ledger.Transaction) bool {
		day := ledger.DateOf(tx.Date)
		return !day.Before(start) && !day.After(end)
	})

	groups := partition(inWindow, func(tx ledger.Transaction) time.Time {
		return ledger.DateOf(tx.Date)
	})
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].key.Before(groups[j].key)
	})

	grandTotal := sumTotals(inWindow)
	buckets := make([]DailyBucket, len(groups))
	for i, g := range groups {
		buckets[i] = DailyBucket{
			Bucket: g.bucket(a.Locale.weekday(g.key.Weekday()), grandTotal),
			Date:   g.key,
		}
	}
	return buckets
}

func (a Aggregator) weekly(txs []ledger.Transaction, referenceMonth time.Time) []WeeklyBucket {
	year, month, _ := referenceMonth.Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	inMonth := filter(txs, func(tx ledger.Transaction) bool {
		y, m, _ := tx.Date.Date()
		return y == year && m == month
	})

	groups := partition(inMonth, func(tx ledger.Transaction) int {
		return WeekOfMonth(tx.Date, first)
	})
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].key < groups[j].key
	})

	grandTotal := sumTotals(inMonth)
	buckets := make([]WeeklyBucket, len(groups))
	for i, g := range groups {
		buckets[i] = WeeklyBucket{
			Bucket: g.bucket(a.Locale.week(g.key), grandTotal),
			Week:   g.key,
		}
	}
	return buckets
}

type yearMonth struct {
	year  int
	month time.Month
}

func (a Aggregator) monthly(txs []ledger.Transaction) []MonthlyBucket {
	groups := partition(txs, func(tx ledger.Transaction) yearMonth {
		y, m, _ := tx.Date.Date()
		return yearMonth{year: y, month: m}
	})
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].earliest.Before(groups[j].earliest)
	})

	multiYear := len(groups) > 0 && groups[0].key.year != groups[len(groups)-1].key.year

	grandTotal := sumTotals(txs)
	buckets := make([]MonthlyBucket, len(groups))
	for i, g := range groups {
		buckets[i] = MonthlyBucket{
			Bucket: g.bucket(a.Locale.month(g.key.year, g.key.month, multiYear), grandTotal),
			Year:   g.key.year,
			Month:  g.key.month,
		}
	}
	return buckets
}

func (a Aggregator) categories(txs []ledger.Transaction) []CategoryBucket {
	groups := partition(txs, func(tx ledger.Transaction) string {
		return tx.Category
	})
	sortByTotalDesc(groups)

	grandTotal := sumTotals(txs)
	buckets := make([]CategoryBucket, len(groups))
	for i, g := range groups {
		buckets[i] = CategoryBucket{
			Bucket:   g.bucket(g.key, grandTotal),
			Category: g.key,
		}
	}
	return buckets
}

func (a Aggregator) products(txs []ledger.Transaction, limit int) []ProductBucket {
	groups := partition(txs, func(tx ledger.Transaction) string {
		return tx.Name
	})
	sortByTotalDesc(groups)
	if limit > 0 && len(groups) > limit {
		groups = groups[:limit]
	}

	grandTotal := sumTotals(txs)
	buckets := make([]ProductBucket, len(groups))
	for i, g := range groups {
		buckets[i] = ProductBucket{
			Bucket:        g.bucket(g.key, grandTotal),
			Name:          g.key,
			TotalQuantity: g.quantity,
		}
	}
	return buckets
}

func summarize(txs []ledger.Transaction) Summary {
	summary := Summary{
		TotalTransactions: len(txs),
		TotalAmount:       sumTotals(txs),
		AverageAmount:     decimal.Zero,
	}
	if len(txs) == 0 {
		return summary
	}

	summary.AverageAmount = summary.TotalAmount.Div(decimal.NewFromInt(int64(len(txs)))).Round(2)

	dateRange := DateRange{Start: ledger.DateOf(txs[0].Date), End: ledger.DateOf(txs[0].Date)}
	for _, tx := range txs[1:] {
		day := ledger.DateOf(tx.Date)
		if day.Before(dateRange.Start) {
			dateRange.Start = day
		}
		if day.After(dateRange.End) {
			dateRange.End = day
		}
	}
	summary.DateRange = &dateRange
	return summary
}

// WeekOfMonth numbers the Monday-start week that date falls in, counting the
// week containing first as week 1. Results range from 1 to 6.
func WeekOfMonth(date, first time.Time) int {
	mondayOffset := (int(first.Weekday()) + 6) % 7
	return (date.Day()-1+mondayOffset)/7 + 1
}

func filter(txs []ledger.Transaction, keep func(ledger.Transaction) bool) []ledger.Transaction {
	kept := make([]ledger.Transaction, 0, len(txs))
	for _, tx := range txs {
		if keep(tx) {
			kept = append(kept, tx)
		}
	}
	return kept
}

func sumTotals(txs []ledger.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		total = total.Add(tx.Total())
	}
	return total
}
