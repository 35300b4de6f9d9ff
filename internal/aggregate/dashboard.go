package aggregate

import (
	"time"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

const (
	DefaultWindowDays   = 7
	DefaultProductLimit = 10
)

// DashboardQuery selects what a dashboard is built from.
type DashboardQuery struct {
	// CreatedBy limits the set to one cashier when non-empty.
	CreatedBy string
	// ReferenceDate anchors the daily window and picks the weekly month.
	ReferenceDate time.Time
	WindowDays    int
	ProductLimit  int
}

// Dashboard is every view of one transaction set.
type Dashboard struct {
	Daily      []DailyBucket
	Weekly     []WeeklyBucket
	Monthly    []MonthlyBucket
	Categories []CategoryBucket
	Products   []ProductBucket
	Summary    Summary
}

// Dashboard builds all views in one pass over the filtered set and warns
// about undated transactions at most once.
func (a Aggregator) Dashboard(txs []ledger.Transaction, query DashboardQuery) Dashboard {
	if query.WindowDays == 0 {
		query.WindowDays = DefaultWindowDays
	}
	if query.ProductLimit == 0 {
		query.ProductLimit = DefaultProductLimit
	}
	if query.ReferenceDate.IsZero() {
		query.ReferenceDate = time.Now()
	}

	if query.CreatedBy != "" {
		txs = filter(txs, func(tx ledger.Transaction) bool {
			return tx.CreatedBy == query.CreatedBy
		})
	}
	txs = a.dated("Dashboard", txs)

	return Dashboard{
		Daily:      a.daily(txs, query.ReferenceDate, query.WindowDays),
		Weekly:     a.weekly(txs, query.ReferenceDate),
		Monthly:    a.monthly(txs),
		Categories: a.categories(txs),
		Products:   a.products(txs, query.ProductLimit),
		Summary:    summarize(txs),
	}
}
