package dashboard

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/aggregate"
	"github.com/carson-networks/ledger-server/internal/ledger"
)

// Bucket is the API response model shared by every aggregation view.
type Bucket struct {
	Label            string `json:"label" doc:"Display label for the group"`
	TotalAmount      string `json:"totalAmount" doc:"Sum of transaction totals in the group"`
	TransactionCount int    `json:"transactionCount" doc:"Number of transactions in the group"`
	Percentage       string `json:"percentage" doc:"Share of the grand total, rounded to two places"`
}

type DailyBucket struct {
	Bucket
	Date string `json:"date" doc:"Calendar date, YYYY-MM-DD"`
}

type WeeklyBucket struct {
	Bucket
	Week int `json:"week" doc:"Week of the month, counting from 1"`
}

type MonthlyBucket struct {
	Bucket
	Year  int `json:"year"`
	Month int `json:"month" doc:"Month number, 1-12"`
}

type CategoryBucket struct {
	Bucket
	Category string `json:"category"`
}

type ProductBucket struct {
	Bucket
	Name          string `json:"name"`
	TotalQuantity int    `json:"totalQuantity" doc:"Units bought across the group"`
}

type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type Summary struct {
	TotalTransactions int        `json:"totalTransactions"`
	TotalAmount       string     `json:"totalAmount"`
	AverageAmount     string     `json:"averageAmount"`
	DateRange         *DateRange `json:"dateRange,omitempty" doc:"Earliest and latest transaction date, absent when empty"`
}

// Dashboard is the response body for the dashboard endpoint.
type Dashboard struct {
	Daily      []DailyBucket    `json:"daily"`
	Weekly     []WeeklyBucket   `json:"weekly"`
	Monthly    []MonthlyBucket  `json:"monthly"`
	Categories []CategoryBucket `json:"categories"`
	Products   []ProductBucket  `json:"products"`
	Summary    Summary          `json:"summary"`
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func toBucket(b aggregate.Bucket) Bucket {
	return Bucket{
		Label:            b.Label,
		TotalAmount:      money(b.TotalAmount),
		TransactionCount: b.TransactionCount,
		Percentage:       b.Percentage.StringFixed(2),
	}
}

func formatDate(t time.Time) string {
	return t.Format(ledger.DateLayout)
}

func toResponse(d aggregate.Dashboard) Dashboard {
	resp := Dashboard{
		Daily:      make([]DailyBucket, len(d.Daily)),
		Weekly:     make([]WeeklyBucket, len(d.Weekly)),
		Monthly:    make([]MonthlyBucket, len(d.Monthly)),
		Categories: make([]CategoryBucket, len(d.Categories)),
		Products:   make([]ProductBucket, len(d.Products)),
		Summary: Summary{
			TotalTransactions: d.Summary.TotalTransactions,
			TotalAmount:       money(d.Summary.TotalAmount),
			AverageAmount:     money(d.Summary.AverageAmount),
		},
	}
	for i, b := range d.Daily {
		resp.Daily[i] = DailyBucket{Bucket: toBucket(b.Bucket), Date: formatDate(b.Date)}
	}
	for i, b := range d.Weekly {
		resp.Weekly[i] = WeeklyBucket{Bucket: toBucket(b.Bucket), Week: b.Week}
	}
	for i, b := range d.Monthly {
		resp.Monthly[i] = MonthlyBucket{Bucket: toBucket(b.Bucket), Year: b.Year, Month: int(b.Month)}
	}
	for i, b := range d.Categories {
		resp.Categories[i] = CategoryBucket{Bucket: toBucket(b.Bucket), Category: b.Category}
	}
	for i, b := range d.Products {
		resp.Products[i] = ProductBucket{Bucket: toBucket(b.Bucket), Name: b.Name, TotalQuantity: b.TotalQuantity}
	}
	if r := d.Summary.DateRange; r != nil {
		resp.Summary.DateRange = &DateRange{Start: formatDate(r.Start), End: formatDate(r.End)}
	}
	return resp
}
