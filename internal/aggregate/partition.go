package aggregate

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

// group accumulates the transactions sharing one key.
type group[K comparable] struct {
	key      K
	total    decimal.Decimal
	count    int
	quantity int
	earliest time.Time
}

func (g *group[K]) bucket(label string, grandTotal decimal.Decimal) Bucket {
	return Bucket{
		Label:            label,
		TotalAmount:      g.total,
		TransactionCount: g.count,
		Percentage:       percentageOf(g.total, grandTotal),
	}
}

// partition splits txs by keyOf. Every transaction lands in exactly one
// group and groups come back in first-seen order.
func partition[K comparable](txs []ledger.Transaction, keyOf func(ledger.Transaction) K) []*group[K] {
	index := make(map[K]*group[K])
	var groups []*group[K]
	for _, tx := range txs {
		key := keyOf(tx)
		g, ok := index[key]
		if !ok {
			g = &group[K]{key: key, total: decimal.Zero, earliest: tx.Date}
			index[key] = g
			groups = append(groups, g)
		}
		g.total = g.total.Add(tx.Total())
		g.count++
		g.quantity += tx.Quantity
		if tx.Date.Before(g.earliest) {
			g.earliest = tx.Date
		}
	}
	return groups
}

func sortByTotalDesc[K comparable](groups []*group[K]) {
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].total.GreaterThan(groups[j].total)
	})
}
