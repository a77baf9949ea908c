package services

import (
	"sort"

	"ggumjisum/backend/models"
)

// CategoryTotal is one slice of the category breakdown chart.
type CategoryTotal struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// DailyTotal is one bar of the per-day spend chart. Date is MM-DD.
type DailyTotal struct {
	Date   string `json:"date"`
	Amount int64  `json:"amount"`
}

// CategoryTotals sums expenses per category over the given period
// ("week", "month", or empty). Categories appear in order of first
// occurrence in the history.
func (a *App) CategoryTotals(period string) []CategoryTotal {
	transactions := a.Transactions(period)

	totals := make(map[string]int64)
	var order []string
	for _, tx := range transactions {
		if tx.Type != models.TypeExpense {
			continue
		}
		if _, seen := totals[tx.Category]; !seen {
			order = append(order, tx.Category)
		}
		totals[tx.Category] += tx.Amount
	}

	out := make([]CategoryTotal, 0, len(order))
	for _, name := range order {
		out = append(out, CategoryTotal{Name: name, Value: totals[name]})
	}
	return out
}

// DailyTotals sums expenses per calendar day over the given period,
// sorted by date ascending.
func (a *App) DailyTotals(period string) []DailyTotal {
	transactions := a.Transactions(period)

	totals := make(map[string]int64)
	for _, tx := range transactions {
		if tx.Type != models.TypeExpense {
			continue
		}
		date := tx.OccurredAt.Format("01-02")
		totals[date] += tx.Amount
	}

	out := make([]DailyTotal, 0, len(totals))
	for date, amount := range totals {
		out = append(out, DailyTotal{Date: date, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
