// Package analytics derives disposable view-models from transaction and
// goal records. Every function is pure, deterministic and total over
// well-formed input: empty input yields zeros and empty mappings, and no
// path divides by zero.
package analytics

import (
	"time"

	"github.com/FehCode/financeflow1/internal/models"

	"github.com/shopspring/decimal"
)

// Totals aggregates a user's transactions. Income and Expenses are
// non-negative sums of magnitudes; Balance is their difference.
type Totals struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Balance  decimal.Decimal `json:"balance"`
}

// ComputeTotals sums income and expense magnitudes separately.
func ComputeTotals(txs []models.Transaction) Totals {
	income := decimal.Zero
	expenses := decimal.Zero
	for _, tx := range txs {
		switch tx.Type {
		case models.TypeIncome:
			income = income.Add(tx.Amount)
		case models.TypeExpense:
			expenses = expenses.Add(tx.Amount)
		}
	}
	return Totals{
		Income:   income,
		Expenses: expenses,
		Balance:  income.Sub(expenses),
	}
}

// ExpenseByCategory sums expense amounts per category label. Income
// transactions are ignored.
func ExpenseByCategory(txs []models.Transaction) map[string]decimal.Decimal {
	byCategory := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		if tx.Type != models.TypeExpense {
			continue
		}
		byCategory[tx.Category] = byCategory[tx.Category].Add(tx.Amount)
	}
	return byCategory
}

// chartPalette is the fixed cycle of slice colors for the expense chart.
var chartPalette = []string{
	"#4ade80", "#f87171", "#60a5fa", "#c084fc",
	"#fbbf24", "#a78bfa", "#34d399", "#fb923c",
	"#818cf8", "#e879f9", "#22d3ee",
}

// CategorySlice is one slice of the expense distribution chart.
type CategorySlice struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
	Color string          `json:"color"`
}

// ExpenseChartData aggregates expenses per category and assigns each
// category a deterministic color: position in first-seen order cycling
// through the fixed palette.
func ExpenseChartData(txs []models.Transaction) []CategorySlice {
	byCategory := make(map[string]int) // category -> slice index
	var slices []CategorySlice
	for _, tx := range txs {
		if tx.Type != models.TypeExpense {
			continue
		}
		idx, seen := byCategory[tx.Category]
		if !seen {
			idx = len(slices)
			byCategory[tx.Category] = idx
			slices = append(slices, CategorySlice{
				Name:  tx.Category,
				Color: chartPalette[idx%len(chartPalette)],
			})
		}
		slices[idx].Value = slices[idx].Value.Add(tx.Amount)
	}
	return slices
}

// MonthBalance is one bucket of the rolling balance history.
type MonthBalance struct {
	Month   string          `json:"month"` // e.g. "Mar/24"
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"` // cumulative across buckets
}

// MonthlyBalanceHistory buckets transactions into windowMonths consecutive
// calendar months ending at now's month, then produces a running balance
// across the buckets, oldest first and seeded at zero. Months with no
// transactions still appear with zero net change; transactions outside the
// window are ignored.
func MonthlyBalanceHistory(txs []models.Transaction, windowMonths int, now time.Time) []MonthBalance {
	if windowMonths <= 0 {
		windowMonths = 6
	}

	// index months on a single axis so window membership is plain integer
	// arithmetic regardless of year boundaries
	monthIndex := func(t time.Time) int {
		return t.Year()*12 + int(t.Month()) - 1
	}
	last := monthIndex(now)
	first := last - windowMonths + 1

	income := make([]decimal.Decimal, windowMonths)
	expense := make([]decimal.Decimal, windowMonths)
	for i := range income {
		income[i] = decimal.Zero
		expense[i] = decimal.Zero
	}

	for _, tx := range txs {
		idx := monthIndex(tx.Date) - first
		if idx < 0 || idx >= windowMonths {
			continue
		}
		if tx.Type == models.TypeIncome {
			income[idx] = income[idx].Add(tx.Amount)
		} else if tx.Type == models.TypeExpense {
			expense[idx] = expense[idx].Add(tx.Amount)
		}
	}

	history := make([]MonthBalance, windowMonths)
	running := decimal.Zero
	for i := 0; i < windowMonths; i++ {
		abs := first + i
		label := time.Date(abs/12, time.Month(abs%12+1), 1, 0, 0, 0, 0, time.UTC)
		running = running.Add(income[i]).Sub(expense[i])
		history[i] = MonthBalance{
			Month:   label.Format("Jan/06"),
			Income:  income[i],
			Expense: expense[i],
			Balance: running,
		}
	}
	return history
}

// GoalProgress is the derived pace view of one savings goal.
type GoalProgress struct {
	Percent                int             `json:"percent"` // clamped to 100 for display
	MonthsRemaining        int             `json:"months_remaining"`
	SuggestedMonthlySaving decimal.Decimal `json:"suggested_monthly_saving"`
}

// ProgressForGoal computes completion percent (clamped at 100, raw
// amounts preserved on the record), whole calendar months until the
// deadline, and the monthly saving needed to close the gap. Two dates in
// the same month always yield zero months remaining regardless of
// day-of-month; a zero-month deadline suggests the full remaining amount.
func ProgressForGoal(goal models.Goal, now time.Time) GoalProgress {
	percent := 0
	if goal.TargetAmount.IsPositive() {
		ratio := goal.CurrentAmount.Div(goal.TargetAmount).Mul(decimal.NewFromInt(100))
		percent = int(ratio.Round(0).IntPart())
		if percent > 100 {
			percent = 100
		}
	}

	months := (goal.Deadline.Year()-now.Year())*12 + int(goal.Deadline.Month()) - int(now.Month())
	if months < 0 {
		months = 0
	}

	remaining := goal.TargetAmount.Sub(goal.CurrentAmount)
	suggested := remaining
	if months > 0 {
		suggested = remaining.Div(decimal.NewFromInt(int64(months)))
	}

	return GoalProgress{
		Percent:                percent,
		MonthsRemaining:        months,
		SuggestedMonthlySaving: suggested,
	}
}
