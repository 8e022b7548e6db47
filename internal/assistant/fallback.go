package assistant

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	six       = decimal.NewFromInt(6)
	hundred   = decimal.NewFromInt(100)
	twentyPct = decimal.NewFromInt(20)
)

// FallbackResponse builds a deterministic advice text from the snapshot
// alone, using the same heading and bullet structure the external service
// is instructed to produce so the message renderer needs no special-casing.
// Heuristics: an emergency fund of six months of expenses, and a savings
// rate judged against the 20% recommendation.
func FallbackResponse(snap Snapshot) string {
	monthlySavings := snap.Income.Sub(snap.Expenses)

	savingsRate := decimal.Zero
	if snap.Income.IsPositive() {
		savingsRate = monthlySavings.Div(snap.Income).Mul(hundred)
	}

	emergencyFund := snap.Expenses.Mul(six)

	monthsToFund := int64(0)
	if emergencyFund.IsPositive() && monthlySavings.IsPositive() {
		monthsToFund = emergencyFund.Div(monthlySavings).Ceil().IntPart()
	}

	rateStr := savingsRate.StringFixed(1)

	var rateJudgment string
	if savingsRate.GreaterThanOrEqual(twentyPct) {
		rateJudgment = fmt.Sprintf("Congratulations! Your savings rate of %s%% is above the recommended 20%%.", rateStr)
	} else {
		rateJudgment = fmt.Sprintf("Your current savings rate of %s%% is below the recommended 20%%.", rateStr)
	}

	var b strings.Builder
	fmt.Fprintf(&b, `### Financial Summary
• Current balance: $%s
• Monthly income: $%s
• Monthly expenses: $%s
• Monthly savings: $%s (%s%% of your income)

### Savings Rate Analysis
%s

### Recommendations
• Ideal emergency fund: $%s
• Estimated time to build it: %d months
• Prioritize low-risk investments for emergencies (50%%)
• Consider medium-term (30%%) and long-term (20%%) investments`,
		snap.Balance.StringFixed(2),
		snap.Income.StringFixed(2),
		snap.Expenses.StringFixed(2),
		monthlySavings.StringFixed(2),
		rateStr,
		rateJudgment,
		emergencyFund.StringFixed(2),
		monthsToFund,
	)
	return b.String()
}
