package accounting_test

import (
	"testing"
	"time"

	"github.com/emprestafacil/loan_ledger_app/internal/core/domain"
	"github.com/emprestafacil/loan_ledger_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestFinalAmount(t *testing.T) {
	assert.True(t, d("1100").Equal(accounting.FinalAmount(d("1000"), d("10"))))
	assert.True(t, d("5000").Equal(accounting.FinalAmount(d("5000"), d("0"))))
	assert.True(t, d("1512.5").Equal(accounting.FinalAmount(d("1250"), d("21"))))
}

func TestInterestPortion(t *testing.T) {
	assert.True(t, d("100").Equal(accounting.InterestPortion(d("1000"), d("1100"))))
	assert.True(t, decimal.Zero.Equal(accounting.InterestPortion(d("500"), d("500"))))
}

func TestSignedAmount(t *testing.T) {
	income := domain.Transaction{Type: domain.Income, Amount: d("250")}
	expense := domain.Transaction{Type: domain.Expense, Amount: d("250")}

	assert.True(t, d("250").Equal(accounting.SignedAmount(income)))
	assert.True(t, d("-250").Equal(accounting.SignedAmount(expense)))
}

func TestRunningBalance(t *testing.T) {
	movements := []domain.Transaction{
		{Type: domain.Income, Amount: d("10000")},
		{Type: domain.Expense, Amount: d("5000")},
		{Type: domain.Income, Amount: d("1250.50")},
	}

	assert.True(t, d("6250.50").Equal(accounting.RunningBalance(movements)))
}

func TestRunningBalance_Empty(t *testing.T) {
	assert.True(t, decimal.Zero.Equal(accounting.RunningBalance(nil)))
}

// Replaying the full history must yield the same figure as accumulating
// movement by movement, in any order.
func TestRunningBalance_ReplayMatchesIncremental(t *testing.T) {
	movements := []domain.Transaction{
		{Type: domain.Income, Amount: d("10000")},
		{Type: domain.Expense, Amount: d("3000")},
		{Type: domain.Expense, Amount: d("1999.99")},
		{Type: domain.Income, Amount: d("0.01")},
	}

	incremental := decimal.Zero
	for _, m := range movements {
		incremental = incremental.Add(accounting.SignedAmount(m))
	}
	assert.True(t, incremental.Equal(accounting.RunningBalance(movements)))

	reversed := []domain.Transaction{movements[3], movements[2], movements[1], movements[0]}
	assert.True(t, incremental.Equal(accounting.RunningBalance(reversed)))
}

func TestElapsedWholeMonths(t *testing.T) {
	assert.Equal(t, 0, accounting.ElapsedWholeMonths(date("2024-01-15"), date("2024-01-31")))
	assert.Equal(t, 1, accounting.ElapsedWholeMonths(date("2024-01-31"), date("2024-02-01")))
	assert.Equal(t, 3, accounting.ElapsedWholeMonths(date("2024-01-15"), date("2024-04-10")))
	assert.Equal(t, 12, accounting.ElapsedWholeMonths(date("2023-06-01"), date("2024-06-01")))
}

func TestPayoffAmount(t *testing.T) {
	loan := domain.Loan{
		Amount:       d("1000"),
		InterestRate: d("10"),
		StartDate:    date("2024-01-15"),
	}

	// Three whole months at 10% simple interest.
	assert.True(t, d("1300").Equal(accounting.PayoffAmount(loan, date("2024-04-10"))))

	// Same month: no interest accrued yet.
	assert.True(t, d("1000").Equal(accounting.PayoffAmount(loan, date("2024-01-31"))))

	// Before the start date: clamped to zero months, never below principal.
	assert.True(t, d("1000").Equal(accounting.PayoffAmount(loan, date("2023-11-01"))))
}

func TestAverageRate(t *testing.T) {
	loans := []domain.Loan{
		{InterestRate: d("10")},
		{InterestRate: d("20")},
		{InterestRate: d("15")},
	}

	assert.True(t, d("15").Equal(accounting.AverageRate(loans)))
	assert.True(t, decimal.Zero.Equal(accounting.AverageRate(nil)))
}

func TestTotalReceivable_OnlyActiveLoans(t *testing.T) {
	loans := []domain.Loan{
		{Status: domain.LoanActive, FinalAmount: d("1100")},
		{Status: domain.LoanPaid, FinalAmount: d("9999")},
		{Status: domain.LoanActive, FinalAmount: d("550")},
		{Status: domain.LoanCancelled, FinalAmount: d("700")},
	}

	assert.True(t, d("1650").Equal(accounting.TotalReceivable(loans)))
}

func TestTotalInterest_AllStatuses(t *testing.T) {
	loans := []domain.Loan{
		{Status: domain.LoanActive, Amount: d("1000"), FinalAmount: d("1100")},
		{Status: domain.LoanPaid, Amount: d("500"), FinalAmount: d("550")},
	}

	assert.True(t, d("150").Equal(accounting.TotalInterest(loans)))
}
