// Package accounting holds the pure ledger arithmetic shared by services and
// reports. Everything here is deterministic and side-effect free so the same
// figures can be recomputed from scratch at any point.
package accounting

import (
	"time"

	"github.com/emprestafacil/loan_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// FinalAmount computes principal plus simple interest at ratePercent.
func FinalAmount(principal, ratePercent decimal.Decimal) decimal.Decimal {
	return principal.Mul(decimal.NewFromInt(1).Add(ratePercent.Div(oneHundred)))
}

// InterestPortion returns the interest share of a final amount.
func InterestPortion(principal, finalAmount decimal.Decimal) decimal.Decimal {
	return finalAmount.Sub(principal)
}

// SignedAmount returns the movement amount with the sign implied by its type:
// income adds to the till, expense subtracts from it.
func SignedAmount(txn domain.Transaction) decimal.Decimal {
	if txn.Type == domain.Expense {
		return txn.Amount.Neg()
	}
	return txn.Amount
}

// RunningBalance folds a sequence of movements into the current cash balance.
// The fold is order-independent, so replaying the full history always yields
// the same figure as any incremental accumulation.
func RunningBalance(movements []domain.Transaction) decimal.Decimal {
	balance := decimal.Zero
	for _, m := range movements {
		balance = balance.Add(SignedAmount(m))
	}
	return balance
}

// ElapsedWholeMonths returns the calendar month difference between two dates,
// ignoring day-of-month (2024-01-31 to 2024-02-01 is one month).
func ElapsedWholeMonths(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}

// PayoffAmount computes the default settlement value of a loan at paymentDate:
// simple interest accrued per elapsed whole month since the start date.
// A payment date before the start date accrues nothing, so the payoff never
// drops below the principal. Callers may override the result with an
// explicitly supplied payment amount.
func PayoffAmount(loan domain.Loan, paymentDate time.Time) decimal.Decimal {
	months := ElapsedWholeMonths(loan.StartDate, paymentDate)
	if months < 0 {
		months = 0
	}
	accrued := loan.InterestRate.Div(oneHundred).Mul(decimal.NewFromInt(int64(months)))
	return loan.Amount.Mul(decimal.NewFromInt(1).Add(accrued))
}

// AverageRate is the arithmetic mean of the interest rates over all loans,
// zero when there are none.
func AverageRate(loans []domain.Loan) decimal.Decimal {
	if len(loans) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, l := range loans {
		sum = sum.Add(l.InterestRate)
	}
	return sum.Div(decimal.NewFromInt(int64(len(loans))))
}

// TotalReceivable sums the final amount of every active loan.
func TotalReceivable(loans []domain.Loan) decimal.Decimal {
	total := decimal.Zero
	for _, l := range loans {
		if l.Status == domain.LoanActive {
			total = total.Add(l.FinalAmount)
		}
	}
	return total
}

// TotalInterest sums the interest portion of every loan regardless of status.
func TotalInterest(loans []domain.Loan) decimal.Decimal {
	total := decimal.Zero
	for _, l := range loans {
		total = total.Add(InterestPortion(l.Amount, l.FinalAmount))
	}
	return total
}
