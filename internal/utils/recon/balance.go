package recon

import (
	"fmt"

	"github.com/finledger/bank_recon_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceValidation reports whether a statement's transactions account for
// the movement between its opening and closing balances. ExpectedBalance is
// the closing balance the statement claims; ActualBalance is what replaying
// the transactions over the opening balance produces.
type BalanceValidation struct {
	IsValid         bool
	ExpectedBalance decimal.Decimal
	ActualBalance   decimal.Decimal
	Difference      decimal.Decimal
	Message         string
}

// ValidateBalance checks opening + sum(signed amounts) against the stated
// closing balance, to cent tolerance. A failure usually means missing or
// duplicated statement lines rather than a matching problem.
func ValidateBalance(openingBalance, closingBalance decimal.Decimal, transactions []domain.BankTransaction) BalanceValidation {
	total := decimal.Zero
	for _, tx := range transactions {
		total = total.Add(SignedBankAmount(tx))
	}

	calculated := openingBalance.Add(total)
	difference := calculated.Sub(closingBalance).Abs()
	isValid := difference.LessThan(centTolerance)

	message := "balance reconciles"
	if !isValid {
		message = fmt.Sprintf("calculated balance %s does not match stated closing balance %s (difference %s)",
			calculated.StringFixed(2), closingBalance.StringFixed(2), difference.StringFixed(2))
	}

	return BalanceValidation{
		IsValid:         isValid,
		ExpectedBalance: closingBalance,
		ActualBalance:   calculated,
		Difference:      difference,
		Message:         message,
	}
}
