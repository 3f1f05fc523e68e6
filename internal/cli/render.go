package cli

import (
	"errors"
	"fmt"
	"strings"

	"retailbank/internal/bank"
)

// failureMessage 將領域錯誤轉為使用者訊息。
func failureMessage(err error) string {
	switch {
	case errors.Is(err, bank.ErrInvalidAmount):
		return "\n@@@ Operation failed! The amount entered is invalid. @@@"
	case errors.Is(err, bank.ErrInsufficientBalance):
		return "\n@@@ Operation failed! You do not have enough balance. @@@"
	case errors.Is(err, bank.ErrLimitExceeded):
		return "\n@@@ Operation failed! The withdrawal amount exceeds the limit. @@@"
	case errors.Is(err, bank.ErrWithdrawalCountExceeded):
		return "\n@@@ Operation failed! Maximum number of withdrawals exceeded. @@@"
	case errors.Is(err, bank.ErrNoAccount):
		return "\n@@@ Client has no account! @@@"
	case errors.Is(err, bank.ErrClientExists):
		return "\n@@@ A client with this national ID already exists! @@@"
	case errors.Is(err, bank.ErrInvalidNationalID):
		return "\n@@@ Operation failed! The national ID is required. @@@"
	default:
		return fmt.Sprintf("\n@@@ Operation failed! %v @@@", err)
	}
}

// RenderStatement 輸出對帳單文字。
func RenderStatement(s bank.Statement) string {
	var b strings.Builder
	b.WriteString("\n================ STATEMENT ================\n")
	if len(s.Entries) == 0 {
		b.WriteString("No transactions recorded.\n")
	} else {
		for _, e := range s.Entries {
			fmt.Fprintf(&b, "\n%s:\n\t$ %s", e.Kind, e.Amount.StringFixed(2))
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\nBalance:\n\t$ %s\n", s.Balance.StringFixed(2))
	b.WriteString("==========================================\n")
	return b.String()
}

// RenderAccount 輸出帳戶列表中的單筆資料。
func RenderAccount(a *bank.Account) string {
	holder := ""
	if a.Owner() != nil {
		holder = a.Owner().Name
	}
	return fmt.Sprintf("Branch:\t\t%s\nAccount:\t%d\nHolder:\t\t%s\n", a.Branch(), a.ID(), holder)
}
