// internal/bank/policy.go

package bank

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	// BranchCode 為所有帳戶所屬的名義分行代碼。
	BranchCode = "0001"

	// DefaultMaxWithdrawals 為支票帳戶預設的提款次數上限。
	DefaultMaxWithdrawals = 3
)

// DefaultWithdrawalLimit 為支票帳戶預設的單筆提款上限。
var DefaultWithdrawalLimit = decimal.NewFromInt(500)

// WithdrawalPolicy 為支票帳戶在基本帳戶規則之外附加的提款限制。
// MaxWithdrawals 以帳戶整個歷史累計，不會依時間重置。
type WithdrawalPolicy struct {
	Limit          decimal.Decimal
	MaxWithdrawals int
}

// DefaultPolicy 回傳上限 500、次數 3 的預設政策。
func DefaultPolicy() WithdrawalPolicy {
	return WithdrawalPolicy{Limit: DefaultWithdrawalLimit, MaxWithdrawals: DefaultMaxWithdrawals}
}

// Validate 檢查上限為正、次數不為負。
func (p WithdrawalPolicy) Validate() error {
	if !p.Limit.IsPositive() {
		return fmt.Errorf("%w: limit must be > 0, got %s", ErrInvalidPolicy, p.Limit)
	}
	if p.MaxWithdrawals < 0 {
		return fmt.Errorf("%w: max withdrawals must be >= 0, got %d", ErrInvalidPolicy, p.MaxWithdrawals)
	}
	return nil
}

// check 依序檢查：單筆上限 → 次數上限。
// 順序決定同時違反多項條件時回報哪一個錯誤，不可調換。
func (p WithdrawalPolicy) check(amount decimal.Decimal, withdrawalsSoFar int) error {
	if amount.GreaterThan(p.Limit) {
		return ErrLimitExceeded
	}
	if withdrawalsSoFar >= p.MaxWithdrawals {
		return ErrWithdrawalCountExceeded
	}
	return nil
}
