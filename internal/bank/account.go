// Package bank 定義核心領域模型與業務規則。
// 本檔定義 Account（含支票帳戶變體）與其存提款規則，不含任何 HTTP 或儲存細節。

package bank

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a bank account.
//   - mu：每個帳戶一把鎖，交易的「檢查 → 變更 → 寫入歷史」在同一臨界區內完成。
//   - owner：指向客戶的非擁有參照；帳戶生命週期由 Ledger 管理。
//   - policy：非 nil 時即為支票帳戶（CheckingAccount）。
type Account struct {
	mu      sync.Mutex
	id      int64
	branch  string
	owner   *Client
	balance decimal.Decimal
	history History
	policy  *WithdrawalPolicy
	now     func() time.Time
}

// NewAccount 建立基本帳戶（只有餘額與金額規則）。
func NewAccount(id int64, owner *Client) *Account {
	return &Account{id: id, branch: BranchCode, owner: owner, now: time.Now}
}

// NewCheckingAccount 建立支票帳戶：在基本規則之前加上提款上限與次數上限。
func NewCheckingAccount(id int64, owner *Client, p WithdrawalPolicy) *Account {
	a := NewAccount(id, owner)
	a.policy = &p
	return a
}

func (a *Account) ID() int64      { return a.id }
func (a *Account) Branch() string { return a.branch }
func (a *Account) Owner() *Client { return a.owner }

// Balance 回傳目前餘額。
func (a *Account) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

// History 回傳歷史紀錄的值拷貝。
func (a *Account) History() []Entry {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.history.Entries()
}

// Withdrawals 回傳歷史中提款紀錄的筆數。
func (a *Account) Withdrawals() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.history.Count(KindWithdrawal)
}

// Policy 回傳支票帳戶的提款政策；基本帳戶回傳 ok=false。
func (a *Account) Policy() (WithdrawalPolicy, bool) {
	if a.policy == nil {
		return WithdrawalPolicy{}, false
	}
	return *a.policy, true
}

// IsChecking 回報是否為支票帳戶。
func (a *Account) IsChecking() bool { return a.policy != nil }

// Deposit 以存款交易套用至本帳戶（會寫入歷史）。
func (a *Account) Deposit(amount decimal.Decimal) error {
	return NewDeposit(amount).Apply(a)
}

// Withdraw 以提款交易套用至本帳戶（會寫入歷史）。
func (a *Account) Withdraw(amount decimal.Decimal) error {
	return NewWithdrawal(amount).Apply(a)
}

// commit 於臨界區內執行規則，成功才追加歷史，確保兩者一致。
// 所有檢查皆在變更之前，失敗時不會有任何部分修改。
func (a *Account) commit(tx Transaction, rule func(decimal.Decimal) error) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := rule(tx.Amount()); err != nil {
		return err
	}
	a.history.append(tx, a.now())
	return nil
}

// deposit 存款規則：金額需 > 0。呼叫端需持有 a.mu。
func (a *Account) deposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	a.balance = a.balance.Add(amount)
	return nil
}

// withdraw 提款規則。呼叫端需持有 a.mu。
// 支票帳戶：上限 → 次數 → 基本規則；基本規則：餘額 → 金額。
func (a *Account) withdraw(amount decimal.Decimal) error {
	if a.policy != nil {
		if err := a.policy.check(amount, a.history.Count(KindWithdrawal)); err != nil {
			return err
		}
	}
	// 先比對餘額，再檢查金額，餘額為 0 且金額 <= 0 時回報餘額不足。
	if amount.GreaterThan(a.balance) {
		return ErrInsufficientBalance
	}
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	a.balance = a.balance.Sub(amount)
	return nil
}

// Statement 為帳戶對帳單的一致快照。
type Statement struct {
	AccountID   int64           `json:"account_id"`
	Branch      string          `json:"branch"`
	Holder      string          `json:"holder"`
	Balance     decimal.Decimal `json:"balance"`
	Entries     []Entry         `json:"entries"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// Statement 於同一臨界區內取出餘額與歷史，避免兩者不一致。
func (a *Account) Statement() Statement {
	a.mu.Lock()
	defer a.mu.Unlock()
	s := Statement{
		AccountID:   a.id,
		Branch:      a.branch,
		Balance:     a.balance,
		Entries:     a.history.Entries(),
		GeneratedAt: a.now(),
	}
	if a.owner != nil {
		s.Holder = a.owner.Name
	}
	return s
}
