// internal/bank/transaction.go
//
// 本檔定義交易抽象（Transaction）與兩種變體：Deposit、Withdrawal。
// 交易本身不直接修改餘額，只負責呼叫帳戶自身的規則並在成功後寫入歷史，
// 讓 Account 成為餘額不變量的唯一權威。

package bank

import "github.com/shopspring/decimal"

// Kind 為交易種類的明確標記，同時用於對帳單顯示與提款次數規則。
type Kind string

const (
	KindDeposit    Kind = "Deposit"
	KindWithdrawal Kind = "Withdrawal"
)

func (k Kind) String() string { return string(k) }

// Transaction 為單筆金額操作。建立後不可變。
type Transaction interface {
	Kind() Kind
	Amount() decimal.Decimal
	// Apply 於帳戶上執行交易；成功回傳 nil 並寫入該帳戶歷史。
	Apply(a *Account) error
}

// Deposit 存款交易。
type Deposit struct {
	amount decimal.Decimal
}

// NewDeposit 建立存款交易；金額合法性由帳戶規則判斷。
func NewDeposit(amount decimal.Decimal) Deposit { return Deposit{amount: amount} }

func (d Deposit) Kind() Kind              { return KindDeposit }
func (d Deposit) Amount() decimal.Decimal { return d.amount }

// Apply 委派帳戶的存款規則。
func (d Deposit) Apply(a *Account) error {
	return a.commit(d, a.deposit)
}

// Withdrawal 提款交易。
type Withdrawal struct {
	amount decimal.Decimal
}

// NewWithdrawal 建立提款交易。
func NewWithdrawal(amount decimal.Decimal) Withdrawal { return Withdrawal{amount: amount} }

func (w Withdrawal) Kind() Kind              { return KindWithdrawal }
func (w Withdrawal) Amount() decimal.Decimal { return w.amount }

// Apply 委派帳戶的提款規則（支票帳戶會先套用提款政策）。
func (w Withdrawal) Apply(a *Account) error {
	return a.commit(w, a.withdraw)
}
