// internal/bank/errors.go
//
// 本檔集中定義「領域錯誤（domain errors）」。
// 所有核心操作皆以 error 作為成功與否的指標：nil 代表成功，
// 非 nil 則為下列其中一種可恢復的失敗原因，由上層（CLI / HTTP）轉為使用者訊息。
// 呼叫端一律以 errors.Is 比對，不解析錯誤字串。

package bank

import "errors"

var (
	// ErrInvalidAmount 代表金額非法（<= 0）。
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInsufficientBalance 代表提款金額超過目前餘額。
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrLimitExceeded 代表單筆提款超過帳戶上限。
	ErrLimitExceeded = errors.New("withdrawal limit exceeded")

	// ErrWithdrawalCountExceeded 代表提款次數已達上限。
	ErrWithdrawalCountExceeded = errors.New("maximum number of withdrawals exceeded")

	// ErrNoAccount 代表未提供帳戶（或交易），操作不做任何事。
	ErrNoAccount = errors.New("no account supplied")

	// ErrClientNotFound 代表以身分證號查無客戶。
	ErrClientNotFound = errors.New("client not found")

	// ErrAccountNotFound 代表帳號不存在。
	ErrAccountNotFound = errors.New("account not found")

	// ErrClientExists 代表身分證號已被註冊。
	ErrClientExists = errors.New("client already exists")

	// ErrInvalidNationalID 代表身分證號為空。
	ErrInvalidNationalID = errors.New("national id must not be empty")

	// ErrAccountAlreadyLinked 代表同一帳戶重複加入客戶。
	ErrAccountAlreadyLinked = errors.New("account already linked to client")

	// ErrForeignAccount 代表帳戶屬於其他客戶。
	ErrForeignAccount = errors.New("account belongs to another client")

	// ErrInvalidPolicy 代表提款政策設定不合法。
	ErrInvalidPolicy = errors.New("invalid withdrawal policy")
)
