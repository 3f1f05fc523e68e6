// internal/bank/client.go

package bank

import "sync"

// Client 為銀行客戶（自然人）。
// 基本資料建立後不再變更；accounts 只保存帳戶參照，擁有權在 Ledger。
type Client struct {
	Name       string
	NationalID string
	BirthDate  string
	Address    string

	mu       sync.Mutex
	accounts []*Account
}

// NewClient 建立尚未持有任何帳戶的客戶。
func NewClient(name, nationalID, birthDate, address string) *Client {
	return &Client{Name: name, NationalID: nationalID, BirthDate: birthDate, Address: address}
}

// AddAccount 將帳戶參照加入客戶。
// 同一帳戶重複加入回傳 ErrAccountAlreadyLinked；屬於其他客戶的帳戶回傳 ErrForeignAccount。
func (c *Client) AddAccount(a *Account) error {
	if a == nil {
		return ErrNoAccount
	}
	if a.owner != nil && a.owner != c {
		return ErrForeignAccount
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, have := range c.accounts {
		if have == a {
			return ErrAccountAlreadyLinked
		}
	}
	c.accounts = append(c.accounts, a)
	return nil
}

// Accounts 回傳依加入順序排列的帳戶參照拷貝。
func (c *Client) Accounts() []*Account {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Account, len(c.accounts))
	copy(out, c.accounts)
	return out
}

// Account 於客戶自己的帳戶中以帳號查找。
func (c *Client) Account(id int64) (*Account, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, a := range c.accounts {
		if a.id == id {
			return a, nil
		}
	}
	return nil, ErrAccountNotFound
}

// ApplyTransaction 將交易套用至指定帳戶；客戶本身不做任何檢核。
// 未提供帳戶或交易時不做任何事並回傳 ErrNoAccount。
func (c *Client) ApplyTransaction(a *Account, tx Transaction) error {
	if a == nil || tx == nil {
		return ErrNoAccount
	}
	return tx.Apply(a)
}
