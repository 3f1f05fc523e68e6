// internal/bank/ledger.go

// Ledger 為聚合根 (Aggregate Root)：擁有所有帳戶並管理客戶名錄。
// 取代全域的 clients / accounts 清單，所有 shell 都以注入的 Ledger 操作。
// 金額規則在 Account 內；Ledger 只負責建立、編號與查找。

package bank

import (
	"strings"
	"sync"
	"time"

	"retailbank/internal/storage"
)

// Ledger
//   - mu：保護 clients / byID / accounts，帳戶本身的狀態由各自的鎖保護。
//   - accounts：依建立順序保存，帳號即為 len(accounts)+1。
//   - policy：新開支票帳戶時套用的提款政策。
type Ledger struct {
	mu       sync.Mutex
	clients  []*Client
	byID     map[string]*Client
	accounts []*Account
	policy   WithdrawalPolicy
	now      func() time.Time
}

// Option 調整 Ledger 的建立參數。
type Option func(*Ledger)

// WithPolicy 設定新帳戶使用的提款政策。
func WithPolicy(p WithdrawalPolicy) Option {
	return func(l *Ledger) { l.policy = p }
}

// WithClock 替換時間來源（歷史時間戳與對帳單時間）。
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// NewLedger 建立空白帳本（僅就緒的 in-memory 狀態，無外部依賴）。
func NewLedger(opts ...Option) *Ledger {
	l := &Ledger{
		byID:   make(map[string]*Client),
		policy: DefaultPolicy(),
		now:    time.Now,
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Policy 回傳新帳戶使用的提款政策。
func (l *Ledger) Policy() WithdrawalPolicy { return l.policy }

// RegisterClient 以身分證號註冊客戶；號碼為空或已存在皆失敗。
func (l *Ledger) RegisterClient(c *Client) error {
	if c == nil || strings.TrimSpace(c.NationalID) == "" {
		return ErrInvalidNationalID
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.byID[c.NationalID]; ok {
		return ErrClientExists
	}
	l.byID[c.NationalID] = c
	l.clients = append(l.clients, c)
	return nil
}

// Client 依身分證號取得客戶；不存在回傳 ErrClientNotFound。
func (l *Ledger) Client(nationalID string) (*Client, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	c, ok := l.byID[nationalID]
	if !ok {
		return nil, ErrClientNotFound
	}
	return c, nil
}

// Clients 回傳依註冊順序排列的客戶。
func (l *Ledger) Clients() []*Client {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*Client, len(l.clients))
	copy(out, l.clients)
	return out
}

// OpenAccount 為客戶開立支票帳戶，帳號依建立順序從 1 起遞增。
func (l *Ledger) OpenAccount(nationalID string) (*Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	c, ok := l.byID[nationalID]
	if !ok {
		return nil, ErrClientNotFound
	}
	a := NewCheckingAccount(int64(len(l.accounts)+1), c, l.policy)
	a.now = l.now
	if err := c.AddAccount(a); err != nil {
		return nil, err
	}
	l.accounts = append(l.accounts, a)
	return a, nil
}

// Account 依帳號取得帳戶；不存在回傳 ErrAccountNotFound。
func (l *Ledger) Account(id int64) (*Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if id < 1 || id > int64(len(l.accounts)) {
		return nil, ErrAccountNotFound
	}
	return l.accounts[id-1], nil
}

// Accounts 回傳依建立順序排列的帳戶。
func (l *Ledger) Accounts() []*Account {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*Account, len(l.accounts))
	copy(out, l.accounts)
	return out
}

// Snapshot 匯出帳本狀態為 storage.Snapshot，供對帳單匯出使用。
// 每個帳戶各自於自己的鎖內取出對帳單，保證單一帳戶內餘額與歷史一致。
func (l *Ledger) Snapshot() storage.Snapshot {
	clients := l.Clients()
	accounts := l.Accounts()

	s := storage.Snapshot{
		Meta: storage.Meta{Note: "Statement export; not loaded back into a ledger."},
	}
	for _, c := range clients {
		ec := storage.ExportClient{
			Name:       c.Name,
			NationalID: c.NationalID,
			BirthDate:  c.BirthDate,
			Address:    c.Address,
		}
		for _, a := range c.Accounts() {
			ec.Accounts = append(ec.Accounts, a.ID())
		}
		s.Clients = append(s.Clients, ec)
	}
	for _, a := range accounts {
		st := a.Statement()
		ea := storage.ExportAccount{
			ID:      st.AccountID,
			Branch:  st.Branch,
			Holder:  st.Holder,
			Balance: st.Balance.StringFixed(2),
			Entries: make([]storage.ExportEntry, 0, len(st.Entries)),
		}
		if a.Owner() != nil {
			ea.NationalID = a.Owner().NationalID
		}
		for _, e := range st.Entries {
			ea.Entries = append(ea.Entries, storage.ExportEntry{
				ID:     e.ID.String(),
				Kind:   e.Kind.String(),
				Amount: e.Amount.StringFixed(2),
				Time:   e.Time,
			})
		}
		s.Accounts = append(s.Accounts, ea)
	}
	return s
}
