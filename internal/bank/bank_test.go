// internal/bank/bank_test.go
//
// 本檔為 bank 模組的單元與整合測試。
// 覆蓋：存提款規則、支票帳戶的上限與次數規則（含檢查順序）、歷史紀錄、
// 客戶與帳本操作、並發下的提款次數上限，以及快照匯出。
// 所有測試皆為 in-memory 執行，不依賴外部服務。

package bank

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// d 為小工具：將字串轉為 decimal，格式錯誤立即讓測試失敗。
func d(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	v, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("decimal %q: %v", s, err)
	}
	return v
}

// wantBalance 驗證帳戶餘額。
func wantBalance(t *testing.T, a *Account, want string) {
	t.Helper()
	if got := a.Balance(); !got.Equal(d(t, want)) {
		t.Fatalf("balance=%s want=%s", got, want)
	}
}

// newChecking 建立一位客戶與一個預設政策的支票帳戶。
func newChecking(t *testing.T) (*Client, *Account) {
	t.Helper()
	c := NewClient("Ana", "123", "01-01-1990", "Rua A, 1 - Centro - SP/SP")
	a := NewCheckingAccount(1, c, DefaultPolicy())
	if err := c.AddAccount(a); err != nil {
		t.Fatal(err)
	}
	return c, a
}

// TestDepositRules 驗證存款：金額 <= 0 不變更狀態；金額 > 0 增加餘額並寫入一筆 Deposit。
func TestDepositRules(t *testing.T) {
	a := NewAccount(1, nil)

	for _, amt := range []string{"0", "-5", "-0.01"} {
		if err := a.Deposit(d(t, amt)); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("amt=%s want ErrInvalidAmount, got %v", amt, err)
		}
	}
	wantBalance(t, a, "0")
	if n := len(a.History()); n != 0 {
		t.Fatalf("history len=%d want=0", n)
	}

	if err := a.Deposit(d(t, "150.25")); err != nil {
		t.Fatal(err)
	}
	wantBalance(t, a, "150.25")
	h := a.History()
	if len(h) != 1 || h[0].Kind != KindDeposit || !h[0].Amount.Equal(d(t, "150.25")) {
		t.Fatalf("history unexpected: %+v", h)
	}
	if h[0].Time.IsZero() {
		t.Fatal("entry time should be set")
	}
}

// TestBaseWithdrawRules 驗證基本帳戶提款：正常扣款、餘額不足、非法金額。
func TestBaseWithdrawRules(t *testing.T) {
	a := NewAccount(1, nil)
	if err := a.Deposit(d(t, "100")); err != nil {
		t.Fatal(err)
	}

	// ✅ 0 < amount <= balance
	if err := a.Withdraw(d(t, "30")); err != nil {
		t.Fatal(err)
	}
	wantBalance(t, a, "70")

	// ❌ 餘額不足，狀態不變
	if err := a.Withdraw(d(t, "70.01")); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expect ErrInsufficientBalance, got %v", err)
	}
	// ❌ 非法金額
	if err := a.Withdraw(d(t, "-1")); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expect ErrInvalidAmount, got %v", err)
	}
	wantBalance(t, a, "70")

	// 基本帳戶沒有次數上限
	for i := 0; i < 5; i++ {
		if err := a.Withdraw(d(t, "1")); err != nil {
			t.Fatalf("withdraw #%d: %v", i+1, err)
		}
	}
	wantBalance(t, a, "65")
	if n := a.Withdrawals(); n != 6 {
		t.Fatalf("withdrawals=%d want=6", n)
	}
	if a.IsChecking() {
		t.Fatal("base account should not be checking")
	}
}

// TestWithdrawExactBalance 驗證提領全部餘額為合法操作。
func TestWithdrawExactBalance(t *testing.T) {
	a := NewAccount(1, nil)
	_ = a.Deposit(d(t, "42"))
	if err := a.Withdraw(d(t, "42")); err != nil {
		t.Fatal(err)
	}
	wantBalance(t, a, "0")
	// 餘額 0 時提款 1 → 餘額不足
	if err := a.Withdraw(d(t, "1")); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expect ErrInsufficientBalance, got %v", err)
	}
}

// TestCheckingLimitExceeded 驗證單筆超過上限時，就算餘額足夠也失敗。
func TestCheckingLimitExceeded(t *testing.T) {
	_, a := newChecking(t)
	_ = a.Deposit(d(t, "1000"))

	if err := a.Withdraw(d(t, "600")); !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("expect ErrLimitExceeded, got %v", err)
	}
	// 上限本身可提領
	if err := a.Withdraw(d(t, "500")); err != nil {
		t.Fatal(err)
	}
	wantBalance(t, a, "500")
}

// TestCheckingWithdrawalCount 驗證第 4 次提款因次數上限失敗，與餘額無關。
func TestCheckingWithdrawalCount(t *testing.T) {
	_, a := newChecking(t)
	_ = a.Deposit(d(t, "1000"))

	for i := 0; i < 3; i++ {
		if err := a.Withdraw(d(t, "100")); err != nil {
			t.Fatalf("withdraw #%d: %v", i+1, err)
		}
	}
	if err := a.Withdraw(d(t, "100")); !errors.Is(err, ErrWithdrawalCountExceeded) {
		t.Fatalf("expect ErrWithdrawalCountExceeded, got %v", err)
	}
	wantBalance(t, a, "700")
	if n := len(a.History()); n != 4 {
		t.Fatalf("history len=%d want=4", n)
	}
}

// TestCheckingCheckOrder 驗證檢查順序：上限 → 次數 → 餘額/金額。
func TestCheckingCheckOrder(t *testing.T) {
	_, a := newChecking(t)

	// 餘額 0：上限優先於餘額不足
	if err := a.Withdraw(d(t, "501")); !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("limit before balance: got %v", err)
	}

	_ = a.Deposit(d(t, "30"))
	for i := 0; i < 3; i++ {
		if err := a.Withdraw(d(t, "10")); err != nil {
			t.Fatal(err)
		}
	}
	// 次數已滿：上限仍優先
	if err := a.Withdraw(d(t, "600")); !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("limit before count: got %v", err)
	}
	// 次數已滿且餘額 0：次數優先於餘額不足與非法金額
	if err := a.Withdraw(d(t, "10")); !errors.Is(err, ErrWithdrawalCountExceeded) {
		t.Fatalf("count before balance: got %v", err)
	}
	if err := a.Withdraw(d(t, "-1")); !errors.Is(err, ErrWithdrawalCountExceeded) {
		t.Fatalf("count before amount: got %v", err)
	}
}

// TestScenarioDepositThenDrain 驗證：存 1000、提 500、提 500、提 1。
func TestScenarioDepositThenDrain(t *testing.T) {
	_, a := newChecking(t)

	if err := a.Deposit(d(t, "1000")); err != nil {
		t.Fatal(err)
	}
	wantBalance(t, a, "1000")
	if h := a.History(); len(h) != 1 || h[0].Kind != KindDeposit {
		t.Fatalf("history=%+v", h)
	}

	if err := a.Withdraw(d(t, "500")); err != nil {
		t.Fatal(err)
	}
	wantBalance(t, a, "500")

	if err := a.Withdraw(d(t, "500")); err != nil {
		t.Fatal(err)
	}
	wantBalance(t, a, "0")
	if n := len(a.History()); n != 3 {
		t.Fatalf("history len=%d want=3", n)
	}
	if n := a.Withdrawals(); n != 2 {
		t.Fatalf("withdrawals=%d want=2", n)
	}

	if err := a.Withdraw(d(t, "1")); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expect ErrInsufficientBalance, got %v", err)
	}
	if n := len(a.History()); n != 3 {
		t.Fatalf("failed withdraw must not be recorded, len=%d", n)
	}
}

// TestHistoryOnlySuccesses 驗證歷史僅依呼叫順序記錄成功的交易。
func TestHistoryOnlySuccesses(t *testing.T) {
	c, a := newChecking(t)

	steps := []struct {
		tx      Transaction
		wantErr error
	}{
		{NewDeposit(d(t, "0")), ErrInvalidAmount},
		{NewDeposit(d(t, "200")), nil},
		{NewWithdrawal(d(t, "300")), ErrInsufficientBalance},
		{NewWithdrawal(d(t, "50")), nil},
		{NewDeposit(d(t, "10")), nil},
		{NewWithdrawal(d(t, "501")), ErrLimitExceeded},
	}
	for i, s := range steps {
		if err := c.ApplyTransaction(a, s.tx); !errors.Is(err, s.wantErr) {
			t.Fatalf("step %d: err=%v want=%v", i, err, s.wantErr)
		}
	}

	h := a.History()
	want := []struct {
		kind Kind
		amt  string
	}{{KindDeposit, "200"}, {KindWithdrawal, "50"}, {KindDeposit, "10"}}
	if len(h) != len(want) {
		t.Fatalf("history len=%d want=%d", len(h), len(want))
	}
	for i, w := range want {
		if h[i].Kind != w.kind || !h[i].Amount.Equal(d(t, w.amt)) {
			t.Fatalf("entry %d = %+v want %s %s", i, h[i], w.kind, w.amt)
		}
	}
	// 每筆紀錄 ID 唯一
	if h[0].ID == h[1].ID || h[1].ID == h[2].ID {
		t.Fatal("entry ids should be unique")
	}
	wantBalance(t, a, "160")
}

// TestHistoryCopy 驗證 History() 回傳拷貝，外部修改不影響內部狀態。
func TestHistoryCopy(t *testing.T) {
	_, a := newChecking(t)
	_ = a.Deposit(d(t, "10"))
	h := a.History()
	h[0].Amount = d(t, "9999")
	if got := a.History()[0].Amount; !got.Equal(d(t, "10")) {
		t.Fatalf("history mutated through copy: %s", got)
	}
}

// TestClientApplyTransaction 驗證未提供帳戶或交易時不做任何事。
func TestClientApplyTransaction(t *testing.T) {
	c, a := newChecking(t)
	if err := c.ApplyTransaction(nil, NewDeposit(d(t, "10"))); !errors.Is(err, ErrNoAccount) {
		t.Fatalf("expect ErrNoAccount, got %v", err)
	}
	if err := c.ApplyTransaction(a, nil); !errors.Is(err, ErrNoAccount) {
		t.Fatalf("expect ErrNoAccount, got %v", err)
	}
	wantBalance(t, a, "0")
	if err := c.ApplyTransaction(a, NewDeposit(d(t, "10"))); err != nil {
		t.Fatal(err)
	}
	wantBalance(t, a, "10")
}

// TestClientAddAccount 驗證重複加入與他人帳戶皆被拒絕。
func TestClientAddAccount(t *testing.T) {
	c, a := newChecking(t)
	if err := c.AddAccount(a); !errors.Is(err, ErrAccountAlreadyLinked) {
		t.Fatalf("expect ErrAccountAlreadyLinked, got %v", err)
	}
	other := NewClient("Bia", "456", "", "")
	if err := other.AddAccount(a); !errors.Is(err, ErrForeignAccount) {
		t.Fatalf("expect ErrForeignAccount, got %v", err)
	}
	if n := len(c.Accounts()); n != 1 {
		t.Fatalf("accounts=%d want=1", n)
	}
	if _, err := c.Account(1); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Account(2); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expect ErrAccountNotFound, got %v", err)
	}
}

// TestPolicyValidate 驗證提款政策檢核。
func TestPolicyValidate(t *testing.T) {
	if err := DefaultPolicy().Validate(); err != nil {
		t.Fatal(err)
	}
	bad := []WithdrawalPolicy{
		{Limit: decimal.Zero, MaxWithdrawals: 3},
		{Limit: decimal.NewFromInt(-1), MaxWithdrawals: 3},
		{Limit: decimal.NewFromInt(100), MaxWithdrawals: -1},
	}
	for _, p := range bad {
		if err := p.Validate(); !errors.Is(err, ErrInvalidPolicy) {
			t.Fatalf("policy %+v: want ErrInvalidPolicy, got %v", p, err)
		}
	}
}

// TestLedgerClientsAndAccounts 驗證客戶註冊、查找與帳號依序遞增。
func TestLedgerClientsAndAccounts(t *testing.T) {
	l := NewLedger()

	if err := l.RegisterClient(NewClient("Ana", "123", "", "")); err != nil {
		t.Fatal(err)
	}
	if err := l.RegisterClient(NewClient("Ana 2", "123", "", "")); !errors.Is(err, ErrClientExists) {
		t.Fatalf("expect ErrClientExists, got %v", err)
	}
	if err := l.RegisterClient(NewClient("X", "  ", "", "")); !errors.Is(err, ErrInvalidNationalID) {
		t.Fatalf("expect ErrInvalidNationalID, got %v", err)
	}
	if err := l.RegisterClient(NewClient("Bia", "456", "", "")); err != nil {
		t.Fatal(err)
	}

	if _, err := l.Client("999"); !errors.Is(err, ErrClientNotFound) {
		t.Fatalf("expect ErrClientNotFound, got %v", err)
	}
	if _, err := l.OpenAccount("999"); !errors.Is(err, ErrClientNotFound) {
		t.Fatalf("expect ErrClientNotFound, got %v", err)
	}

	a1, _ := l.OpenAccount("123")
	a2, _ := l.OpenAccount("456")
	a3, _ := l.OpenAccount("123")
	for i, a := range []*Account{a1, a2, a3} {
		if a.ID() != int64(i+1) {
			t.Fatalf("account %d id=%d", i, a.ID())
		}
		if a.Branch() != BranchCode || !a.IsChecking() {
			t.Fatalf("account %d branch=%s checking=%v", i, a.Branch(), a.IsChecking())
		}
	}
	if a1.Owner().NationalID != "123" || a2.Owner().NationalID != "456" {
		t.Fatal("owner back-reference wrong")
	}

	ana, _ := l.Client("123")
	if accs := ana.Accounts(); len(accs) != 2 || accs[0] != a1 || accs[1] != a3 {
		t.Fatalf("client accounts unexpected: %v", accs)
	}
	if got, err := l.Account(2); err != nil || got != a2 {
		t.Fatalf("Account(2)=%v err=%v", got, err)
	}
	for _, id := range []int64{0, 4, -1} {
		if _, err := l.Account(id); !errors.Is(err, ErrAccountNotFound) {
			t.Fatalf("id=%d expect ErrAccountNotFound, got %v", id, err)
		}
	}
	if n := len(l.Accounts()); n != 3 {
		t.Fatalf("accounts=%d want=3", n)
	}
	if n := len(l.Clients()); n != 2 {
		t.Fatalf("clients=%d want=2", n)
	}
}

// TestLedgerPolicyAndClock 驗證自訂政策與時間來源會套用到新帳戶。
func TestLedgerPolicyAndClock(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	l := NewLedger(
		WithPolicy(WithdrawalPolicy{Limit: decimal.NewFromInt(50), MaxWithdrawals: 1}),
		WithClock(func() time.Time { return fixed }),
	)
	if p := l.Policy(); !p.Limit.Equal(d(t, "50")) || p.MaxWithdrawals != 1 {
		t.Fatalf("policy=%+v", p)
	}
	_ = l.RegisterClient(NewClient("Ana", "123", "", ""))
	a, _ := l.OpenAccount("123")

	_ = a.Deposit(d(t, "100"))
	if err := a.Withdraw(d(t, "51")); !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("expect ErrLimitExceeded, got %v", err)
	}
	if err := a.Withdraw(d(t, "50")); err != nil {
		t.Fatal(err)
	}
	if err := a.Withdraw(d(t, "1")); !errors.Is(err, ErrWithdrawalCountExceeded) {
		t.Fatalf("expect ErrWithdrawalCountExceeded, got %v", err)
	}
	for _, e := range a.History() {
		if !e.Time.Equal(fixed) {
			t.Fatalf("entry time=%v want=%v", e.Time, fixed)
		}
	}
	st := a.Statement()
	if st.Holder != "Ana" || !st.Balance.Equal(d(t, "50")) || len(st.Entries) != 2 || !st.GeneratedAt.Equal(fixed) {
		t.Fatalf("statement unexpected: %+v", st)
	}
}

// TestConcurrentWithdrawalsRespectCount 驗證高併發下提款次數上限不會被突破。
// 檢查次數與寫入歷史位於同一臨界區。
func TestConcurrentWithdrawalsRespectCount(t *testing.T) {
	_, a := newChecking(t)
	_ = a.Deposit(d(t, "1000"))

	const workers = 50
	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			err := a.Withdraw(decimal.NewFromInt(10))
			if err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
				return
			}
			if !errors.Is(err, ErrWithdrawalCountExceeded) {
				t.Errorf("unexpected err: %v", err)
			}
		}()
	}
	wg.Wait()

	if ok != DefaultMaxWithdrawals {
		t.Fatalf("successful withdrawals=%d want=%d", ok, DefaultMaxWithdrawals)
	}
	wantBalance(t, a, "970")
}

// TestConcurrentDepositsRaceSafety 驗證多執行緒同時存款仍具資料一致性。
func TestConcurrentDepositsRaceSafety(t *testing.T) {
	a := NewAccount(1, nil)

	const workers = 100
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if err := a.Deposit(d(t, "0.10")); err != nil {
				t.Errorf("deposit err: %v", err)
			}
		}()
	}
	wg.Wait()

	wantBalance(t, a, "10")
	if n := len(a.History()); n != workers {
		t.Fatalf("history len=%d want=%d", n, workers)
	}
}

// TestSnapshot 驗證匯出快照包含客戶、帳戶與歷史。
func TestSnapshot(t *testing.T) {
	l := NewLedger()
	_ = l.RegisterClient(NewClient("Ana", "123", "01-01-1990", "Rua A"))
	a, _ := l.OpenAccount("123")
	_ = a.Deposit(d(t, "1000"))
	_ = a.Withdraw(d(t, "250.5"))

	s := l.Snapshot()
	if len(s.Clients) != 1 || len(s.Accounts) != 1 {
		t.Fatalf("snapshot sizes: clients=%d accounts=%d", len(s.Clients), len(s.Accounts))
	}
	if got := s.Clients[0].Accounts; len(got) != 1 || got[0] != 1 {
		t.Fatalf("client accounts=%v", got)
	}
	ea := s.Accounts[0]
	if ea.Balance != "749.50" || ea.Holder != "Ana" || ea.NationalID != "123" || ea.Branch != "0001" {
		t.Fatalf("account export unexpected: %+v", ea)
	}
	if len(ea.Entries) != 2 || ea.Entries[0].Kind != "Deposit" || ea.Entries[1].Amount != "250.50" {
		t.Fatalf("entries unexpected: %+v", ea.Entries)
	}
}
