// Package cli 提供互動式文字選單，作為 bank 核心的外殼。
// 本層只負責提示輸入、解析金額、以身分證號查找客戶、選擇帳戶與輸出文字；
// 所有規則判斷都交給 bank 套件。
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"retailbank/internal/bank"
)

const menu = `
================ MENU ================
[d]	Deposit
[s]	Withdraw
[e]	Statement
[nc]	New account
[lc]	List accounts
[nu]	New client
[q]	Quit
=> `

// UI 為互動式選單。
type UI struct {
	ledger *bank.Ledger
	in     *bufio.Reader
	out    io.Writer
	log    *slog.Logger
}

// NewUI 建立選單；in 為使用者輸入來源，out 為輸出目的地。
func NewUI(l *bank.Ledger, in io.Reader, out io.Writer) *UI {
	return &UI{ledger: l, in: bufio.NewReader(in), out: out, log: slog.Default()}
}

// Run 反覆顯示選單直到選擇 [q] 或輸入結束。
func (ui *UI) Run() error {
	for {
		fmt.Fprint(ui.out, menu)
		opt, ok := ui.readLine()
		if !ok {
			fmt.Fprintln(ui.out)
			return nil
		}
		switch opt {
		case "d":
			ui.deposit()
		case "s":
			ui.withdraw()
		case "e":
			ui.statement()
		case "nu":
			ui.newClient()
		case "nc":
			ui.newAccount()
		case "lc":
			ui.listAccounts()
		case "q":
			return nil
		default:
			fmt.Fprintln(ui.out, "\n@@@ Invalid operation, please select the desired operation again. @@@")
		}
	}
}

func (ui *UI) deposit() {
	ui.transact("deposit", bank.KindDeposit)
}

func (ui *UI) withdraw() {
	ui.transact("withdrawal", bank.KindWithdrawal)
}

// transact 依序：查找客戶 → 讀取金額 → 選擇帳戶 → 由客戶套用交易。
func (ui *UI) transact(label string, kind bank.Kind) {
	c := ui.findClient()
	if c == nil {
		return
	}
	amount, ok := ui.readAmount(fmt.Sprintf("Enter the %s amount: ", label))
	if !ok {
		return
	}
	a := ui.selectAccount(c)
	if a == nil {
		return
	}

	var tx bank.Transaction = bank.NewDeposit(amount)
	if kind == bank.KindWithdrawal {
		tx = bank.NewWithdrawal(amount)
	}
	if err := c.ApplyTransaction(a, tx); err != nil {
		ui.log.Debug("transaction rejected", "kind", kind, "account", a.ID(), "amount", amount, "error", err)
		fmt.Fprintln(ui.out, failureMessage(err))
		return
	}
	ui.log.Debug("transaction applied", "kind", kind, "account", a.ID(), "amount", amount)
	if kind == bank.KindWithdrawal {
		fmt.Fprintln(ui.out, "\n=== Withdrawal completed successfully! ===")
	} else {
		fmt.Fprintln(ui.out, "\n=== Deposit completed successfully! ===")
	}
}

func (ui *UI) statement() {
	c := ui.findClient()
	if c == nil {
		return
	}
	a := ui.selectAccount(c)
	if a == nil {
		return
	}
	fmt.Fprint(ui.out, RenderStatement(a.Statement()))
}

func (ui *UI) newClient() {
	fmt.Fprint(ui.out, "Enter the national ID (numbers only): ")
	id, _ := ui.readLine()
	if _, err := ui.ledger.Client(id); err == nil {
		fmt.Fprintln(ui.out, "\n@@@ A client with this national ID already exists! @@@")
		return
	}
	fmt.Fprint(ui.out, "Enter the full name: ")
	name, _ := ui.readLine()
	fmt.Fprint(ui.out, "Enter the birth date (dd-mm-yyyy): ")
	birth, _ := ui.readLine()
	fmt.Fprint(ui.out, "Enter the address (street, number - district - city/state): ")
	addr, _ := ui.readLine()

	if err := ui.ledger.RegisterClient(bank.NewClient(name, id, birth, addr)); err != nil {
		fmt.Fprintln(ui.out, failureMessage(err))
		return
	}
	ui.log.Debug("client registered", "national_id", id)
	fmt.Fprintln(ui.out, "\n=== Client created successfully! ===")
}

func (ui *UI) newAccount() {
	fmt.Fprint(ui.out, "Enter the client's national ID: ")
	id, _ := ui.readLine()
	a, err := ui.ledger.OpenAccount(id)
	if errors.Is(err, bank.ErrClientNotFound) {
		fmt.Fprintln(ui.out, "\n@@@ Client not found, account creation aborted! @@@")
		return
	}
	if err != nil {
		fmt.Fprintln(ui.out, failureMessage(err))
		return
	}
	ui.log.Debug("account opened", "account", a.ID(), "national_id", id)
	fmt.Fprintln(ui.out, "\n=== Account created successfully! ===")
}

func (ui *UI) listAccounts() {
	for _, a := range ui.ledger.Accounts() {
		fmt.Fprintln(ui.out, strings.Repeat("=", 100))
		fmt.Fprint(ui.out, RenderAccount(a))
	}
}

// findClient 讀取身分證號並查找客戶；找不到時輸出訊息並回傳 nil。
func (ui *UI) findClient() *bank.Client {
	fmt.Fprint(ui.out, "Enter the client's national ID: ")
	id, _ := ui.readLine()
	c, err := ui.ledger.Client(id)
	if err != nil {
		fmt.Fprintln(ui.out, "\n@@@ Client not found! @@@")
		return nil
	}
	return c
}

// selectAccount 選擇客戶的帳戶：只有一個時直接使用，多個時詢問帳號。
func (ui *UI) selectAccount(c *bank.Client) *bank.Account {
	accounts := c.Accounts()
	switch len(accounts) {
	case 0:
		fmt.Fprintln(ui.out, "\n@@@ Client has no account! @@@")
		return nil
	case 1:
		return accounts[0]
	}

	ids := make([]string, len(accounts))
	for i, a := range accounts {
		ids[i] = strconv.FormatInt(a.ID(), 10)
	}
	fmt.Fprintf(ui.out, "Select the account number (%s): ", strings.Join(ids, ", "))
	line, _ := ui.readLine()
	id, err := strconv.ParseInt(line, 10, 64)
	if err != nil {
		fmt.Fprintln(ui.out, "\n@@@ Account not found! @@@")
		return nil
	}
	a, err := c.Account(id)
	if err != nil {
		fmt.Fprintln(ui.out, "\n@@@ Account not found! @@@")
		return nil
	}
	return a
}

// readAmount 反覆提示直到輸入可解析的十進位數字；輸入結束時回傳 ok=false。
// 金額正負由核心規則判斷，這裡只處理格式。
func (ui *UI) readAmount(prompt string) (decimal.Decimal, bool) {
	for {
		fmt.Fprint(ui.out, prompt)
		line, ok := ui.readLine()
		if !ok {
			return decimal.Zero, false
		}
		v, err := decimal.NewFromString(line)
		if err == nil {
			return v, true
		}
		fmt.Fprintln(ui.out, "@@@ Invalid value, please enter a number. @@@")
	}
}

// readLine 讀取一行並去除前後空白；讀到 EOF 且無內容時回傳 ok=false。
func (ui *UI) readLine() (string, bool) {
	s, err := ui.in.ReadString('\n')
	if err != nil && s == "" {
		return "", false
	}
	return strings.TrimSpace(s), true
}
