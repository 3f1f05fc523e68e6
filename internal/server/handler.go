// internal/server/handler.go
//
// Package server
// ─────────────────────────────────────────────
// 提供 HTTP JSON 介面，作為 bank 模組的另一個外殼。
// 每個 handler 僅負責：
//  1. 接收與驗證 HTTP 請求
//  2. 以身分證號或帳號解析客戶 / 帳戶
//  3. 建立交易並交由帳戶擁有者 (Client) 套用
//  4. 回傳標準化 JSON 回應
//
// 規則全部在 bank 層；server 不直接修改任何餘額。
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"retailbank/internal/bank"
)

var errBadRequest = errors.New("bad request")

// Server 為 HTTP 層核心結構：注入帳本與 logger。
type Server struct {
	Ledger *bank.Ledger
	log    *slog.Logger
}

// NewServer 建立新的 HTTP 伺服器；logger 為 nil 時使用 slog.Default()。
func NewServer(l *bank.Ledger, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{Ledger: l, log: logger}
}

// AccountView 為帳戶的 JSON 表示。
type AccountView struct {
	ID             int64           `json:"id"`
	Branch         string          `json:"branch"`
	Holder         string          `json:"holder"`
	NationalID     string          `json:"national_id"`
	Balance        decimal.Decimal `json:"balance"`
	Withdrawals    int             `json:"withdrawals"`
	Limit          decimal.Decimal `json:"withdrawal_limit"`
	MaxWithdrawals int             `json:"max_withdrawals"`
}

// ClientView 為客戶的 JSON 表示。
type ClientView struct {
	Name       string  `json:"name"`
	NationalID string  `json:"national_id"`
	BirthDate  string  `json:"birth_date"`
	Address    string  `json:"address"`
	Accounts   []int64 `json:"accounts"`
}

func accountView(a *bank.Account) AccountView {
	st := a.Statement()
	v := AccountView{
		ID:          st.AccountID,
		Branch:      st.Branch,
		Holder:      st.Holder,
		Balance:     st.Balance,
		Withdrawals: a.Withdrawals(),
	}
	if o := a.Owner(); o != nil {
		v.NationalID = o.NationalID
	}
	if p, ok := a.Policy(); ok {
		v.Limit = p.Limit
		v.MaxWithdrawals = p.MaxWithdrawals
	}
	return v
}

func clientView(c *bank.Client) ClientView {
	v := ClientView{
		Name:       c.Name,
		NationalID: c.NationalID,
		BirthDate:  c.BirthDate,
		Address:    c.Address,
		Accounts:   []int64{},
	}
	for _, a := range c.Accounts() {
		v.Accounts = append(v.Accounts, a.ID())
	}
	return v
}

// createClient 處理 POST /clients。
func (s *Server) createClient(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       string `json:"name"`
		NationalID string `json:"national_id"`
		BirthDate  string `json:"birth_date"`
		Address    string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	c := bank.NewClient(req.Name, req.NationalID, req.BirthDate, req.Address)
	if err := s.Ledger.RegisterClient(c); err != nil {
		writeErr(w, err)
		return
	}
	s.log.Info("client registered", "national_id", c.NationalID)
	writeJSON(w, http.StatusCreated, clientView(c))
}

// getClient 處理 GET /clients/{nationalID}。
func (s *Server) getClient(w http.ResponseWriter, r *http.Request) {
	c, err := s.Ledger.Client(chi.URLParam(r, "nationalID"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clientView(c))
}

// openAccount 處理 POST /clients/{nationalID}/accounts。
func (s *Server) openAccount(w http.ResponseWriter, r *http.Request) {
	a, err := s.Ledger.OpenAccount(chi.URLParam(r, "nationalID"))
	if err != nil {
		writeErr(w, err)
		return
	}
	s.log.Info("account opened", "account", a.ID(), "national_id", a.Owner().NationalID)
	writeJSON(w, http.StatusCreated, accountView(a))
}

// listAccounts 處理 GET /accounts，依建立順序列出。
func (s *Server) listAccounts(w http.ResponseWriter, r *http.Request) {
	accounts := s.Ledger.Accounts()
	out := make([]AccountView, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, accountView(a))
	}
	writeJSON(w, http.StatusOK, out)
}

// account 解析路徑中的帳號並取得帳戶。
func (s *Server) account(r *http.Request) (*bank.Account, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return nil, bank.ErrAccountNotFound
	}
	return s.Ledger.Account(id)
}

// getAccount 處理 GET /accounts/{id}。
func (s *Server) getAccount(w http.ResponseWriter, r *http.Request) {
	a, err := s.account(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, accountView(a))
}

// deposit 處理 POST /accounts/{id}/deposit。
func (s *Server) deposit(w http.ResponseWriter, r *http.Request) {
	s.transact(w, r, func(amount decimal.Decimal) bank.Transaction { return bank.NewDeposit(amount) })
}

// withdraw 處理 POST /accounts/{id}/withdraw。
func (s *Server) withdraw(w http.ResponseWriter, r *http.Request) {
	s.transact(w, r, func(amount decimal.Decimal) bank.Transaction { return bank.NewWithdrawal(amount) })
}

// transact 解析帳戶與金額，建立交易並交由帳戶擁有者套用。
func (s *Server) transact(w http.ResponseWriter, r *http.Request, build func(decimal.Decimal) bank.Transaction) {
	a, err := s.account(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	var req struct {
		Amount decimal.Decimal `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	tx := build(req.Amount)
	if err := a.Owner().ApplyTransaction(a, tx); err != nil {
		s.log.Info("transaction rejected", "kind", tx.Kind(), "account", a.ID(), "amount", tx.Amount(), "error", err)
		writeErr(w, err)
		return
	}
	s.log.Info("transaction applied", "kind", tx.Kind(), "account", a.ID(), "amount", tx.Amount())
	writeJSON(w, http.StatusOK, accountView(a))
}

// statement 處理 GET /accounts/{id}/statement。
func (s *Server) statement(w http.ResponseWriter, r *http.Request) {
	a, err := s.account(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a.Statement())
}

// health 提供健康檢查端點：GET /health。
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
