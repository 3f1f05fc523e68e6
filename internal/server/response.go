// internal/server/response.go
//
// 本檔負責統一 HTTP 回應格式與「領域錯誤 → HTTP 狀態碼」的對應。
// 所有 handler 皆透過 writeJSON / writeErr 輸出，確保整個 API 格式一致。
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"retailbank/internal/bank"
)

// ErrorResponse 為錯誤回應本體。
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// writeJSON 統一輸出成功回應。
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErr 依錯誤類別輸出對應狀態碼與 {error, code} JSON。
func writeErr(w http.ResponseWriter, err error) {
	status, code := classify(err)
	writeJSON(w, status, ErrorResponse{Error: err.Error(), Code: code})
}

// classify 將錯誤對應到 HTTP 狀態碼與機器可讀代碼。
//   - 400：金額或輸入不合法
//   - 404：客戶或帳戶不存在
//   - 409：餘額不足、客戶重複
//   - 422：超過提款上限或次數
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, bank.ErrInvalidAmount):
		return http.StatusBadRequest, "invalid_amount"
	case errors.Is(err, bank.ErrInvalidNationalID):
		return http.StatusBadRequest, "invalid_national_id"
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, bank.ErrClientNotFound):
		return http.StatusNotFound, "client_not_found"
	case errors.Is(err, bank.ErrAccountNotFound):
		return http.StatusNotFound, "account_not_found"
	case errors.Is(err, bank.ErrInsufficientBalance):
		return http.StatusConflict, "insufficient_balance"
	case errors.Is(err, bank.ErrClientExists):
		return http.StatusConflict, "client_exists"
	case errors.Is(err, bank.ErrLimitExceeded):
		return http.StatusUnprocessableEntity, "limit_exceeded"
	case errors.Is(err, bank.ErrWithdrawalCountExceeded):
		return http.StatusUnprocessableEntity, "withdrawal_count_exceeded"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
