// internal/bank/history.go

package bank

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Entry 為歷史中的一筆紀錄。
type Entry struct {
	ID     uuid.UUID       `json:"id"`
	Kind   Kind            `json:"kind"`
	Amount decimal.Decimal `json:"amount"`
	Time   time.Time       `json:"time"`
}

// History 為單一帳戶的只增（append-only）交易日誌。
// 順序即套用順序，永不重排或刪除。
// History 不自帶鎖，所有存取皆在所屬 Account 的臨界區內。
type History struct {
	entries []Entry
}

// append 紀錄一筆已成功套用的交易；不做任何檢核。
func (h *History) append(tx Transaction, at time.Time) Entry {
	e := Entry{ID: uuid.New(), Kind: tx.Kind(), Amount: tx.Amount(), Time: at}
	h.entries = append(h.entries, e)
	return e
}

// Entries 回傳紀錄的值拷貝，避免外部改寫內部切片。
func (h *History) Entries() []Entry {
	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Count 回傳指定種類的紀錄筆數。
func (h *History) Count(k Kind) int {
	n := 0
	for _, e := range h.entries {
		if e.Kind == k {
			n++
		}
	}
	return n
}

// Len 回傳紀錄總筆數。
func (h *History) Len() int { return len(h.entries) }
