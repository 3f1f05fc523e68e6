// internal/storage/model.go
//
// 定義對帳單匯出 (statement export) 的結構模型。
// 匯出檔只是一次性的報表，不會再被載入回 Ledger。
// 金額一律以固定兩位小數的字串保存，JSON 與 YAML 皆可無損呈現。
package storage

import "time"

// Meta 為匯出快照的中繼資料。
type Meta struct {
	Storage   string    `json:"storage" yaml:"storage"`               // 匯出格式，例如 "json_snapshot"
	Version   int       `json:"version" yaml:"version"`               // 結構版本號
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`           // 匯出時間
	Note      string    `json:"note,omitempty" yaml:"note,omitempty"` // 備註
}

// ExportEntry 為單筆歷史紀錄的匯出格式。
type ExportEntry struct {
	ID     string    `json:"id" yaml:"id"`
	Kind   string    `json:"kind" yaml:"kind"`
	Amount string    `json:"amount" yaml:"amount"`
	Time   time.Time `json:"time" yaml:"time"`
}

// ExportAccount 為帳戶的匯出格式。
type ExportAccount struct {
	ID         int64         `json:"id" yaml:"id"`
	Branch     string        `json:"branch" yaml:"branch"`
	Holder     string        `json:"holder" yaml:"holder"`
	NationalID string        `json:"national_id" yaml:"national_id"`
	Balance    string        `json:"balance" yaml:"balance"`
	Entries    []ExportEntry `json:"entries" yaml:"entries"`
}

// ExportClient 為客戶的匯出格式；Accounts 只記錄帳號。
type ExportClient struct {
	Name       string  `json:"name" yaml:"name"`
	NationalID string  `json:"national_id" yaml:"national_id"`
	BirthDate  string  `json:"birth_date" yaml:"birth_date"`
	Address    string  `json:"address" yaml:"address"`
	Accounts   []int64 `json:"accounts" yaml:"accounts"`
}

// Snapshot 為 Ledger 狀態的完整匯出。
type Snapshot struct {
	Meta     Meta            `json:"_meta" yaml:"_meta"`
	Clients  []ExportClient  `json:"clients" yaml:"clients"`
	Accounts []ExportAccount `json:"accounts" yaml:"accounts"`
}
