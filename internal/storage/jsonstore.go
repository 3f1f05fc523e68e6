// internal/storage/jsonstore.go
//
// 提供對帳單快照 (Snapshot) 的匯出與讀取。
// 副檔名為 .yaml / .yml 時以 YAML 編碼，其餘一律 JSON。
// 採「原子寫入」策略：先寫入 .tmp 檔，再以 rename() 取代原檔，
// 寫入中途失敗不會留下半份檔案。
package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// SnapshotVersion 為目前匯出結構的版本號。
const SnapshotVersion = 1

// isYAML 依副檔名判斷輸出格式。
func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// LoadSnapshot 讀取指定路徑的快照（JSON 或 YAML）。
// 僅供檢視或驗證匯出結果，不用於還原 Ledger。
func LoadSnapshot(path string) (Snapshot, error) {
	var snap Snapshot
	f, err := os.Open(path)
	if err != nil {
		return snap, err
	}
	defer f.Close()
	if isYAML(path) {
		err = yaml.NewDecoder(f).Decode(&snap)
	} else {
		err = json.NewDecoder(f).Decode(&snap)
	}
	if err != nil {
		return snap, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	return snap, nil
}

// SaveSnapshot 將 Snapshot 寫入檔案，並採原子方式取代：
//  1. 設定 Meta.Storage、Meta.Version 與當前時間戳。
//  2. 寫入 path+".tmp" 暫存檔。
//  3. 寫入完成後使用 os.Rename() 取代正式檔案。
func SaveSnapshot(path string, snap Snapshot) error {
	snap.Meta.Version = SnapshotVersion
	snap.Meta.Timestamp = time.Now()
	if isYAML(path) {
		snap.Meta.Storage = "yaml_snapshot"
	} else {
		snap.Meta.Storage = "json_snapshot"
	}
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}
	if err := encode(f, path, snap); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	// 原子替換
	return os.Rename(tmp, path)
}

func encode(w io.Writer, path string, snap Snapshot) error {
	if isYAML(path) {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return err
		}
		return enc.Close()
	}
	// 使用縮排格式輸出，方便人工檢視
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}
