// Package config 由環境變數與 .env 檔載入執行設定。
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"retailbank/internal/bank"
)

// Config 為應用程式設定。
type Config struct {
	Policy     bank.WithdrawalPolicy
	HTTPAddr   string
	ExportPath string
	Debug      bool
}

// Load 載入設定。指定 envPath 時該檔必須存在；否則嘗試讀取目前目錄的 .env（不存在則略過）。
//
//	BANK_WITHDRAWAL_LIMIT  單筆提款上限（預設 500）
//	BANK_MAX_WITHDRAWALS   提款次數上限（預設 3）
//	BANK_HTTP_ADDR         HTTP 監聽位址（預設 :8080）
//	BANK_EXPORT_PATH       結束互動模式時匯出對帳單的路徑（預設不匯出）
//	DEBUG                  "true" 時開啟除錯日誌
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	limit, err := parseDecimalEnv("BANK_WITHDRAWAL_LIMIT", bank.DefaultWithdrawalLimit)
	if err != nil {
		return nil, err
	}
	maxWithdrawals, err := parseIntEnv("BANK_MAX_WITHDRAWALS", bank.DefaultMaxWithdrawals)
	if err != nil {
		return nil, err
	}

	return &Config{
		Policy:     bank.WithdrawalPolicy{Limit: limit, MaxWithdrawals: maxWithdrawals},
		HTTPAddr:   getEnvOrDefault("BANK_HTTP_ADDR", ":8080"),
		ExportPath: os.Getenv("BANK_EXPORT_PATH"),
		Debug:      os.Getenv("DEBUG") == "true",
	}, nil
}

// Validate 檢查設定是否可用。
func (c *Config) Validate() error {
	if err := c.Policy.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.HTTPAddr == "" {
		return fmt.Errorf("invalid configuration: BANK_HTTP_ADDR is empty")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer value for %s: %s", key, value)
	}
	return parsed, nil
}

func parseDecimalEnv(key string, defaultValue decimal.Decimal) (decimal.Decimal, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid decimal value for %s: %s", key, value)
	}
	return parsed, nil
}
