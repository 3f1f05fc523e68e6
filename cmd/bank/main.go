// cmd/bank/main.go

// bank 為零售銀行帳本的命令列入口：
//   - bank shell：互動式選單（預設）
//   - bank serve：HTTP JSON 介面
package main

import (
	"os"

	"retailbank/cmd/bank/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
