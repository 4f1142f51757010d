package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// 允许通过.env注入API密钥等环境变量，文件不存在时静默忽略
	_ = godotenv.Load()

	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
