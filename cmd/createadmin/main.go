// createadmin: 管理者アカウントの初期投入ツール。
// 使い方: go run ./cmd/createadmin -username admin@example.com -password 'xxxx'
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"codtecs-backend/internal/platform/auth"
	"codtecs-backend/internal/platform/db"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "設定ファイルのパス")
		username   = flag.String("username", "", "管理者ユーザー名")
		password   = flag.String("password", "", "管理者パスワード")
	)
	flag.Parse()

	if *username == "" || *password == "" {
		log.Fatal("[ERROR] -username と -password は必須")
	}

	cfg, err := db.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	conn, err := db.Connect(cfg.DB)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// 既存チェック
	var exists int
	err = conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM admins WHERE username = ?`, *username).Scan(&exists)
	if err != nil {
		log.Fatal(err)
	}
	if exists > 0 {
		log.Printf("[INFO] admin %q already exists", *username)
		return
	}

	hash, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatal(err)
	}

	_, err = conn.ExecContext(ctx, `
INSERT INTO admins (username, password_hash, created_at)
VALUES (?, ?, UTC_TIMESTAMP(6))`, *username, hash)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("admin %q created\n", *username)
}
