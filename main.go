package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"

	"codtecs-backend/internal/attendance"
	"codtecs-backend/internal/checkin"
	"codtecs-backend/internal/employees"
	"codtecs-backend/internal/platform/auth"
	"codtecs-backend/internal/platform/db"
	"codtecs-backend/internal/qrtoken"
)

func main() {
	// 設定読み込み
	cfg, err := db.LoadConfig("config/config.yaml")
	if err != nil {
		panic(err)
	}

	// 動作モード取得
	mode := cfg.Mode
	log.Printf("[INFO] mode:%s\n", mode)

	if cfg.Mode != "dev" && cfg.Mode != "release" {
		fmt.Println("Usage: go run main.go [dev|release]")
		return
	}

	conn, err := db.Connect(cfg.DB)
	if err != nil {
		panic(err)
	}
	defer conn.Close()

	log.Printf("[INFO] connected to DB: %s", cfg.DB.DBName)

	jwtSecret := []byte(cfg.Auth.JWTSecret)
	tokenTTL := time.Duration(cfg.Auth.TokenTTLHours) * time.Hour
	codec := qrtoken.NewCodec([]byte(cfg.Auth.QRSecret))

	authSvc := auth.NewService(conn, jwtSecret, tokenTTL)
	empSvc := employees.NewService(conn)
	checkinSvc := checkin.NewService(conn, codec)
	attSvc := attendance.NewService(conn)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	_ = r.SetTrustedProxies(nil)

	if mode == "dev" {
		// CORS（開発中のみ必要。フロントは localhost:3000）
		r.Use(cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:3000"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowCredentials: true,
		}))
	}

	// ヘルス
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	// /api
	api := r.Group("/api")

	// 認証不要: ログインとスキャナ打刻（QRが所持要素）
	auth.RegisterRoutes(api, authSvc)
	checkin.RegisterPublicRoutes(api, checkinSvc)

	// 社員用（employeeロール必須）
	emp := api.Group("/employee", auth.RequireAuth(jwtSecret), auth.RequireRole(auth.RoleEmployee))
	employees.RegisterEmployeeRoutes(emp, empSvc)
	checkin.RegisterEmployeeRoutes(emp, checkinSvc)
	attendance.RegisterEmployeeRoutes(emp, attSvc)

	// 管理者用（adminロール必須）
	adm := api.Group("/admin", auth.RequireAuth(jwtSecret), auth.RequireRole(auth.RoleAdmin))
	employees.RegisterAdminRoutes(adm, empSvc)
	checkin.RegisterAdminRoutes(adm, checkinSvc)
	attendance.RegisterAdminRoutes(adm, attSvc)

	var srv *http.Server

	if mode == "dev" {
		// 開発: 平文HTTP（フロントが http://localhost:8000 を叩く）
		srv = &http.Server{Addr: ":8000", Handler: r}
		go func() {
			log.Println("[INFO] listening on http://0.0.0.0:8000")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatal(err)
			}
		}()
	} else {
		// 本番: TLS
		srv = &http.Server{Addr: ":8443", Handler: r}
		certFile := fmt.Sprintf("config/tls/release/%s", cfg.Certificate.Cert)
		keyFile := fmt.Sprintf("config/tls/release/%s", cfg.Certificate.Key)
		go func() {
			log.Println("[INFO] listening on https://0.0.0.0:8443")
			if err := srv.ListenAndServeTLS(certFile, keyFile); err != nil && err != http.ErrServerClosed {
				log.Fatal(err)
			}
		}()
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Println("[INFO] shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}
