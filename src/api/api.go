package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/gorm"

	"github.com/kltransit/lostfound/src/api/config"
	"github.com/kltransit/lostfound/src/api/webserver"
	"github.com/kltransit/lostfound/src/reconcile"
	"github.com/kltransit/lostfound/src/shared/data"
	"github.com/kltransit/lostfound/src/shared/storage"
)

func migrate(db *gorm.DB) {
	if err := db.AutoMigrate(storage.AllModels...); err != nil {
		log.Fatalf("migrate: %v", err)
	}
}

func main() {
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	db := data.MustMySQL(cfg.MySQLDSN)
	migrate(db)
	store := storage.NewMySQL(db)

	rdb := data.MustRedis(cfg.RedisURL)

	ctx, cancel := context.WithCancel(context.Background())
	sweeper := reconcile.New(store, time.Duration(cfg.SweepInterval)*time.Second)
	go sweeper.Start(ctx)

	router := webserver.New(cfg, store, rdb)
	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()
	log.Printf("Lost & Found API listening on %s", cfg.Port)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	cancel()

	shutCtx, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()
	_ = httpSrv.Shutdown(shutCtx)
}
