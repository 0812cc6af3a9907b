package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mind-engage/snapstudy/internal/activity"
	api "github.com/mind-engage/snapstudy/internal/api/http"
	auth "github.com/mind-engage/snapstudy/internal/auth/middleware"
	"github.com/mind-engage/snapstudy/internal/config"
	"github.com/mind-engage/snapstudy/internal/db"
	"github.com/mind-engage/snapstudy/internal/ocr"
	"github.com/mind-engage/snapstudy/internal/quiz"
	"github.com/mind-engage/snapstudy/internal/storage"
	"github.com/mind-engage/snapstudy/internal/study"
	"github.com/mind-engage/snapstudy/internal/ws"
)

func main() {
	// .env is optional; real environment variables win
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("env: %v", err)
	}
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	driver := db.Driver(cfg.DBDriver)
	dbh, err := db.Open(ctx, driver, cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	defer dbh.Close()
	events := activity.NewRepo(dbh, driver.SQLName())

	bs, err := storage.NewFSStore(cfg.BlobBasePath)
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}

	// --- Study sessions ---
	locale := quiz.LocaleByName(cfg.QuizLocale)
	hub := ws.NewHub()
	svc := study.NewService(study.Deps{
		OCR:      ocr.NewTesseractOCR(cfg.OCRLang, cfg.OCRTimeout),
		Deriver:  quiz.NewDeriver(quiz.WithLocale(locale)),
		Blobs:    bs,
		Activity: events,
		Notifier: api.HubNotifier(hub),
		OnExpire: hub.Close,
		Timeout:  cfg.OCRTimeout,
	})

	sweeper := study.NewSweeper(svc, cfg.SessionTTL, cfg.SessionSweepInterval)
	if err := sweeper.Start(); err != nil {
		log.Fatalf("sweeper: %v", err)
	}
	defer sweeper.Stop()

	// --- Auth ---
	authSvc := auth.NewAuthService(cfg.AuthSecret, cfg.TokenTTL)
	if cfg.AdminPassHash == "" {
		log.Printf("admin login disabled (ADMIN_PASS_HASH not set)")
	}

	r := api.NewRouter(api.RouterDeps{
		Sessions:       svc,
		Auth:           authSvc,
		Hub:            hub,
		Activity:       events,
		Locale:         locale,
		MaxUploadBytes: cfg.MaxUploadBytes,
		AdminUser:      cfg.AdminUser,
		AdminPassHash:  cfg.AdminPassHash,
		CORSOrigins:    cfg.CORSOrigins(),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("shutting down...")
		sctx, scancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer scancel()
		if err := srv.Shutdown(sctx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("listening on %s (mode=%s, db=%s, locale=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver, locale.Name)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	svc.Wait()
}
