package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/rogerio-castellano/kirana-pos/docs"
	"github.com/rogerio-castellano/kirana-pos/internal/config"
	"github.com/rogerio-castellano/kirana-pos/internal/db"
	"github.com/rogerio-castellano/kirana-pos/internal/forecast"
	api "github.com/rogerio-castellano/kirana-pos/internal/http"
	"github.com/rogerio-castellano/kirana-pos/internal/http/handlers"
	rl "github.com/rogerio-castellano/kirana-pos/internal/http/rate_limiter"
	"github.com/rogerio-castellano/kirana-pos/internal/notify"
	"github.com/rogerio-castellano/kirana-pos/internal/payment"
	"github.com/rogerio-castellano/kirana-pos/internal/pkg/clock"
	"github.com/rogerio-castellano/kirana-pos/internal/pos"
	"github.com/rogerio-castellano/kirana-pos/internal/redissvc"
	"github.com/rogerio-castellano/kirana-pos/internal/repo"
)

// @title Kirana POS API
// @version 1.0
// @description Point of sale and inventory API for a neighbourhood grocery shop.
// @host localhost:8080
// @BasePath /
func main() {
	configPath := flag.String("config", "", "path to a config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("❌ Could not load config:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		store      repo.Store
		messageLog notify.MessageLog = notify.NewMemoryLog()
	)
	switch cfg.Store.Driver {
	case "redis":
		rdb, err := redissvc.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatalf("Could not connect to Redis: %v", err)
		}
		defer rdb.Close()

		redisService := redissvc.NewRedisService(rdb)
		store = redisService
		messageLog = notify.NewRedisLog(redisService)
	case "postgres":
		database, err := db.Connect(cfg.Database.URL, db.Pool{
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		})
		if err != nil {
			log.Fatal("❌ Could not connect to database:", err)
		}
		defer database.Close()

		pgStore := repo.NewPostgresStore(database)
		if err := pgStore.EnsureSchema(ctx); err != nil {
			log.Fatal("❌ Could not prepare schema:", err)
		}
		store = pgStore
	default:
		store = repo.NewInMemoryStore()
	}

	realClock := clock.NewRealClock()
	storage := repo.NewStorage(store, repo.WithClock(realClock))
	handlers.SetStorage(storage)

	messenger := notify.NewMessenger(
		notify.WithDelays(cfg.Notify.SendDelay, cfg.Notify.DeliverDelay, cfg.Notify.ReadDelay),
		notify.WithLog(messageLog),
		notify.WithClock(realClock),
	)
	service := pos.NewService(storage,
		pos.WithTaxRate(cfg.POS.TaxRate),
		pos.WithClock(realClock),
		pos.WithPayments(payment.NewSimulator(
			payment.WithSuccessRate(cfg.Payment.SuccessRate),
			payment.WithDelays(cfg.Payment.VerifyDelay, cfg.Payment.ScanDelay, cfg.Payment.RefundDelay),
			payment.WithClock(realClock),
		)),
		pos.WithMessenger(messenger),
		pos.WithVoice(notify.NewVoice(notify.LogAnnouncer{}, realClock)),
		pos.WithScanner(notify.NewScanner(cfg.Barcode.ScanDelay)),
		pos.WithForecaster(forecast.New(forecast.Policy{
			WindowDays:      cfg.Forecast.WindowDays,
			SafetyBuffer:    cfg.Forecast.SafetyBuffer,
			HighDemandRate:  cfg.Forecast.HighDemandRate,
			StockoutDays:    forecast.DefaultPolicy().StockoutDays,
			ConfidenceBase:  cfg.Forecast.ConfidenceBase,
			ConfidenceStep:  cfg.Forecast.ConfidenceStep,
			ConfidenceFloor: cfg.Forecast.ConfidenceFloor,
			ConfidenceCeil:  cfg.Forecast.ConfidenceCeil,
		}, realClock)),
	)
	defer service.Close()
	handlers.SetPOSService(service)

	limiter := rl.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	api.SetRateLimiter(limiter)
	go limiter.StartVisitorCleanupLoop(ctx)

	go notify.StartDailySummary(ctx, messageLog, cfg.Notify.SummaryEvery, func(s notify.Summary) {
		log.Println(notify.FormatSummary(s))
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: api.NewRouter(),
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("✅ Server running on %s (store: %s)", srv.Addr, cfg.Store.Driver)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
