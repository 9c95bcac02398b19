package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/mshalabi/housemate/docs"
	"github.com/mshalabi/housemate/internal/balance"
	"github.com/mshalabi/housemate/internal/category"
	"github.com/mshalabi/housemate/internal/config"
	"github.com/mshalabi/housemate/internal/database"
	"github.com/mshalabi/housemate/internal/expense"
	"github.com/mshalabi/housemate/internal/house"
	"github.com/mshalabi/housemate/internal/payment"
	"github.com/mshalabi/housemate/internal/shopping"
	"github.com/mshalabi/housemate/internal/transaction"
	"github.com/mshalabi/housemate/pkg/logging"
	mw "github.com/mshalabi/housemate/pkg/middleware"
)

// @title        Housemate API
// @version      1.0
// @description  Shared household expense tracking, balance settlement, and shopping list API
// @host         localhost:8080
// @BasePath     /api/v1
func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	logging.Setup()

	cfg := config.Load()

	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	slog.Info("connected to database")

	// House feature (membership gate shared by every other feature)
	houseRepo := house.NewRepository(db)
	houseService := house.NewService(houseRepo)
	houseHandler := house.NewHandler(houseService)

	categoryRepo := category.NewRepository(db)
	categoryService := category.NewService(categoryRepo, houseService)
	categoryHandler := category.NewHandler(categoryService)

	// Balance ledger (shared by expenses and payments)
	balanceRepo := balance.NewRepository(db)
	ledger := balance.NewLedger(balanceRepo, houseService)
	balanceHandler := balance.NewHandler(ledger)

	// Expense feature
	expenseRepo := expense.NewRepository(db)
	expenseService := expense.NewService(db, expenseRepo, houseService, categoryRepo, ledger)
	expenseHandler := expense.NewHandler(expenseService)

	// Payment feature
	paymentRepo := payment.NewRepository(db)
	paymentService := payment.NewService(db, paymentRepo, houseService, ledger)
	paymentHandler := payment.NewHandler(paymentService)

	// Transaction history feature
	transactionRepo := transaction.NewRepository(db)
	transactionService := transaction.NewService(transactionRepo, houseService)
	transactionHandler := transaction.NewHandler(transactionService)

	// Shopping list feature
	shoppingRepo := shopping.NewRepository(db)
	shoppingService := shopping.NewService(shoppingRepo, houseService, categoryRepo)
	shoppingHandler := shopping.NewHandler(shoppingService)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.Auth(cfg.JWTSecret))

		r.Route("/houses/{houseId}", func(r chi.Router) {
			r.Mount("/", houseHandler.Routes())
			r.Mount("/balances", balanceHandler.Routes())
			r.Mount("/categories", categoryHandler.Routes())
			r.Mount("/expenses", expenseHandler.Routes())
			r.Mount("/payments", paymentHandler.Routes())
			r.Mount("/transactions", transactionHandler.Routes())
			r.Mount("/shopping", shoppingHandler.Routes())
		})
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := shopping.NewScheduler(shoppingService, cfg.RecurringSweepPeriod)
	go scheduler.Run(ctx)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}
