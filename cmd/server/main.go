package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/api-sage/banking-ledger/internal/adapter/http/controller"
	"github.com/api-sage/banking-ledger/internal/adapter/http/middleware"
	"github.com/api-sage/banking-ledger/internal/adapter/http/router"
	"github.com/api-sage/banking-ledger/internal/adapter/repository/postgres"
	"github.com/api-sage/banking-ledger/internal/config"
	"github.com/api-sage/banking-ledger/internal/logger"
	"github.com/api-sage/banking-ledger/internal/usecase/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	migrateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := postgres.RunMigrations(migrateCtx, cfg.DatabaseDSN, cfg.MigrationsDir); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	db, err := postgres.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	accountRepo := postgres.NewAccountRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)
	rateRepo := postgres.NewRateRepository(db)
	loanRepo := postgres.NewLoanRepository(db)
	userRepo := postgres.NewUserRepository(db)

	rateService := services.NewRateService(rateRepo)
	feeService := services.NewFeeService(cfg.FeeRate)
	ledgerService := services.NewLedgerService(accountRepo, rateService, feeService, cfg.OverdraftFloor, cfg.StrictTransferConversion)
	accountService := services.NewAccountService(accountRepo)
	transactionService := services.NewTransactionService(accountRepo, transactionRepo)
	loanService := services.NewLoanService(loanRepo, cfg.BankCapital, cfg.MaxLoanAmount)
	userService := services.NewUserService(userRepo, cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	mux := router.New(
		controller.NewUserController(userService),
		controller.NewAccountController(accountService),
		controller.NewLedgerController(ledgerService),
		controller.NewTransactionController(transactionService),
		controller.NewLoanController(loanService),
		middleware.BearerAuth(cfg.JWTSecret),
	)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		logger.Info("http server starting", logger.Fields{
			"addr": cfg.HTTPAddr,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		logger.Info("http server stopping", nil)
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Fatalf("server: %v", err)
	}
}
