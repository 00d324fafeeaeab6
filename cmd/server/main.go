package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rml/bookkeeper/internal/application/datacache"
	"github.com/rml/bookkeeper/internal/application/identitysvc"
	"github.com/rml/bookkeeper/internal/application/ledgersvc"
	"github.com/rml/bookkeeper/internal/application/reportsvc"
	"github.com/rml/bookkeeper/internal/infrastructure/config"
	"github.com/rml/bookkeeper/internal/infrastructure/logger"
	"github.com/rml/bookkeeper/internal/infrastructure/persistence/localcache"
	mongostore "github.com/rml/bookkeeper/internal/infrastructure/persistence/mongo"
	"github.com/rml/bookkeeper/internal/interfaces/http/handler"
	"github.com/rml/bookkeeper/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync(log) }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := mongostore.Connect(ctx, cfg.Mongo, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn("mongo disconnect failed", zap.Error(err))
		}
	}()
	db := client.Database(cfg.Mongo.Database)

	store := mongostore.NewStore(db, log)
	accounts := mongostore.NewAccountRepository(db, log)

	var local *localcache.Cache
	if cfg.Cache.Enabled {
		local, err = localcache.Open(cfg.Cache.Path, log)
		if err != nil {
			return err
		}
	}

	caches := datacache.NewManager(store, local, log)
	defer caches.Shutdown()

	identity := identitysvc.NewService(accounts, cfg.JWT, log)
	sales := ledgersvc.NewSaleService(store, log)
	debts := ledgersvc.NewDebtService(store, log)
	expenses := ledgersvc.NewExpenseService(store, log)
	supplies := ledgersvc.NewSupplyService(store, log)
	deposits := ledgersvc.NewDepositService(store, log)
	refs := ledgersvc.NewReferenceService(store, log)
	reports := reportsvc.NewService(caches, cfg.Report, log)

	engine := router.New(cfg.App.Env, identity, router.Handlers{
		Auth:       handler.NewAuthHandler(identity, caches),
		Sales:      handler.NewSalesHandler(sales, caches),
		Debts:      handler.NewDebtsHandler(debts, caches),
		Expenses:   handler.NewExpensesHandler(expenses, caches),
		Supplies:   handler.NewSuppliesHandler(supplies, caches),
		References: handler.NewReferencesHandler(refs, caches),
		Deposits:   handler.NewDepositsHandler(deposits, caches),
		Reports:    handler.NewReportsHandler(reports, cfg.Report.DashboardAlias),
	}, log)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
