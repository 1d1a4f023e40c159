package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/raushankrgupta/shoplungu/api"
	"github.com/raushankrgupta/shoplungu/catalog"
	"github.com/raushankrgupta/shoplungu/checkout"
	"github.com/raushankrgupta/shoplungu/config"
	"github.com/raushankrgupta/shoplungu/session"
	"github.com/raushankrgupta/shoplungu/storage"
	"github.com/raushankrgupta/shoplungu/store"
	"github.com/raushankrgupta/shoplungu/utils"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	config.LoadConfig()

	logger, err := utils.NewLogger(config.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

func run(ctx context.Context, logger *zap.Logger) error {
	backend, err := storage.Open(ctx, storage.Options{
		Driver:       config.StorageDriver,
		Path:         config.StoragePath,
		MongoURI:     config.MongoURI,
		DatabaseName: config.DBName,
	})
	if err != nil {
		return fmt.Errorf("failed to open %s storage: %w", config.StorageDriver, err)
	}
	defer backend.Close()

	cat, err := catalog.Load(ctx, config.CatalogSource)
	if err != nil {
		return err
	}
	logger.Info("Catalog loaded",
		zap.String("source", config.CatalogSource),
		zap.Int("products", len(cat.Products())),
		zap.Int("categories", len(cat.Categories())))

	mailer := &utils.Mailer{
		APIKey:    config.SendGridAPIKey,
		FromName:  "ShopLungu",
		FromEmail: config.MailFrom,
		Logger:    logger,
	}
	if !mailer.Enabled() {
		logger.Info("SENDGRID_API_KEY not set, emails are disabled")
	}

	credential := store.DemoCredential(config.DemoEmail, []byte(config.DemoPasswordHash))

	handler := &api.Handler{
		Catalog:      cat,
		Sessions:     session.NewManager(backend, []byte(config.JWTSecret), config.SessionTTL, credential, logger),
		Checkout:     checkout.NewService(config.CheckoutDelay, mailer, logger),
		Inbox:        backend,
		Mailer:       mailer,
		Logger:       logger,
		PageSize:     config.PageSize,
		ContactDelay: config.CheckoutDelay,
		SupportEmail: config.MailFrom,
	}

	srv := &http.Server{
		Addr:              ":" + config.Port,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server starting", zap.String("port", config.Port), zap.String("storage", config.StorageDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")
		// let in-flight checkouts finish their delay
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.CheckoutDelay+5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
