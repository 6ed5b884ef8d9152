package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	cartapp "github.com/sparxparts/storefront/internal/cart/app"
	cartkv "github.com/sparxparts/storefront/internal/cart/infra/kv"
	catalogapp "github.com/sparxparts/storefront/internal/catalog/app"
	"github.com/sparxparts/storefront/internal/catalog/infra/seed"
	checkoutapp "github.com/sparxparts/storefront/internal/checkout/app"
	"github.com/sparxparts/storefront/internal/checkout/infra/adapter"
	checkoutkv "github.com/sparxparts/storefront/internal/checkout/infra/kv"
	"github.com/sparxparts/storefront/internal/httpapi"
	promoapp "github.com/sparxparts/storefront/internal/promo/app"
	promokv "github.com/sparxparts/storefront/internal/promo/infra/kv"
	wishlistapp "github.com/sparxparts/storefront/internal/wishlist/app"
	wishlistkv "github.com/sparxparts/storefront/internal/wishlist/infra/kv"
	"github.com/sparxparts/storefront/pkg/config"
	"github.com/sparxparts/storefront/pkg/kvstore"
	"github.com/sparxparts/storefront/pkg/logger"
	"github.com/sparxparts/storefront/pkg/shutdown"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service:   "storefront",
		Env:       cfg.AppEnv,
		Level:     cfg.LogLevel,
		AddSource: true,
	})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	kv, err := kvstore.Open(cfg.DataPath)
	if err != nil {
		log.Error("open kvstore failed", slog.Any("err", err), slog.String("path", cfg.DataPath))
		os.Exit(1)
	}
	defer kv.Close()

	// Catalog
	catalogRepo, err := seed.Load(cfg.CatalogPath)
	if err != nil {
		log.Error("load catalog failed", slog.Any("err", err), slog.String("path", cfg.CatalogPath))
		os.Exit(1)
	}
	catalogSvc := catalogapp.NewService(catalogRepo)

	// Cart, restored from the last session
	cartStore := cartkv.NewStore(kv)
	cartSvc := cartapp.NewService(cartStore, cartStore, catalogSvc)
	if err := cartSvc.Load(ctx); err != nil {
		log.Error("restore cart failed", slog.Any("err", err))
		os.Exit(1)
	}

	// Promo
	promoSvc := promoapp.NewService(promokv.NewStore(kv), cartSvc)
	if err := promoSvc.Load(ctx); err != nil {
		log.Error("restore promo failed", slog.Any("err", err))
		os.Exit(1)
	}

	// Checkout (adapters)
	checkoutSvc := checkoutapp.NewService(
		cartSvc,
		adapter.NewCatalogServiceReader(catalogSvc),
		adapter.NewPromoServiceGuard(promoSvc),
		checkoutkv.NewOrderStore(kv),
		10,
	)

	// Wishlist
	wishlistSvc := wishlistapp.NewService(wishlistkv.NewStore(kv))
	if err := wishlistSvc.Load(ctx); err != nil {
		log.Error("restore wishlist failed", slog.Any("err", err))
		os.Exit(1)
	}

	handler := httpapi.NewHandler(catalogSvc, cartSvc, promoSvc, checkoutSvc, wishlistSvc)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           httpapi.NewRouter(handler),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("http server starting", slog.String("addr", addr), slog.Int64("cart_items", cartSvc.Count()))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", slog.Any("err", err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown error", slog.Any("err", err))
	}

	wg.Wait()
	log.Info("bye")
}
