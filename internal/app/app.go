package app

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/go-faster/errors"
	sdkapp "github.com/go-faster/sdk/app"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/ordernest/storefront/internal/backend"
	"github.com/ordernest/storefront/internal/session"
	"github.com/ordernest/storefront/internal/shell"
	"github.com/ordernest/storefront/pkg/health"
	"github.com/ordernest/storefront/pkg/httptransport"
)

// Run creates all dependencies and drives the interactive shell until it
// exits. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *sdkapp.Telemetry, cfg *Config) error {
	lg.Info("Initializing",
		zap.String("auth", cfg.Auth.BaseURL),
		zap.String("inventory", cfg.Inventory.BaseURL),
		zap.String("order", cfg.Order.BaseURL),
		zap.String("payment", cfg.Payment.BaseURL),
		zap.String("state_path", cfg.StatePath),
	)

	// Credential store over the keyed state file.
	storage, err := session.NewFileStorage(cfg.StatePath)
	if err != nil {
		return errors.Wrap(err, "open state file")
	}
	store := session.NewStore(storage)

	// One instrumented HTTP client shared by every backend. The bearer
	// middleware reads the store per request, so signing in or out takes
	// effect immediately; requests without a stored token carry no
	// Authorization header.
	transport := httptransport.Wrap(
		otelhttp.NewTransport(http.DefaultTransport,
			otelhttp.WithTracerProvider(m.TracerProvider()),
			otelhttp.WithMeterProvider(m.MeterProvider()),
		),
		httptransport.BearerAuth(httptransport.TokenSourceFunc(func() (string, bool) {
			token, err := store.Token()
			return token, err == nil && token != ""
		})),
		httptransport.RequestID(),
		httptransport.LogRequests(),
	)
	httpClient := &http.Client{
		Timeout:   cfg.HTTPTimeout,
		Transport: transport,
	}

	authClient := backend.NewAuthClient(backend.New(cfg.Auth.BaseURL, httpClient))
	inventoryClient := backend.NewInventoryClient(backend.New(cfg.Inventory.BaseURL, httpClient))
	orderClient := backend.NewOrderClient(backend.New(cfg.Order.BaseURL, httpClient))
	paymentClient := backend.NewPaymentClient(backend.New(cfg.Payment.BaseURL, httpClient))

	prober := health.New()
	prober.Add("auth", 5*time.Second, health.HTTPCheck(httpClient, cfg.Auth.BaseURL))
	prober.Add("inventory", 5*time.Second, health.HTTPCheck(httpClient, cfg.Inventory.BaseURL))
	prober.Add("order", 5*time.Second, health.HTTPCheck(httpClient, cfg.Order.BaseURL))
	prober.Add("payment", 5*time.Second, health.HTTPCheck(httpClient, cfg.Payment.BaseURL))

	sh := shell.New(shell.Options{
		Auth:          authClient,
		Inventory:     inventoryClient,
		Orders:        orderClient,
		Payments:      paymentClient,
		Identity:      authClient,
		Store:         store,
		Prober:        prober,
		WatchInterval: cfg.Watch.Interval,
		In:            os.Stdin,
		Out:           os.Stdout,
		Logger:        lg,
	})
	return sh.Run(ctx)
}
