package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Fixed fallback hosts used when no explicit base URL is configured.
const (
	defaultAuthURL      = "https://auth-service-6f9r.onrender.com"
	defaultInventoryURL = "https://ordernest-inventory-service.onrender.com"
	defaultOrderURL     = "https://ordernest-order-service.onrender.com"
	defaultPaymentURL   = "https://ordernest-payment-service.onrender.com"
)

// Config holds the complete client configuration, loadable from environment
// variables (ORDERNEST_ prefix) or YAML config files.
type Config struct {
	Auth      BackendConfig `usage:"auth service"`
	Inventory BackendConfig `usage:"inventory service"`
	Order     BackendConfig `usage:"order service"`
	Payment   BackendConfig `usage:"payment service"`

	HTTPTimeout time.Duration `default:"15s" usage:"Per-request HTTP timeout"`
	StatePath   string        `usage:"Path to the credential state file (defaults to the user config dir)"`
	Watch       WatchConfig
}

// BackendConfig addresses one backend service.
type BackendConfig struct {
	BaseURL string `usage:"Service base URL"`
}

// WatchConfig controls the payment status poller.
type WatchConfig struct {
	Interval time.Duration `default:"3s" usage:"Polling interval of the watch command"`
}

// LoadConfig loads configuration from environment variables and YAML config
// files, then applies platform defaults and the fixed fallback hosts.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		SkipFlags: true,
		EnvPrefix: "ORDERNEST",
		Files:     []string{"config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	if cfg.StatePath == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, errors.Wrap(err, "resolve user config dir")
		}
		cfg.StatePath = filepath.Join(dir, "ordernest", "state.json")
	}

	return &cfg, nil
}

// applyPlatformDefaults maps the deployment platform's plain environment
// variables (AUTH_API_BASE_URL etc., without the ORDERNEST_ prefix) onto the
// configuration, then fills any base URL still empty with the fixed
// fallback host.
func (c *Config) applyPlatformDefaults() {
	backends := []struct {
		cfg      *BackendConfig
		env      string
		fallback string
	}{
		{&c.Auth, "AUTH_API_BASE_URL", defaultAuthURL},
		{&c.Inventory, "INVENTORY_API_BASE_URL", defaultInventoryURL},
		{&c.Order, "ORDER_API_BASE_URL", defaultOrderURL},
		{&c.Payment, "PAYMENT_API_BASE_URL", defaultPaymentURL},
	}
	for _, b := range backends {
		if b.cfg.BaseURL == "" {
			b.cfg.BaseURL = os.Getenv(b.env)
		}
		if b.cfg.BaseURL == "" {
			b.cfg.BaseURL = b.fallback
		}
	}
}
