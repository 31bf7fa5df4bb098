package app

import (
	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Config holds the complete application configuration, loadable from
// environment variables (ORDERDESK_ prefix) or YAML config files.
type Config struct {
	DataDir     string `default:"data" usage:"directory holding the local store blobs"`
	Currency    string `default:"EGP" usage:"currency label printed on invoices"`
	DeliveryFee string `default:"15" usage:"flat fee added to delivery orders" flag:"delivery-fee"`
	Restaurant  RestaurantConfig
}

// RestaurantConfig is the identity printed on invoice headers.
type RestaurantConfig struct {
	Name    string `default:"Koshary Ashraf" usage:"restaurant name on the invoice header"`
	Tagline string `default:"Since 1970" usage:"tagline under the restaurant name"`
}

// LoadConfig loads configuration from environment variables and YAML config
// files. Command-line flags are left to the subcommand dispatcher.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "ORDERDESK",
		SkipFlags: true,
		Files:     []string{"config.yaml", "/etc/orderdesk/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	if _, err := cfg.deliveryFee(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) deliveryFee() (decimal.Decimal, error) {
	fee, err := decimal.NewFromString(c.DeliveryFee)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "parse delivery fee")
	}
	if fee.IsNegative() {
		return decimal.Zero, errors.New("delivery fee must not be negative")
	}
	return fee, nil
}
