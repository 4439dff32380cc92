// Package config defines the environment variable and command-line flags
// supported by this service and includes default values for particular
// fields.
package config

import (
	"sync"

	"github.com/companieshouse/gofigure"
)

var cfg *Config
var mtx sync.Mutex

// Config defines the configuration options for this service.
type Config struct {
	BindAddr            string   `env:"BIND_ADDR"               flag:"bind-addr"               flagDesc:"Bind address"`
	Collection          string   `env:"MONGODB_COLLECTION"      flag:"mongodb-collection"      flagDesc:"MongoDB collection for data"`
	Database            string   `env:"MONGODB_DATABASE"        flag:"mongodb-database"        flagDesc:"MongoDB database for data"`
	MongoDBURL          string   `env:"MONGODB_URL"             flag:"mongodb-url"             flagDesc:"MongoDB server URL"`
	TokenizationAPIURL  string   `env:"TOKENIZATION_API_URL"    flag:"tokenization-api-url"    flagDesc:"Base URL for this service, used to build callback URLs"`
	PaypalEnv           string   `env:"PAYPAL_ENV"              flag:"paypal-env"              flagDesc:"PayPal environment to target - live or test"`
	PaypalClientID      string   `env:"PAYPAL_CLIENT_ID"        flag:"paypal-client-id"        flagDesc:"Client ID used to authenticate API calls with PayPal"`
	PaypalSecret        string   `env:"PAYPAL_SECRET"           flag:"paypal-secret"           flagDesc:"Secret used to authenticate API calls with PayPal"`
	GatewayURL          string   `env:"GATEWAY_URL"             flag:"gateway-url"             flagDesc:"URL used to tokenize approved PayPal accounts with the gateway"`
	GatewayBearerToken  string   `env:"GATEWAY_BEARER_TOKEN"    flag:"gateway-bearer-token"    flagDesc:"Bearer Token used to authenticate API calls with the gateway"`
	ReturnURLScheme     string   `env:"RETURN_URL_SCHEME"       flag:"return-url-scheme"       flagDesc:"URL scheme the browser switch is expected to return on"`
	DisableAuthSession  bool     `env:"DISABLE_AUTH_SESSION"    flag:"disable-auth-session"    flagDesc:"Disable the authentication session browser switch and fall back to the view strategy"`
	ExpiryTimeInMinutes string   `env:"EXPIRY_TIME_IN_MINUTES"  flag:"expiry-time-in-minutes"  flagDesc:"The amount of time in minutes before a tokenization session expires"`
	BrokerAddr          []string `env:"KAFKA_BROKER_ADDR"       flag:"broker-addr"             flagDesc:"Kafka broker address"`
	SchemaRegistryURL   string   `env:"SCHEMA_REGISTRY_URL"     flag:"schema-registry-url"     flagDesc:"Schema registry URL"`
}

// DefaultConfig returns a pointer to a Config instance that has been populated
// with default values.
func DefaultConfig() *Config {
	return &Config{
		Database:            "tokenizations",
		Collection:          "tokenizations",
		ReturnURLScheme:     "sdk.paypal-tokenization",
		ExpiryTimeInMinutes: "90",
	}
}

// Get returns a pointer to a Config instance that has been populated with
// values provided by the environment or command-line flags, or with default
// values if none are provided.
func Get() (*Config, error) {
	mtx.Lock()
	defer mtx.Unlock()

	if cfg != nil {
		return cfg, nil
	}

	cfg = DefaultConfig()

	err := gofigure.Gofigure(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
