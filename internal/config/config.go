package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration structure. It contains
// settings for the environment, HTTP server, upstream search API, page
// fetching, pricing rules, API authentication and graceful shutdown behavior.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// HTTP contains all HTTP server related configurations
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:":8080" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"2m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout is the maximum time allowed for processing a single request
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"30s" yaml:"requestTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
	} `yaml:"http"`

	// Search configures the upstream product search API (Serper).
	Search struct {
		// APIKey authenticates requests against the Serper API.
		APIKey string `env:"SEARCH_API_KEY" env-default:"" yaml:"apiKey"`
		// BaseURL is the search endpoint. Override for testing.
		BaseURL string `env:"SEARCH_BASE_URL" env-default:"https://google.serper.dev/search" yaml:"baseURL"`
		// Timeout bounds a single search request.
		Timeout time.Duration `env:"SEARCH_TIMEOUT" env-default:"30s" yaml:"timeout"`
		// MaxResults is the number of organic results requested per query.
		MaxResults int `env:"SEARCH_MAX_RESULTS" env-default:"10" yaml:"maxResults"`
		// Country is the localization code passed to the search API.
		Country string `env:"SEARCH_COUNTRY" env-default:"us" yaml:"country"`
	} `yaml:"search"`

	// Fetch configures product page scraping.
	Fetch struct {
		// MaxConcurrency bounds how many source pages are fetched in parallel.
		MaxConcurrency int `env:"FETCH_MAX_CONCURRENCY" env-default:"5" yaml:"maxConcurrency"`
		// Timeout bounds a single page fetch.
		Timeout time.Duration `env:"FETCH_TIMEOUT" env-default:"20s" yaml:"timeout"`
		// UserAgent is sent with every page request.
		UserAgent string `env:"FETCH_USER_AGENT" env-default:"pricelens/1.0 (+https://github.com/pricelens)" yaml:"userAgent"`
	} `yaml:"fetch"`

	// Pricing configures record validation limits.
	Pricing struct {
		// MaxValidPrice is the hard upper bound; records above it are rejected as implausible.
		MaxValidPrice float64 `env:"PRICING_MAX_VALID_PRICE" env-default:"1000000" yaml:"maxValidPrice"`
		// WarnPrice is the softer threshold above which the diagnostic validator warns.
		WarnPrice float64 `env:"PRICING_WARN_PRICE" env-default:"100000" yaml:"warnPrice"`
	} `yaml:"pricing"`

	// JWT holds the RS256 key pair used for API authentication. When PublicKey
	// is empty, bearer-token verification is disabled (development mode).
	JWT struct {
		// PublicKey is the PEM-encoded RSA public key used to verify tokens.
		PublicKey string `env:"JWT_PUBLIC_KEY" env-default:"" yaml:"publicKey"`
		// PrivateKey is the PEM-encoded RSA private key used by the jwt command to mint tokens.
		PrivateKey string `env:"JWT_PRIVATE_KEY" env-default:"" yaml:"privateKey"`
	} `yaml:"jwt"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load receives the path for yaml config file and returns a filled Config struct.
func Load(configPath string) (*Config, error) {
	var cfg Config
	err := cleanenv.ReadConfig(configPath, &cfg)
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	return &cfg, nil
}
