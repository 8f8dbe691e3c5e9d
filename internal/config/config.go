package config

import (
	"fmt"
	"net/http"
	"time"

	"github.com/namsral/flag"
	log "github.com/sirupsen/logrus"

	"gitlab.com/remotefs/remotefs/internal/customheaders"
)

const defaultListenHTTP = ":8000"

// Config stores all the config options relevant to the remotefs daemon.
type Config struct {
	General   General
	Listeners Listeners
	Log       Log
	Sentry    Sentry
	Server    Server
	RateLimit RateLimit
}

// General groups settings that are general to the daemon and can not
// be categorized under other head.
type General struct {
	// RootDir is the directory the daemon changes into at startup. The
	// working directory afterwards is the root every request is confined to.
	RootDir        string
	StatusPath     string
	MetricsAddress string
	MaxConns       int
	MaxURILength   int
	UseH2C         bool

	DisableCrossOriginRequests bool

	ShowVersion bool

	CustomHeaders http.Header
}

// Listeners groups the raw addresses passed to the listen flags
type Listeners struct {
	HTTP    []string
	Proxyv2 []string
}

// Log groups settings related to configuring logging
type Log struct {
	Format  string
	Verbose bool
}

// Sentry groups settings related to configuring Sentry
type Sentry struct {
	DSN         string
	Environment string
}

// Server groups the HTTP server timeouts
type Server struct {
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	KeepAlive         time.Duration
	ShutdownTimeout   time.Duration
}

// RateLimit config struct
type RateLimit struct {
	// SourceIPLimitPerSecond is the limit per second for rate limiting
	// requests by source IP, 0 disables the limiter
	SourceIPLimitPerSecond float64
	// SourceIPBurst is the maximum burst allowed per source IP
	SourceIPBurst int
}

func loadConfig() (*Config, error) {
	customHeaders, err := customheaders.Parse(header.Split())
	if err != nil {
		return nil, fmt.Errorf("unable to parse header string: %w", err)
	}

	config := &Config{
		General: General{
			RootDir:                    *rootDir,
			StatusPath:                 *statusPath,
			MetricsAddress:             *metricsAddress,
			MaxConns:                   *maxConns,
			MaxURILength:               *maxURILength,
			UseH2C:                     *useH2C,
			DisableCrossOriginRequests: *disableCrossOriginRequests,
			ShowVersion:                *showVersion,
			CustomHeaders:              customHeaders,
		},
		Listeners: Listeners{
			HTTP:    listenHTTP.Split(),
			Proxyv2: listenProxyv2.Split(),
		},
		Log: Log{
			Format:  *logFormat,
			Verbose: *logVerbose,
		},
		Sentry: Sentry{
			DSN:         *sentryDSN,
			Environment: *sentryEnvironment,
		},
		Server: Server{
			ReadTimeout:       *serverReadTimeout,
			ReadHeaderTimeout: *serverReadHeaderTimeout,
			WriteTimeout:      *serverWriteTimeout,
			KeepAlive:         *serverKeepAlive,
			ShutdownTimeout:   *serverShutdownTimeout,
		},
		RateLimit: RateLimit{
			SourceIPLimitPerSecond: *rateLimitSourceIP,
			SourceIPBurst:          *rateLimitSourceIPBurst,
		},
	}

	if len(config.Listeners.HTTP) == 0 && len(config.Listeners.Proxyv2) == 0 {
		config.Listeners.HTTP = []string{defaultListenHTTP}
	}

	// -version short-circuits startup, the rest does not need to be valid
	if config.General.ShowVersion {
		return config, nil
	}

	if err := Validate(config); err != nil {
		return nil, err
	}

	return config, nil
}

// LogConfig logs the effective configuration at debug level
func LogConfig(config *Config) {
	log.WithFields(log.Fields{
		"default-config-filename":       flag.DefaultConfigFlagname,
		"disable-cross-origin-requests": config.General.DisableCrossOriginRequests,
		"listen-http":                   config.Listeners.HTTP,
		"listen-proxyv2":                config.Listeners.Proxyv2,
		"log-format":                    config.Log.Format,
		"log-verbose":                   config.Log.Verbose,
		"max-conns":                     config.General.MaxConns,
		"max-uri-length":                config.General.MaxURILength,
		"metrics-address":               config.General.MetricsAddress,
		"rate-limit-source-ip":          config.RateLimit.SourceIPLimitPerSecond,
		"rate-limit-source-ip-burst":    config.RateLimit.SourceIPBurst,
		"root-dir":                      config.General.RootDir,
		"server-read-timeout":           config.Server.ReadTimeout,
		"server-read-header-timeout":    config.Server.ReadHeaderTimeout,
		"server-write-timeout":          config.Server.WriteTimeout,
		"server-keep-alive":             config.Server.KeepAlive,
		"server-shutdown-timeout":       config.Server.ShutdownTimeout,
		"status-path":                   config.General.StatusPath,
		"use-h2c":                       config.General.UseH2C,
	}).Debug("Start daemon with configuration")
}

// LoadConfig parses configuration settings passed as command line arguments or
// via config file, and populates a Config object with those values
func LoadConfig() (*Config, error) {
	initFlags()

	return loadConfig()
}
