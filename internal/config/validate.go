package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
)

var (
	ErrNoListener            = errors.New("no listener defined, please specify at least one --listen-* flag")
	ErrEmptyListener         = errors.New("listener address cannot be empty")
	ErrNoRootDir             = errors.New("root-dir must be defined")
	ErrRootDirNotDirectory   = errors.New("root-dir must be a directory")
	ErrInvalidStatusPath     = errors.New("status-path must start with /")
	ErrInvalidLogFormat      = errors.New("log-format must be one of 'json', 'text' or 'combined'")
	ErrNegativeMaxConns      = errors.New("max-conns must be greater than or equal to 0")
	ErrNegativeMaxURILength  = errors.New("max-uri-length must be greater than or equal to 0")
	ErrNegativeRateLimit     = errors.New("rate-limit-source-ip must be greater than or equal to 0")
	ErrInvalidRateLimitBurst = errors.New("rate-limit-source-ip-burst must be greater than 0 when rate limiting is enabled")
)

var logFormats = map[string]bool{
	"json":     true,
	"text":     true,
	"combined": true,
}

// Validate returns every problem found in config at once
func Validate(config *Config) error {
	var result *multierror.Error

	result = multierror.Append(result, validateListeners(config)...)
	result = multierror.Append(result, validateGeneral(config)...)
	result = multierror.Append(result, validateRateLimit(config)...)

	if !logFormats[config.Log.Format] {
		result = multierror.Append(result, ErrInvalidLogFormat)
	}

	return result.ErrorOrNil()
}

func validateListeners(config *Config) []error {
	if len(config.Listeners.HTTP) == 0 && len(config.Listeners.Proxyv2) == 0 {
		return []error{ErrNoListener}
	}

	var errs []error

	for _, addr := range append(config.Listeners.HTTP, config.Listeners.Proxyv2...) {
		if strings.TrimSpace(addr) == "" {
			errs = append(errs, ErrEmptyListener)
		}
	}

	return errs
}

func validateGeneral(config *Config) []error {
	var errs []error

	if config.General.RootDir == "" {
		errs = append(errs, ErrNoRootDir)
	} else if fi, err := os.Stat(config.General.RootDir); err != nil {
		errs = append(errs, fmt.Errorf("root-dir: %w", err))
	} else if !fi.IsDir() {
		errs = append(errs, ErrRootDirNotDirectory)
	}

	if config.General.StatusPath != "" && !strings.HasPrefix(config.General.StatusPath, "/") {
		errs = append(errs, ErrInvalidStatusPath)
	}

	if config.General.MaxConns < 0 {
		errs = append(errs, ErrNegativeMaxConns)
	}

	if config.General.MaxURILength < 0 {
		errs = append(errs, ErrNegativeMaxURILength)
	}

	return errs
}

func validateRateLimit(config *Config) []error {
	var errs []error

	if config.RateLimit.SourceIPLimitPerSecond < 0 {
		errs = append(errs, ErrNegativeRateLimit)
	}

	if config.RateLimit.SourceIPLimitPerSecond > 0 && config.RateLimit.SourceIPBurst < 1 {
		errs = append(errs, ErrInvalidRateLimitBurst)
	}

	return errs
}
