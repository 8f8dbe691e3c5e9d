package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	cfg "gitlab.com/remotefs/remotefs/internal/config"
	"gitlab.com/remotefs/remotefs/internal/errortracking"
	"gitlab.com/remotefs/remotefs/internal/logging"
	"gitlab.com/remotefs/remotefs/internal/mimetype"
	"gitlab.com/remotefs/remotefs/metrics"
)

// VERSION stores the information about the semantic version of application
var VERSION = "dev"

// REVISION stores the information about the git revision of application
var REVISION = "HEAD"

func main() {
	log.SetOutput(os.Stderr)

	metrics.MustRegister()

	appMain()
}

func appMain() {
	config, err := cfg.LoadConfig()
	if err != nil {
		log.WithError(err).Fatal("Failed to load config")
	}

	printVersion(config.General.ShowVersion, VERSION)

	if err := logging.ConfigureLogging(config.Log.Format, config.Log.Verbose); err != nil {
		log.WithError(err).Fatal("Failed to initialize logging")
	}

	log.WithFields(log.Fields{
		"version":  VERSION,
		"revision": REVISION,
	}).Print("remotefs daemon")

	if err := errortracking.Initialize(config.Sentry.DSN, config.Sentry.Environment, fmt.Sprintf("%s-%s", VERSION, REVISION)); err != nil {
		log.WithError(err).Warn("Failed to initialize errortracking")
	}

	if err := mimetype.LoadTypes(); err != nil {
		log.WithError(err).Warn("Loading MIME types failed, using the system defaults")
	}

	root, err := changeRoot(config.General.RootDir)
	if err != nil {
		fatal(err, "could not change directory into root-dir")
	}

	cfg.LogConfig(config)

	if err := runApp(config, root); err != nil {
		fatal(err, "could not run the daemon")
	}
}

// changeRoot makes dir the working directory and returns its absolute path.
// Requests are confined to that path for the lifetime of the process.
func changeRoot(dir string) (string, error) {
	if err := os.Chdir(dir); err != nil {
		return "", err
	}

	return os.Getwd()
}

func printVersion(showVersion bool, version string) {
	if showVersion {
		fmt.Fprintf(os.Stdout, "%s\n", version)
		os.Exit(0)
	}
}

func fatal(err error, message string) {
	errortracking.CaptureErrWithStackTrace(err)
	log.WithError(err).Fatal(message)
}
