package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ghandlers "github.com/gorilla/handlers"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"gitlab.com/gitlab-org/labkit/correlation"
	labmetrics "gitlab.com/gitlab-org/labkit/metrics"
	"golang.org/x/sync/errgroup"

	cfg "gitlab.com/remotefs/remotefs/internal/config"
	"gitlab.com/remotefs/remotefs/internal/customheaders"
	"gitlab.com/remotefs/remotefs/internal/dispatch"
	"gitlab.com/remotefs/remotefs/internal/handlers"
	"gitlab.com/remotefs/remotefs/internal/healthcheck"
	"gitlab.com/remotefs/remotefs/internal/logging"
	"gitlab.com/remotefs/remotefs/internal/netutil"
	"gitlab.com/remotefs/remotefs/internal/resolver"
	"gitlab.com/remotefs/remotefs/internal/router"
	"gitlab.com/remotefs/remotefs/internal/urilimiter"
	"gitlab.com/remotefs/remotefs/internal/vfs"
	"gitlab.com/remotefs/remotefs/internal/vfs/local"
)

// the factory registers its collectors, so it must only be created once
var metricsMiddleware = labmetrics.NewHandlerFactory(labmetrics.WithNamespace("remotefs"))

type theApp struct {
	config *cfg.Config
	root   string
	fs     vfs.FS
}

func newApp(config *cfg.Config, root string) *theApp {
	return &theApp{
		config: config,
		root:   root,
		fs:     vfs.Instrumented(local.VFS{}, local.VFS{}.Name()),
	}
}

// dispatcher serves the method table over the root
func (a *theApp) dispatcher() http.Handler {
	h := handlers.New(a.fs, resolver.New(a.root))

	return dispatch.New(h.Table(), h.NotAllowed)
}

// buildHandlerPipeline returns the handler every listener serves.
// Middlewares run in the order they are listed.
func (a *theApp) buildHandlerPipeline() (http.Handler, error) {
	accessLogger, err := logging.BasicAccessLogger(a.dispatcher(), a.config.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("configuring access logger: %w", err)
	}

	return router.New(
		// the access logger is the innermost handler so it sees the
		// correlation ID and the final status
		accessLogger,
		func(h http.Handler) http.Handler {
			return urilimiter.NewMiddleware(h, a.config.General.MaxURILength)
		},
		handlePanicMiddleware,
		func(h http.Handler) http.Handler {
			return correlation.InjectCorrelationID(h, correlation.WithPropagation(), correlation.WithSetResponseHeader())
		},
		func(h http.Handler) http.Handler {
			return metricsMiddleware(h)
		},
		func(h http.Handler) http.Handler {
			return healthcheck.NewMiddleware(h, a.config.General.StatusPath)
		},
		func(h http.Handler) http.Handler {
			return customheaders.NewMiddleware(h, a.config.General.CustomHeaders)
		},
		func(h http.Handler) http.Handler {
			return handlers.CorsHandler(a.config, h)
		},
		func(h http.Handler) http.Handler {
			return handlers.Ratelimiter(h, &a.config.RateLimit)
		},
	), nil
}

// handlePanicMiddleware turns a panicking request into a 500 without
// stopping the daemon
func handlePanicMiddleware(handler http.Handler) http.Handler {
	return ghandlers.RecoveryHandler(
		ghandlers.RecoveryLogger(log.StandardLogger()),
		ghandlers.PrintRecoveryStack(true),
	)(handler)
}

// Run serves every configured listener until ctx is done or one of them
// fails, then shuts all of them down
func (a *theApp) Run(ctx context.Context) error {
	handler, err := a.buildHandlerPipeline()
	if err != nil {
		return err
	}

	var limiter *netutil.Limiter
	if a.config.General.MaxConns > 0 {
		limiter = netutil.NewLimiter(a.config.General.MaxConns)
	}

	var servers []*http.Server

	listeners, err := a.createListeners(limiter)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	for _, l := range listeners {
		l := l

		h := handler
		if l.isProxyV2 {
			h = ghandlers.ProxyHeaders(h)
		}

		server := a.newServer(h)
		servers = append(servers, server)

		log.WithField("listener", l.addr).Info("Serving requests")

		g.Go(func() error {
			return serve(server, l.listener)
		})
	}

	if a.config.General.MetricsAddress != "" {
		server := &http.Server{Handler: promhttp.Handler()}
		servers = append(servers, server)

		l, err := net.Listen("tcp", a.config.General.MetricsAddress)
		if err != nil {
			closeAll(listeners)
			return fmt.Errorf("listening for metrics: %w", err)
		}

		log.WithField("listener", a.config.General.MetricsAddress).Info("Serving metrics")

		g.Go(func() error {
			return serve(server, l)
		})
	}

	g.Go(func() error {
		<-gctx.Done()

		return a.shutdown(servers)
	})

	return g.Wait()
}

func serve(server *http.Server, l net.Listener) error {
	if err := server.Serve(l); !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (a *theApp) shutdown(servers []*http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()

	log.Info("Shutting down servers")

	for _, server := range servers {
		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutting down server: %w", err)
		}
	}

	return nil
}

func runApp(config *cfg.Config, root string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newApp(config, root).Run(ctx)
}
