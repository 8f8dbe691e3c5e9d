package config

import (
	"time"

	"github.com/namsral/flag"
)

var (
	rootDir    = flag.String("root-dir", ".", "The directory exposed to clients, the daemon changes into it at startup")
	statusPath = flag.String("status-path", "", "The url path for a health check page, e.g., /-/healthcheck")

	// HTTP rate limits
	rateLimitSourceIP      = flag.Float64("rate-limit-source-ip", 0.0, "Rate limit HTTP requests per second from a single IP, 0 means is disabled")
	rateLimitSourceIPBurst = flag.Int("rate-limit-source-ip-burst", 100, "Rate limit HTTP requests from a single IP, maximum burst allowed per second")

	metricsAddress    = flag.String("metrics-address", "", "The address to listen on for metrics requests")
	sentryDSN         = flag.String("sentry-dsn", "", "The address for sending sentry crash reporting to")
	sentryEnvironment = flag.String("sentry-environment", "", "The environment for sentry crash reporting")
	logFormat         = flag.String("log-format", "json", "The log output format: 'text', 'json' or 'combined'")
	logVerbose        = flag.Bool("log-verbose", false, "Verbose logging")

	maxConns     = flag.Int("max-conns", 0, "Limit on the number of concurrent connections to the HTTP or proxy listeners, 0 for no limit")
	maxURILength = flag.Int("max-uri-length", 2048, "Limit the length of URI, 0 for unlimited.")
	useH2C       = flag.Bool("use-h2c", false, "Accept HTTP/2 requests over cleartext connections")

	// HTTP server timeouts
	serverReadTimeout       = flag.Duration("server-read-timeout", 0, "ReadTimeout is the maximum duration for reading the entire request, including the body. A zero or negative value means there will be no timeout.")
	serverReadHeaderTimeout = flag.Duration("server-read-header-timeout", 5*time.Second, "ReadHeaderTimeout is the amount of time allowed to read request headers. A zero or negative value means there will be no timeout.")
	serverWriteTimeout      = flag.Duration("server-write-timeout", 0, "WriteTimeout is the maximum duration before timing out writes of the response. A zero or negative value means there will be no timeout.")
	serverKeepAlive         = flag.Duration("server-keep-alive", 15*time.Second, "KeepAlive specifies the keep-alive period for network connections accepted by this listener. If zero, keep-alives are enabled if supported by the protocol and operating system. If negative, keep-alives are disabled.")
	serverShutdownTimeout   = flag.Duration("server-shutdown-timeout", 30*time.Second, "Server shutdown timeout (default: 30s)")

	disableCrossOriginRequests = flag.Bool("disable-cross-origin-requests", false, "Disable cross-origin requests")

	showVersion = flag.Bool("version", false, "Show version")

	// See initFlags()
	listenHTTP    = MultiStringFlag{separator: ","}
	listenProxyv2 = MultiStringFlag{separator: ","}

	header = MultiStringFlag{separator: ";;"}
)

// initFlags will be called from LoadConfig
func initFlags() {
	listenFlags(flag.CommandLine, &listenHTTP, &listenProxyv2)
	flag.Var(&header, "header", "The additional http header(s) that should be send to the client")

	// read from -config=/path/to/remotefs-config
	flag.String(flag.DefaultConfigFlagname, "", "path to config file")

	flag.Parse()
}

// listenFlags registers the listener address flags on fs. Only TCP
// addresses are supported.
func listenFlags(fs *flag.FlagSet, http, proxyv2 *MultiStringFlag) {
	fs.Var(http, "listen-http", "The TCP address(es) to listen on for HTTP requests (default \":8000\")")
	fs.Var(proxyv2, "listen-proxyv2", "The TCP address(es) to listen on for PROXYv2 requests (https://www.haproxy.org/download/1.8/doc/proxy-protocol.txt)")
}
