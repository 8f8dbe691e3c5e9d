package config

import (
	"net/http"
	"testing"

	"github.com/namsral/flag"
	"github.com/stretchr/testify/require"
)

func setFlag(t *testing.T, p *string, value string) {
	t.Helper()

	old := *p
	*p = value
	t.Cleanup(func() { *p = old })
}

func setMultiStringFlag(t *testing.T, f *MultiStringFlag, values ...string) {
	t.Helper()

	old := f.value
	f.value = values
	t.Cleanup(func() { f.value = old })
}

func TestLoadConfigDefaults(t *testing.T) {
	setFlag(t, rootDir, t.TempDir())

	cfg, err := loadConfig()
	require.NoError(t, err)

	require.Equal(t, []string{defaultListenHTTP}, cfg.Listeners.HTTP)
	require.Empty(t, cfg.Listeners.Proxyv2)
	require.Equal(t, "json", cfg.Log.Format)
	require.Equal(t, 2048, cfg.General.MaxURILength)
	require.Zero(t, cfg.General.MaxConns)
	require.Zero(t, cfg.Server.WriteTimeout)
	require.Zero(t, cfg.RateLimit.SourceIPLimitPerSecond)
	require.Equal(t, 100, cfg.RateLimit.SourceIPBurst)
}

func TestLoadConfigListeners(t *testing.T) {
	setFlag(t, rootDir, t.TempDir())
	setMultiStringFlag(t, &listenProxyv2, "127.0.0.1:8443")

	cfg, err := loadConfig()
	require.NoError(t, err)

	require.Empty(t, cfg.Listeners.HTTP, "the default HTTP listener is only added when no listener is given")
	require.Equal(t, []string{"127.0.0.1:8443"}, cfg.Listeners.Proxyv2)
}

func TestLoadConfigHeaders(t *testing.T) {
	setFlag(t, rootDir, t.TempDir())
	setMultiStringFlag(t, &header, "X-Served-By: remotefs;;Cache-Control: no-store")

	cfg, err := loadConfig()
	require.NoError(t, err)
	require.Equal(t, http.Header{
		"X-Served-By":   []string{"remotefs"},
		"Cache-Control": []string{"no-store"},
	}, cfg.General.CustomHeaders)
}

func TestLoadConfigInvalidHeader(t *testing.T) {
	setFlag(t, rootDir, t.TempDir())
	setMultiStringFlag(t, &header, "no separator")

	_, err := loadConfig()
	require.Error(t, err)
}

func TestLoadConfigValidates(t *testing.T) {
	setFlag(t, rootDir, "")

	_, err := loadConfig()
	require.ErrorIs(t, err, ErrNoRootDir)
}

func TestListenFlags(t *testing.T) {
	var httpAddrs, proxyv2Addrs MultiStringFlag

	fs := flag.NewFlagSet("remotefs", flag.ContinueOnError)
	listenFlags(fs, &httpAddrs, &proxyv2Addrs)

	require.NoError(t, fs.Parse([]string{
		"-listen-http=127.0.0.1:8000,[::1]:8000",
		"-listen-proxyv2=127.0.0.1:8001",
	}))

	require.Equal(t, []string{"127.0.0.1:8000", "[::1]:8000"}, httpAddrs.Split())
	require.Equal(t, []string{"127.0.0.1:8001"}, proxyv2Addrs.Split())

	for _, name := range []string{"listen-http", "listen-proxyv2"} {
		usage := fs.Lookup(name).Usage
		require.Contains(t, usage, "TCP address")
		require.NotContains(t, usage, "unix")
	}
}
