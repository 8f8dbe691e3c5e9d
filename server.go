package main

import (
	"fmt"
	"net"
	"net/http"
	"time"

	proxyproto "github.com/pires/go-proxyproto"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"gitlab.com/remotefs/remotefs/internal/netutil"
)

type keepAliveListener struct {
	net.Listener
	period time.Duration
}

type keepAliveSetter interface {
	SetKeepAlive(bool) error
	SetKeepAlivePeriod(time.Duration) error
}

type listenerConfig struct {
	addr      string
	isProxyV2 bool
	listener  net.Listener
}

func (ln *keepAliveListener) Accept() (net.Conn, error) {
	conn, err := ln.Listener.Accept()
	if err != nil {
		return nil, err
	}

	if kc, ok := conn.(keepAliveSetter); ok && ln.period > 0 {
		kc.SetKeepAlive(true)
		kc.SetKeepAlivePeriod(ln.period)
	}

	return conn, nil
}

// createListeners binds every configured address. On failure the
// listeners bound so far are closed.
func (a *theApp) createListeners(limiter *netutil.Limiter) ([]listenerConfig, error) {
	var listeners []listenerConfig

	add := func(addr string, isProxyV2 bool) error {
		l, err := a.listen(addr, isProxyV2, limiter)
		if err != nil {
			return err
		}

		listeners = append(listeners, listenerConfig{addr: addr, isProxyV2: isProxyV2, listener: l})
		return nil
	}

	for _, addr := range a.config.Listeners.HTTP {
		if err := add(addr, false); err != nil {
			closeAll(listeners)
			return nil, err
		}
	}

	for _, addr := range a.config.Listeners.Proxyv2 {
		if err := add(addr, true); err != nil {
			closeAll(listeners)
			return nil, err
		}
	}

	return listeners, nil
}

func (a *theApp) listen(addr string, isProxyV2 bool, limiter *netutil.Limiter) (net.Listener, error) {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %q: %w", addr, err)
	}

	return wrapListener(l, isProxyV2, limiter, a.config.Server.KeepAlive), nil
}

func wrapListener(l net.Listener, isProxyV2 bool, limiter *netutil.Limiter, keepAlive time.Duration) net.Listener {
	if limiter != nil {
		l = netutil.SharedLimitListener(l, limiter)
	}

	l = &keepAliveListener{Listener: l, period: keepAlive}

	if isProxyV2 {
		l = &proxyproto.Listener{
			Listener: l,
			Policy: func(upstream net.Addr) (proxyproto.Policy, error) {
				return proxyproto.REQUIRE, nil
			},
		}
	}

	return l
}

func closeAll(listeners []listenerConfig) {
	for _, l := range listeners {
		l.listener.Close()
	}
}

func (a *theApp) newServer(handler http.Handler) *http.Server {
	if a.config.General.UseH2C {
		handler = h2c.NewHandler(handler, &http2.Server{})
	}

	return &http.Server{
		Handler:           handler,
		ReadTimeout:       a.config.Server.ReadTimeout,
		ReadHeaderTimeout: a.config.Server.ReadHeaderTimeout,
		WriteTimeout:      a.config.Server.WriteTimeout,
	}
}
