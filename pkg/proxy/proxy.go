// Package proxy forwards browser requests under /api/auth and /api/proxy to
// the backend origin.
package proxy

import (
	"fmt"
	"net"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/skillbridge-web/pkg/response"
)

const (
	authFailure = "Failed to connect to auth server"
	apiFailure  = "Failed to connect to API server"
)

// FailureObserver counts requests that never reached the backend.
type FailureObserver interface {
	ObserveProxyFailure(target string)
}

// Config configures both proxies.
type Config struct {
	BackendURL string
	Timeout    time.Duration
	Logger     *zap.Logger
	Observer   FailureObserver
	Transport  http.RoundTripper
}

type kind struct {
	name       string
	failure    string
	rewrite    func(path string) string
	relayCooks bool
}

var (
	authKind = kind{
		name:       "auth",
		failure:    authFailure,
		rewrite:    func(p string) string { return p },
		relayCooks: true,
	}
	apiKind = kind{
		name:    "api",
		failure: apiFailure,
		rewrite: func(p string) string { return strings.Replace(p, "/api/proxy", "/api", 1) },
	}
)

// NewAuth returns the handler for /api/auth/*. The path is forwarded
// unchanged and Set-Cookie headers are relayed through RewriteSetCookie.
func NewAuth(cfg Config) (http.Handler, error) {
	return build(cfg, authKind)
}

// NewAPI returns the handler for /api/proxy/*, mapped onto /api/*.
func NewAPI(cfg Config) (http.Handler, error) {
	return build(cfg, apiKind)
}

func build(cfg Config, k kind) (http.Handler, error) {
	target, err := url.Parse(cfg.BackendURL)
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("backend url %q must be absolute", cfg.BackendURL)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	transport := cfg.Transport
	if transport == nil {
		transport = defaultTransport(cfg.Timeout)
	}

	rp := &httputil.ReverseProxy{
		Transport: transport,
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.Out.URL.Scheme = target.Scheme
			pr.Out.URL.Host = target.Host
			pr.Out.URL.Path = k.rewrite(pr.In.URL.Path)
			pr.Out.URL.RawPath = ""
			pr.Out.URL.RawQuery = pr.In.URL.RawQuery
			pr.Out.Host = ""

			// let the transport negotiate and decode compression
			pr.Out.Header.Del("Accept-Encoding")

			if pr.In.Method == http.MethodGet || pr.In.Method == http.MethodHead {
				pr.Out.Body = http.NoBody
				pr.Out.ContentLength = 0
				pr.Out.Header.Del("Content-Length")
			}
		},
		ModifyResponse: func(resp *http.Response) error {
			contentType := resp.Header.Get("Content-Type")
			cookies := resp.Header.Values("Set-Cookie")

			clean := make(http.Header)
			if contentType != "" {
				clean.Set("Content-Type", contentType)
			}
			if k.relayCooks {
				for _, c := range RewriteSetCookies(cookies) {
					clean.Add("Set-Cookie", c)
				}
				logger.Debug("auth proxy response",
					zap.Int("status", resp.StatusCode),
					zap.Int("set_cookie_count", len(cookies)),
				)
			}
			resp.Header = clean
			return nil
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logger.Error("proxy request failed",
				zap.String("proxy", k.name),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Error(err),
			)
			if cfg.Observer != nil {
				cfg.Observer.ObserveProxyFailure(k.name)
			}
			response.ProxyError(w, k.failure)
		},
	}
	return rp, nil
}

func defaultTransport(timeout time.Duration) http.RoundTripper {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		ResponseHeaderTimeout: timeout,
	}
}
