package gemini

import (
	"net"
	"net/http"
	"net/url"

	"nanobanana-go/internal/config"
	"nanobanana-go/internal/constants"
)

// NewHTTPClient builds the outbound client. It sets no overall timeout: the
// dispatcher bounds each attempt with its own context deadline.
func NewHTTPClient(cfg *config.Config) *http.Client {
	tr := &http.Transport{
		Proxy: getProxyFunc(cfg.ProxyURL),
		DialContext: (&net.Dialer{
			Timeout:   cfg.DialTimeout(),
			KeepAlive: constants.BaseKeepAlive,
		}).DialContext,
		TLSHandshakeTimeout: cfg.TLSHandshakeTimeout(),
		MaxIdleConns:        constants.BaseMaxIdleConns,
		MaxIdleConnsPerHost: constants.BaseMaxIdleConnsPerHost,
		IdleConnTimeout:     constants.BaseIdleConnTimeout,
		ForceAttemptHTTP2:   true,
	}
	return &http.Client{Transport: tr, Timeout: 0}
}

// getProxyFunc returns the configured proxy, falling back to the environment.
func getProxyFunc(proxyURL string) func(*http.Request) (*url.URL, error) {
	if proxyURL != "" {
		if parsedURL, err := url.Parse(proxyURL); err == nil {
			return http.ProxyURL(parsedURL)
		}
	}
	return http.ProxyFromEnvironment
}
