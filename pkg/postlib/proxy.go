package postlib

import (
	"errors"
	"net/http"
	"net/url"

	"golang.org/x/net/proxy"
)

var (
	ErrUnsupportedScheme = errors.New("unsupported proxy scheme")
	ErrInvalidProxyURL   = errors.New("invalid proxy URL")
)

var supportedProxySchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"socks5": true,
}

// NewHTTPClient creates the HTTP client used for media fetches and API
// calls. If proxyURL is empty, proxy settings are taken from the
// environment; otherwise proxyURL must be an http, https or socks5 URL.
func NewHTTPClient(proxyURL string) (*http.Client, error) {
	if proxyURL == "" {
		return &http.Client{
			Transport: &http.Transport{Proxy: http.ProxyFromEnvironment},
		}, nil
	}

	parsed, err := url.Parse(proxyURL)
	if err != nil {
		return nil, ErrInvalidProxyURL
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, ErrInvalidProxyURL
	}
	if !supportedProxySchemes[parsed.Scheme] {
		return nil, ErrUnsupportedScheme
	}

	transport := &http.Transport{}
	if parsed.Scheme == "socks5" {
		var auth *proxy.Auth
		if parsed.User != nil {
			pass, _ := parsed.User.Password()
			auth = &proxy.Auth{
				User:     parsed.User.Username(),
				Password: pass,
			}
		}
		dialer, err := proxy.SOCKS5("tcp", parsed.Host, auth, proxy.Direct)
		if err != nil {
			return nil, err
		}
		transport.Dial = dialer.Dial
	} else {
		transport.Proxy = http.ProxyURL(parsed)
	}

	return &http.Client{Transport: transport}, nil
}
