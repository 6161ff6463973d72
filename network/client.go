// Package network provides a pre-configured HTTP client shared by the remote feed and version checks.
package network

import (
	"net/http"
	"time"

	"github.com/wemanga/wemanga/constant"
)

// Client is the singleton HTTP client shared across the application.
// Per-request deadlines come from the caller's context; the client timeout is only a backstop.
var Client = &http.Client{
	Timeout:   time.Minute,
	Transport: &userAgentTransport{base: newTransport()},
}

// newTransport initializes a tuned http.Transport with modest pool and timeout parameters.
func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 20
	t.MaxIdleConnsPerHost = 4
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 10 * time.Second
	t.ExpectContinueTimeout = 1 * time.Second
	return t
}

// userAgentTransport stamps outgoing requests with the application User-Agent unless one is already set.
type userAgentTransport struct {
	base http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", constant.UserAgent)
	}
	return t.base.RoundTrip(req)
}
