package endpoint

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/playgate/playgate/internal/utils"
)

// Prober checks whether a candidate URL is reachable. Extracted as an
// interface so resolver tests can count and stub probes.
type Prober interface {
	Reachable(ctx context.Context, url string) bool
}

// HTTPProber probes candidates with real network requests: a HEAD with a
// short timeout, retried once as GET when the HEAD is rejected before any
// response arrives. Redirects are not followed.
type HTTPProber struct {
	client  *http.Client
	timeout time.Duration
}

// NewHTTPProber builds a prober with the given per-probe timeout.
func NewHTTPProber(timeout time.Duration) *HTTPProber {
	return &HTTPProber{
		timeout: timeout,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
					return (&net.Dialer{
						Timeout:   timeout,
						KeepAlive: 0,
					}).DialContext(ctx, network, addr)
				},
				TLSHandshakeTimeout: timeout,
				TLSClientConfig: &tls.Config{
					MinVersion: tls.VersionTLS12,
				},
				DisableKeepAlives: true,
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Reachable reports whether the URL responded at all. Any response with a
// status below 500 counts: an upstream that rejects the request still
// exists, which is distinct from a network failure that produced no
// response.
func (p *HTTPProber) Reachable(ctx context.Context, url string) bool {
	if err := p.request(ctx, http.MethodHead, url); err == nil {
		return true
	}
	// Some upstreams drop HEAD at the edge before answering; retry once
	// with the method they definitely serve.
	return p.request(ctx, http.MethodGet, url) == nil
}

func (p *HTTPProber) request(ctx context.Context, method, url string) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create probe request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("probe failed: %w", err)
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("probe got server error: %d", resp.StatusCode)
	}
	return nil
}
