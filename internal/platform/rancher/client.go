package rancher

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-logr/logr"
)

// Options configures a Client.
type Options struct {
	Host     string
	Username string
	Password string

	// Insecure disables TLS certificate verification.
	Insecure bool

	// CACertFile is an optional PEM bundle trusted in addition to the system pool.
	CACertFile string

	// Timeout bounds a whole request. Zero means no client-side limit.
	Timeout time.Duration
}

// Client talks to the Rancher v3 API.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
}

// NewClient creates a Client for the given options.
func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.Host) == "" {
		return nil, errors.New("rancher host is required")
	}

	tlsCfg, err := tlsConfig(opts)
	if err != nil {
		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = tlsCfg

	return &Client{
		baseURL:  BaseURL(opts.Host),
		username: opts.Username,
		password: opts.Password,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   opts.Timeout,
		},
	}, nil
}

// BaseURL turns a configured host into the API base URL.
// A bare host name is served over https.
func BaseURL(host string) string {
	host = strings.TrimRight(strings.TrimSpace(host), "/")
	if strings.HasPrefix(host, "https://") || strings.HasPrefix(host, "http://") {
		return host
	}
	return "https://" + host
}

func tlsConfig(opts Options) (*tls.Config, error) {
	cfg := &tls.Config{
		MinVersion: tls.VersionTLS12,
		// #nosec G402 -- only when the caller passes --insecure
		InsecureSkipVerify: opts.Insecure,
	}

	if opts.CACertFile == "" {
		return cfg, nil
	}

	// #nosec G304
	pem, err := os.ReadFile(opts.CACertFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA bundle: %w", err)
	}

	pool, err := x509.SystemCertPool()
	if err != nil || pool == nil {
		pool = x509.NewCertPool()
	}
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("no certificates found in %s", opts.CACertFile)
	}
	cfg.RootCAs = pool

	return cfg, nil
}

// URL builds an absolute v3 URL for path with an optional query.
func (c *Client) URL(path string, query url.Values) string {
	u := c.baseURL + "/v3/" + strings.TrimPrefix(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// Do sends a single request to rawURL. A non-nil body is encoded as JSON.
// The response is returned even when the status is not 2xx; the error is
// then an *APIError.
func (c *Client) Do(ctx context.Context, method, rawURL string, body any) (*Response, error) {
	log := logr.FromContextOrDiscard(ctx)

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, rawURL, reader)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		recordAPICall(method, resultError, time.Since(start))
		return nil, fmt.Errorf("%s %s: %w", method, rawURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		recordAPICall(method, resultError, time.Since(start))
		return nil, fmt.Errorf("read response: %w", err)
	}

	out := &Response{
		StatusCode: resp.StatusCode,
		Reason:     reasonPhrase(resp),
		Body:       data,
	}
	log.V(1).Info("rancher api call", "method", method, "url", rawURL, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		recordAPICall(method, resultFailure, time.Since(start))
		return out, newAPIError(out)
	}

	recordAPICall(method, resultSuccess, time.Since(start))
	return out, nil
}

func (c *Client) newRequest(ctx context.Context, method, rawURL string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// reasonPhrase extracts the status text ("OK", "Created") from a response.
func reasonPhrase(resp *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason == "" {
		reason = http.StatusText(resp.StatusCode)
	}
	return reason
}
