package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/Belphemur/StudentService/internal/apperrors"
	"github.com/Belphemur/StudentService/internal/config"
)

// Transport issues JSON requests against a REST API.
// A nil out skips decoding; a body-less 2xx response leaves out untouched.
type Transport interface {
	Get(ctx context.Context, url string, out any) error
	Post(ctx context.Context, url string, body, out any) error
	Put(ctx context.Context, url string, body, out any) error
	Delete(ctx context.Context, url string, out any) error
}

// httpTransport implements Transport on top of net/http
type httpTransport struct {
	httpClient *http.Client
	userAgent  string
}

// NewTransport creates a JSON transport with proxy configuration if provided
func NewTransport(cfg *config.Config) Transport {
	logger := config.GetLogger()

	// No timeout unless configured
	var timeout time.Duration
	if cfg.ClientTimeout != "" {
		if parsedTimeout, err := time.ParseDuration(cfg.ClientTimeout); err != nil {
			logger.Warn().Err(err).Str("timeout", cfg.ClientTimeout).Msg("Invalid timeout duration, requests will not time out")
		} else {
			timeout = parsedTimeout
		}
	}

	// Clone DefaultTransport to preserve its pooling and HTTP/2 settings
	baseTransport := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.ProxyConnectionString != "" {
		proxyURL, err := url.Parse(cfg.ProxyConnectionString)
		if err != nil {
			logger.Warn().Err(err).Str("proxy", cfg.ProxyConnectionString).Msg("Invalid proxy URL, continuing without proxy")
		} else {
			baseTransport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = config.GetUserAgent()
	}

	return &httpTransport{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: newCompressionTransport(baseTransport),
		},
		userAgent: userAgent,
	}
}

func (t *httpTransport) Get(ctx context.Context, url string, out any) error {
	return t.do(ctx, http.MethodGet, url, nil, out)
}

func (t *httpTransport) Post(ctx context.Context, url string, body, out any) error {
	return t.do(ctx, http.MethodPost, url, body, out)
}

func (t *httpTransport) Put(ctx context.Context, url string, body, out any) error {
	return t.do(ctx, http.MethodPut, url, body, out)
}

func (t *httpTransport) Delete(ctx context.Context, url string, out any) error {
	return t.do(ctx, http.MethodDelete, url, nil, out)
}

func (t *httpTransport) do(ctx context.Context, method, endpoint string, body, out any) error {
	logger := config.GetLogger()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("User-Agent", t.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if method != http.MethodGet {
		req.Header.Set("Content-Type", "application/json")
	}

	logger.Debug().
		Str("method", method).
		Str("url", endpoint).
		Str("requestID", requestID).
		Msg("Sending request")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http failure response for %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return apperrors.NewHTTPStatusError(method, endpoint, resp.StatusCode, resp.Status)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &apperrors.ErrDecode{URL: endpoint, Err: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &apperrors.ErrDecode{URL: endpoint, Err: err}
	}

	logger.Debug().
		Str("method", method).
		Str("url", endpoint).
		Int("status", resp.StatusCode).
		Int("size", len(data)).
		Msg("Received response")

	return nil
}
