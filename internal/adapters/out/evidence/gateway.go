// Package evidence uploads stage evidence files to the object store gateway.
package evidence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const maxErrorBody = 4 << 10

// Gateway PUTs the file to <baseURL>/<key>. The gateway answers with a JSON
// body {"ref": "..."}; when it answers without one the object URL is used as
// the reference.
type Gateway struct {
	baseURL *url.URL
	client  *http.Client
}

func NewGateway(baseURL string, client *http.Client) (*Gateway, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse evidence gateway url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("evidence gateway url %q must be http or https", baseURL)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Gateway{baseURL: u, client: client}, nil
}

// NewHTTPClient returns a client whose requests open client spans under tp
// and carry the caller's trace context to the gateway.
func NewHTTPClient(timeout time.Duration, tp trace.TracerProvider) *http.Client {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &http.Client{
		Timeout: timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport,
			otelhttp.WithTracerProvider(tp),
			otelhttp.WithPropagators(otel.GetTextMapPropagator()),
		),
	}
}

type putResponse struct {
	Ref string `json:"ref"`
}

func (g *Gateway) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", errors.New("evidence key is empty")
	}
	target := g.baseURL.JoinPath(strings.Split(key, "/")...)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target.String(), body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", fmt.Errorf("evidence gateway returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out putResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("decode evidence gateway response: %w", err)
	}
	if out.Ref != "" {
		return out.Ref, nil
	}
	return target.String(), nil
}
