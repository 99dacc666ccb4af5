// Package upstream relays requests to the third-party user directory and the
// fruit image classifier. Responses are returned verbatim; no status is
// interpreted here.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/apiintegration/taskhub/internal/core/domain"
	"github.com/apiintegration/taskhub/internal/core/ports"
	"github.com/apiintegration/taskhub/internal/pkg/metrics"
)

const (
	upstreamDirectory  = "directory"
	upstreamClassifier = "classifier"

	maxBodyBytes = 10 << 20
)

// Config points the client at its upstreams.
type Config struct {
	DirectoryURL  string
	ClassifierURL string
	Timeout       time.Duration
}

// Client implements ports.UpstreamClient.
type Client struct {
	http          *http.Client
	directoryURL  string
	classifierURL string
	maxBody       int64
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		http:          &http.Client{Timeout: timeout},
		directoryURL:  cfg.DirectoryURL,
		classifierURL: strings.TrimRight(cfg.ClassifierURL, "/"),
		maxBody:       maxBodyBytes,
	}
}

type predictURLPayload struct {
	ImageURL string `json:"imageUrl"`
}

func (c *Client) ListUsers(ctx context.Context) (*ports.UpstreamResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.directoryURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build directory request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return c.do(upstreamDirectory, req)
}

func (c *Client) PredictURL(ctx context.Context, imageURL string) (*ports.UpstreamResponse, error) {
	body, err := json.Marshal(predictURLPayload{ImageURL: imageURL})
	if err != nil {
		return nil, fmt.Errorf("encode predict payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.classifierURL+"/predict/url", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build predict request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(upstreamClassifier, req)
}

func (c *Client) PredictUpload(ctx context.Context, filename string, file io.Reader) (*ports.UpstreamResponse, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("copy upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.classifierURL+"/predict/upload", &buf)
	if err != nil {
		return nil, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.do(upstreamClassifier, req)
}

func (c *Client) do(name string, req *http.Request) (*ports.UpstreamResponse, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.UpstreamRequestDuration.WithLabelValues(name, "error").Observe(time.Since(start).Seconds())
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrUpstreamUnavailable, name, err)
	}
	defer resp.Body.Close()

	// One extra byte tells an oversized body apart from one that fits exactly.
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	metrics.UpstreamRequestDuration.WithLabelValues(name, strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("%w: %s: read body: %v", domain.ErrUpstreamUnavailable, name, err)
	}
	if int64(len(body)) > c.maxBody {
		return nil, fmt.Errorf("%w: %s: response exceeds %d bytes", domain.ErrUpstreamUnavailable, name, c.maxBody)
	}

	return &ports.UpstreamResponse{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}
