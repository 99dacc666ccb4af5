package ports

import (
	"context"
	"io"
	"time"
)

// UpstreamResponse is a relayed third-party response.
type UpstreamResponse struct {
	StatusCode  int    `json:"status_code"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// UpstreamClient talks to the user directory and the image classifier.
type UpstreamClient interface {
	ListUsers(ctx context.Context) (*UpstreamResponse, error)
	PredictURL(ctx context.Context, imageURL string) (*UpstreamResponse, error)
	PredictUpload(ctx context.Context, filename string, file io.Reader) (*UpstreamResponse, error)
}

// ResponseCache stores relayed responses by key.
type ResponseCache interface {
	Get(ctx context.Context, key string) (*UpstreamResponse, bool, error)
	Set(ctx context.Context, key string, resp *UpstreamResponse, ttl time.Duration) error
}

// ProxyService relays calls to the third-party services.
type ProxyService interface {
	ListUsers(ctx context.Context) (*UpstreamResponse, error)
	PredictURL(ctx context.Context, imageURL string) (*UpstreamResponse, error)
	PredictUpload(ctx context.Context, filename string, file io.Reader) (*UpstreamResponse, error)
}
