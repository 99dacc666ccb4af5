package service

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/apiintegration/taskhub/internal/core/ports"
	"github.com/apiintegration/taskhub/internal/pkg/metrics"
)

const directoryCacheKey = "upstream:directory:users"

type proxyService struct {
	upstream ports.UpstreamClient
	cache    ports.ResponseCache
	cacheTTL time.Duration
	log      zerolog.Logger
}

// NewProxyService relays upstream calls. Successful directory listings are
// cached for cacheTTL; a nil cache or non-positive TTL disables caching.
func NewProxyService(upstream ports.UpstreamClient, cache ports.ResponseCache, cacheTTL time.Duration, log zerolog.Logger) ports.ProxyService {
	return &proxyService{upstream: upstream, cache: cache, cacheTTL: cacheTTL, log: log}
}

func (s *proxyService) ListUsers(ctx context.Context) (*ports.UpstreamResponse, error) {
	caching := s.cache != nil && s.cacheTTL > 0

	if caching {
		cached, ok, err := s.cache.Get(ctx, directoryCacheKey)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Msg("directory cache read failed, calling upstream")
		case ok:
			metrics.UpstreamCacheTotal.WithLabelValues("hit").Inc()
			return cached, nil
		default:
			metrics.UpstreamCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	resp, err := s.upstream.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	if caching && resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if err := s.cache.Set(ctx, directoryCacheKey, resp, s.cacheTTL); err != nil {
			s.log.Warn().Err(err).Msg("directory cache write failed")
		}
	}
	return resp, nil
}

func (s *proxyService) PredictURL(ctx context.Context, imageURL string) (*ports.UpstreamResponse, error) {
	return s.upstream.PredictURL(ctx, imageURL)
}

func (s *proxyService) PredictUpload(ctx context.Context, filename string, file io.Reader) (*ports.UpstreamResponse, error) {
	return s.upstream.PredictUpload(ctx, filename, file)
}
