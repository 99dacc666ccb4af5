package service

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/apiintegration/taskhub/internal/core/domain"
	"github.com/apiintegration/taskhub/internal/core/ports"
	"github.com/apiintegration/taskhub/internal/pkg/metrics"
)

// Gate validates bearer tokens and enforces role policies. Validation is a pure
// function of the token, the clock and the signing key held by the verifier.
type Gate struct {
	tokens ports.TokenVerifier
	log    zerolog.Logger
}

func NewGate(tokens ports.TokenVerifier, log zerolog.Logger) *Gate {
	return &Gate{tokens: tokens, log: log}
}

// Authenticate turns a presented token into an identity.
func (g *Gate) Authenticate(raw string) (*domain.Identity, error) {
	if raw == "" {
		metrics.AuthzDecisionsTotal.WithLabelValues("unauthenticated").Inc()
		return nil, domain.ErrUnauthenticated
	}

	id, err := g.tokens.Verify(raw)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTokenExpired):
			metrics.AuthzDecisionsTotal.WithLabelValues("token_expired").Inc()
		case errors.Is(err, domain.ErrInvalidToken):
			metrics.AuthzDecisionsTotal.WithLabelValues("invalid_token").Inc()
		default:
			g.log.Error().Err(err).Msg("token verification failed")
		}
		return nil, err
	}
	return id, nil
}

// Authorize admits id when its role satisfies policy.
func (g *Gate) Authorize(id *domain.Identity, policy domain.Policy) error {
	if id == nil {
		metrics.AuthzDecisionsTotal.WithLabelValues("unauthenticated").Inc()
		return domain.ErrUnauthenticated
	}
	if !policy.Allows(id.Role) {
		metrics.AuthzDecisionsTotal.WithLabelValues("forbidden").Inc()
		g.log.Debug().Int64("user_id", id.UserID).Str("role", string(id.Role)).Msg("role not permitted")
		return domain.ErrForbidden
	}
	metrics.AuthzDecisionsTotal.WithLabelValues("permitted").Inc()
	return nil
}
