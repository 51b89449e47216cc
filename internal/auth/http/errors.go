package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/gatekeeper/internal/auth/metrics"
	"github.com/aussiebroadwan/gatekeeper/internal/auth/service"
	"github.com/aussiebroadwan/gatekeeper/pkg/authsdk"
	"github.com/aussiebroadwan/gatekeeper/pkg/slogx"
)

// writeServiceError maps a service error onto the API error body. Anything
// that is not a known auth outcome is logged and reported as a server error.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var challenge string
	var ce *service.ChallengeError
	if errors.As(err, &ce) {
		challenge = ce.Header()
	}

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		authsdk.ErrIncorrectCredentials.WriteError(w)
	case errors.Is(err, service.ErrUnauthorized):
		if ce != nil && ce.Scheme == service.SchemeBasic {
			authsdk.ErrBasicUnauthorized.WithChallenge(challenge).WriteError(w)
			return
		}
		if challenge == "" {
			challenge = service.SchemeBearer
		}
		authsdk.ErrInvalidToken.WithChallenge(challenge).WriteError(w)
	case errors.Is(err, service.ErrForbidden):
		authsdk.ErrInsufficientScope.WithChallenge(challenge).WriteError(w)
	case errors.Is(err, service.ErrInactiveAccount):
		authsdk.ErrInactiveAccount.WriteError(w)
	case errors.Is(err, service.ErrInvalidScope):
		authsdk.ErrInvalidScope.WriteError(w)
	case service.IsConfigError(err):
		slogx.FromContext(r.Context()).Error("role configuration does not match directory", "error", err)
		authsdk.ErrServerError.WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("request failed", "error", err)
		authsdk.ErrServerError.WriteError(w)
	}
}

// outcomeOf buckets err for the auth_attempts_total metric.
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, service.ErrInvalidCredentials):
		return metrics.OutcomeInvalidCredentials
	case errors.Is(err, service.ErrUnauthorized):
		return metrics.OutcomeUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return metrics.OutcomeForbidden
	case errors.Is(err, service.ErrInactiveAccount):
		return metrics.OutcomeInactive
	case errors.Is(err, service.ErrInvalidScope):
		return metrics.OutcomeInvalidScope
	default:
		return metrics.OutcomeError
	}
}
