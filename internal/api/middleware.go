package api

import (
	"net/http"
	"strings"
)

// capability is the access level a route requires. Callers present an opaque
// bearer credential; the admin token also satisfies the user level.
type capability int

const (
	capabilityUser capability = iota
	capabilityAdmin
)

// bearerToken extracts the credential from the Authorization header.
func bearerToken(r *http.Request) string {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return ""
	}
	return token
}

// requireToken wraps a handler behind a bearer-token gate. Routes gated on a
// level whose token is not configured return 503 rather than silently
// becoming open.
func (s *Server) requireToken(level capability, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var accepted []string
		switch level {
		case capabilityAdmin:
			accepted = []string{s.cfg.AdminToken}
		default:
			accepted = []string{s.cfg.UserToken, s.cfg.AdminToken}
		}

		configured := false
		for _, t := range accepted {
			if t != "" {
				configured = true
				break
			}
		}
		if !configured {
			writeError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Authentication not configured")
			return
		}

		token := bearerToken(r)
		for _, t := range accepted {
			if t != "" && token == t {
				next(w, r)
				return
			}
		}
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or missing bearer token")
	}
}
