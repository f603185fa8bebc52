package auth

import (
	"net/http"
	"strings"
)

// ExtractAccessToken pulls the bearer token from a request. Cookie wins over
// the Authorization header; websocket clients fall back to a query parameter
// because browsers cannot set headers on the WebSocket handshake.
func ExtractAccessToken(r *http.Request) string {
	if cookie, err := r.Cookie("access_token"); err == nil {
		if cookie.Value != "" {
			return cookie.Value
		}
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return r.URL.Query().Get("token")
}
