package endpoints

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"github.com/cidadeviva/edu-admissions/pkg/config"
)

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// clientIP resolves the caller's address. X-Forwarded-For is honored
// only when the direct peer is a configured trusted proxy; otherwise a
// client could spoof its own audit trail.
func clientIP(r *http.Request, cfg *config.Config) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	if cfg == nil || !cfg.IsTrustedProxy(host) {
		return host
	}

	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded == "" {
		return host
	}
	// Leftmost entry is the originating client.
	parts := strings.Split(forwarded, ",")
	return strings.TrimSpace(parts[0])
}
