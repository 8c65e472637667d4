package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"net/http"
)

// API key failures handed to the rejection callback.
var (
	ErrMissingAPIKey = errors.New("missing API key")
	ErrInvalidAPIKey = errors.New("invalid API key")
)

// RejectFunc writes the response for a request that failed authentication.
type RejectFunc func(w http.ResponseWriter, r *http.Request, err error)

// APIKeyAuth requires a valid X-API-Key header on every request when keys is
// non-empty. Failed requests go to reject with ErrMissingAPIKey or
// ErrInvalidAPIKey. With no keys configured the middleware is a no-op.
func APIKeyAuth(keys []string, reject RejectFunc) func(http.Handler) http.Handler {
	digests := make([][sha256.Size]byte, 0, len(keys))
	for _, k := range keys {
		if k != "" {
			digests = append(digests, sha256.Sum256([]byte(k)))
		}
	}

	return func(next http.Handler) http.Handler {
		if len(digests) == 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("X-API-Key")
			switch {
			case key == "":
				reject(w, r, ErrMissingAPIKey)
			case !matchesAny(sha256.Sum256([]byte(key)), digests):
				reject(w, r, ErrInvalidAPIKey)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

// matchesAny compares fixed-size digests so neither the key length nor the
// position of the matching key shows in timing.
func matchesAny(got [sha256.Size]byte, digests [][sha256.Size]byte) bool {
	match := 0
	for i := range digests {
		match |= subtle.ConstantTimeCompare(got[:], digests[i][:])
	}
	return match == 1
}
