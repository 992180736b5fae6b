// Package requestid provides middleware that tags every request with an ID.
package requestid

import (
	"net/http"

	"github.com/google/uuid"

	"mapportal/pkg/requestcontext"
)

// Header is read from incoming requests and echoed on responses.
const Header = "X-Request-ID"

const maxIncomingLength = 128

// Middleware reuses a caller supplied X-Request-ID when present and short
// enough, otherwise generates a random UUID.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(Header)
		if requestID == "" || len(requestID) > maxIncomingLength {
			requestID = uuid.NewString()
		}
		w.Header().Set(Header, requestID)
		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
