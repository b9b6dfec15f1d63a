package middleware

import (
	"io"
	"net/http"
)

// DrainAndCloseRequest caps request bodies at maxBodyBytes, and drains and closes
// whatever the handler left unread so the connection can be reused.
func DrainAndCloseRequest(maxBodyBytes int64) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body == nil || r.Body == http.NoBody {
				next.ServeHTTP(w, r)
				return
			}

			body := r.Body
			if maxBodyBytes > 0 {
				r.Body = http.MaxBytesReader(w, body, maxBodyBytes)
			}
			next.ServeHTTP(w, r)

			_, _ = io.Copy(io.Discard, r.Body)
			_ = body.Close()
		})
	}
}
