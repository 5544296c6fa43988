package middleware

import (
	"encoding/json"
	"log"
	"net/http"
)

// Recover maps panics to a generic JSON 500. Internal detail stays in the
// server log and never reaches the client.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Printf("❌ panic on %s %s: %v", r.Method, r.URL.Path, rec)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(map[string]string{"message": "Internal server error"})
			}
		}()

		next.ServeHTTP(w, r)
	})
}
