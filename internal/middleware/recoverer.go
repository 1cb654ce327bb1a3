package middleware

import (
	"net/http"
	"runtime/debug"

	"tacops/internal/logs"
	"tacops/internal/models"
)

// Recoverer catches handler panics, logs the stack and answers with the
// generic failure envelope.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				reqid := GetRequestID(r)
				logs.Logger.Errorf("panic: %v reqid=%s uri=%s method=%s\nstack:\n%s",
					rec, reqid, r.RequestURI, r.Method, string(debug.Stack()))
				models.WriteErrorMessage(w, http.StatusInternalServerError,
					"Internal server error", "see logs by reqid "+reqid)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
