package middleware

import (
	"fmt"
	"net/http"

	"github.com/rasoilink/rasoilink-backend/api/responses"
	pkgerrors "github.com/rasoilink/rasoilink-backend/pkg/errors"
	"github.com/rasoilink/rasoilink-backend/pkg/logger"
)

// Recoverer converts downstream panics into 500 responses instead of
// tearing down the connection.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if recovered := recover(); recovered != nil {
					err := fmt.Errorf("panic: %v", recovered)
					responses.WriteError(r.Context(), logg, w,
						pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected server error"))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
