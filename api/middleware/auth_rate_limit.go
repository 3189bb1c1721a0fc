package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rasoilink/rasoilink-backend/api/responses"
	pkgerrors "github.com/rasoilink/rasoilink-backend/pkg/errors"
	"github.com/rasoilink/rasoilink-backend/pkg/logger"
)

// AuthRateLimitPolicy describes the fixed windows applied to one auth route.
type AuthRateLimitPolicy struct {
	Scope      string
	Window     time.Duration
	IPLimit    int
	EmailLimit int
}

// AuthRateLimitStore is the redis surface the limiter needs.
type AuthRateLimitStore interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
	RateLimitKey(scope string) string
}

// AuthRateLimit throttles credential endpoints per client IP and, when the
// body carries one, per email. Counters live in Redis fixed windows so the
// limit holds across instances.
func AuthRateLimit(store AuthRateLimitStore, policy AuthRateLimitPolicy, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if store == nil || policy.Window <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			ip := clientIP(r)
			if policy.IPLimit > 0 && ip != "" {
				key := store.RateLimitKey(policy.Scope + ":ip:" + ip)
				count, err := store.IncrWithTTL(ctx, key, policy.Window)
				if err != nil {
					responses.WriteError(ctx, logg, w,
						pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limit check failed"))
					return
				}
				if count > int64(policy.IPLimit) {
					responses.WriteError(ctx, logg, w,
						pkgerrors.New(pkgerrors.CodeRateLimit, "too many attempts, try again later"))
					return
				}
			}

			if policy.EmailLimit > 0 {
				email, restore := extractEmail(r)
				if restore != nil {
					r.Body = restore
				}
				if email != "" {
					key := store.RateLimitKey(policy.Scope + ":email:" + hashValue(email))
					count, err := store.IncrWithTTL(ctx, key, policy.Window)
					if err != nil {
						responses.WriteError(ctx, logg, w,
							pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limit check failed"))
						return
					}
					if count > int64(policy.EmailLimit) {
						responses.WriteError(ctx, logg, w,
							pkgerrors.New(pkgerrors.CodeRateLimit, "too many attempts for this account"))
						return
					}
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// extractEmail peeks at the JSON body for an email field, returning a reader
// that replays the consumed bytes.
func extractEmail(r *http.Request) (string, io.ReadCloser) {
	if r.Body == nil {
		return "", nil
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	_ = r.Body.Close()
	restore := io.NopCloser(bytes.NewReader(raw))
	if err != nil {
		return "", restore
	}

	var probe struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return "", restore
	}
	return strings.ToLower(strings.TrimSpace(probe.Email)), restore
}

func hashValue(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:8])
}
