package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rasoilink/rasoilink-backend/api/responses"
	pkgerrors "github.com/rasoilink/rasoilink-backend/pkg/errors"
	"github.com/rasoilink/rasoilink-backend/pkg/logger"
	"github.com/rasoilink/rasoilink-backend/pkg/redis"
)

const (
	idempotencyHeader = "Idempotency-Key"
	idempotencyTTL    = 24 * time.Hour
)

type idempotencyRule struct {
	method string
	match  func(path string) bool
}

func matchExact(want string) func(string) bool {
	return func(path string) bool { return path == want }
}

func matchPrefixSuffix(prefix, suffix string) func(string) bool {
	return func(path string) bool {
		return strings.HasPrefix(path, prefix) && strings.HasSuffix(path, suffix)
	}
}

// idempotencyRules lists the mutating routes where a replayed Idempotency-Key
// returns the recorded response instead of re-running the handler.
var idempotencyRules = []idempotencyRule{
	{method: http.MethodPost, match: matchExact("/api/v1/orders")},
	{method: http.MethodPost, match: matchExact("/api/v1/reviews")},
	{method: http.MethodPost, match: matchExact("/api/v1/payments")},
	{method: http.MethodPost, match: matchPrefixSuffix("/api/v1/payments/", "/confirm")},
}

type idempotencyRecord struct {
	RequestHash string `json:"request_hash"`
	Status      int    `json:"status"`
	Body        string `json:"body"`
}

type responseCapture struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (rc *responseCapture) WriteHeader(status int) {
	rc.status = status
	rc.ResponseWriter.WriteHeader(status)
}

func (rc *responseCapture) Write(p []byte) (int, error) {
	rc.buf.Write(p)
	return rc.ResponseWriter.Write(p)
}

// Idempotency makes selected POST routes safe to retry. The first request
// under a key records its response in Redis; replays with the same body get
// that response back, replays with a different body are rejected.
func Idempotency(store redis.IdempotencyStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if store == nil || !ruleApplies(r) {
				next.ServeHTTP(w, r)
				return
			}

			key := strings.TrimSpace(r.Header.Get(idempotencyHeader))
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, _ := UserIDFromContext(ctx)
			storageKey := store.IdempotencyKey(userID, key)

			body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
			if err != nil {
				responses.WriteError(ctx, logg, w,
					pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unable to read request body"))
				return
			}
			_ = r.Body.Close()
			r.Body = io.NopCloser(bytes.NewReader(body))

			requestHash := hashRequest(r.Method, r.URL.Path, body)

			if stored, err := store.Get(ctx, storageKey); err == nil && stored != "" {
				replayStored(w, stored, requestHash)
				return
			}

			capture := &responseCapture{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(capture, r)

			if capture.status >= http.StatusInternalServerError {
				return
			}

			record := idempotencyRecord{
				RequestHash: requestHash,
				Status:      capture.status,
				Body:        capture.buf.String(),
			}
			encoded, err := json.Marshal(record)
			if err != nil {
				return
			}
			if _, err := store.SetNX(ctx, storageKey, string(encoded), idempotencyTTL); err != nil && logg != nil {
				logg.Warn(logg.WithField(ctx, "error", err.Error()), "idempotency record not persisted")
			}
		})
	}
}

func ruleApplies(r *http.Request) bool {
	for _, rule := range idempotencyRules {
		if rule.method == r.Method && rule.match(r.URL.Path) {
			return true
		}
	}
	return false
}

func replayStored(w http.ResponseWriter, stored, requestHash string) {
	var record idempotencyRecord
	if err := json.Unmarshal([]byte(stored), &record); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if record.RequestHash != requestHash {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":{"code":"IDEMPOTENCY_KEY_REUSED","message":"idempotency key reused with a different request"}}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(record.Status)
	_, _ = w.Write([]byte(record.Body))
}

func hashRequest(method, path string, body []byte) string {
	sum := sha256.New()
	sum.Write([]byte(method))
	sum.Write([]byte{0})
	sum.Write([]byte(path))
	sum.Write([]byte{0})
	sum.Write(body)
	return hex.EncodeToString(sum.Sum(nil))
}
