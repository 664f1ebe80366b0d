package middleware

import (
	"bytes"
	"context"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// How long the "in-progress" lock holds before the handler must finish.
const provisionalLockTTL = 60 * time.Second

type idempEntry struct {
	InProgress bool      `json:"in_progress"`
	Code       int       `json:"code"`
	Body       []byte    `json:"body"`
	BodySHA256 string    `json:"body_sha256"`
	RequestKey string    `json:"request_key"`
	CreatedAt  time.Time `json:"created_at"`
}

type respRecorder struct {
	w    http.ResponseWriter
	buf  *bytes.Buffer
	code int
}

func (r *respRecorder) Header() http.Header { return r.w.Header() }
func (r *respRecorder) Write(b []byte) (int, error) {
	if r.buf != nil {
		r.buf.Write(b)
	}
	return r.w.Write(b)
}
func (r *respRecorder) WriteHeader(statusCode int) { r.code = statusCode; r.w.WriteHeader(statusCode) }

// Idempotency deduplicates mutating requests. The dedup key is
// method + route + authenticated user + Idempotency-Key header, so it must
// run after Auth. A retry with the same key replays the stored response; the
// same key with a different body is rejected.
func Idempotency(rdb *redis.Client, ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			method := req.Method

			// Only enforce on mutating methods
			switch method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			reqKey := strings.TrimSpace(req.Header.Get("Idempotency-Key"))
			if reqKey == "" {
				return c.JSON(http.StatusBadRequest, map[string]any{"success": false, "message": "missing Idempotency-Key"})
			}
			if !validIdempotencyKey(reqKey) {
				return c.JSON(http.StatusBadRequest, map[string]any{"success": false, "message": "invalid Idempotency-Key format"})
			}

			userID, _ := c.Get(CtxUserID).(string)
			if userID == "" {
				return unauthorized(c, "authentication required")
			}

			// Buffer & hash body
			var body []byte
			if req.Body != nil {
				body, _ = io.ReadAll(req.Body)
			}
			req.Body = io.NopCloser(bytes.NewBuffer(body))
			bhash := bodyHash(body)

			key := buildKey(method, c.Path(), userID, reqKey)
			ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
			defer cancel()

			entry := idempEntry{
				InProgress: true,
				BodySHA256: bhash,
				RequestKey: reqKey,
				CreatedAt:  time.Now().UTC(),
			}
			ok, err := provisionalSet(ctx, rdb, key, entry)
			if err != nil {
				return c.JSON(http.StatusServiceUnavailable, map[string]any{"success": false, "message": "idempotency store unavailable"})
			}
			if !ok {
				// Key exists: body must match, and we may be able to replay
				cur, errLoad := loadEntry(ctx, rdb, key)
				if errLoad != nil {
					log.Printf("idempotency: load %s: %v", key, errLoad)
				}
				if cur.BodySHA256 != "" && cur.BodySHA256 != bhash {
					return c.JSON(http.StatusConflict, map[string]any{"success": false, "message": "Idempotency-Key reused with different body"})
				}
				if !cur.InProgress && cur.Code != 0 && len(cur.Body) > 0 {
					return c.Blob(cur.Code, echo.MIMEApplicationJSON, cur.Body)
				}
				return c.JSON(http.StatusConflict, map[string]any{"success": false, "message": "request is already in progress"})
			}

			// Call next and record the final response for replay
			rec := &respRecorder{w: c.Response().Writer, buf: &bytes.Buffer{}, code: http.StatusOK}
			c.Response().Writer = rec
			if err := next(c); err != nil {
				c.Error(err)
			}

			final := idempEntry{
				InProgress: false,
				Code:       rec.code,
				Body:       rec.buf.Bytes(),
				BodySHA256: bhash,
				RequestKey: reqKey,
				CreatedAt:  time.Now().UTC(),
			}
			_ = saveFinal(context.Background(), rdb, key, final, ttl)
			return nil
		}
	}
}
