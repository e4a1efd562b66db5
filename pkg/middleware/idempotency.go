package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/enuri14/EcoTour-Enuri/pkg/response"
)

const (
	// IdempotencyKeyHeader is the header name for the client idempotency key
	IdempotencyKeyHeader = "X-Idempotency-Key"
	// idempotencyKeyPrefix namespaces idempotency records in Redis
	idempotencyKeyPrefix = "idempotency:"
)

// IdempotencyStatus represents the status of an idempotency record
type IdempotencyStatus string

const (
	StatusProcessing IdempotencyStatus = "processing"
	StatusCompleted  IdempotencyStatus = "completed"
)

// IdempotencyRecord stores the state of an idempotent request
type IdempotencyRecord struct {
	Key          string            `json:"key"`
	Status       IdempotencyStatus `json:"status"`
	RequestHash  string            `json:"request_hash"`
	ResponseCode int               `json:"response_code"`
	ResponseBody string            `json:"response_body"`
	CreatedAt    time.Time         `json:"created_at"`
}

// RedisClient is the subset of redis operations the middleware needs
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Redis RedisClient
	// TTL for completed records
	TTL time.Duration
	// ProcessingTTL bounds how long an in-flight record blocks duplicates
	ProcessingTTL time.Duration
}

type bodyRecorder struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency deduplicates retried mutation requests carrying an
// X-Idempotency-Key header. Requests without the header pass through
// untouched. A replayed completed request gets the stored response back; a
// concurrent duplicate gets 409.
func Idempotency(cfg *IdempotencyConfig) gin.HandlerFunc {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	processingTTL := cfg.ProcessingTTL
	if processingTTL <= 0 {
		processingTTL = time.Minute
	}

	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" || cfg.Redis == nil {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			response.BadRequest(c, "Failed to read request body")
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		hash := sha256.Sum256(append([]byte(c.Request.Method+c.Request.URL.Path), body...))
		requestHash := hex.EncodeToString(hash[:])

		ctx := c.Request.Context()
		redisKey := idempotencyKeyPrefix + key

		record := IdempotencyRecord{
			Key:         key,
			Status:      StatusProcessing,
			RequestHash: requestHash,
			CreatedAt:   time.Now(),
		}
		encoded, _ := json.Marshal(record)

		acquired, err := cfg.Redis.SetNX(ctx, redisKey, encoded, processingTTL).Result()
		if err != nil {
			// Redis trouble must not block bookings; fall through without dedup.
			c.Next()
			return
		}

		if !acquired {
			existing, err := cfg.Redis.Get(ctx, redisKey).Result()
			if err != nil {
				c.Next()
				return
			}
			var prior IdempotencyRecord
			if err := json.Unmarshal([]byte(existing), &prior); err != nil {
				c.Next()
				return
			}
			if prior.RequestHash != requestHash {
				response.Conflict(c, "IDEMPOTENCY_KEY_REUSED", "Idempotency key was used with a different request")
				c.Abort()
				return
			}
			if prior.Status == StatusProcessing {
				response.Conflict(c, "REQUEST_IN_PROGRESS", "A request with this idempotency key is still processing")
				c.Abort()
				return
			}
			c.Data(prior.ResponseCode, "application/json", []byte(prior.ResponseBody))
			c.Abort()
			return
		}

		recorder := &bodyRecorder{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = recorder

		c.Next()

		status := c.Writer.Status()
		if status >= http.StatusInternalServerError {
			// Server-side failures are retryable, drop the record.
			cfg.Redis.Del(ctx, redisKey)
			return
		}

		record.Status = StatusCompleted
		record.ResponseCode = status
		record.ResponseBody = recorder.body.String()
		encoded, _ = json.Marshal(record)
		cfg.Redis.Set(ctx, redisKey, encoded, ttl)
	}
}
