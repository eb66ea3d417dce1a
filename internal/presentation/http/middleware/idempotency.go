package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/fishledger/internal/domain/entity"
	"github.com/sangkips/fishledger/internal/domain/repository"
	"github.com/sangkips/fishledger/internal/presentation/http/dto/response"
	"github.com/sangkips/fishledger/pkg/clock"
	"go.uber.org/zap"
)

// IdempotencyKeyHeader is the HTTP header for idempotency keys
const IdempotencyKeyHeader = "Idempotency-Key"

const maxIdempotencyKeyLength = 255

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo  repository.IdempotencyRepository
	Clock clock.Clock
	Log   *zap.Logger
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response of a POST retried with the same
// Idempotency-Key, so a network retry of a payment is not applied twice.
// Requests without the header pass through. The key is reserved before the
// handler runs, so a duplicate sent while the first is in flight gets 409.
// Only 2xx responses are stored; any other outcome frees the key.
func Idempotency(config IdempotencyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLength {
			response.BadRequest(c, "Idempotency-Key is too long")
			c.Abort()
			return
		}

		ownerID := GetOwnerID(c)
		if ownerID == uuid.Nil {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			response.BadRequest(c, "Unable to read request body")
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		hash := sha256.Sum256(body)
		requestHash := hex.EncodeToString(hash[:])
		endpoint := c.Request.Method + " " + c.FullPath()

		ctx := c.Request.Context()
		now := config.Clock.Now()

		existing, err := config.Repo.GetByKey(ctx, key, ownerID)
		if err != nil {
			config.Log.Error("idempotency lookup failed", zap.Error(err))
			response.InternalServerError(c, "Failed to check idempotency key")
			c.Abort()
			return
		}
		if existing != nil && existing.IsExpired(now) {
			// the expired row still holds the unique key
			if _, err := config.Repo.DeleteExpired(ctx, now); err != nil {
				config.Log.Warn("failed to purge expired idempotency keys", zap.Error(err))
			}
			existing = nil
		}
		if existing != nil {
			replayOrReject(c, existing, endpoint, requestHash)
			return
		}

		reservation := &entity.IdempotencyKey{
			Key:         key,
			OwnerID:     ownerID,
			Endpoint:    endpoint,
			RequestHash: requestHash,
			CreatedAt:   now,
			ExpiresAt:   now.Add(entity.IdempotencyReservationTTL),
		}
		reserved, err := config.Repo.Reserve(ctx, reservation)
		if err != nil {
			config.Log.Error("idempotency reservation failed", zap.Error(err))
			response.InternalServerError(c, "Failed to reserve idempotency key")
			c.Abort()
			return
		}
		if !reserved {
			// a concurrent request took the key after our lookup
			existing, err = config.Repo.GetByKey(ctx, key, ownerID)
			if err != nil || existing == nil {
				response.ErrorWithCode(c, http.StatusConflict, "A request with this Idempotency-Key is in progress")
				c.Abort()
				return
			}
			replayOrReject(c, existing, endpoint, requestHash)
			return
		}

		blw := &responseWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		// the reservation must be settled even if the client went away
		ctx = context.WithoutCancel(ctx)
		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			if err := config.Repo.Release(ctx, reservation); err != nil {
				config.Log.Warn("failed to release idempotency key", zap.String("endpoint", endpoint), zap.Error(err))
			}
			return
		}

		reservation.ResponseCode = status
		reservation.ResponseBody = blw.body.String()
		reservation.ExpiresAt = config.Clock.Now().Add(entity.IdempotencyKeyTTL)
		if err := config.Repo.Complete(ctx, reservation); err != nil {
			config.Log.Warn("failed to store idempotency key", zap.String("endpoint", endpoint), zap.Error(err))
		}
	}
}

// replayOrReject answers a request whose key is already held
func replayOrReject(c *gin.Context, existing *entity.IdempotencyKey, endpoint, requestHash string) {
	switch {
	case existing.Endpoint != endpoint || existing.RequestHash != requestHash:
		response.BadRequest(c, "Idempotency-Key was already used for a different request")
	case existing.IsPending():
		response.ErrorWithCode(c, http.StatusConflict, "A request with this Idempotency-Key is in progress")
	default:
		c.Header("X-Idempotency-Replayed", "true")
		c.Data(existing.ResponseCode, "application/json; charset=utf-8", []byte(existing.ResponseBody))
	}
	c.Abort()
}

// SweepIdempotencyKeys deletes expired keys every interval until ctx is done
func SweepIdempotencyKeys(ctx context.Context, repo repository.IdempotencyRepository, clk clock.Clock, interval time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := repo.DeleteExpired(ctx, clk.Now())
			if err != nil {
				log.Warn("idempotency sweep failed", zap.Error(err))
				continue
			}
			if removed > 0 {
				log.Debug("idempotency keys swept", zap.Int64("removed", removed))
			}
		}
	}
}
