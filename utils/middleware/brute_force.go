package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/nexpertia/marketplace-api/utils/cache"
	"github.com/nexpertia/marketplace-api/utils/response"
)

const attemptWindow = 15 * time.Minute

// BruteForceProtection locks out IPs with repeated failed logins, using Redis counters
type BruteForceProtection struct {
	redisCache *cache.RedisCache
	log        zerolog.Logger
}

// NewBruteForceProtection creates a new brute force protection instance
func NewBruteForceProtection(redisCache *cache.RedisCache, log zerolog.Logger) *BruteForceProtection {
	return &BruteForceProtection{
		redisCache: redisCache,
		log:        log,
	}
}

func attemptKey(ip string) string { return "brute_force:attempts:" + ip }
func lockKey(ip string) string    { return "brute_force:lock:" + ip }

// LockoutFor returns the lockout applied after the given number of failed attempts
func LockoutFor(attempts int64) time.Duration {
	switch {
	case attempts >= 25:
		return 24 * time.Hour
	case attempts >= 10:
		return time.Hour
	case attempts >= 5:
		return 2 * time.Minute
	default:
		return 0
	}
}

// CheckAndRecordAttempt middleware rejects requests from locked out IPs
func (b *BruteForceProtection) CheckAndRecordAttempt() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ip := c.IP()

		locked, err := b.redisCache.Exists(c.UserContext(), lockKey(ip))
		if err != nil {
			// Redis being down must not block legitimate users
			b.log.Warn().Err(err).Msg("brute force check unavailable")
			return c.Next()
		}

		if locked {
			ttl, _ := b.redisCache.TTL(c.UserContext(), lockKey(ip))
			retryAfter := int(ttl.Seconds())
			if retryAfter < 0 {
				retryAfter = 60
			}

			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfter))
			return response.TooManyRequests(c, fmt.Sprintf("Too many failed attempts. Try again in %d seconds", retryAfter))
		}

		return c.Next()
	}
}

// RecordFailedAttempt records a failed login attempt and applies progressive lockouts
func (b *BruteForceProtection) RecordFailedAttempt(ctx context.Context, ip string) {
	attempts, err := b.redisCache.Increment(ctx, attemptKey(ip))
	if err != nil {
		b.log.Warn().Err(err).Msg("failed to record login attempt")
		return
	}

	if attempts == 1 {
		_ = b.redisCache.Expire(ctx, attemptKey(ip), attemptWindow)
	}

	if lockout := LockoutFor(attempts); lockout > 0 {
		b.log.Warn().Str("ip", ip).Int64("attempts", attempts).Dur("lockout", lockout).Msg("locking out IP")
		if err := b.redisCache.Set(ctx, lockKey(ip), "locked", lockout); err != nil {
			b.log.Warn().Err(err).Msg("failed to set lockout")
		}
	}
}

// RecordSuccessfulAttempt clears failed attempts on successful login
func (b *BruteForceProtection) RecordSuccessfulAttempt(ctx context.Context, ip string) {
	if err := b.redisCache.Delete(ctx, attemptKey(ip), lockKey(ip)); err != nil {
		b.log.Warn().Err(err).Msg("failed to clear login attempts")
	}
}
