package services

import (
	"abbooks_server/config"
	"abbooks_server/structs"
	"abbooks_server/structs/tables"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once
	redisCtx    = context.Background()
)

// CacheService provides Redis-backed state shared across requests: anonymous
// session keys, cached users, the JWT blacklist, captcha challenges and
// rate-limit counters.
type CacheService struct {
	logger *gecho.Logger
	config *structs.Config
	client *redis.Client
}

func NewCacheService(logger *gecho.Logger, cfg *structs.Config) *CacheService {
	return &CacheService{
		logger: logger,
		config: cfg,
		client: getRedisClient(),
	}
}

func getRedisClient() *redis.Client {
	redisOnce.Do(func() {
		cfg := config.GetConfig()
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Address,
			Username: cfg.Cache.Username,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,

			PoolSize:     cfg.Cache.PoolSize,
			MinIdleConns: cfg.Cache.MinIdleConns,

			DialTimeout:  cfg.Cache.DialTimeout,
			ReadTimeout:  cfg.Cache.ReadTimeout,
			WriteTimeout: cfg.Cache.WriteTimeout,

			MaxRetries: cfg.Cache.MaxRetries,
		})
	})
	return redisClient
}

// Close closes the Redis connection pool
func (cs *CacheService) Close() error {
	if redisClient != nil {
		return redisClient.Close()
	}
	return nil
}

// Health pings the cache
func (cs *CacheService) Health() error {
	ctx, cancel := context.WithTimeout(redisCtx, 2*time.Second)
	defer cancel()
	return cs.client.Ping(ctx).Err()
}

// --- sessions -------------------------------------------------------------

func sessionCacheKey(key string) string {
	return "session:" + key
}

// CreateSessionKey issues a fresh anonymous session key and records it with
// the configured TTL.
func (cs *CacheService) CreateSessionKey(key string) error {
	err := cs.client.Set(redisCtx, sessionCacheKey(key), time.Now().Unix(), cs.config.Session.TTL).Err()
	if err != nil {
		return fmt.Errorf("failed to store session key: %w", err)
	}
	return nil
}

// TouchSession slides the session TTL forward. A missing entry is not an
// error; carts outlive the session tracking entry by design.
func (cs *CacheService) TouchSession(key string) {
	if err := cs.client.Expire(redisCtx, sessionCacheKey(key), cs.config.Session.TTL).Err(); err != nil {
		cs.logger.Debug("Failed to touch session", gecho.Field("error", err))
	}
}

// --- captcha --------------------------------------------------------------

func captchaCacheKey(id string) string {
	return "captcha:" + id
}

// StoreCaptchaAnswer stores the expected answer for a challenge with TTL.
func (cs *CacheService) StoreCaptchaAnswer(id, answer string) error {
	return cs.client.Set(redisCtx, captchaCacheKey(id), answer, cs.config.Session.CaptchaTTL).Err()
}

// CheckCaptchaAnswer verifies and consumes a challenge. Each challenge is
// single-use regardless of outcome.
func (cs *CacheService) CheckCaptchaAnswer(id, answer string) bool {
	expected, err := cs.client.GetDel(redisCtx, captchaCacheKey(id)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			cs.logger.Warn("Failed to look up captcha challenge", gecho.Field("error", err), gecho.Field("id", id))
		}
		return false
	}
	return strings.TrimSpace(answer) == expected
}

// --- token blacklist ------------------------------------------------------

func blacklistCacheKey(jti uuid.UUID) string {
	return "token:blacklist:" + jti.String()
}

// BlacklistToken marks a token id as revoked until its natural expiry.
func (cs *CacheService) BlacklistToken(jti uuid.UUID, exp time.Time) error {
	ttl := time.Until(exp)
	if ttl <= 0 {
		return nil // already expired
	}
	return cs.client.Set(redisCtx, blacklistCacheKey(jti), 1, ttl).Err()
}

// IsTokenBlacklisted reports whether a token id was revoked. Fails open on
// cache errors so a cache outage does not lock everyone out.
func (cs *CacheService) IsTokenBlacklisted(jti uuid.UUID) bool {
	_, err := cs.client.Get(redisCtx, blacklistCacheKey(jti)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			cs.logger.Warn("Failed to check token blacklist", gecho.Field("error", err))
		}
		return false
	}
	return true
}

// --- user cache -----------------------------------------------------------

func userCacheKey(id uuid.UUID) string {
	return "user:" + id.String()
}

func (cs *CacheService) SetUserInCache(user *tables.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user for cache: %w", err)
	}
	return cs.client.Set(redisCtx, userCacheKey(user.Id), data, 15*time.Minute).Err()
}

func (cs *CacheService) GetUserFromCache(id uuid.UUID) (*tables.User, error) {
	data, err := cs.client.Get(redisCtx, userCacheKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var user tables.User
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached user: %w", err)
	}
	return &user, nil
}

func (cs *CacheService) DeleteUserFromCache(id uuid.UUID) error {
	return cs.client.Del(redisCtx, userCacheKey(id)).Err()
}

// --- rate limiting --------------------------------------------------------

// IncrementRateLimit bumps the sliding-window counter for (ip, endpoint) and
// returns the current count within the window.
func (cs *CacheService) IncrementRateLimit(ip, endpoint string, window time.Duration) (int, error) {
	key := fmt.Sprintf("ratelimit:%s:%s", ip, endpoint)

	var incr *redis.IntCmd
	_, err := cs.client.TxPipelined(redisCtx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(redisCtx, key)
		pipe.Expire(redisCtx, key, window)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to increment rate limit: %w", err)
	}

	return int(incr.Val()), nil
}
