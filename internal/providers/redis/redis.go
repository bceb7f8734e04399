package redis

import (
	"context"
	"net"
	"time"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache is the read-through cache used by the board services. Failures are
// logged and swallowed: a cache miss is always a safe answer.
//
// Generations are plain counters that never expire. Readers fold the
// generation into their keys, so bumping it retires every view cached before.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst interface{}) bool
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration)
	DeletePattern(ctx context.Context, pattern string) int
	// Generation returns the counter under key, zero when unset. ok is false
	// when the counter could not be read and nothing should be cached.
	Generation(ctx context.Context, key string) (gen int64, ok bool)
	BumpGeneration(ctx context.Context, key string)
}

type RedisProvider struct {
	Client *redis.Client
	URL    string
	logger *zap.SugaredLogger
	ttl    time.Duration
	cancel context.CancelFunc
}

func NewRedisProvider(redisURL string, logger *zap.Logger, ttl time.Duration) *RedisProvider {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		opts = &redis.Options{
			Addr: redisURL,
			DB:   0,
		}
	}
	opts.MaxRetries = 3
	opts.MinRetryBackoff = 100 * time.Millisecond
	opts.MaxRetryBackoff = 500 * time.Millisecond

	client := redis.NewClient(opts)

	ctx, cancel := context.WithCancel(context.Background())
	provider := &RedisProvider{
		Client: client,
		URL:    redisURL,
		logger: logger.Sugar(),
		ttl:    ttl,
		cancel: cancel,
	}

	client.AddHook(&loggerHook{provider: provider})

	go provider.startConnectionMonitor(ctx)

	if err := client.Ping(context.Background()).Err(); err != nil {
		provider.logger.Errorw("Redis connection failed at startup", "error", err)
	} else {
		provider.logger.Infow("Redis connected",
			"url", redisURL,
			"db", opts.DB,
			"default_ttl", ttl.String(),
		)
	}

	return provider
}

func (r *RedisProvider) Close() error {
	r.cancel()
	return r.Client.Close()
}

func (r *RedisProvider) GetJSON(ctx context.Context, key string, dst interface{}) bool {
	data, err := r.Client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		r.logger.Warnw("Dropping undecodable cache entry", "key", key, "error", err)
		r.Client.Del(ctx, key)
		return false
	}
	return true
}

// SetJSON stores value under key. A non-positive ttl uses the provider default.
func (r *RedisProvider) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		r.logger.Warnw("Failed to encode cache entry", "key", key, "error", err)
		return
	}
	if ttl <= 0 {
		ttl = r.ttl
	}
	if err := r.Client.Set(ctx, key, data, ttl).Err(); err != nil {
		r.logger.Warnw("Failed to write cache entry", "key", key, "error", err)
	}
}

func (r *RedisProvider) Generation(ctx context.Context, key string) (int64, bool) {
	gen, err := r.Client.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, true
	}
	if err != nil {
		r.logger.Warnw("Failed to read cache generation", "key", key, "error", err)
		return 0, false
	}
	return gen, true
}

func (r *RedisProvider) BumpGeneration(ctx context.Context, key string) {
	if err := r.Client.Incr(ctx, key).Err(); err != nil {
		r.logger.Warnw("Failed to bump cache generation", "key", key, "error", err)
	}
}

// DeletePattern removes every key matching pattern and returns how many were deleted.
func (r *RedisProvider) DeletePattern(ctx context.Context, pattern string) int {
	var cursor uint64
	deletedCount := 0
	for {
		keys, cur, err := r.Client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			r.logger.Warnw("Redis scan failed during cache invalidation", "error", err, "pattern", pattern)
			return deletedCount
		}
		if len(keys) > 0 {
			n, err := r.Client.Del(ctx, keys...).Result()
			if err != nil {
				r.logger.Warnw("Failed to delete cache keys", "error", err, "keys", keys)
			} else {
				deletedCount += int(n)
			}
		}
		if cur == 0 {
			break
		}
		cursor = cur
	}
	return deletedCount
}

func (r *RedisProvider) startConnectionMonitor(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	var wasConnected bool

	if err := r.Client.Ping(ctx).Err(); err == nil {
		wasConnected = true
	} else {
		r.logger.Warnw("Redis unavailable at startup", "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			err := r.Client.Ping(ctx).Err()
			if err != nil {
				if wasConnected {
					r.logger.Errorw("Redis disconnected", "error", err)
					wasConnected = false
				}
			} else {
				if !wasConnected {
					r.logger.Infow("Redis reconnected", "url", r.URL)
					wasConnected = true
				}
			}
		}
	}
}

type loggerHook struct {
	provider *RedisProvider
}

func (h *loggerHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := next(ctx, network, addr)
		if err != nil {
			h.provider.logger.Errorw("Redis dial failed", "network", network, "addr", addr, "error", err)
		} else {
			h.provider.logger.Debugw("Redis dialed", "network", network, "addr", addr)
		}
		return conn, err
	}
}

func (h *loggerHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		duration := time.Since(start)

		if cmd.Name() == "ping" && err == nil {
			return err
		}

		fields := []interface{}{
			"command", cmd.Name(),
			"duration", duration.String(),
		}
		// redis.Nil is a cache miss
		if err != nil && err != redis.Nil {
			h.provider.logger.Errorw("Redis command failed", append(fields, "error", err)...)
		} else {
			h.provider.logger.Debugw("Redis command executed", fields...)
		}

		return err
	}
}

func (h *loggerHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmds)
		if err != nil {
			h.provider.logger.Errorw("Redis pipeline failed",
				"commands", len(cmds),
				"duration", time.Since(start).String(),
				"error", err,
			)
		}
		return err
	}
}
