package store

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"

	"resumescore/internal/config"
	"resumescore/internal/errors"
	"resumescore/internal/resume"
)

// Redis stores documents as JSON strings under KeyPrefix+key. Every call
// goes through a circuit breaker when one is configured.
type Redis struct {
	client  *redis.Client
	prefix  string
	cfg     config.StoreConfig
	breaker *gobreaker.CircuitBreaker[[]byte]
	logger  *errors.Logger
}

// NewRedis connects to cfg.RedisAddr and pings it once.
func NewRedis(ctx context.Context, cfg config.StoreConfig, logger *errors.Logger) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  cfg.Timeout,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	})

	r := NewRedisWithClient(client, cfg, logger)
	if err := r.Ping(ctx); err != nil {
		_ = client.Close()
		return nil, err
	}
	return r, nil
}

// NewRedisWithClient wraps an existing client.
func NewRedisWithClient(client *redis.Client, cfg config.StoreConfig, logger *errors.Logger) *Redis {
	if logger == nil {
		logger = errors.Discard()
	}
	return &Redis{
		client:  client,
		prefix:  cfg.KeyPrefix,
		cfg:     cfg,
		breaker: newBreaker(cfg.Breaker, logger),
		logger:  logger,
	}
}

func newBreaker(cfg config.BreakerConfig, logger *errors.Logger) *gobreaker.CircuitBreaker[[]byte] {
	if !cfg.Enabled {
		return nil
	}

	settings := gobreaker.Settings{
		Name:        "redis-store",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= cfg.MinRequests &&
				failureRatio >= cfg.FailureThreshold
		},
		// A missing key is an answer, not an outage.
		IsSuccessful: func(err error) bool {
			return err == nil || stderrors.Is(err, redis.Nil)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Info("Circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
				"max_requests", cfg.MaxRequests,
				"failure_threshold", cfg.FailureThreshold)
		},
	}
	return gobreaker.NewCircuitBreaker[[]byte](settings)
}

func (r *Redis) execute(fn func() ([]byte, error)) ([]byte, error) {
	if r.breaker == nil {
		return fn()
	}
	return r.breaker.Execute(fn)
}

func (r *Redis) unavailable(op string, err error) error {
	return errors.NewStorageError(errors.ErrCodeStoreUnavailable,
		fmt.Sprintf("redis %s failed", op), err)
}

func (r *Redis) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.cfg.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.cfg.Timeout)
}

// Ping checks connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.execute(func() ([]byte, error) {
		return nil, r.client.Ping(ctx).Err()
	})
	if err != nil {
		return r.unavailable("ping", err)
	}
	return nil
}

func (r *Redis) Load(ctx context.Context, key string) (*resume.Document, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	raw, err := r.execute(func() ([]byte, error) {
		return r.client.Get(ctx, r.prefix+key).Bytes()
	})
	if err != nil {
		if stderrors.Is(err, redis.Nil) {
			return nil, notLoaded(key)
		}
		return nil, r.unavailable("load", err)
	}
	return resume.Normalize(raw)
}

func (r *Redis) Save(ctx context.Context, key string, doc *resume.Document) error {
	if err := checkSave(key, doc); err != nil {
		return err
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return errors.NewInternalError("ENCODE_FAILED", "failed to encode resume", err)
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	_, err = r.execute(func() ([]byte, error) {
		return nil, r.client.Set(ctx, r.prefix+key, raw, 0).Err()
	})
	if err != nil {
		return r.unavailable("save", err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var removed int64
	_, err := r.execute(func() ([]byte, error) {
		var err error
		removed, err = r.client.Del(ctx, r.prefix+key).Result()
		return nil, err
	})
	if err != nil {
		return r.unavailable("delete", err)
	}
	if removed == 0 {
		return notFound(key)
	}
	return nil
}

// Stats reports the breaker state.
func (r *Redis) Stats() map[string]any {
	if r.breaker == nil {
		return map[string]any{"addr": r.cfg.RedisAddr, "breaker": map[string]any{"enabled": false}}
	}
	return map[string]any{
		"addr": r.cfg.RedisAddr,
		"breaker": map[string]any{
			"enabled": true,
			"name":    r.breaker.Name(),
			"state":   r.breaker.State().String(),
			"counts":  r.breaker.Counts(),
		},
	}
}

// IsHealthy reports whether the breaker is closed.
func (r *Redis) IsHealthy() bool {
	return r.breaker == nil || r.breaker.State() == gobreaker.StateClosed
}

func (r *Redis) Close() error {
	return r.client.Close()
}
