package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// configCache stores parsed configuration copies keyed by type name and prefix.
type configCache struct {
	mu     sync.RWMutex
	values map[string]any
}

var (
	globalCache = &configCache{values: make(map[string]any)}

	defaultEnvLoaded sync.Once
)

// Option tunes a single Load call.
type Option func(*loadOptions)

type loadOptions struct {
	prefix  string
	noCache bool
}

// WithPrefix prepends prefix to every env key of the struct, e.g. "SOCIALKIT_".
func WithPrefix(prefix string) Option {
	return func(o *loadOptions) { o.prefix = prefix }
}

// WithoutCache forces parsing even when the type was loaded before.
func WithoutCache() Option {
	return func(o *loadOptions) { o.noCache = true }
}

// Load parses environment variables into v based on `env` struct tags.
// The default .env file is loaded once per process if it exists. Each
// (type, prefix) pair is parsed once and served from cache afterwards.
//
//	type SocketConfig struct {
//		URL      string        `env:"SOCKET_URL,required"`
//		Attempts int           `env:"SOCKET_RECONNECT_ATTEMPTS" envDefault:"5"`
//		Interval time.Duration `env:"SOCKET_RECONNECT_INTERVAL" envDefault:"1s"`
//	}
//
//	var cfg SocketConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T, opts ...Option) error {
	defaultEnvLoaded.Do(func() {
		// A missing .env file is fine.
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	o := loadOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	key := cacheKey[T](o.prefix)

	if !o.noCache {
		globalCache.mu.RLock()
		cached, ok := globalCache.values[key]
		globalCache.mu.RUnlock()
		if ok {
			*v = cached.(T)
			return nil
		}
	}

	if err := env.ParseWithOptions(v, env.Options{Prefix: o.prefix}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	globalCache.mu.Lock()
	globalCache.values[key] = *v
	globalCache.mu.Unlock()

	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// LoadEnv loads the given .env files into the process environment without
// overriding variables that are already set.
func LoadEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// ResetCache drops every cached configuration. Intended for tests.
func ResetCache() {
	globalCache.mu.Lock()
	clear(globalCache.values)
	globalCache.mu.Unlock()
}

func cacheKey[T any](prefix string) string {
	t := reflect.TypeFor[T]()
	return prefix + "|" + t.PkgPath() + "." + t.String()
}
