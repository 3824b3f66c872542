package messages

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// ProviderConfig holds the configuration needed to create a store instance.
type ProviderConfig struct {
	// Size is the maximum number of retained messages. 0 keeps everything.
	Size int

	// TTL is how long a message is retained. 0 keeps messages until evicted.
	TTL time.Duration

	// OnEvict is called when a message is dropped to honour Size. The memory
	// provider also reports TTL expiry; Redis expires the whole history silently.
	OnEvict EvictCallback

	// Logger receives error reports from store operations. If nil, errors are silently ignored.
	Logger Logger

	// RedisAddress is the Redis/Valkey server address (e.g., "localhost:6379").
	RedisAddress string

	// RedisPassword is the password for the Redis/Valkey server.
	RedisPassword string

	// RedisDB is the Redis/Valkey database number.
	RedisDB int

	// KeyPrefix namespaces the Redis keys. Defaults to "studentsvc:".
	KeyPrefix string

	// Group labels the Prometheus metrics of this store.
	// When non-empty the store is automatically wrapped with metric instrumentation.
	Group string
}

// Provider is a constructor function that creates a Store from config.
type Provider func(cfg ProviderConfig) (Store, error)

var (
	mu        sync.RWMutex
	providers = make(map[string]Provider)
)

// Register registers a store provider under the given name.
// It panics if the name is already registered or the provider is nil.
func Register(name string, p Provider) {
	mu.Lock()
	defer mu.Unlock()

	if p == nil {
		panic("messages: Register provider is nil")
	}
	if _, exists := providers[name]; exists {
		panic(fmt.Sprintf("messages: provider %q already registered", name))
	}
	providers[name] = p
}

// New creates a Store using the named provider.
// When cfg.Group is non-empty the store counts appended and evicted messages
// under that group and reports its length at scrape time.
func New(name string, cfg ProviderConfig) (Store, error) {
	mu.RLock()
	p, ok := providers[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("messages: unknown provider %q (registered: %v)", name, RegisteredProviders())
	}

	if cfg.Group == "" {
		return p(cfg)
	}

	group := cfg.Group
	original := cfg.OnEvict
	cfg.OnEvict = func(message string) {
		EvictedTotal.WithLabelValues(group).Inc()
		if original != nil {
			original(message)
		}
	}

	inner, err := p(cfg)
	if err != nil {
		return nil, err
	}

	return newInstrumentedStore(inner, group), nil
}

// RegisteredProviders returns a sorted list of registered provider names.
func RegisteredProviders() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
