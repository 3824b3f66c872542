package messages

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Belphemur/StudentService/internal/config"
)

// Service collects the one-line operation messages of the application and
// keeps them until cleared. It is safe for concurrent use.
type Service struct {
	store Store
}

// NewService creates a message service on top of store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// NewServiceFromConfig builds the store selected by the messages section of cfg.
func NewServiceFromConfig(cfg *config.Config) (*Service, error) {
	logger := config.GetLogger()

	var ttl time.Duration
	if cfg.Messages.TTL != "" {
		parsed, err := time.ParseDuration(cfg.Messages.TTL)
		if err != nil {
			return nil, fmt.Errorf("invalid messages ttl %q: %w", cfg.Messages.TTL, err)
		}
		ttl = parsed
	}

	provider := cfg.Messages.Provider
	if provider == "" {
		provider = "memory"
	}

	store, err := New(provider, ProviderConfig{
		Size:          cfg.Messages.Size,
		TTL:           ttl,
		Logger:        zerologAdapter{logger: logger},
		RedisAddress:  cfg.Messages.Redis.Address,
		RedisPassword: cfg.Messages.Redis.Password,
		RedisDB:       cfg.Messages.Redis.DB,
		Group:         "messages",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s message store: %w", provider, err)
	}

	logger.Debug().
		Str("provider", provider).
		Int("size", cfg.Messages.Size).
		Dur("ttl", ttl).
		Msg("Message store ready")

	return NewService(store), nil
}

// Add records a message.
func (s *Service) Add(message string) {
	s.store.Append(message)
}

// Messages returns the recorded messages, oldest first.
func (s *Service) Messages() []string {
	return s.store.List()
}

// Clear forgets every recorded message.
func (s *Service) Clear() {
	s.store.Clear()
}

// Close releases the underlying store.
func (s *Service) Close() error {
	return s.store.Close()
}

// zerologAdapter routes store errors to the application logger.
type zerologAdapter struct {
	logger zerolog.Logger
}

func (a zerologAdapter) Error(msg string, err error) {
	a.logger.Error().Err(err).Msg(msg)
}
