// Package messages keeps the history of operation messages shown to the user.
package messages

// EvictCallback is called when a message is dropped because the history is full.
type EvictCallback func(message string)

// Logger receives error reports from store operations.
type Logger interface {
	Error(msg string, err error)
}

// Store is an append-only, bounded message history.
// Implementations may keep messages in memory or in an external backend like Redis/Valkey.
type Store interface {
	// Append adds a message at the end of the history, evicting the oldest
	// messages when the configured size is exceeded.
	Append(message string)

	// List returns the retained messages, oldest first.
	List() []string

	// Clear drops every message.
	Clear()

	// Len returns the number of retained messages.
	Len() int

	// Close releases any resources held by the store (e.g., network connections).
	Close() error
}
