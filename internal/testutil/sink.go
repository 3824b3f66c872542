package testutil

import "sync"

// RecordingSink keeps every message it receives.
type RecordingSink struct {
	mu       sync.Mutex
	messages []string
}

func (r *RecordingSink) Add(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
}

// Messages returns the received messages in order.
func (r *RecordingSink) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}
