package messages

// instrumentedStore records Prometheus metrics for the wrapped store under its group label.
type instrumentedStore struct {
	inner Store
	group string
}

func newInstrumentedStore(inner Store, group string) *instrumentedStore {
	registerEntriesCollector(group, inner.Len)
	return &instrumentedStore{inner: inner, group: group}
}

func (s *instrumentedStore) Append(message string) {
	s.inner.Append(message)
	AppendedTotal.WithLabelValues(s.group).Inc()
}

func (s *instrumentedStore) List() []string {
	return s.inner.List()
}

func (s *instrumentedStore) Clear() {
	s.inner.Clear()
	ClearedTotal.WithLabelValues(s.group).Inc()
}

func (s *instrumentedStore) Len() int {
	return s.inner.Len()
}

// Close unregisters the entries collector and closes the underlying store.
func (s *instrumentedStore) Close() error {
	unregisterEntriesCollector(s.group)
	return s.inner.Close()
}
