package memory

// QueuedEvents: длина очереди неопубликованных событий.
func (s *Store) QueuedEvents() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}
