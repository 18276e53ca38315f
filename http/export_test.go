package http

// ActiveLocks returns the number of jobs with a step running or waiting.
func (s *Server) ActiveLocks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.locks)
}
