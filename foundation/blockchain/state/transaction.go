package state

// SubmitTransactions accepts a set of opaque transactions for inclusion in a
// future block. The transactions are appended in order without inspection.
// The number of pending transactions is returned.
func (s *State) SubmitTransactions(trans []string) int {
	if len(trans) == 0 {
		return s.mempool.Count()
	}

	// Only the view lock is taken so a submission never waits on a POW
	// search. Mining removes the transactions it packaged from the front,
	// so anything appended here survives the commit.
	s.viewMu.Lock()
	count := s.mempool.Append(trans...)
	s.viewMu.Unlock()

	s.evHandler("state: SubmitTransactions: added[%d]: pending[%d]", len(trans), count)

	if s.Worker != nil {
		s.Worker.SignalStartMining()
	}

	return count
}
