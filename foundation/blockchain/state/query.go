package state

import (
	"github.com/ardanlabs/powledger/foundation/blockchain/database"
)

// QueryLatest represents to query the latest block in the chain.
const QueryLatest = ^uint64(0) >> 1

// Stats represents a point in time view of the ledger.
type Stats struct {
	Height      uint64 `json:"height"`
	LatestHash  string `json:"latest_hash"`
	Pending     int    `json:"pending"`
	Difficulty  uint16 `json:"difficulty"`
	BlocksMined uint64 `json:"blocks_mined"`
	Attempts    uint64 `json:"attempts"`
}

// =============================================================================

// QueryMempoolLength returns the current length of the mempool.
func (s *State) QueryMempoolLength() int {
	return s.mempool.Count()
}

// QueryStats returns the current statistics for the ledger.
func (s *State) QueryStats() Stats {
	s.viewMu.RLock()
	height := s.db.Height()
	latest := s.db.LatestBlock()
	pending := s.mempool.Count()
	s.viewMu.RUnlock()

	return Stats{
		Height:      height,
		LatestHash:  latest.Hash(),
		Pending:     pending,
		Difficulty:  s.db.Difficulty(),
		BlocksMined: s.blocksMined.Load(),
		Attempts:    s.attempts.Load(),
	}
}

// QueryBlocksByNumber returns the set of blocks based on block numbers.
func (s *State) QueryBlocksByNumber(from uint64, to uint64) []database.Block {
	s.viewMu.RLock()
	defer s.viewMu.RUnlock()

	latest := s.db.Height()
	if from == QueryLatest {
		from = latest
		to = from
	}
	if to == QueryLatest || to > latest {
		to = latest
	}

	var out []database.Block
	for i := from; i <= to; i++ {
		block, err := s.db.GetBlock(i)
		if err != nil {
			s.evHandler("state: QueryBlocksByNumber: ERROR: %s", err)
			return nil
		}
		out = append(out, block)
	}

	return out
}
