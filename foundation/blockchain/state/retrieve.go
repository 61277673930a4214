package state

import (
	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/genesis"
)

// RetrieveGenesis returns a copy of the genesis information.
func (s *State) RetrieveGenesis() genesis.Genesis {
	return s.genesis
}

// RetrieveLatestBlock returns a copy the current latest block.
func (s *State) RetrieveLatestBlock() database.Block {
	s.viewMu.RLock()
	defer s.viewMu.RUnlock()

	return s.db.LatestBlock()
}

// RetrieveBlocks returns the full chain starting with the genesis block.
func (s *State) RetrieveBlocks() []database.Block {
	s.viewMu.RLock()
	defer s.viewMu.RUnlock()

	return s.db.Blocks()
}

// RetrieveMempool returns a copy of the pending transactions in order.
func (s *State) RetrieveMempool() []string {
	s.viewMu.RLock()
	defer s.viewMu.RUnlock()

	return s.mempool.Copy()
}

// VerifyChain audits every block in the chain against the linkage, hashing
// and difficulty rules.
func (s *State) VerifyChain() error {
	s.viewMu.RLock()
	defer s.viewMu.RUnlock()

	return s.db.VerifyChain()
}
