package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
)

// ErrNoTransactions is returned when a block is requested to be created
// and there are no pending transactions. Nothing is mined and nothing changes.
var ErrNoTransactions = errors.New("no transactions in mempool")

// proposalRetry is how long a proposal waits between cancel signals.
const proposalRetry = 10 * time.Millisecond

// MineReport provides details about a mining operation.
type MineReport struct {
	Attempts uint64        `json:"attempts"`
	Nonce    uint64        `json:"nonce"`
	Duration time.Duration `json:"duration"`
}

// =============================================================================

// MineNewBlock packages the pending transactions into a new block, performs
// the POW search, and on acceptance appends the block and removes the
// packaged transactions. If the block is rejected the mempool is untouched.
// The search can be cancelled through the context.
func (s *State) MineNewBlock(ctx context.Context) (database.Block, MineReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evHandler("state: MineNewBlock: MINING: check mempool count")

	// Are there any transactions in the pool.
	if s.mempool.Count() == 0 {
		return database.Block{}, MineReport{}, ErrNoTransactions
	}

	howMany := -1
	if s.genesis.TransPerBlock > 0 {
		howMany = int(s.genesis.TransPerBlock)
	}
	trans := s.mempool.PickFirst(howMany)

	s.evHandler("state: MineNewBlock: MINING: build candidate: trans[%d]", len(trans))

	candidate := database.NewCandidate(s.db.LatestBlock(), trans, time.Now())

	s.evHandler("state: MineNewBlock: MINING: perform POW")

	// Attempt to solve the POW puzzle. This can be cancelled.
	start := time.Now()
	proof, err := database.POW(ctx, s.db.Difficulty(), &candidate, s.evHandler)
	report := MineReport{
		Attempts: proof.Attempts,
		Nonce:    candidate.Nonce,
		Duration: time.Since(start),
	}
	s.attempts.Add(proof.Attempts)
	if err != nil {
		return database.Block{}, report, err
	}

	// Just check one more time we were not cancelled.
	if ctx.Err() != nil {
		return database.Block{}, report, ctx.Err()
	}

	s.evHandler("state: MineNewBlock: MINING: validate and update database")

	block, err := s.commit(candidate, proof.Hash, len(trans))
	if err != nil {
		return database.Block{}, report, err
	}

	s.blocksMined.Add(1)

	return block, report, nil
}

// ProcessProposedBlock takes a candidate block and a claimed proof, validates
// them against the chain tip and if that passes, adds the block to the chain.
// The mempool is not changed.
func (s *State) ProcessProposedBlock(candidate database.Candidate, proof string) (database.Block, error) {
	s.evHandler("state: ProcessProposedBlock: started: prevBlk[%s]: proof[%s]: numTrans[%d]", candidate.PrevBlockHash, proof, len(candidate.Transactions))
	defer s.evHandler("state: ProcessProposedBlock: completed")

	s.lockForProposal()
	defer s.mu.Unlock()

	return s.commit(candidate, proof, 0)
}

// =============================================================================

// lockForProposal acquires the mining lock, cancelling any background search
// holding it so the proposed block is judged against the tip it was built on.
// The worker restarts its search once mining is signaled again, so the cancel
// is repeated until the lock is ours.
func (s *State) lockForProposal() {
	if s.Worker == nil {
		s.mu.Lock()
		return
	}

	for !s.mu.TryLock() {
		s.Worker.SignalCancelMining()
		time.Sleep(proposalRetry)
	}
}

// commit validates the candidate and appends it to the chain, removing the
// specified number of transactions from the front of the mempool in the
// same step.
func (s *State) commit(candidate database.Candidate, proof string, packaged int) (database.Block, error) {
	s.viewMu.Lock()
	defer s.viewMu.Unlock()

	block, err := s.db.AddBlock(candidate, proof)
	if err != nil {
		s.evHandler("state: commit: REJECTED: %s", err)
		return database.Block{}, err
	}

	s.mempool.Remove(packaged)

	// Send an event about this new block.
	s.blockEvent(block)

	return block, nil
}

// blockEvent provides a specific event about a new block in the chain for
// application specific support.
func (s *State) blockEvent(block database.Block) {
	blockJSON, err := json.Marshal(database.NewBlockData(block))
	if err != nil {
		blockJSON = []byte(fmt.Sprintf("%q", err.Error()))
	}

	s.evHandler(`viewer: block: %s`, string(blockJSON))
}
