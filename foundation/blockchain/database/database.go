// Package database handles the lower level support for maintaining the chain
// of sealed blocks, including hashing, the POW search and block validation.
package database

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ardanlabs/powledger/foundation/blockchain/genesis"
)

// ErrBrokenChain is returned when the stored chain doesn't satisfy the
// linkage and hashing rules.
var ErrBrokenChain = errors.New("chain integrity check failed")

// =============================================================================

// Database manages the chain of sealed blocks.
type Database struct {
	mu sync.RWMutex

	genesis     genesis.Genesis
	latestBlock Block
	storage     Storage
	evHandler   func(v string, args ...any)
}

// New constructs a new database for the specified genesis. If the storage is
// empty the genesis block is created and written, otherwise the existing
// blocks are verified and the last one becomes the chain tip.
func New(gen genesis.Genesis, storage Storage, evHandler func(v string, args ...any)) (*Database, error) {
	if err := gen.Validate(); err != nil {
		return nil, fmt.Errorf("invalid genesis: %w", err)
	}

	ev := func(v string, args ...any) {
		if evHandler != nil {
			evHandler(v, args...)
		}
	}

	db := Database{
		genesis:   gen,
		storage:   storage,
		evHandler: ev,
	}

	if storage.Len() == 0 {
		block := NewGenesisBlock(gen, time.Now())
		if err := storage.Write(block); err != nil {
			return nil, fmt.Errorf("writing genesis block: %w", err)
		}

		ev("database: New: genesis block created: %s", block)

		db.latestBlock = block
		return &db, nil
	}

	blocks := storage.Blocks()
	if err := verifyChain(blocks, gen.Difficulty); err != nil {
		return nil, err
	}

	db.latestBlock = blocks[len(blocks)-1]
	ev("database: New: loaded %d blocks: latest %s", len(blocks), db.latestBlock)

	return &db, nil
}

// Close closes the underlying storage.
func (db *Database) Close() error {
	return db.storage.Close()
}

// Genesis returns the genesis configuration for this chain.
func (db *Database) Genesis() genesis.Genesis {
	return db.genesis
}

// Difficulty returns the number of leading zeros required for a block.
func (db *Database) Difficulty() uint16 {
	return db.genesis.Difficulty
}

// LatestBlock returns the current tip of the chain.
func (db *Database) LatestBlock() Block {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.latestBlock
}

// Height returns the position of the chain tip. The genesis block is at
// height 0.
func (db *Database) Height() uint64 {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return uint64(db.storage.Len() - 1)
}

// Blocks returns the full chain starting with the genesis block.
func (db *Database) Blocks() []Block {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.storage.Blocks()
}

// GetBlock returns the block at the specified position in the chain.
func (db *Database) GetBlock(num uint64) (Block, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.storage.GetBlock(num)
}

// AddBlock validates the candidate and proof against the current tip and, if
// that passes, seals the block with the proof and appends it to the chain.
// On failure nothing is changed.
func (db *Database) AddBlock(c Candidate, proof string) (Block, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if err := validateCandidate(db.latestBlock, db.genesis.Difficulty, c, proof, db.evHandler); err != nil {
		return Block{}, err
	}

	block := seal(c, proof)
	if err := db.storage.Write(block); err != nil {
		return Block{}, fmt.Errorf("writing block: %w", err)
	}
	db.latestBlock = block

	db.evHandler("database: AddBlock: block appended: %s", block)

	return block, nil
}

// VerifyChain walks the full chain and checks every block against the
// linkage and hashing rules.
func (db *Database) VerifyChain() error {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return verifyChain(db.storage.Blocks(), db.genesis.Difficulty)
}

// =============================================================================

func verifyChain(blocks []Block, difficulty uint16) error {
	if len(blocks) == 0 {
		return fmt.Errorf("%w: no genesis block", ErrBrokenChain)
	}

	for i, block := range blocks {
		if h := block.ContentHash(); h != block.hash {
			return fmt.Errorf("%w: blk[%d]: hash %s does not match content %s", ErrBrokenChain, i, block.hash, h)
		}

		// The genesis block is trusted and exempt from the difficulty.
		if i == 0 {
			continue
		}

		prev := blocks[i-1]
		if block.prevBlockHash != prev.hash {
			return fmt.Errorf("%w: blk[%d]: parent hash %s does not match %s", ErrBrokenChain, i, block.prevBlockHash, prev.hash)
		}

		if !IsHashSolved(difficulty, block.hash) {
			return fmt.Errorf("%w: blk[%d]: hash %s does not meet difficulty %d", ErrBrokenChain, i, block.hash, difficulty)
		}
	}

	return nil
}
