// Package memory implements the ability to hold the sealed blocks of a chain
// in memory using a slice.
package memory

import (
	"fmt"
	"sync"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
)

// Memory represents the storage implementation for holding blocks in memory
// using a slice. This implements the database.Storage interface.
type Memory struct {
	mu     sync.RWMutex
	blocks []database.Block
}

// New constructs a Memory value for use.
func New() *Memory {
	return &Memory{}
}

// Close in this implementation has nothing to do since everything
// is in memory.
func (m *Memory) Close() error {
	return nil
}

// Write appends the specified block to the end of the chain. The block's
// index must be the next position.
func (m *Memory) Write(block database.Block) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if exp := uint64(len(m.blocks)); block.Index() != exp {
		return fmt.Errorf("%w: blk[%d]: expected index %d", database.ErrOutOfOrder, block.Index(), exp)
	}

	m.blocks = append(m.blocks, block)

	return nil
}

// GetBlock returns the block at the specified position in the chain.
func (m *Memory) GetBlock(num uint64) (database.Block, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if num >= uint64(len(m.blocks)) {
		return database.Block{}, fmt.Errorf("block %d does not exist", num)
	}

	return m.blocks[num], nil
}

// Blocks returns a copy of the chain starting with the genesis block.
func (m *Memory) Blocks() []database.Block {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cpy := make([]database.Block, len(m.blocks))
	copy(cpy, m.blocks)
	return cpy
}

// Len returns the number of blocks being held.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.blocks)
}
