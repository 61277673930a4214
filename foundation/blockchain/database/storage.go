package database

import "errors"

// ErrOutOfOrder is returned by storage when a block does not land at the
// next position in the chain.
var ErrOutOfOrder = errors.New("block out of order")

// Storage interface represents the behavior required to be implemented by any
// package providing support for holding the sealed blocks of the chain.
type Storage interface {
	Write(block Block) error
	GetBlock(num uint64) (Block, error)
	Blocks() []Block
	Len() int
	Close() error
}

// =============================================================================

// BlockData represents a sealed block for inspection and transport.
type BlockData struct {
	Index         uint64   `json:"index"`
	Hash          string   `json:"hash"`
	PrevBlockHash string   `json:"previous_hash"`
	TimeStamp     uint64   `json:"timestamp"`
	Nonce         uint64   `json:"nonce"`
	Transactions  []string `json:"transactions"`
}

// NewBlockData constructs the value to serialize.
func NewBlockData(block Block) BlockData {
	return BlockData{
		Index:         block.index,
		Hash:          block.hash,
		PrevBlockHash: block.prevBlockHash,
		TimeStamp:     block.timeStamp,
		Nonce:         block.nonce,
		Transactions:  block.Transactions(),
	}
}

// ToCandidate converts the block data back into a candidate so it can be
// validated again. The hash is returned separately as the proof.
func ToCandidate(data BlockData) (Candidate, string) {
	trans := make([]string, len(data.Transactions))
	copy(trans, data.Transactions)

	c := Candidate{
		Index:         data.Index,
		Transactions:  trans,
		TimeStamp:     data.TimeStamp,
		PrevBlockHash: data.PrevBlockHash,
		Nonce:         data.Nonce,
	}

	return c, data.Hash
}
