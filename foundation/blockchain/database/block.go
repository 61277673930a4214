package database

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ardanlabs/powledger/foundation/blockchain/genesis"
	"github.com/ethereum/go-ethereum/common"
)

// ErrRejected is the root of every validation failure. A rejection is an
// expected outcome and leaves the chain untouched.
var ErrRejected = errors.New("block rejected")

// Set of reasons a candidate block can be rejected.
var (
	ErrStaleParent      = fmt.Errorf("%w: parent hash does not match the chain tip", ErrRejected)
	ErrDifficultyNotMet = fmt.Errorf("%w: proof does not meet the difficulty", ErrRejected)
	ErrProofMismatch    = fmt.Errorf("%w: proof is not the hash of the block", ErrRejected)
)

// =============================================================================

// Candidate represents a block that has been built but not yet accepted into
// the chain. The nonce is mutated by the POW search.
type Candidate struct {
	Index         uint64   `json:"index"`
	Transactions  []string `json:"transactions"`
	TimeStamp     uint64   `json:"timestamp"`     // Unix time in milliseconds.
	PrevBlockHash string   `json:"previous_hash"` // Hash of the chain tip, or the genesis sentinel.
	Nonce         uint64   `json:"nonce"`         // Value identified to solve the hash solution.
}

// NewCandidate constructs the next block to be mined on top of the specified
// tip. The timestamp never moves backwards relative to the tip.
func NewCandidate(tip Block, trans []string, now time.Time) Candidate {
	timeStamp := uint64(now.UTC().UnixMilli())
	if timeStamp < tip.timeStamp {
		timeStamp = tip.timeStamp
	}

	cpy := make([]string, len(trans))
	copy(cpy, trans)

	return Candidate{
		Index:         tip.index + 1,
		Transactions:  cpy,
		TimeStamp:     timeStamp,
		PrevBlockHash: tip.hash,
		Nonce:         0,
	}
}

// Hash returns the digest of the candidate's current field values.
func (c Candidate) Hash() string {
	return hash(c.Index, c.Transactions, c.TimeStamp, c.PrevBlockHash, c.Nonce)
}

// =============================================================================

// Block represents a sealed block in the chain. A Block can only be produced
// by the database accepting a candidate or constructing the genesis block, and
// it can't be changed afterwards.
type Block struct {
	index         uint64
	transactions  []string
	timeStamp     uint64
	prevBlockHash string
	nonce         uint64
	hash          string
}

// NewGenesisBlock constructs the trusted first block of a chain. No POW is
// performed, the hash is simply the digest of the block.
func NewGenesisBlock(gen genesis.Genesis, now time.Time) Block {
	c := Candidate{
		Index:         0,
		Transactions:  []string{},
		TimeStamp:     uint64(now.UTC().UnixMilli()),
		PrevBlockHash: gen.Sentinel,
		Nonce:         0,
	}

	return seal(c, c.Hash())
}

// Index returns the position of the block in the chain.
func (b Block) Index() uint64 { return b.index }

// TimeStamp returns the creation time in Unix milliseconds.
func (b Block) TimeStamp() uint64 { return b.timeStamp }

// PrevBlockHash returns the hash of the parent block.
func (b Block) PrevBlockHash() string { return b.prevBlockHash }

// Nonce returns the nonce the block was sealed with.
func (b Block) Nonce() uint64 { return b.nonce }

// Hash returns the hash the block was sealed with.
func (b Block) Hash() string { return b.hash }

// Transactions returns a copy of the transactions in the block.
func (b Block) Transactions() []string {
	cpy := make([]string, len(b.transactions))
	copy(cpy, b.transactions)
	return cpy
}

// ContentHash recomputes the digest from the block's content. For a sound
// block this always equals Hash.
func (b Block) ContentHash() string {
	return hash(b.index, b.transactions, b.timeStamp, b.prevBlockHash, b.nonce)
}

// String implements the Stringer interface for logging.
func (b Block) String() string {
	return fmt.Sprintf("blk[%d]: hash[%s]: prev[%s]: nonce[%d]: trans[%d]", b.index, b.hash, b.prevBlockHash, b.nonce, len(b.transactions))
}

// seal converts the candidate into an immutable block with the given hash.
func seal(c Candidate, hash string) Block {
	trans := make([]string, len(c.Transactions))
	copy(trans, c.Transactions)

	return Block{
		index:         c.Index,
		transactions:  trans,
		timeStamp:     c.TimeStamp,
		prevBlockHash: c.PrevBlockHash,
		nonce:         c.Nonce,
		hash:          hash,
	}
}

// =============================================================================

// hash produces the canonical digest for a block. Only these five fields
// take part, keyed by name, and the JSON encoder writes map keys in sorted
// order so the output doesn't depend on how the value was constructed.
func hash(index uint64, trans []string, timeStamp uint64, prevBlockHash string, nonce uint64) string {
	if trans == nil {
		trans = []string{}
	}

	content := map[string]any{
		"index":         index,
		"nonce":         nonce,
		"previous_hash": prevBlockHash,
		"timestamp":     timeStamp,
		"transactions":  trans,
	}

	// A map of these types can't fail to marshal.
	data, _ := json.Marshal(content)

	sum := sha256.Sum256(data)
	return common.Bytes2Hex(sum[:])
}

// validateCandidate applies the admission rules for a candidate against the
// current tip of the chain.
func validateCandidate(tip Block, difficulty uint16, c Candidate, proof string, evHandler func(v string, args ...any)) error {
	evHandler("database: validateCandidate: blk[%d]: check: parent hash does match chain tip", c.Index)

	if c.PrevBlockHash != tip.hash {
		return fmt.Errorf("%w: got %s, exp %s", ErrStaleParent, c.PrevBlockHash, tip.hash)
	}

	evHandler("database: validateCandidate: blk[%d]: check: proof meets difficulty[%d]", c.Index, difficulty)

	if !IsHashSolved(difficulty, proof) {
		return fmt.Errorf("%w: proof %s", ErrDifficultyNotMet, proof)
	}

	evHandler("database: validateCandidate: blk[%d]: check: proof is reproducible from block content", c.Index)

	if h := c.Hash(); h != proof {
		return fmt.Errorf("%w: got %s, exp %s", ErrProofMismatch, proof, h)
	}

	return nil
}
