package database

import (
	"context"
	"strings"
)

// Proof represents the outcome of a successful POW search.
type Proof struct {
	Hash     string `json:"hash"`
	Nonce    uint64 `json:"nonce"`
	Attempts uint64 `json:"attempts"`
}

// POW performs the work of mining to find a nonce for the candidate that
// produces a hash meeting the difficulty. The search starts at the candidate's
// current nonce and increments it by one until a solution is found. Pointer
// semantics are being used since the nonce is being discovered. The hash is
// returned as the proof and is not stored anywhere on the candidate.
func POW(ctx context.Context, difficulty uint16, c *Candidate, evHandler func(v string, args ...any)) (Proof, error) {
	ev := func(v string, args ...any) {
		if evHandler != nil {
			evHandler(v, args...)
		}
	}

	ev("database: POW: MINING: started: blk[%d]: difficulty[%d]", c.Index, difficulty)
	defer ev("database: POW: MINING: completed: blk[%d]", c.Index)

	var attempts uint64
	for {
		attempts++
		if attempts%1_000_000 == 0 {
			ev("database: POW: MINING: attempts[%d]", attempts)
		}

		// Did we timeout trying to solve the problem.
		if err := ctx.Err(); err != nil {
			ev("database: POW: MINING: CANCELLED: attempts[%d]", attempts)
			return Proof{}, err
		}

		// Hash the block and check if we have solved the puzzle.
		hash := c.Hash()
		if !IsHashSolved(difficulty, hash) {
			c.Nonce++
			continue
		}

		ev("database: POW: MINING: SOLVED: prevBlk[%s]: newBlk[%s]: nonce[%d]: attempts[%d]", c.PrevBlockHash, hash, c.Nonce, attempts)

		return Proof{Hash: hash, Nonce: c.Nonce, Attempts: attempts}, nil
	}
}

// zeros is long enough to match every possible difficulty.
var zeros = strings.Repeat("0", 64)

// IsHashSolved checks the hash to make sure it complies with the POW rules.
// We need to match a difficulty number of leading 0's.
func IsHashSolved(difficulty uint16, hash string) bool {
	if int(difficulty) > len(zeros) || len(hash) < int(difficulty) {
		return false
	}

	return hash[:difficulty] == zeros[:difficulty]
}
