// Package mempool maintains the buffer of pending transactions waiting to be
// packaged into the next block.
package mempool

import "sync"

// Mempool represents an ordered buffer of opaque transactions. Transactions
// are handed out in the order they were submitted.
type Mempool struct {
	mu    sync.RWMutex
	trans []string
}

// New constructs an empty mempool.
func New() *Mempool {
	return &Mempool{}
}

// Count returns the current number of transactions in the pool.
func (mp *Mempool) Count() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return len(mp.trans)
}

// Append adds the transactions to the end of the pool and returns the new
// number of pending transactions.
func (mp *Mempool) Append(trans ...string) int {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.trans = append(mp.trans, trans...)

	return len(mp.trans)
}

// Copy returns a copy of all pending transactions in order.
func (mp *Mempool) Copy() []string {
	return mp.PickFirst(-1)
}

// PickFirst returns a copy of the first howMany transactions. Pass -1 for
// all the transactions.
func (mp *Mempool) PickFirst(howMany int) []string {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	if howMany < 0 || howMany > len(mp.trans) {
		howMany = len(mp.trans)
	}

	cpy := make([]string, howMany)
	copy(cpy, mp.trans[:howMany])
	return cpy
}

// Remove drops the first howMany transactions from the pool.
func (mp *Mempool) Remove(howMany int) {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if howMany >= len(mp.trans) {
		mp.trans = nil
		return
	}

	if howMany <= 0 {
		return
	}

	rest := make([]string, len(mp.trans)-howMany)
	copy(rest, mp.trans[howMany:])
	mp.trans = rest
}
