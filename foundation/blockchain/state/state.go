// Package state is the core API for the ledger and implements all the
// business rules and processing.
package state

import (
	"sync"
	"sync/atomic"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/powledger/foundation/blockchain/mempool"
	"github.com/ardanlabs/powledger/foundation/blockchain/storage/memory"
)

// EventHandler defines a function that is called when events
// occur in the processing of blocks.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by any
// package providing support for background mining.
type Worker interface {
	Shutdown()
	SignalStartMining()
	SignalCancelMining()
}

// =============================================================================

// Config represents the configuration required to construct a ledger.
type Config struct {
	Genesis   genesis.Genesis
	Storage   database.Storage // Defaults to in memory storage.
	EvHandler EventHandler
}

// State manages the ledger.
type State struct {

	// mu serializes the full mining sequence of building a candidate, the
	// POW search, validation and append-and-clear.
	mu sync.Mutex

	// viewMu lets readers see the chain and the mempool together, never
	// between a block being appended and its transactions being removed.
	viewMu sync.RWMutex

	evHandler   EventHandler
	genesis     genesis.Genesis
	mempool     *mempool.Mempool
	db          *database.Database
	blocksMined atomic.Uint64
	attempts    atomic.Uint64

	Worker Worker
}

// New constructs a new ledger with its genesis block. An invalid genesis
// configuration is reported here and never discovered later.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	strg := cfg.Storage
	if strg == nil {
		strg = memory.New()
	}

	db, err := database.New(cfg.Genesis, strg, ev)
	if err != nil {
		return nil, err
	}

	state := State{
		evHandler: ev,
		genesis:   cfg.Genesis,
		mempool:   mempool.New(),
		db:        db,
	}

	// The Worker is not set here. The call to worker.Run will assign itself
	// when background mining is wanted.

	return &state, nil
}

// Shutdown cleanly brings the ledger down.
func (s *State) Shutdown() error {
	s.evHandler("state: shutdown: started")
	defer s.evHandler("state: shutdown: completed")

	// Stop all background mining activity.
	if s.Worker != nil {
		s.Worker.Shutdown()
	}

	return s.db.Close()
}
