// Package genesis maintains access to the genesis configuration for a ledger.
package genesis

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Sentinel is the previous block hash recorded in the genesis block. It is
// never compared against another block.
const Sentinel = "Chancellor on the brink.."

// MaxDifficulty is the length of a hex encoded SHA-256 digest. A difficulty
// above this could never be solved.
const MaxDifficulty = 64

// Set of configuration errors returned by Validate.
var (
	ErrInvalidSentinel   = errors.New("genesis sentinel must not be empty")
	ErrInvalidDifficulty = errors.New("difficulty must be between 1 and 64")
)

// =============================================================================

// Genesis represents the genesis configuration.
type Genesis struct {
	Date          time.Time `json:"date"`
	Sentinel      string    `json:"sentinel"`        // Previous hash value stored in block 0.
	Difficulty    uint16    `json:"difficulty"`      // Number of leading 0's required in an accepted hash.
	TransPerBlock uint16    `json:"trans_per_block"` // Max transactions packaged into a block, 0 takes them all.
}

// Default returns the genesis configuration used when no file is provided.
func Default() Genesis {
	return Genesis{
		Date:       time.Now().UTC(),
		Sentinel:   Sentinel,
		Difficulty: 3,
	}
}

// Load opens and consumes the genesis file. Fields not present in the file
// are taken from Default.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, fmt.Errorf("reading genesis file: %w", err)
	}

	gen := Default()
	if err := json.Unmarshal(content, &gen); err != nil {
		return Genesis{}, fmt.Errorf("decoding genesis file: %w", err)
	}

	if err := gen.Validate(); err != nil {
		return Genesis{}, err
	}

	return gen, nil
}

// Validate checks the genesis values can be used to construct a ledger.
func (g Genesis) Validate() error {
	if strings.TrimSpace(g.Sentinel) == "" {
		return ErrInvalidSentinel
	}

	if g.Difficulty == 0 || g.Difficulty > MaxDifficulty {
		return fmt.Errorf("%w: got %d", ErrInvalidDifficulty, g.Difficulty)
	}

	return nil
}
