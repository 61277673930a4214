package public

import (
	"github.com/ardanlabs/powledger/business/sys/validate"
	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/state"
	"github.com/ethereum/go-ethereum/common"
)

// submitRequest is the payload for adding transactions to the mempool.
type submitRequest struct {
	Transactions []string `json:"transactions" validate:"required,min=1"`
}

// Validate checks the data in the model is considered clean.
func (sr submitRequest) Validate() error {
	return validate.Check(sr)
}

type submitResponse struct {
	Status  string `json:"status"`
	Pending int    `json:"pending"`
}

// proposeRequest carries a block solved somewhere else. The hash is the
// proof claimed for it.
type proposeRequest struct {
	database.BlockData
}

// Validate checks the data in the model is considered clean.
func (pr proposeRequest) Validate() error {

	// A sha256 digest is 64 hex characters and 32 bytes once decoded.
	if len(pr.Hash) != 64 || len(common.FromHex(pr.Hash)) != 32 {
		return validate.FieldErrors{
			{Field: "hash", Error: "hash must be a hex encoded sha256 digest"},
		}
	}

	return nil
}

type mineResponse struct {
	Block  database.BlockData `json:"block"`
	Report state.MineReport   `json:"report"`
}

type verifyResponse struct {
	Valid  bool   `json:"valid"`
	Blocks int    `json:"blocks"`
	Error  string `json:"error,omitempty"`
}
