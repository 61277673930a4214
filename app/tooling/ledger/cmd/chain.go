package cmd

import (
	"fmt"
	"io"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/spf13/cobra"
)

var chainCmd = &cobra.Command{
	Use:   "chain",
	Short: "Print every block in the node's chain",
	RunE:  chainRun,
}

func chainRun(cmd *cobra.Command, args []string) error {
	var blocks []database.BlockData

	resp, err := newClient().R().
		SetResult(&blocks).
		SetError(&errorResponse{}).
		Get("/v1/blocks/list")
	if err := checkResponse(resp, err); err != nil {
		return err
	}

	printChain(cmd.OutOrStdout(), blocks)
	return nil
}

// printChain writes one line per block with its index, timestamp and hash.
func printChain(w io.Writer, blocks []database.BlockData) {
	fmt.Fprintln(w, "blockchain:")
	for _, blk := range blocks {
		fmt.Fprintln(w, blk.Index, blk.TimeStamp, blk.Hash)
	}
}
