package cmd

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/spf13/cobra"
)

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Mine the pending transactions into a block",
	RunE:  mineRun,
}

func mineRun(cmd *cobra.Command, args []string) error {
	var result struct {
		Block  database.BlockData `json:"block"`
		Report struct {
			Attempts uint64        `json:"attempts"`
			Duration time.Duration `json:"duration"`
		} `json:"report"`
	}

	resp, err := newClient().R().
		SetResult(&result).
		SetError(&errorResponse{}).
		Post("/v1/mining/mine")
	if err := checkResponse(resp, err); err != nil {
		return err
	}

	if resp.StatusCode() == http.StatusNoContent {
		fmt.Fprintln(cmd.OutOrStdout(), "no transactions to mine")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "block #%d added successfully: attempts[%d] duration[%v]\n", result.Block.Index, result.Report.Attempts, result.Report.Duration)
	fmt.Fprintln(cmd.OutOrStdout(), result.Block.Index, result.Block.TimeStamp, result.Block.Hash)
	return nil
}
