package cmd

import (
	"fmt"

	"github.com/ardanlabs/powledger/foundation/blockchain/state"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the node's ledger statistics",
	RunE:  statusRun,
}

func statusRun(cmd *cobra.Command, args []string) error {
	var stats state.Stats

	resp, err := newClient().R().
		SetResult(&stats).
		SetError(&errorResponse{}).
		Get("/v1/status")
	if err := checkResponse(resp, err); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "height:       %d\n", stats.Height)
	fmt.Fprintf(out, "latest hash:  %s\n", stats.LatestHash)
	fmt.Fprintf(out, "pending:      %d\n", stats.Pending)
	fmt.Fprintf(out, "difficulty:   %d\n", stats.Difficulty)
	fmt.Fprintf(out, "blocks mined: %d\n", stats.BlocksMined)
	fmt.Fprintf(out, "attempts:     %d\n", stats.Attempts)
	return nil
}
