package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var submitCmd = &cobra.Command{
	Use:   "submit [transaction...]",
	Short: "Submit transactions to the node's mempool",
	Args:  cobra.MinimumNArgs(1),
	RunE:  submitRun,
}

func submitRun(cmd *cobra.Command, args []string) error {
	req := struct {
		Transactions []string `json:"transactions"`
	}{
		Transactions: args,
	}

	var result struct {
		Status  string `json:"status"`
		Pending int    `json:"pending"`
	}

	resp, err := newClient().R().
		SetBody(req).
		SetResult(&result).
		SetError(&errorResponse{}).
		Post("/v1/tx/submit")
	if err := checkResponse(resp, err); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: pending[%d]\n", result.Status, result.Pending)
	return nil
}
