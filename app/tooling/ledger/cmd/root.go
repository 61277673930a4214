// Package cmd contains the ledger command line tool.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Work with a proof of work ledger node",
}

func init() {
	rootCmd.PersistentFlags().StringP("url", "u", "http://localhost:8080", "Base url of the ledger node.")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		fmt.Fprintln(os.Stderr, "binding root flags:", err)
	}

	rootCmd.SilenceUsage = true

	viper.SetEnvPrefix("ledger")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(submitCmd, mineCmd, chainCmd, statusCmd, demoCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// =============================================================================

// newClient constructs a client for the configured node.
func newClient() *resty.Client {
	return resty.New().
		SetBaseURL(viper.GetString("url")).
		SetHeader("Accept", "application/json")
}

// errorResponse matches the error document the node sends back.
type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// checkResponse turns a failed node response into an error.
func checkResponse(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}

	if !resp.IsError() {
		return nil
	}

	if er, ok := resp.Error().(*errorResponse); ok && er.Error != "" {
		if len(er.Fields) > 0 {
			return fmt.Errorf("%s: %s: %v", resp.Status(), er.Error, er.Fields)
		}
		return fmt.Errorf("%s: %s", resp.Status(), er.Error)
	}

	return fmt.Errorf("%s", resp.Status())
}
