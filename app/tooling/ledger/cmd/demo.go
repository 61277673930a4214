package cmd

import (
	"fmt"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/powledger/foundation/blockchain/state"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Build a ledger in process, mine one block and print the chain",
	RunE:  demoRun,
}

func init() {
	demoCmd.Flags().Uint16P("difficulty", "d", genesis.Default().Difficulty, "Leading zeros required in an accepted hash.")
	if err := viper.BindPFlag("difficulty", demoCmd.Flags().Lookup("difficulty")); err != nil {
		fmt.Println("binding demo flags:", err)
	}
}

func demoRun(cmd *cobra.Command, args []string) error {
	difficulty := viper.GetUint("difficulty")
	if difficulty > genesis.MaxDifficulty {
		return fmt.Errorf("difficulty %d is above the maximum of %d", difficulty, genesis.MaxDifficulty)
	}

	gen := genesis.Default()
	gen.Difficulty = uint16(difficulty)

	st, err := state.New(state.Config{Genesis: gen})
	if err != nil {
		return err
	}
	defer st.Shutdown()

	st.SubmitTransactions([]string{"transaction 1", "transaction 2", "transaction 3"})

	block, _, err := st.MineNewBlock(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nblock #%d added successfully!\n\n", block.Index())

	blocks := st.RetrieveBlocks()
	data := make([]database.BlockData, len(blocks))
	for i, blk := range blocks {
		data[i] = database.NewBlockData(blk)
	}
	printChain(out, data)

	return nil
}
