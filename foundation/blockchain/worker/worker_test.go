package worker_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/powledger/foundation/blockchain/state"
	"github.com/ardanlabs/powledger/foundation/blockchain/worker"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestBackgroundMining(t *testing.T) {
	t.Log("Given the need to mine submitted transactions in the background.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen transactions are submitted to a running worker.", testID)
		{
			gen := genesis.Default()
			gen.Difficulty = 1

			st, err := state.New(state.Config{Genesis: gen})
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to construct the ledger: %v", failed, testID, err)
			}

			worker.Run(st, nil)
			defer st.Shutdown()

			st.SubmitTransactions([]string{"a", "b"})

			deadline := time.Now().Add(5 * time.Second)
			for st.QueryStats().Pending != 0 || len(st.RetrieveBlocks()) < 2 {
				if time.Now().After(deadline) {
					t.Fatalf("\t%s\tTest %d:\tShould mine the transactions: %+v", failed, testID, st.QueryStats())
				}
				time.Sleep(10 * time.Millisecond)
			}
			t.Logf("\t%s\tTest %d:\tShould mine the transactions.", success, testID)

			if err := st.VerifyChain(); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould have a sound chain: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould have a sound chain.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen shutting down during an unsolvable search.", testID)
		{
			gen := genesis.Default()
			gen.Difficulty = 64

			st, err := state.New(state.Config{Genesis: gen})
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to construct the ledger: %v", failed, testID, err)
			}

			worker.Run(st, nil)
			st.SubmitTransactions([]string{"a"})
			time.Sleep(50 * time.Millisecond)

			done := make(chan struct{})
			go func() {
				st.Shutdown()
				close(done)
			}()

			select {
			case <-done:
				t.Logf("\t%s\tTest %d:\tShould stop the search on shutdown.", success, testID)
			case <-time.After(5 * time.Second):
				t.Fatalf("\t%s\tTest %d:\tShould stop the search on shutdown.", failed, testID)
			}

			if len(st.RetrieveBlocks()) != 1 || len(st.RetrieveMempool()) != 1 {
				t.Fatalf("\t%s\tTest %d:\tShould leave the ledger unchanged.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould leave the ledger unchanged.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen work arrives during an in-flight search.", testID)
		{
			gen := genesis.Default()
			gen.Difficulty = 64

			st, err := state.New(state.Config{Genesis: gen})
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to construct the ledger: %v", failed, testID, err)
			}

			worker.Run(st, nil)
			defer st.Shutdown()

			st.SubmitTransactions([]string{"a"})
			time.Sleep(50 * time.Millisecond)

			submitted := make(chan int, 1)
			go func() {
				submitted <- st.SubmitTransactions([]string{"b"})
			}()

			select {
			case n := <-submitted:
				if n != 2 {
					t.Fatalf("\t%s\tTest %d:\tShould have two pending transactions: got %d", failed, testID, n)
				}
				t.Logf("\t%s\tTest %d:\tShould accept a submission without waiting on the search.", success, testID)
			case <-time.After(3 * time.Second):
				t.Fatalf("\t%s\tTest %d:\tShould accept a submission without waiting on the search.", failed, testID)
			}

			c := database.NewCandidate(st.RetrieveLatestBlock(), []string{"external"}, time.Now())
			proposed := make(chan error, 1)
			go func() {
				_, err := st.ProcessProposedBlock(c, strings.Repeat("0", 64))
				proposed <- err
			}()

			select {
			case err := <-proposed:
				if !errors.Is(err, database.ErrProofMismatch) {
					t.Fatalf("\t%s\tTest %d:\tShould judge the block against the tip: %v", failed, testID, err)
				}
				t.Logf("\t%s\tTest %d:\tShould judge a proposed block without waiting on the search.", success, testID)
			case <-time.After(3 * time.Second):
				t.Fatalf("\t%s\tTest %d:\tShould judge a proposed block without waiting on the search.", failed, testID)
			}

			if len(st.RetrieveBlocks()) != 1 || len(st.RetrieveMempool()) != 2 {
				t.Fatalf("\t%s\tTest %d:\tShould leave the ledger unchanged.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould leave the ledger unchanged.", success, testID)
		}
	}
}
